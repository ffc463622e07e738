package scoring

// Neutral starting score before any factor is applied.
const baseScore = 50

// Factor weights.
const (
	trustedCompanyBonus = 30

	tinyValuePenalty    = -10
	reasonableBonus     = 10
	extremeValuePenalty = -10

	overduePenalty     = -50
	imminentDuePenalty = -20
	optimalWindowBonus = 15
	farFuturePenalty   = -10

	highVelocityPenalty = -5
)

// Face-value tier boundaries, in whole-token units.
const (
	tinyValueCeiling  = 0.1
	reasonableFloor   = 100
	reasonableCeiling = 100000
	extremeValueFloor = 1000000
)

// Due-date horizon boundaries, in days.
const (
	imminentDays     = 7
	optimalFloorDays = 30
	optimalCeilDays  = 90
	farFutureDays    = 365
)

// Annualized value above which the velocity penalty applies.
const velocityCeiling = 10000000

// Debtors whose invoices earn the reputation bonus. Matching is a
// case-insensitive substring check against the normalized debtor name.
var trustedCompanies = []string{
	"APPLE",
	"MICROSOFT",
	"GOOGLE",
	"ALPHABET",
	"AMAZON",
	"META",
	"FACEBOOK",
	"TESLA",
	"NVIDIA",
	"JPMORGAN",
	"VISA",
	"MASTERCARD",
	"WALMART",
	"COCA-COLA",
	"PEPSI",
	"NETFLIX",
	"ADOBE",
	"ORACLE",
	"SALESFORCE",
	"IBM",
	"CISCO",
	"INTEL",
}
