package handlers

import (
	"errors"

	"invox/internal/services/verification"
	"invox/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type VerificationHandler struct {
	svc verification.Service
}

func NewVerificationHandler(svc verification.Service) *VerificationHandler {
	return &VerificationHandler{svc: svc}
}

// RequestVerification submits an invoice to the oracle network and tracks it
// as pending until the fulfillment event arrives.
func (h *VerificationHandler) RequestVerification(c *fiber.Ctx) error {
	id, err := parseInvoiceID(c)
	if err != nil {
		return response.BadRequest(c, "invalid invoice id")
	}

	req, err := h.svc.Submit(c.Context(), id)
	if errors.Is(err, verification.ErrSubmissionRejected) {
		// Surface the ledger's reason verbatim; the caller must react.
		return response.Conflict(c, err.Error())
	}
	if err != nil {
		return response.ServerError(c, "failed to request verification")
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "verification requested",
		"data":    req,
	})
}

type manualVerifyRequest struct {
	RiskScore int `json:"risk_score"`
}

// ManualVerify bypasses the oracle round-trip; testing/demo only.
func (h *VerificationHandler) ManualVerify(c *fiber.Ctx) error {
	id, err := parseInvoiceID(c)
	if err != nil {
		return response.BadRequest(c, "invalid invoice id")
	}

	var body manualVerifyRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	req, err := h.svc.SubmitManual(c.Context(), id, body.RiskScore)
	if errors.Is(err, verification.ErrInvalidScore) {
		return response.BadRequest(c, err.Error())
	}
	if errors.Is(err, verification.ErrSubmissionRejected) {
		return response.Conflict(c, err.Error())
	}
	if err != nil {
		return response.ServerError(c, "failed to verify invoice")
	}

	return response.Success(c, "invoice verified", req)
}

func (h *VerificationHandler) GetStatus(c *fiber.Ctx) error {
	id, err := parseInvoiceID(c)
	if err != nil {
		return response.BadRequest(c, "invalid invoice id")
	}

	req, ok := h.svc.Get(id)
	if !ok {
		return response.Success(c, "verification status", fiber.Map{
			"invoice_id": id,
			"status":     verification.StatusIdle,
		})
	}
	return response.Success(c, "verification status", req)
}
