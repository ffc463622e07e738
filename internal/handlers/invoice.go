// Package handlers implements the HTTP layer over the scoring engine and the
// verification orchestrator.
package handlers

import (
	"errors"
	"math/big"
	"strconv"

	"invox/internal/models"
	"invox/internal/repositories"
	"invox/internal/services/scoring"
	"invox/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type InvoiceHandler struct {
	repo   repositories.InvoiceRepository
	engine *scoring.Engine
}

func NewInvoiceHandler(repo repositories.InvoiceRepository, engine *scoring.Engine) *InvoiceHandler {
	return &InvoiceHandler{repo: repo, engine: engine}
}

func (h *InvoiceHandler) CreateInvoice(c *fiber.Ctx) error {
	var req models.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if req.DebtorName == "" {
		return response.BadRequest(c, "debtor_name is required")
	}
	if _, ok := new(big.Int).SetString(req.FaceValueWei, 10); !ok {
		return response.BadRequest(c, "face_value_wei must be a decimal integer string")
	}
	if req.DueDate <= 0 {
		return response.BadRequest(c, "due_date must be a unix timestamp")
	}

	invoice := &models.Invoice{
		DebtorName:   req.DebtorName,
		FaceValueWei: req.FaceValueWei,
		DueDate:      req.DueDate,
	}
	if err := h.repo.Create(c.Context(), invoice); err != nil {
		return response.ServerError(c, "failed to create invoice")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "invoice created",
		"data":    invoice,
	})
}

func (h *InvoiceHandler) GetInvoice(c *fiber.Ctx) error {
	id, err := parseInvoiceID(c)
	if err != nil {
		return response.BadRequest(c, "invalid invoice id")
	}

	invoice, err := h.repo.GetByID(c.Context(), id)
	if errors.Is(err, repositories.ErrInvoiceNotFound) {
		return response.NotFound(c, "invoice not found")
	}
	if err != nil {
		return response.ServerError(c, "failed to load invoice")
	}

	return response.Success(c, "invoice", invoice)
}

func (h *InvoiceHandler) ListInvoices(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	invoices, err := h.repo.List(c.Context(), limit, offset)
	if err != nil {
		return response.ServerError(c, "failed to list invoices")
	}
	return response.Success(c, "invoices", invoices)
}

// ScoreInvoice runs the risk engine against a stored invoice and returns the
// score with its factor breakdown. No ledger interaction.
func (h *InvoiceHandler) ScoreInvoice(c *fiber.Ctx) error {
	id, err := parseInvoiceID(c)
	if err != nil {
		return response.BadRequest(c, "invalid invoice id")
	}

	invoice, err := h.repo.GetByID(c.Context(), id)
	if errors.Is(err, repositories.ErrInvoiceNotFound) {
		return response.NotFound(c, "invoice not found")
	}
	if err != nil {
		return response.ServerError(c, "failed to load invoice")
	}

	input, err := scoring.ParseInput(invoice.ScoringArgs())
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	result := h.engine.ComputeRiskScore(c.Context(), input)
	return response.Success(c, "risk score", result)
}

func parseInvoiceID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}
