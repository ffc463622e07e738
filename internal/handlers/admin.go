package handlers

import (
	"invox/internal/services/verification"
	"invox/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	svc verification.Service
}

func NewAdminHandler(svc verification.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

type uploadSourceRequest struct {
	Source string `json:"source"`
}

// UploadSource stores the verification function source on the ledger. This is
// the deployment step that must happen before verification requests succeed.
func (h *AdminHandler) UploadSource(c *fiber.Ctx) error {
	var body uploadSourceRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if body.Source == "" {
		return response.BadRequest(c, "source is required")
	}

	if err := h.svc.UploadSource(c.Context(), body.Source); err != nil {
		return response.ServerError(c, "failed to upload verification source")
	}
	return response.Success(c, "verification source uploaded", fiber.Map{
		"bytes": len(body.Source),
	})
}
