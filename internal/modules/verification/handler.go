package verification

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"velvetdir/internal/middleware"
	"velvetdir/internal/pkg/response"
	"velvetdir/internal/pkg/validator"
)

// Handler is the owner-facing submission endpoint. Review lives in
// the admin console.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/verifications", h.Submit)
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", errs)
		return
	}

	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	app, err := h.service.Submit(c.Request.Context(), actor, req.ProfileID, req.PhotoURL, req.DocumentURL, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, ErrProfileNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		case errors.Is(err, ErrNotOwner):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
		case errors.Is(err, ErrAlreadyPending):
			response.Error(c, http.StatusConflict, "ALREADY_PENDING", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "submission failed")
		}
		return
	}
	response.Success(c, http.StatusCreated, app)
}
