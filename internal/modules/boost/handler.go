package boost

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"velvetdir/internal/middleware"
	"velvetdir/internal/pkg/response"
)

// Handler is the self-service boost surface for profile owners.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the owner-facing endpoints behind auth
// middleware supplied by the caller.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/profiles/:id/boost-activate", h.Activate)
	r.GET("/profiles/:id/boost-status", h.Status)
}

func (h *Handler) Activate(c *gin.Context) {
	id, ok := h.ownedProfile(c)
	if !ok {
		return
	}

	status, err := h.service.Activate(c.Request.Context(), id, time.Now())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, status)
}

func (h *Handler) Status(c *gin.Context) {
	id, ok := h.ownedProfile(c)
	if !ok {
		return
	}

	status, err := h.service.CurrentStatus(c.Request.Context(), id, time.Now())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, status)
}

// ownedProfile parses the path id and enforces that the caller owns
// the profile (admins pass).
func (h *Handler) ownedProfile(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "id must be a positive integer")
		return 0, false
	}

	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return 0, false
	}
	if actor.IsAdmin() {
		return id, true
	}

	p, err := h.service.profiles.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", ErrProfileNotFound.Error())
		} else {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load profile")
		}
		return 0, false
	}
	if p.UserID != actor.ID {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "profile belongs to another account")
		return 0, false
	}

	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	code := Code(err)
	switch code {
	case "NOT_FOUND":
		response.Error(c, http.StatusNotFound, code, err.Error())
	case "ALREADY_BOOSTED", "TIER_NOT_ALLOWED", "NO_BOOSTS_REMAINING":
		response.Error(c, http.StatusConflict, code, err.Error())
	case "VALIDATION_ERROR":
		response.Error(c, http.StatusBadRequest, code, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, code, "boost operation failed")
	}
}
