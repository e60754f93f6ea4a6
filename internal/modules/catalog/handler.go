package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"velvetdir/internal/pkg/response"
	"velvetdir/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public, unauthenticated surface.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/profiles", h.ListProfiles)
	r.GET("/profiles/:id", h.GetProfile)
	r.POST("/profiles/:id/contact-click", h.ContactClick)
	r.GET("/agencies", h.ListAgencies)
	r.GET("/agencies/:id", h.GetAgency)
	r.GET("/stats", h.Stats)
}

func (h *Handler) ListProfiles(c *gin.Context) {
	filters := repository.ProfileFilters{
		District:     c.Query("district"),
		Service:      c.Query("service"),
		Language:     c.Query("language"),
		MinPrice:     queryInt(c, "min_price"),
		MaxPrice:     queryInt(c, "max_price"),
		VerifiedOnly: c.Query("verified") == "true",
	}

	result, err := h.service.ListProfiles(c.Request.Context(), filters, queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		if errors.Is(err, ErrUnknownDistrict) {
			response.Error(c, http.StatusBadRequest, "UNKNOWN_DISTRICT", err.Error())
			return
		}
		if errors.Is(err, ErrUnknownService) {
			response.Error(c, http.StatusBadRequest, "UNKNOWN_SERVICE", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list profiles")
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) GetProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			response.Error(c, http.StatusNotFound, "PROFILE_NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load profile")
		return
	}
	response.Success(c, http.StatusOK, detail)
}

func (h *Handler) ContactClick(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.RecordContactClick(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			response.Error(c, http.StatusNotFound, "PROFILE_NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to record contact click")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recorded": true})
}

func (h *Handler) ListAgencies(c *gin.Context) {
	result, err := h.service.ListAgencies(c.Request.Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list agencies")
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) GetAgency(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.service.GetAgency(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrAgencyNotFound) {
			response.Error(c, http.StatusNotFound, "AGENCY_NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load agency")
		return
	}
	response.Success(c, http.StatusOK, detail)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load stats")
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string) int {
	v, _ := strconv.Atoi(c.Query(key))
	return v
}
