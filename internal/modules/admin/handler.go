package admin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"velvetdir/internal/domain"
	"velvetdir/internal/middleware"
	"velvetdir/internal/modules/boost"
	"velvetdir/internal/modules/tier"
	"velvetdir/internal/modules/verification"
	"velvetdir/internal/pkg/response"
	"velvetdir/internal/pkg/validator"
)

// Handler is the operator console surface. It owns only listing,
// fraud views, visibility toggles and the dashboard; tier, boost and
// verification decisions are delegated to their modules.
type Handler struct {
	service       *Service
	tiers         *tier.Service
	boosts        *boost.Service
	verifications *verification.Service
}

func NewHandler(service *Service, tiers *tier.Service, boosts *boost.Service, verifications *verification.Service) *Handler {
	return &Handler{service: service, tiers: tiers, boosts: boosts, verifications: verifications}
}

// RegisterRoutes mounts the console behind auth + admin-only
// middleware supplied by the caller.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/profiles", h.ListProfiles)
	r.GET("/profiles/:id/fraud", h.ProfileFraud)
	r.PUT("/profiles/:id/tier", h.SetProfileTier)
	r.POST("/profiles/:id/boost", h.BoostAction)
	r.GET("/profiles/:id/audit", h.AuditTrail)
	r.POST("/profiles/:id/disable", h.DisableProfile)
	r.POST("/profiles/:id/enable", h.EnableProfile)
	r.PUT("/agencies/:id/tier", h.SetAgencyTier)
	r.GET("/agencies/:id/slots", h.AgencySlots)
	r.GET("/verifications", h.ListVerifications)
	r.POST("/verifications/:id/decision", h.DecideVerification)
	r.GET("/statistics", h.Statistics)
}

func (h *Handler) ListProfiles(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := h.service.ListProfiles(
		c.Request.Context(),
		c.Query("district"),
		parseBoolParam(c.Query("flagged")),
		c.Query("sort") == "score",
		page, limit,
	)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list profiles")
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) ProfileFraud(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	analysis, err := h.service.AnalyzeProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to analyze profile")
		return
	}
	response.Success(c, http.StatusOK, analysis)
}

func (h *Handler) SetProfileTier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req SetProfileTierRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actor, _ := middleware.ActorFrom(c)

	p, err := h.tiers.SetProfileTier(c.Request.Context(), actor, id, req.Tier, req.ExpiresAt)
	if err != nil {
		switch {
		case errors.Is(err, tier.ErrUnknownTier):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, tier.ErrProfileNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		case errors.Is(err, tier.ErrTierUnchanged):
			response.Error(c, http.StatusConflict, "TIER_UNCHANGED", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to change tier")
		}
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) BoostAction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req BoostActionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	action, err := boost.ParseAdminAction(req.Action)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	actor, _ := middleware.ActorFrom(c)

	status, err := h.boosts.ApplyAdminAction(c.Request.Context(), actor, id, action, time.Now())
	if err != nil {
		if errors.Is(err, boost.ErrProfileNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "boost action failed")
		return
	}
	response.Success(c, http.StatusOK, status)
}

func (h *Handler) AuditTrail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := h.service.AuditTrail(c.Request.Context(), id, limit)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load audit trail")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"entries": entries})
}

func (h *Handler) DisableProfile(c *gin.Context) { h.toggleProfile(c, true) }
func (h *Handler) EnableProfile(c *gin.Context)  { h.toggleProfile(c, false) }

func (h *Handler) toggleProfile(c *gin.Context, disabled bool) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	actor, _ := middleware.ActorFrom(c)

	p, err := h.service.SetProfileDisabled(c.Request.Context(), actor, id, disabled)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update profile")
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) SetAgencyTier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req SetAgencyTierRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actor, _ := middleware.ActorFrom(c)

	a, err := h.tiers.SetAgencyTier(c.Request.Context(), actor, id, req.Tier, req.ModelLimit, req.ExpiresAt)
	if err != nil {
		switch {
		case errors.Is(err, tier.ErrUnknownTier), errors.Is(err, tier.ErrInvalidModelLimit):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, tier.ErrAgencyNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		case errors.Is(err, tier.ErrTierUnchanged):
			response.Error(c, http.StatusConflict, "TIER_UNCHANGED", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to change tier")
		}
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) AgencySlots(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	usage, err := h.tiers.AgencySlotUsage(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, tier.ErrAgencyNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load slot usage")
		return
	}
	response.Success(c, http.StatusOK, usage)
}

func (h *Handler) ListVerifications(c *gin.Context) {
	status := domain.VerificationStatus(c.DefaultQuery("status", string(domain.VerificationPending)))
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	apps, total, err := h.verifications.List(c.Request.Context(), status, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list applications")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"applications": apps, "total": total})
}

func (h *Handler) DecideVerification(c *gin.Context) {
	appID := c.Param("id")
	var req DecisionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actor, _ := middleware.ActorFrom(c)
	ctx := c.Request.Context()

	var (
		app *domain.VerificationApplication
		err error
	)
	if req.Decision == "approve" {
		app, err = h.verifications.Approve(ctx, actor, appID)
	} else {
		app, err = h.verifications.Reject(ctx, actor, appID, req.Notes)
	}
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrApplicationNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		case errors.Is(err, verification.ErrNotPending):
			response.Error(c, http.StatusConflict, "ALREADY_REVIEWED", err.Error())
		case errors.Is(err, verification.ErrNotesRequired):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "decision failed")
		}
		return
	}
	response.Success(c, http.StatusOK, app)
}

func (h *Handler) Statistics(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load statistics")
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func bindAndValidate(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return false
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", errs)
		return false
	}
	return true
}
