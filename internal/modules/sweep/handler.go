package sweep

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"velvetdir/internal/pkg/response"
)

// Handler exposes the sweep as a guarded HTTP trigger for operators
// who schedule it from outside the box. The route must sit behind the
// internal-token middleware.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/sweep", h.Run)
}

func (h *Handler) Run(c *gin.Context) {
	mode, err := ParseMode(c.DefaultQuery("mode", string(ModeAll)))
	if err != nil {
		if errors.Is(err, ErrUnknownMode) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "sweep failed")
		return
	}

	report, err := h.service.Run(c.Request.Context(), mode, time.Now())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "sweep failed")
		return
	}
	response.Success(c, http.StatusOK, report)
}
