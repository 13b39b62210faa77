package report

import (
	"net/http"
	"time"

	"bikerental/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the admin reporting endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/daily", h.Daily)
	rg.GET("/reports/overview", h.Overview)
	rg.GET("/reports/revenue", h.Revenue)
}

func (h *Handler) Daily(c *gin.Context) {
	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	rep, err := h.service.Daily(c.Request.Context(), date)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build report")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"report": rep})
}

func (h *Handler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build overview")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"overview": overview})
}

func (h *Handler) Revenue(c *gin.Context) {
	// Default window: last 30 days.
	end := time.Now().UTC()
	start := end.Add(-30 * 24 * time.Hour)

	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start_date must be YYYY-MM-DD")
			return
		}
		start = parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "end_date must be YYYY-MM-DD")
			return
		}
		// Inclusive end date: extend to the end of that day.
		end = parsed.Add(24 * time.Hour)
	}

	revenue, err := h.service.RevenueByDay(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build revenue report")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"revenue": revenue})
}
