package bike

import (
	"errors"
	"net/http"
	"strconv"

	"bikerental/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts browse endpoints, no auth required.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/bikes", h.ListBikes)
	rg.GET("/bikes/:id", h.GetBike)
}

// RegisterAdminRoutes mounts fleet management behind the admin role.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/bikes", h.CreateBike)
	rg.PUT("/bikes/:id", h.UpdateBike)
	rg.DELETE("/bikes/:id", h.DeleteBike)
}

func (h *Handler) ListBikes(c *gin.Context) {
	var q ListBikesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	bikes, total, err := h.service.ListBikes(c.Request.Context(), q)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"count": total,
		"bikes": bikes,
	})
}

func (h *Handler) GetBike(c *gin.Context) {
	id, ok := bikeID(c)
	if !ok {
		return
	}

	b, err := h.service.GetBike(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bike": b})
}

func (h *Handler) CreateBike(c *gin.Context) {
	var req CreateBikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateBike(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"bike": b})
}

func (h *Handler) UpdateBike(c *gin.Context) {
	id, ok := bikeID(c)
	if !ok {
		return
	}

	var req UpdateBikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateBike(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bike": b})
}

func (h *Handler) DeleteBike(c *gin.Context) {
	id, ok := bikeID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBike(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid bike data")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Bike not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Request failed")
	}
}

func bikeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid bike ID")
		return 0, false
	}
	return id, true
}
