package department

import (
	"errors"
	"net/http"
	"strconv"

	"staffhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	departments := v1.Group("/departments")
	{
		departments.GET("", h.List)
		departments.POST("", h.Create)
		departments.GET("/:id", h.Get)
		departments.PUT("/:id", h.Update)
		departments.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	departments, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to list departments")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"departments": departments})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid department ID")
		return
	}

	department, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Department not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load department")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"department": department})
}

func (h *Handler) Create(c *gin.Context) {
	var req UpsertDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	department, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to create department")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"department": department})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid department ID")
		return
	}

	var req UpsertDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	department, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Department not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to update department")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"department": department})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid department ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Department not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to delete department")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Department deleted"})
}
