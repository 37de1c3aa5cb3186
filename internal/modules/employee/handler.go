package employee

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

// RegisterRoutes wires the ADMIN/HR management surface.
func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	employees := v1.Group("/employees")
	{
		employees.GET("", h.List)
		employees.POST("", h.Create)
		employees.GET("/:id", h.Get)
		employees.PUT("/:id", h.Update)
		employees.DELETE("/:id", h.Delete)
	}

	// Read-only directory, open to every authenticated role.
	v1.GET("/allemployees", h.List)
	v1.GET("/dashboard/stats", h.Stats)
}

func (h *Handler) List(c *gin.Context) {
	employees, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to list employees")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"employees": employees})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid employee ID")
		return
	}

	employee, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Employee not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load employee")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"employee": employee})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	employee, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "An employee with this email already exists")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to create employee")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"employee": employee})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid employee ID")
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	employee, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Employee not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to update employee")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"employee": employee})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid employee ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Employee not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to delete employee")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Employee deleted"})
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to compute stats")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}
