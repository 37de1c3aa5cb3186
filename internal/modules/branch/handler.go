package branch

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
	branches := v1.Group("/branches")
	{
		branches.GET("", h.List)
		branches.POST("", h.Create)
		branches.GET("/:id", h.Get)
		branches.PUT("/:id", h.Update)
		branches.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	branches, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to list branches")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"branches": branches})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid branch ID")
		return
	}

	branch, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Branch not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load branch")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"branch": branch})
}

func (h *Handler) Create(c *gin.Context) {
	var req UpsertBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	branch, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to create branch")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"branch": branch})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid branch ID")
		return
	}

	var req UpsertBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	branch, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Branch not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to update branch")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"branch": branch})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid branch ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Branch not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to delete branch")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Branch deleted"})
}
