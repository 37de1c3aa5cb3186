package project

import (
	"errors"
	"net/http"
	"strconv"

	"staffhub/internal/domain"
	"staffhub/internal/middleware"
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
	writers := middleware.RequireRoles(domain.RoleAdmin, domain.RoleHR)

	projects := v1.Group("/projects")
	{
		projects.GET("", h.List)
		projects.GET("/:id", h.Get)
		projects.POST("", writers, h.Create)
		projects.PUT("/:id", writers, h.Update)
		projects.DELETE("/:id", writers, h.Delete)
		projects.PUT("/:id/members", writers, h.AssignMembers)
	}
}

func (h *Handler) List(c *gin.Context) {
	projects, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to list projects")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"projects": projects})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid project ID")
		return
	}

	project, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Project not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load project")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"project": project})
}

func (h *Handler) Create(c *gin.Context) {
	var req UpsertProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	project, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to create project")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"project": project})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid project ID")
		return
	}

	var req UpsertProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	project, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Project not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to update project")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"project": project})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid project ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Project not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to delete project")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Project deleted"})
}

func (h *Handler) AssignMembers(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid project ID")
		return
	}

	var req AssignMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	project, err := h.service.AssignMembers(c.Request.Context(), id, req.EmployeeIDs)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Project not found")
		case errors.Is(err, ErrUnknownEmployee):
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Assignment references an unknown employee")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to assign members")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"project": project})
}
