package leave

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
	leaves := v1.Group("/leaves")
	{
		leaves.GET("", h.List)
		leaves.POST("", h.Apply)
		leaves.PATCH("/:id/approve", middleware.RequireRoles(domain.RoleAdmin, domain.RoleHR), h.Approve)
		leaves.PATCH("/:id/reject", middleware.RequireRoles(domain.RoleAdmin, domain.RoleHR), h.Reject)
	}
}

// List shows every request to ADMIN/HR and only the caller's own rows to
// employees.
func (h *Handler) List(c *gin.Context) {
	role := domain.UserRole(c.GetString("role"))
	if role == domain.RoleAdmin || role == domain.RoleHR {
		leaves, err := h.service.ListAll(c.Request.Context())
		if err != nil {
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to list leave requests")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"leaves": leaves})
		return
	}

	employeeID := c.GetInt64("employee_id")
	if employeeID == 0 {
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "No employee record linked to this account")
		return
	}
	leaves, err := h.service.ListMine(c.Request.Context(), employeeID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to list leave requests")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"leaves": leaves})
}

func (h *Handler) Apply(c *gin.Context) {
	employeeID := c.GetInt64("employee_id")
	if employeeID == 0 {
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "No employee record linked to this account")
		return
	}

	var req ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	l, err := h.service.Apply(c.Request.Context(), employeeID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) {
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Dates must be YYYY-MM-DD with from_date before to_date")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to file leave request")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"leave": l})
}

func (h *Handler) Approve(c *gin.Context) {
	h.decide(c, domain.LeaveApproved)
}

func (h *Handler) Reject(c *gin.Context) {
	h.decide(c, domain.LeaveRejected)
}

func (h *Handler) decide(c *gin.Context, status domain.LeaveStatus) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid leave ID")
		return
	}

	l, err := h.service.Decide(c.Request.Context(), id, status, c.GetInt64("user_id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Leave request not found")
		case errors.Is(err, ErrAlreadyDecided):
			response.Error(c, http.StatusConflict, "ALREADY_DECIDED", "Leave request was already decided")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to update leave request")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"leave": l})
}
