package attendance

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"staffhub/internal/domain"
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
	attendance := v1.Group("/attendance")
	{
		attendance.POST("/check-in", h.CheckIn)
		attendance.POST("/check-out", h.CheckOut)
		attendance.GET("/stats", h.Stats)
	}
}

func (h *Handler) CheckIn(c *gin.Context) {
	employeeID := c.GetInt64("employee_id")
	if employeeID == 0 {
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "No employee record linked to this account")
		return
	}

	a, err := h.service.CheckIn(c.Request.Context(), employeeID)
	if err != nil {
		if errors.Is(err, ErrAlreadyCheckedIn) {
			response.Error(c, http.StatusConflict, "ALREADY_CHECKED_IN", "Already checked in today")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to check in")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"attendance": a})
}

func (h *Handler) CheckOut(c *gin.Context) {
	employeeID := c.GetInt64("employee_id")
	if employeeID == 0 {
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "No employee record linked to this account")
		return
	}

	a, err := h.service.CheckOut(c.Request.Context(), employeeID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotCheckedIn):
			response.Error(c, http.StatusConflict, "NOT_CHECKED_IN", "No check-in recorded today")
		case errors.Is(err, ErrAlreadyCheckedOut):
			response.Error(c, http.StatusConflict, "ALREADY_CHECKED_OUT", "Already checked out today")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to check out")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"attendance": a})
}

// Stats defaults to the caller's own record for the current month. ADMIN/HR
// may pass employee_id to inspect someone else.
func (h *Handler) Stats(c *gin.Context) {
	employeeID := c.GetInt64("employee_id")

	role := domain.UserRole(c.GetString("role"))
	if other := c.Query("employee_id"); other != "" && (role == domain.RoleAdmin || role == domain.RoleHR) {
		if parsed, err := strconv.ParseInt(other, 10, 64); err == nil {
			employeeID = parsed
		}
	}
	if employeeID == 0 {
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "No employee record linked to this account")
		return
	}

	now := time.Now().UTC()
	year, month := now.Year(), now.Month()
	if m := c.Query("month"); m != "" {
		if parsed, err := time.Parse("2006-01", m); err == nil {
			year, month = parsed.Year(), parsed.Month()
		}
	}

	stats, err := h.service.Stats(c.Request.Context(), employeeID, year, month)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to compute stats")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}
