package auth

import (
	"errors"
	"net/http"

	"staffhub/internal/pkg/response"
	"staffhub/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
	cookies CookieConfig
}

// NewHandler creates a new auth handler with injected service
func NewHandler(service *Service, cookies CookieConfig) *Handler {
	return &Handler{
		service: service,
		cookies: cookies,
	}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/reset-password", h.ResetPassword)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.GET("/me", h.Me)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if fields := validator.Fields(err); fields != nil {
			response.ErrorWithFields(c, http.StatusBadRequest, response.CodeValidation, "Validation failed", fields)
			return
		}
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	user, linked, err := h.service.Register(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrRateLimited):
			response.Error(c, http.StatusTooManyRequests, response.CodeRateLimited, "Too many registration attempts, try again later")
		case errors.Is(err, ErrEmailAlreadyExists):
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
		case errors.Is(err, ErrEmployeeLinked):
			response.Error(c, http.StatusConflict, "EMPLOYEE_ALREADY_LINKED", "An account already exists for this employee")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to register")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user": gin.H{
			"id":          user.ID,
			"email":       user.Email,
			"role":        user.Role,
			"employee_id": user.EmployeeID,
		},
		"employee_linked": linked,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrRateLimited):
			response.Error(c, http.StatusTooManyRequests, response.CodeRateLimited, "Too many login attempts, try again later")
		case errors.Is(err, ErrAccountLocked):
			response.Error(c, http.StatusLocked, response.CodeLocked, "Account temporarily locked due to repeated failures")
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to login")
		}
		return
	}

	h.cookies.SetAuthCookies(c, result.AccessToken, result.RefreshToken)
	response.Success(c, http.StatusOK, gin.H{
		"user":         result.User,
		"access_token": result.AccessToken,
	})
}

func (h *Handler) Refresh(c *gin.Context) {
	refreshRaw, err := c.Cookie(RefreshCookieName)
	if err != nil || refreshRaw == "" {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Refresh token missing")
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), refreshRaw)
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenReuseDetected):
			h.cookies.ClearAuthCookies(c)
			response.Error(c, http.StatusForbidden, response.CodeTokenReuse, "Refresh token already used")
		case errors.Is(err, ErrInvalidRefreshToken), errors.Is(err, ErrUserNotFound):
			h.cookies.ClearAuthCookies(c)
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid refresh token")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to refresh session")
		}
		return
	}

	h.cookies.SetAuthCookies(c, result.AccessToken, result.RefreshToken)
	response.Success(c, http.StatusOK, gin.H{
		"user":         result.User,
		"access_token": result.AccessToken,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	refreshRaw, _ := c.Cookie(RefreshCookieName)
	if err := h.service.Logout(c.Request.Context(), refreshRaw); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to logout")
		return
	}

	h.cookies.ClearAuthCookies(c)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	if err := h.service.RequestPasswordReset(c.Request.Context(), req.Email, c.ClientIP()); err != nil {
		if errors.Is(err, ErrRateLimited) {
			response.Error(c, http.StatusTooManyRequests, response.CodeRateLimited, "Too many reset requests, try again later")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to process request")
		return
	}

	// Same body whether or not the email exists.
	response.Success(c, http.StatusOK, gin.H{"message": "If that email is registered, a reset link has been sent"})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if fields := validator.Fields(err); fields != nil {
			response.ErrorWithFields(c, http.StatusBadRequest, response.CodeValidation, "Validation failed", fields)
			return
		}
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	err := h.service.ResetPassword(c.Request.Context(), req.ID, req.Token, req.NewPassword)
	if err != nil {
		if errors.Is(err, ErrInvalidResetToken) {
			response.Error(c, http.StatusBadRequest, "INVALID_RESET_TOKEN", "Reset token is invalid or expired")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to reset password")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password updated"})
}

func (h *Handler) Me(c *gin.Context) {
	userIDAny, exists := c.Get("user_id")
	if !exists {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Unauthorized")
		return
	}
	userID := userIDAny.(int64)

	user, err := h.service.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "User not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":          user.ID,
			"email":       user.Email,
			"role":        user.Role,
			"employee_id": user.EmployeeID,
			"created_at":  user.CreatedAt.Format("2006-01-02"),
		},
	})
}
