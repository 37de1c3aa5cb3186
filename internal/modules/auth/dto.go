package auth

import "staffhub/internal/domain"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=ADMIN HR EMPLOYEE"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	ID          int64  `json:"id" binding:"required"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// UserClaims is the identity payload returned to clients and embedded in
// tokens. Always derived fresh from the user row, never mutated.
type UserClaims struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	EmployeeID *int64 `json:"employee_id,omitempty"`
}

func ClaimsFromUser(u *domain.User) UserClaims {
	return UserClaims{
		ID:         u.ID,
		Email:      u.Email,
		Role:       string(u.Role),
		EmployeeID: u.EmployeeID,
	}
}

type LoginResult struct {
	User         UserClaims
	AccessToken  string
	RefreshToken string
}

type RefreshResult struct {
	User         UserClaims
	AccessToken  string
	RefreshToken string
}
