package auth

import "github.com/teamkick/teamkick/internal/user"

type RegisterRequest struct {
	Username     string `json:"username" binding:"required,min=3,max=50"`
	Password     string `json:"password" binding:"required,min=8"`
	FullName     string `json:"full_name" binding:"required,max=100"`
	Email        string `json:"email" binding:"omitempty,email"`
	Position     string `json:"position"`
	JerseyNumber int    `json:"jersey_number" binding:"omitempty,gte=0,lte=99"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type UpdateProfileRequest struct {
	FullName     *string `json:"full_name" binding:"omitempty,max=100"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Position     *string `json:"position"`
	JerseyNumber *int    `json:"jersey_number" binding:"omitempty,gte=0,lte=99"`
}

// AuthResponse is returned from register/login/refresh.
type AuthResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	User         *user.User `json:"user"`
}
