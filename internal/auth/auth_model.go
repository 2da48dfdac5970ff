package auth

// SignUpRequest creates a user account plus its blank profile.
type SignUpRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30" example:"jamie_10"`
	Email    string `json:"email" binding:"required,email" example:"jamie@example.com"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"password123"`
}

// SignInRequest authenticates by username or email.
type SignInRequest struct {
	LoginIdentifier string `json:"login_identifier" binding:"required" example:"jamie@example.com"` // Can be email or username
	Password        string `json:"password" binding:"required" example:"password123"`
}

// AuthResponse is returned on successful sign-up or sign-in.
type AuthResponse struct {
	Token     string `json:"token"`
	UserID    uint   `json:"user_id"`
	ProfileID uint   `json:"profile_id"`
}
