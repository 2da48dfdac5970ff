package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sidelines-app/sidelines/config"
	"github.com/sidelines-app/sidelines/internal/middleware"
	"github.com/sidelines-app/sidelines/internal/profile"
	"github.com/sidelines-app/sidelines/internal/user"
	"github.com/sidelines-app/sidelines/pkg/hash"
	"github.com/sidelines-app/sidelines/pkg/responses"
	"github.com/sidelines-app/sidelines/pkg/token"
)

// AuthController handles account creation and credential checks. All social
// behavior lives elsewhere and only ever sees the authenticated profile id.
type AuthController struct {
	repo      AuthRepository
	appConfig *config.Config
}

func NewAuthController(repo AuthRepository, appConfig *config.Config) *AuthController {
	return &AuthController{repo: repo, appConfig: appConfig}
}

// SignUp godoc
// @Summary Register a new user
// @Description Creates a user account together with its blank profile and returns a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body SignUpRequest true "Registration details"
// @Success 201 {object} responses.SuccessResponse{data=AuthResponse} "Account created"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 409 {object} responses.ErrorResponse "Username or email already taken"
// @Router /auth/signup [post]
func (ac *AuthController) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if existing, err := ac.repo.GetUserByUsername(req.Username); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to check username: "+err.Error())
		return
	} else if existing != nil {
		responses.SendError(c, http.StatusConflict, "User with this username already exists")
		return
	}
	if existing, err := ac.repo.GetUserByEmail(req.Email); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to check email: "+err.Error())
		return
	} else if existing != nil {
		responses.SendError(c, http.StatusConflict, "User with this email already exists")
		return
	}

	hashed, err := hash.Password(req.Password)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Error hashing password")
		return
	}

	newUser := &user.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
	}
	newProfile := &profile.Profile{
		Positions: profile.PositionList{profile.PositionAny},
	}
	if err := ac.repo.CreateUserWithProfile(newUser, newProfile); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to create account: "+err.Error())
		return
	}

	jwt, err := token.GenerateJWT(newUser.ID, ac.appConfig.JWT.AccessTokenSecret, ac.appConfig.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Token generation failed")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Account created successfully", AuthResponse{
		Token:     jwt,
		UserID:    newUser.ID,
		ProfileID: newProfile.ID,
	})
}

// SignIn godoc
// @Summary Sign in
// @Description Authenticates by username or email and returns a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body SignInRequest true "Credentials"
// @Success 200 {object} responses.SuccessResponse{data=AuthResponse} "Signed in"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Invalid credentials"
// @Router /auth/signin [post]
func (ac *AuthController) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	var u *user.User
	var err error
	if strings.Contains(req.LoginIdentifier, "@") {
		u, err = ac.repo.GetUserByEmail(req.LoginIdentifier)
	} else {
		u, err = ac.repo.GetUserByUsername(req.LoginIdentifier)
	}
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to look up user: "+err.Error())
		return
	}
	if u == nil || !hash.Check(u.Password, req.Password) {
		responses.SendError(c, http.StatusUnauthorized, "Invalid username/email or password")
		return
	}

	p, err := ac.repo.GetProfileByUserID(u.ID)
	if err != nil || p == nil {
		responses.SendError(c, http.StatusInternalServerError, "Profile lookup failed")
		return
	}

	jwt, err := token.GenerateJWT(u.ID, ac.appConfig.JWT.AccessTokenSecret, ac.appConfig.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Token generation failed")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Signed in successfully", AuthResponse{
		Token:     jwt,
		UserID:    u.ID,
		ProfileID: p.ID,
	})
}

// VerifyToken godoc
// @Summary Verify the current token
// @Description Confirms the bearer token is valid and returns the authenticated account.
// @Tags Auth
// @Produce json
// @Success 200 {object} responses.SuccessResponse "Token is valid"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /auth/verify [get]
func (ac *AuthController) VerifyToken(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	u, err := ac.repo.GetUserByID(userID)
	if err != nil || u == nil {
		responses.SendError(c, http.StatusUnauthorized, "User not found")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Token is valid", gin.H{
		"user_id":    userID,
		"profile_id": profileID,
		"username":   u.Username,
		"email":      u.Email,
	})
}
