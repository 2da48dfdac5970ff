package profile

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sidelines-app/sidelines/internal/middleware"
	"github.com/sidelines-app/sidelines/pkg/apperrors"
	"github.com/sidelines-app/sidelines/pkg/responses"
)

// ProfileController handles profile HTTP requests.
type ProfileController struct {
	repo ProfileRepository
}

// NewProfileController creates a new profile controller.
func NewProfileController(repo ProfileRepository) *ProfileController {
	return &ProfileController{repo: repo}
}

// GetMyProfile godoc
// @Summary Get own profile
// @Description Retrieves the authenticated user's profile.
// @Tags Profiles
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=Profile} "Profile"
// @Failure 404 {object} responses.ErrorResponse "Profile not found"
// @Security ApiKeyAuth
// @Router /profiles/me [get]
func (pc *ProfileController) GetMyProfile(c *gin.Context) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	p, err := pc.repo.GetByID(profileID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	if p == nil {
		responses.SendAppError(c, apperrors.NotFound("profile not found"))
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", p)
}

// GetProfile godoc
// @Summary Get a profile by ID
// @Description Retrieves a single profile by its ID.
// @Tags Profiles
// @Produce json
// @Param profile_id path uint true "Profile ID"
// @Success 200 {object} responses.SuccessResponse{data=Profile} "Profile"
// @Failure 404 {object} responses.ErrorResponse "Profile not found"
// @Security ApiKeyAuth
// @Router /profiles/{profile_id} [get]
func (pc *ProfileController) GetProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("profile_id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid profile ID")
		return
	}

	p, err := pc.repo.GetByID(uint(id))
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	if p == nil {
		responses.SendAppError(c, apperrors.NotFound("profile not found"))
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", p)
}

// SetupProfile godoc
// @Summary Complete profile setup
// @Description Sets the authenticated profile's playing positions and kit number and marks setup as complete.
// @Tags Profiles
// @Accept json
// @Produce json
// @Param setup body SetupRequest true "Positions and kit number"
// @Success 200 {object} responses.SuccessResponse{data=Profile} "Profile updated"
// @Failure 400 {object} responses.ErrorResponse "Invalid position or kit number"
// @Security ApiKeyAuth
// @Router /profiles/setup [put]
func (pc *ProfileController) SetupProfile(c *gin.Context) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	for _, pos := range req.Positions {
		if !ValidPosition(pos) {
			responses.SendAppError(c, apperrors.Validation("invalid position %q", pos))
			return
		}
	}

	p, err := pc.repo.GetByID(profileID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	if p == nil {
		responses.SendAppError(c, apperrors.NotFound("profile not found"))
		return
	}

	p.Positions = PositionList(req.Positions)
	p.KitNumber = req.KitNumber
	p.SetupComplete = true
	if err := pc.repo.Update(p); err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile setup completed successfully", p)
}

// UpdateRecords godoc
// @Summary Update career records
// @Description Updates the authenticated profile's goal and assist counters and increments the MVP count when flagged.
// @Tags Profiles
// @Accept json
// @Produce json
// @Param records body RecordsRequest true "Record counters"
// @Success 200 {object} responses.SuccessResponse{data=Profile} "Records updated"
// @Failure 400 {object} responses.ErrorResponse "Validation failed"
// @Security ApiKeyAuth
// @Router /profiles/records [put]
func (pc *ProfileController) UpdateRecords(c *gin.Context) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req RecordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	p, err := pc.repo.GetByID(profileID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	if p == nil {
		responses.SendAppError(c, apperrors.NotFound("profile not found"))
		return
	}

	p.Goals += req.Goals
	p.Assists += req.Assists
	if req.MVP {
		p.MVP++
	}
	if err := pc.repo.Update(p); err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Records updated successfully", p)
}

// SearchProfiles godoc
// @Summary Search profiles by username
// @Description Searches profiles whose username starts with the given prefix, case insensitive.
// @Tags Profiles
// @Produce json
// @Param username query string true "Username prefix"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 10, max 100)"
// @Success 200 {object} responses.PaginatedResponse{data=[]Profile} "Matching profiles"
// @Failure 400 {object} responses.ErrorResponse "Missing username prefix"
// @Security ApiKeyAuth
// @Router /profiles/search [get]
func (pc *ProfileController) SearchProfiles(c *gin.Context) {
	query := strings.TrimSpace(c.Query("username"))
	if query == "" {
		responses.SendError(c, http.StatusBadRequest, "Query parameter 'username' is required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	profiles, total, err := pc.repo.SearchByUsername(query, page, limit)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Profiles retrieved successfully", profiles, total, page, limit)
}
