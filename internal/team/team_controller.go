package team

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sidelines-app/sidelines/internal/middleware"
	"github.com/sidelines-app/sidelines/internal/request"
	"github.com/sidelines-app/sidelines/pkg/responses"
)

// TeamController handles team, roster and team-invitation HTTP requests.
type TeamController struct {
	teams       TeamService
	invitations TeamInvitationService
}

// NewTeamController creates a new team controller.
func NewTeamController(teams TeamService, invitations TeamInvitationService) *TeamController {
	return &TeamController{teams: teams, invitations: invitations}
}

func actingProfileID(c *gin.Context) (uint, bool) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return 0, false
	}
	return profileID, true
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// CreateTeam godoc
// @Summary Create a team
// @Description Creates a team with the authenticated profile as its first member and admin.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team body CreateTeamRequest true "Team details"
// @Success 201 {object} responses.SuccessResponse{data=Team} "Team created"
// @Failure 400 {object} responses.ErrorResponse "Validation failed"
// @Security ApiKeyAuth
// @Router /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	team, err := tc.teams.Create(req.Name, profileID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Team created successfully", team)
}

// GetTeams godoc
// @Summary List teams
// @Description Retrieves a paginated list of teams.
// @Tags Teams
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 10, max 100)"
// @Success 200 {object} responses.PaginatedResponse{data=[]Team} "Teams"
// @Security ApiKeyAuth
// @Router /teams [get]
func (tc *TeamController) GetTeams(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	teams, total, err := tc.teams.List(page, limit)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Teams retrieved successfully", teams, total, page, limit)
}

// GetTeam godoc
// @Summary Get a team
// @Description Retrieves a single team by its ID.
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=Team} "Team"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Security ApiKeyAuth
// @Router /teams/{team_id} [get]
func (tc *TeamController) GetTeam(c *gin.Context) {
	teamID, ok := pathID(c, "team_id")
	if !ok {
		return
	}

	team, err := tc.teams.Get(teamID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team retrieved successfully", team)
}

// UpdateTeam godoc
// @Summary Update a team
// @Description Updates team details. Restricted to team admins.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param team body UpdateTeamRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Team} "Team updated"
// @Failure 403 {object} responses.ErrorResponse "Not a team admin"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Security ApiKeyAuth
// @Router /teams/{team_id} [put]
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}
	teamID, ok := pathID(c, "team_id")
	if !ok {
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	team, err := tc.teams.Update(teamID, profileID, &req)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team updated successfully", team)
}

// DeleteTeam godoc
// @Summary Delete a team
// @Description Deletes a team along with its roster and pending invitations. Restricted to team admins.
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 204 "Team deleted"
// @Failure 403 {object} responses.ErrorResponse "Not a team admin"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Security ApiKeyAuth
// @Router /teams/{team_id} [delete]
func (tc *TeamController) DeleteTeam(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}
	teamID, ok := pathID(c, "team_id")
	if !ok {
		return
	}

	if err := tc.teams.Delete(teamID, profileID); err != nil {
		responses.SendAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetTeamMembers godoc
// @Summary List team members
// @Description Lists the roster of a team, admins flagged. Pass admins=true to list only the admins.
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param admins query bool false "Only return admins"
// @Success 200 {object} responses.SuccessResponse{data=[]TeamMember} "Members"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/members [get]
func (tc *TeamController) GetTeamMembers(c *gin.Context) {
	teamID, ok := pathID(c, "team_id")
	if !ok {
		return
	}

	list := tc.teams.ListMembers
	if c.Query("admins") == "true" {
		list = tc.teams.ListAdmins
	}
	members, err := list(teamID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team members retrieved successfully", members)
}

// PromoteMember godoc
// @Summary Promote a member to admin
// @Description Grants admin rights to another member of the team. Restricted to team admins.
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param member_id path uint true "Profile ID of the member to promote"
// @Success 200 {object} responses.SuccessResponse "Member promoted"
// @Failure 400 {object} responses.ErrorResponse "Not a member of the team"
// @Failure 403 {object} responses.ErrorResponse "Not a team admin"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/promote/{member_id} [put]
func (tc *TeamController) PromoteMember(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}
	teamID, ok := pathID(c, "team_id")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "member_id")
	if !ok {
		return
	}

	if err := tc.teams.Promote(teamID, profileID, memberID); err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Member promoted to admin", nil)
}

// DemoteMember godoc
// @Summary Demote an admin to regular member
// @Description Revokes admin rights from another member of the team. Restricted to team admins.
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param member_id path uint true "Profile ID of the admin to demote"
// @Success 200 {object} responses.SuccessResponse "Member demoted"
// @Failure 400 {object} responses.ErrorResponse "Not an admin of the team"
// @Failure 403 {object} responses.ErrorResponse "Not a team admin"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/demote/{member_id} [put]
func (tc *TeamController) DemoteMember(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}
	teamID, ok := pathID(c, "team_id")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "member_id")
	if !ok {
		return
	}

	if err := tc.teams.Demote(teamID, profileID, memberID); err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Member demoted to regular member", nil)
}

// RemoveMember godoc
// @Summary Remove a member from a team
// @Description Removes another member from the roster. Restricted to team admins; self-removal goes through leave.
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param member_id path uint true "Profile ID of the member to remove"
// @Success 204 "Member removed"
// @Failure 400 {object} responses.ErrorResponse "Not a member of the team"
// @Failure 403 {object} responses.ErrorResponse "Not a team admin"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/remove/{member_id} [delete]
func (tc *TeamController) RemoveMember(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}
	teamID, ok := pathID(c, "team_id")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "member_id")
	if !ok {
		return
	}

	if err := tc.teams.RemoveMember(teamID, profileID, memberID); err != nil {
		responses.SendAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LeaveTeam godoc
// @Summary Leave a team
// @Description Removes the authenticated profile from the roster. The last admin must promote a replacement first unless they are the only member, in which case the team is deleted.
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 204 "Left the team"
// @Failure 400 {object} responses.ErrorResponse "Not a member of the team"
// @Failure 403 {object} responses.ErrorResponse "Sole admin with remaining members"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/leave [delete]
func (tc *TeamController) LeaveTeam(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}
	teamID, ok := pathID(c, "team_id")
	if !ok {
		return
	}

	if err := tc.teams.Leave(teamID, profileID); err != nil {
		responses.SendAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SendTeamInvitation godoc
// @Summary Send a team invitation
// @Description Invites a friend of the authenticated profile onto a team. Restricted to admins of that team.
// @Tags Team Invitations
// @Accept json
// @Produce json
// @Param invitation body CreateTeamInvitationRequest true "Invitation details"
// @Success 201 {object} responses.SuccessResponse{data=TeamInvitation} "Invitation sent"
// @Failure 400 {object} responses.ErrorResponse "Validation failed"
// @Failure 404 {object} responses.ErrorResponse "Team or recipient not found"
// @Security ApiKeyAuth
// @Router /team-invitations [post]
func (tc *TeamController) SendTeamInvitation(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}

	var req CreateTeamInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	inv, err := tc.invitations.Create(profileID, &req)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Team invitation sent successfully", inv)
}

// GetTeamInvitations godoc
// @Summary Get team invitations or a single team invitation
// @Description With a numeric selector returns that invitation; with 'sent' or 'received' lists the authenticated profile's pending invitations, oldest first.
// @Tags Team Invitations
// @Produce json
// @Param selector path string true "Invitation ID, 'sent' or 'received'"
// @Success 200 {object} responses.SuccessResponse "Invitation(s)"
// @Failure 400 {object} responses.ErrorResponse "Invalid request type"
// @Failure 404 {object} responses.ErrorResponse "Team invitation not found"
// @Security ApiKeyAuth
// @Router /team-invitations/{selector} [get]
func (tc *TeamController) GetTeamInvitations(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}

	selector := c.Param("selector")
	if id, err := strconv.ParseUint(selector, 10, 32); err == nil {
		inv, err := tc.invitations.Get(uint(id))
		if err != nil {
			responses.SendAppError(c, err)
			return
		}
		responses.SendSuccess(c, http.StatusOK, "Team invitation retrieved successfully", inv)
		return
	}

	direction, err := request.ParseDirection(selector)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	list, err := tc.invitations.List(profileID, direction)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team invitations retrieved successfully", list)
}

// RespondToTeamInvitation godoc
// @Summary Accept, ignore or withdraw a team invitation
// @Description Accept/ignore are restricted to the invited profile, withdraw to the sender or an admin of the inviting team. Accepting adds the recipient to the roster. Any resolution removes the pending invitation.
// @Tags Team Invitations
// @Produce json
// @Param request_id path uint true "Team invitation ID"
// @Param action path string true "Action: 'accept', 'ignore' or 'withdraw'"
// @Success 200 {object} responses.SuccessResponse "Invitation resolved"
// @Failure 400 {object} responses.ErrorResponse "Invalid action"
// @Failure 403 {object} responses.ErrorResponse "Not authorized for this action"
// @Failure 404 {object} responses.ErrorResponse "Team invitation not found"
// @Security ApiKeyAuth
// @Router /team-invitations/{request_id}/{action} [put]
func (tc *TeamController) RespondToTeamInvitation(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}
	requestID, ok := pathID(c, "request_id")
	if !ok {
		return
	}

	var err error
	var done string
	switch c.Param("action") {
	case "accept":
		err = tc.invitations.Accept(requestID, profileID)
		done = "accepted"
	case "ignore":
		err = tc.invitations.Ignore(requestID, profileID)
		done = "ignored"
	case "withdraw":
		err = tc.invitations.Withdraw(requestID, profileID)
		done = "withdrawn"
	default:
		responses.SendError(c, http.StatusBadRequest, "Invalid action. Must be 'accept', 'ignore' or 'withdraw'.")
		return
	}
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team invitation "+done, nil)
}

// WithdrawTeamInvitation godoc
// @Summary Withdraw a team invitation
// @Description Deletes a pending invitation sent by the authenticated profile or by a fellow admin of the team.
// @Tags Team Invitations
// @Produce json
// @Param request_id path uint true "Team invitation ID"
// @Success 204 "Team invitation withdrawn"
// @Failure 403 {object} responses.ErrorResponse "Not authorized to withdraw"
// @Failure 404 {object} responses.ErrorResponse "Team invitation not found"
// @Security ApiKeyAuth
// @Router /team-invitations/{request_id} [delete]
func (tc *TeamController) WithdrawTeamInvitation(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}
	requestID, ok := pathID(c, "request_id")
	if !ok {
		return
	}

	if err := tc.invitations.Withdraw(requestID, profileID); err != nil {
		responses.SendAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
