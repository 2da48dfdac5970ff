package match

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sidelines-app/sidelines/internal/middleware"
	"github.com/sidelines-app/sidelines/internal/request"
	"github.com/sidelines-app/sidelines/pkg/responses"
)

// MatchController handles match and match-invitation HTTP requests.
type MatchController struct {
	matches     MatchService
	invitations MatchInvitationService
}

// NewMatchController creates a new match controller.
func NewMatchController(matches MatchService, invitations MatchInvitationService) *MatchController {
	return &MatchController{matches: matches, invitations: invitations}
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

// SendMatchInvitation godoc
// @Summary Challenge another team to a match
// @Description Sends a match invitation from one team to another. Restricted to admins of the challenging team.
// @Tags Match Invitations
// @Accept json
// @Produce json
// @Param invitation body CreateMatchInvitationRequest true "Invitation details"
// @Success 201 {object} responses.SuccessResponse{data=MatchInvitation} "Invitation sent"
// @Failure 400 {object} responses.ErrorResponse "Validation failed"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Security ApiKeyAuth
// @Router /match-invitations [post]
func (mc *MatchController) SendMatchInvitation(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}

	var req CreateMatchInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	inv, err := mc.invitations.Create(profileID, &req)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Match invitation sent successfully", inv)
}

// GetMatchInvitations godoc
// @Summary Get match invitations or a single match invitation
// @Description With a numeric selector returns that invitation; with 'sent' or 'received' lists pending invitations for teams the authenticated profile administers, oldest first.
// @Tags Match Invitations
// @Produce json
// @Param selector path string true "Invitation ID, 'sent' or 'received'"
// @Success 200 {object} responses.SuccessResponse "Invitation(s)"
// @Failure 400 {object} responses.ErrorResponse "Invalid request type"
// @Failure 404 {object} responses.ErrorResponse "Match invitation not found"
// @Security ApiKeyAuth
// @Router /match-invitations/{selector} [get]
func (mc *MatchController) GetMatchInvitations(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}

	selector := c.Param("selector")
	if id, err := strconv.ParseUint(selector, 10, 32); err == nil {
		inv, err := mc.invitations.Get(uint(id))
		if err != nil {
			responses.SendAppError(c, err)
			return
		}
		responses.SendSuccess(c, http.StatusOK, "Match invitation retrieved successfully", inv)
		return
	}

	direction, err := request.ParseDirection(selector)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	list, err := mc.invitations.List(profileID, direction)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match invitations retrieved successfully", list)
}

// RespondToMatchInvitation godoc
// @Summary Accept, ignore or withdraw a match invitation
// @Description Accept/ignore are restricted to admins of the challenged team, withdraw to admins of the challenging team. Accepting creates the match. Any resolution removes the pending invitation.
// @Tags Match Invitations
// @Produce json
// @Param request_id path uint true "Match invitation ID"
// @Param action path string true "Action: 'accept', 'ignore' or 'withdraw'"
// @Success 200 {object} responses.SuccessResponse "Invitation resolved"
// @Failure 400 {object} responses.ErrorResponse "Invalid action"
// @Failure 403 {object} responses.ErrorResponse "Not authorized for this action"
// @Failure 404 {object} responses.ErrorResponse "Match invitation not found"
// @Security ApiKeyAuth
// @Router /match-invitations/{request_id}/{action} [put]
func (mc *MatchController) RespondToMatchInvitation(c *gin.Context) {
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
		err = mc.invitations.Accept(requestID, profileID)
		done = "accepted"
	case "ignore":
		err = mc.invitations.Ignore(requestID, profileID)
		done = "ignored"
	case "withdraw":
		err = mc.invitations.Withdraw(requestID, profileID)
		done = "withdrawn"
	default:
		responses.SendError(c, http.StatusBadRequest, "Invalid action. Must be 'accept', 'ignore' or 'withdraw'.")
		return
	}
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match invitation "+done, nil)
}

// WithdrawMatchInvitation godoc
// @Summary Withdraw a match invitation
// @Description Deletes a pending invitation sent by a team the authenticated profile administers.
// @Tags Match Invitations
// @Produce json
// @Param request_id path uint true "Match invitation ID"
// @Success 204 "Match invitation withdrawn"
// @Failure 403 {object} responses.ErrorResponse "Not an admin of the challenging team"
// @Failure 404 {object} responses.ErrorResponse "Match invitation not found"
// @Security ApiKeyAuth
// @Router /match-invitations/{request_id} [delete]
func (mc *MatchController) WithdrawMatchInvitation(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}
	requestID, ok := pathID(c, "request_id")
	if !ok {
		return
	}

	if err := mc.invitations.Withdraw(requestID, profileID); err != nil {
		responses.SendAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetMatches godoc
// @Summary List matches
// @Description Retrieves a paginated list of matches ordered by kickoff time.
// @Tags Matches
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 10, max 100)"
// @Success 200 {object} responses.PaginatedResponse{data=[]Match} "Matches"
// @Security ApiKeyAuth
// @Router /matches [get]
func (mc *MatchController) GetMatches(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	matches, total, err := mc.matches.List(page, limit)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Matches retrieved successfully", matches, total, page, limit)
}

// GetMatch godoc
// @Summary Get a match
// @Description Retrieves a single match by its ID.
// @Tags Matches
// @Produce json
// @Param match_id path uint true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=Match} "Match"
// @Failure 404 {object} responses.ErrorResponse "Match not found"
// @Security ApiKeyAuth
// @Router /matches/{match_id} [get]
func (mc *MatchController) GetMatch(c *gin.Context) {
	matchID, ok := pathID(c, "match_id")
	if !ok {
		return
	}

	m, err := mc.matches.Get(matchID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match retrieved successfully", m)
}

// CastVote godoc
// @Summary Vote on a match
// @Description Records the authenticated profile's availability for a match. Voting again overwrites the previous response.
// @Tags Matches
// @Accept json
// @Produce json
// @Param match_id path uint true "Match ID"
// @Param vote body CastVoteRequest true "Vote"
// @Success 200 {object} responses.SuccessResponse{data=MatchVote} "Vote recorded"
// @Failure 400 {object} responses.ErrorResponse "Invalid vote response"
// @Failure 404 {object} responses.ErrorResponse "Match not found"
// @Security ApiKeyAuth
// @Router /matches/{match_id}/vote [post]
func (mc *MatchController) CastVote(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}
	matchID, ok := pathID(c, "match_id")
	if !ok {
		return
	}

	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	vote, err := mc.matches.CastVote(matchID, profileID, req.Response)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Vote recorded successfully", vote)
}

// GetVotes godoc
// @Summary List votes for a match
// @Description Lists all availability votes cast on a match.
// @Tags Matches
// @Produce json
// @Param match_id path uint true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=[]MatchVote} "Votes"
// @Failure 404 {object} responses.ErrorResponse "Match not found"
// @Security ApiKeyAuth
// @Router /matches/{match_id}/votes [get]
func (mc *MatchController) GetVotes(c *gin.Context) {
	matchID, ok := pathID(c, "match_id")
	if !ok {
		return
	}

	votes, err := mc.matches.ListVotes(matchID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Votes retrieved successfully", votes)
}

// RecordStats godoc
// @Summary Record a team's stat line for a match
// @Description Stores or overwrites one team's stats for a match. Restricted to admins of that team; the team must have played the match.
// @Tags Matches
// @Accept json
// @Produce json
// @Param match_id path uint true "Match ID"
// @Param stats body RecordStatsRequest true "Stat line"
// @Success 200 {object} responses.SuccessResponse{data=MatchStats} "Stats recorded"
// @Failure 400 {object} responses.ErrorResponse "Team did not play in the match"
// @Failure 403 {object} responses.ErrorResponse "Not a team admin"
// @Failure 404 {object} responses.ErrorResponse "Match not found"
// @Security ApiKeyAuth
// @Router /matches/{match_id}/stats [post]
func (mc *MatchController) RecordStats(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}
	matchID, ok := pathID(c, "match_id")
	if !ok {
		return
	}

	var req RecordStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	stats, err := mc.matches.RecordStats(matchID, profileID, &req)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match stats recorded successfully", stats)
}

// GetStats godoc
// @Summary List stat lines for a match
// @Description Lists the recorded stat lines of both teams for a match.
// @Tags Matches
// @Produce json
// @Param match_id path uint true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=[]MatchStats} "Stat lines"
// @Failure 404 {object} responses.ErrorResponse "Match not found"
// @Security ApiKeyAuth
// @Router /matches/{match_id}/stats [get]
func (mc *MatchController) GetStats(c *gin.Context) {
	matchID, ok := pathID(c, "match_id")
	if !ok {
		return
	}

	stats, err := mc.matches.ListStats(matchID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match stats retrieved successfully", stats)
}
