package friend

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sidelines-app/sidelines/internal/middleware"
	"github.com/sidelines-app/sidelines/internal/request"
	"github.com/sidelines-app/sidelines/pkg/responses"
)

// FriendController handles friend-request and friendship HTTP requests.
type FriendController struct {
	service FriendService
}

// NewFriendController creates a new friend controller.
func NewFriendController(service FriendService) *FriendController {
	return &FriendController{service: service}
}

func actingProfileID(c *gin.Context) (uint, bool) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return 0, false
	}
	return profileID, true
}

// SendFriendRequest godoc
// @Summary Send a friend request
// @Description Sends a friend request from the authenticated profile to another profile.
// @Tags Friend Requests
// @Accept json
// @Produce json
// @Param request body CreateFriendRequest true "Recipient profile"
// @Success 201 {object} responses.SuccessResponse{data=FriendRequest} "Friend request sent"
// @Failure 400 {object} responses.ErrorResponse "Validation failed"
// @Failure 404 {object} responses.ErrorResponse "Recipient profile not found"
// @Security ApiKeyAuth
// @Router /friend-requests [post]
func (fc *FriendController) SendFriendRequest(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}

	var req CreateFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	created, err := fc.service.Create(profileID, req.ToProfileID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Friend request sent successfully", created)
}

// GetFriendRequests godoc
// @Summary Get friend requests or a single friend request
// @Description With a numeric selector returns that friend request; with 'sent' or 'received' lists the authenticated profile's pending requests, oldest first.
// @Tags Friend Requests
// @Produce json
// @Param selector path string true "Request ID, 'sent' or 'received'"
// @Success 200 {object} responses.SuccessResponse "Friend request(s)"
// @Failure 400 {object} responses.ErrorResponse "Invalid request type"
// @Failure 404 {object} responses.ErrorResponse "Friend request not found"
// @Security ApiKeyAuth
// @Router /friend-requests/{selector} [get]
func (fc *FriendController) GetFriendRequests(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}

	selector := c.Param("selector")
	if id, err := strconv.ParseUint(selector, 10, 32); err == nil {
		fr, err := fc.service.Get(uint(id))
		if err != nil {
			responses.SendAppError(c, err)
			return
		}
		responses.SendSuccess(c, http.StatusOK, "Friend request retrieved successfully", fr)
		return
	}

	direction, err := request.ParseDirection(selector)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	list, err := fc.service.List(profileID, direction)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Friend requests retrieved successfully", list)
}

// RespondToFriendRequest godoc
// @Summary Accept, ignore or withdraw a friend request
// @Description Accept/ignore are restricted to the recipient, withdraw to the sender. Any resolution removes the pending request.
// @Tags Friend Requests
// @Produce json
// @Param request_id path uint true "Friend request ID"
// @Param action path string true "Action: 'accept', 'ignore' or 'withdraw'"
// @Success 200 {object} responses.SuccessResponse "Request resolved"
// @Failure 400 {object} responses.ErrorResponse "Invalid action"
// @Failure 403 {object} responses.ErrorResponse "Not authorized for this action"
// @Failure 404 {object} responses.ErrorResponse "Friend request not found"
// @Security ApiKeyAuth
// @Router /friend-requests/{request_id}/{action} [put]
func (fc *FriendController) RespondToFriendRequest(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}

	requestID, err := strconv.ParseUint(c.Param("request_id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var done string
	switch c.Param("action") {
	case "accept":
		err = fc.service.Accept(uint(requestID), profileID)
		done = "accepted"
	case "ignore":
		err = fc.service.Ignore(uint(requestID), profileID)
		done = "ignored"
	case "withdraw":
		err = fc.service.Withdraw(uint(requestID), profileID)
		done = "withdrawn"
	default:
		responses.SendError(c, http.StatusBadRequest, "Invalid action. Must be 'accept', 'ignore' or 'withdraw'.")
		return
	}
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Friend request "+done, nil)
}

// WithdrawFriendRequest godoc
// @Summary Withdraw a friend request
// @Description Deletes a pending friend request sent by the authenticated profile.
// @Tags Friend Requests
// @Produce json
// @Param request_id path uint true "Friend request ID"
// @Success 204 "Friend request withdrawn"
// @Failure 403 {object} responses.ErrorResponse "Only the sender can withdraw"
// @Failure 404 {object} responses.ErrorResponse "Friend request not found"
// @Security ApiKeyAuth
// @Router /friend-requests/{request_id} [delete]
func (fc *FriendController) WithdrawFriendRequest(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}

	requestID, err := strconv.ParseUint(c.Param("request_id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	if err := fc.service.Withdraw(uint(requestID), profileID); err != nil {
		responses.SendAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetFriends godoc
// @Summary List friends
// @Description Lists all profiles the authenticated profile is friends with.
// @Tags Friends
// @Produce json
// @Success 200 {object} responses.SuccessResponse "Friends"
// @Security ApiKeyAuth
// @Router /friends [get]
func (fc *FriendController) GetFriends(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}

	friends, err := fc.service.ListFriends(profileID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Friends retrieved successfully", friends)
}

// Unfriend godoc
// @Summary Remove a friend
// @Description Removes the friendship edge between the authenticated profile and another profile.
// @Tags Friends
// @Produce json
// @Param profile_id path uint true "Profile ID to unfriend"
// @Success 204 "Friend removed"
// @Failure 400 {object} responses.ErrorResponse "Not your friend"
// @Security ApiKeyAuth
// @Router /friends/{profile_id} [delete]
func (fc *FriendController) Unfriend(c *gin.Context) {
	profileID, ok := actingProfileID(c)
	if !ok {
		return
	}

	otherID, err := strconv.ParseUint(c.Param("profile_id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid profile ID")
		return
	}

	if err := fc.service.Unfriend(profileID, uint(otherID)); err != nil {
		responses.SendAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
