package handler

import (
	"net/http"

	user "auctionary/internal/userService"
	"auctionary/services/auction/helpers"
	"auctionary/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service       UserServiceInterface
	sessionHeader string
}

func NewUserHandler(service UserServiceInterface, sessionHeader string) *UserHandler {
	return &UserHandler{service: service, sessionHeader: sessionHeader}
}

// RegisterHandler handles POST /users
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req helpers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	userID, err := h.service.Register(c.Request.Context(), user.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		helpers.RespondError(c, "RegisterHandler", "failed to register user", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.UserCreatedResponse{UserID: userID})
	helpers.LogSuccess("RegisterHandler", "user registered", map[string]any{"user_id": userID})
}

// LoginHandler handles POST /login
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		helpers.RespondError(c, "LoginHandler", "login failed", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, session)
	helpers.LogSuccess("LoginHandler", "user logged in", map[string]any{"user_id": session.UserID})
}

// LogoutHandler handles POST /logout
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	token := c.GetHeader(h.sessionHeader)

	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		helpers.RespondError(c, "LogoutHandler", "logout failed", err, nil)
		return
	}

	utils.JSONMessage(c, http.StatusOK, "Logged out successfully!")
	helpers.LogSuccess("LogoutHandler", "user logged out", nil)
}

// GetProfileHandler handles GET /users/:user_id
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	userID, ok := helpers.ParseID(c, "user_id")
	if !ok {
		utils.JSONError(c, http.StatusNotFound, nil, "User not found!")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		helpers.RespondError(c, "GetProfileHandler", "failed to load profile", err, map[string]any{"user_id": userID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, profile)
	helpers.LogSuccess("GetProfileHandler", "profile retrieved", map[string]any{
		"user_id":        userID,
		"selling":        len(profile.Selling),
		"bidding_on":     len(profile.BiddingOn),
		"auctions_ended": len(profile.AuctionsEnded),
	})
}
