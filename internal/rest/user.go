package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursecoc/coursecoc-server/domain"
	"github.com/coursecoc/coursecoc-server/internal/rest/request"
	"github.com/coursecoc/coursecoc-server/internal/rest/response"
)

// UserHandler represent the httphandler for accounts and profiles
type UserHandler struct {
	Service domain.UserUsecase
}

func NewUserHandler(svc domain.UserUsecase) *UserHandler {
	return &UserHandler{
		Service: svc,
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req request.Register
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.Register(c.Request.Context(), req.Email, req.Nickname, req.Password); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Registered successfully"})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req request.Login
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// don't leak which of the two was wrong
		c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid email or password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c *gin.Context) {
	uid, ok := contextUserID(c)
	if !ok {
		return
	}

	u, err := h.Service.Get(c.Request.Context(), uid)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewUserFromDomain(&u))
}

// UpdateProfile merges profile edits for the authenticated user.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid, ok := contextUserID(c)
	if !ok {
		return
	}

	var req request.ProfileEdit
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u := req.ToDomain(uid)
	if err := h.Service.UpdateProfile(c.Request.Context(), &u); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}
