package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/coursecoc/coursecoc-server/domain"
	"github.com/coursecoc/coursecoc-server/internal/rest/request"
	"github.com/coursecoc/coursecoc-server/internal/rest/response"
)

// CommentHandler serves the comment threads of courses and posts; the
// owner type is fixed per route group.
type CommentHandler struct {
	Service   domain.CommentUsecase
	OwnerType domain.OwnerType
}

func NewCommentHandler(svc domain.CommentUsecase, ownerType domain.OwnerType) *CommentHandler {
	return &CommentHandler{
		Service:   svc,
		OwnerType: ownerType,
	}
}

// FetchTree returns the owner's two-level comment tree.
func (h *CommentHandler) FetchTree(c *gin.Context) {
	ownerID, ok := paramID(c)
	if !ok {
		return
	}

	comments, err := h.Service.FetchTree(c.Request.Context(), h.OwnerType, ownerID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]*response.Comment, len(comments))
	for i := range comments {
		res[i] = response.NewCommentFromDomain(comments[i])
	}
	c.JSON(http.StatusOK, gin.H{"comments": res})
}

// Create adds a comment, or a reply when parent_id is set.
func (h *CommentHandler) Create(c *gin.Context) {
	ownerID, ok := paramID(c)
	if !ok {
		return
	}
	uid, ok := contextUserID(c)
	if !ok {
		return
	}

	var req request.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := req.ToDomain(h.OwnerType, ownerID, uid)
	if err := h.Service.Create(c.Request.Context(), &comment); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": response.NewCommentFromDomain(&comment)})
}

// Edit replaces the comment content. The comment must hang off the
// routed owner and belong to the caller.
func (h *CommentHandler) Edit(c *gin.Context) {
	ownerID, ok := paramID(c)
	if !ok {
		return
	}
	commentID, ok := paramCommentID(c)
	if !ok {
		return
	}
	uid, ok := contextUserID(c)
	if !ok {
		return
	}

	var req request.CommentEdit
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.Edit(c.Request.Context(), h.OwnerType, ownerID, commentID, uid, req.Content); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment updated successfully"})
}

// Delete removes the comment (and its replies, for a top-level comment).
func (h *CommentHandler) Delete(c *gin.Context) {
	ownerID, ok := paramID(c)
	if !ok {
		return
	}
	commentID, ok := paramCommentID(c)
	if !ok {
		return
	}
	uid, ok := contextUserID(c)
	if !ok {
		return
	}

	if err := h.Service.Delete(c.Request.Context(), h.OwnerType, ownerID, commentID, uid); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

func paramCommentID(c *gin.Context) (int64, bool) {
	idP, err := strconv.Atoi(c.Param("commentID"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return 0, false
	}
	return int64(idP), true
}
