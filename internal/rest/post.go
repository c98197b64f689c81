package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/coursecoc/coursecoc-server/domain"
	"github.com/coursecoc/coursecoc-server/internal/rest/request"
	"github.com/coursecoc/coursecoc-server/internal/rest/response"
)

// PostHandler represent the httphandler for community posts
type PostHandler struct {
	Service domain.PostUsecase
}

func NewPostHandler(svc domain.PostUsecase) *PostHandler {
	return &PostHandler{
		Service: svc,
	}
}

func (h *PostHandler) Fetch(c *gin.Context) {
	numS := c.Query("num")
	num, err := strconv.Atoi(numS)
	if err != nil || num < PageMinNum || num > PageMaxNum {
		num = DefaultPageNum
	}
	cursor := c.Query("cursor")

	listPost, nextCursor, err := h.Service.Fetch(c.Request.Context(), cursor, int64(num))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.Post, len(listPost))
	for i := range listPost {
		res[i] = response.NewPostFromDomain(&listPost[i])
	}
	c.Header(`X-cursor`, nextCursor)
	c.JSON(http.StatusOK, res)
}

func (h *PostHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	post, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewPostFromDomain(&post))
}

func (h *PostHandler) Store(c *gin.Context) {
	var req request.Post
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, ok := contextUserID(c)
	if !ok {
		return
	}
	post := req.ToDomain()
	post.Author.ID = uid

	if err := h.Service.Create(c.Request.Context(), &post); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewPostFromDomain(&post))
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	uid, ok := contextUserID(c)
	if !ok {
		return
	}

	var req request.Post
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := req.ToDomain()
	post.ID = id
	if err := h.Service.Update(c.Request.Context(), &post, uid); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewPostFromDomain(&post))
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	uid, ok := contextUserID(c)
	if !ok {
		return
	}

	if err := h.Service.Delete(c.Request.Context(), id, uid); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// SocialState reports the caller's like state.
func (h *PostHandler) SocialState(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	uid, ok := contextUserID(c)
	if !ok {
		return
	}

	liked, err := h.Service.IsLiked(c.Request.Context(), id, uid)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

func (h *PostHandler) ToggleLike(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	uid, ok := contextUserID(c)
	if !ok {
		return
	}

	liked, err := h.Service.ToggleLike(c.Request.Context(), id, uid)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}
