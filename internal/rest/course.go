package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/coursecoc/coursecoc-server/domain"
	"github.com/coursecoc/coursecoc-server/internal/rest/request"
	"github.com/coursecoc/coursecoc-server/internal/rest/response"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

const (
	DefaultPageNum = 10
	PageMinNum     = 5
	PageMaxNum     = 30
)

// CourseHandler represent the httphandler for courses
type CourseHandler struct {
	Service domain.CourseUsecase
}

func NewCourseHandler(svc domain.CourseUsecase) *CourseHandler {
	return &CourseHandler{
		Service: svc,
	}
}

// Fetch lists published courses newest-first; pass ?tag= to filter by tag.
func (h *CourseHandler) Fetch(c *gin.Context) {
	ctx := c.Request.Context()

	if tag := c.Query("tag"); tag != "" {
		listCourse, err := h.Service.FetchByTag(ctx, tag)
		if err != nil {
			c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
			return
		}
		c.JSON(http.StatusOK, coursesToResponse(listCourse))
		return
	}

	numS := c.Query("num")
	num, err := strconv.Atoi(numS)
	if err != nil || num < PageMinNum || num > PageMaxNum {
		num = DefaultPageNum
	}
	cursor := c.Query("cursor")

	listCourse, nextCursor, err := h.Service.Fetch(ctx, cursor, int64(num))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Header(`X-cursor`, nextCursor)
	c.JSON(http.StatusOK, coursesToResponse(listCourse))
}

// GetByID will get a course by given id, counting the view
func (h *CourseHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	course, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewCourseFromDomain(&course))
}

// FetchMine lists the authenticated user's courses, drafts included.
func (h *CourseHandler) FetchMine(c *gin.Context) {
	uid, ok := contextUserID(c)
	if !ok {
		return
	}

	listCourse, err := h.Service.FetchByUser(c.Request.Context(), uid)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, coursesToResponse(listCourse))
}

// Store publishes a course, or saves a draft when is_draft is set.
func (h *CourseHandler) Store(c *gin.Context) {
	var req request.Course
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, ok := contextUserID(c)
	if !ok {
		return
	}
	course := req.ToDomain()
	course.Author.ID = uid

	ctx := c.Request.Context()
	var err error
	if req.IsDraft {
		err = h.Service.SaveDraft(ctx, &course)
	} else {
		err = h.Service.Publish(ctx, &course)
	}
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewCourseFromDomain(&course))
}

// Update replaces a course after an authorship check.
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	uid, ok := contextUserID(c)
	if !ok {
		return
	}

	var req request.Course
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course := req.ToDomain()
	course.ID = id
	if err := h.Service.Update(c.Request.Context(), &course, uid); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewCourseFromDomain(&course))
}

// Delete removes a course and everything hanging off it.
func (h *CourseHandler) Delete(c *gin.Context) {
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

// ToggleLike flips the caller's like on the course.
func (h *CourseHandler) ToggleLike(c *gin.Context) {
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

// ToggleBookmark flips the caller's bookmark on the course.
func (h *CourseHandler) ToggleBookmark(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	uid, ok := contextUserID(c)
	if !ok {
		return
	}

	bookmarked, err := h.Service.ToggleBookmark(c.Request.Context(), id, uid)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": bookmarked})
}

// SocialState reports the caller's like and bookmark state, for the
// initial render of the course page.
func (h *CourseHandler) SocialState(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	uid, ok := contextUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	liked, err := h.Service.IsLiked(ctx, id, uid)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	bookmarked, err := h.Service.IsBookmarked(ctx, id, uid)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked, "bookmarked": bookmarked})
}

func coursesToResponse(listCourse []domain.Course) []response.Course {
	res := make([]response.Course, len(listCourse))
	for i := range listCourse {
		res[i] = response.NewCourseFromDomain(&listCourse[i])
	}
	return res
}

// paramID parses the :id route param, answering 404 on garbage.
func paramID(c *gin.Context) (int64, bool) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return 0, false
	}
	return int64(idP), true
}

// contextUserID reads the user id set by the auth middleware.
func contextUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, false
	}
	return userID.(int64), true
}

// getStatusCode will get the http status code for a usecase error
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	logrus.Error(err)
	switch {
	case domain.IsValidationError(err):
		return http.StatusBadRequest
	}
	switch err {
	case domain.ErrInternalServerError:
		return http.StatusInternalServerError
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrConflict:
		return http.StatusConflict
	case domain.ErrForbidden:
		return http.StatusForbidden
	case domain.ErrBadParamInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
