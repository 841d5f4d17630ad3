package rest

import (
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NefariousNGGA/backend/internal/config"
	"github.com/NefariousNGGA/backend/internal/domain"
	"github.com/NefariousNGGA/backend/internal/present/rest/middleware"
	"github.com/NefariousNGGA/backend/internal/present/rest/presenter"
	"github.com/NefariousNGGA/backend/internal/service"
	"github.com/NefariousNGGA/backend/internal/usecase"
)

type Handler struct {
	config       config.Config
	identity     *usecase.IdentityUsecase
	post         *usecase.PostUsecase
	comment      *usecase.CommentUsecase
	reaction     *usecase.ReactionUsecase
	notification *usecase.NotificationUsecase
	submission   *usecase.SubmissionUsecase
	profile      *usecase.ProfileUsecase
	signal       *service.SignalService
}

// NewHandler wires the REST surface. signal may be nil, which disables the
// realtime socket.
func NewHandler(
	config config.Config,
	identity *usecase.IdentityUsecase,
	post *usecase.PostUsecase,
	comment *usecase.CommentUsecase,
	reaction *usecase.ReactionUsecase,
	notification *usecase.NotificationUsecase,
	submission *usecase.SubmissionUsecase,
	profile *usecase.ProfileUsecase,
	signal *service.SignalService,
) *Handler {
	return &Handler{
		config:       config,
		identity:     identity,
		post:         post,
		comment:      comment,
		reaction:     reaction,
		notification: notification,
		submission:   submission,
		profile:      profile,
		signal:       signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.handleHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/feed.xml", h.handleFeed)
	e.GET("/realtime", h.handleRealtime)

	api := e.Group("/api")

	api.POST("/users", h.handleIssue)
	api.GET("/users/me", h.handleMe)

	api.GET("/posts", h.handleListPosts)
	api.GET("/posts/:id", h.handleGetPost)
	api.POST("/posts/submit", h.handleSubmit)
	api.GET("/posts/admin/submissions", h.handleListSubmissions)
	api.POST("/posts/admin/submissions/:id/publish", h.handlePublish)

	api.POST("/comments", h.handleComment)
	api.GET("/comments/post/:post_id", h.handleListComments)

	api.POST("/reactions", h.handleReact)
	api.GET("/reactions/post/:post_id", h.handleReactions)

	api.GET("/notifications/me", h.handleNotifications)
	api.POST("/notifications/:id/read", h.handleSetRead(true))
	api.POST("/notifications/:id/unread", h.handleSetRead(false))

	api.GET("/profiles/:handle", h.handleProfile)
}

func (h *Handler) handleHealth(c echo.Context) error {
	return presenter.OK(c, echo.Map{"status": "ok"})
}

type issueRequest struct {
	Handle      string `json:"username"`
	DisplayName string `json:"display_name"`
}

func (h *Handler) handleIssue(c echo.Context) error {
	ctx := c.Request().Context()

	var req issueRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	issued, err := h.identity.Issue(ctx, req.Handle, req.DisplayName)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, issued)
}

func (h *Handler) handleMe(c echo.Context) error {
	requester := middleware.Requester(c.Request().Context())
	if requester == nil {
		return presenter.Unauthorized(c, "invalid token")
	}
	return presenter.OK(c, echo.Map{"user": requester})
}

func (h *Handler) handleListPosts(c echo.Context) error {
	posts, err := h.post.List(c.Request().Context())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, posts)
}

func (h *Handler) handleGetPost(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return presenter.BadRequestMessage(c, "invalid post id")
	}

	post, err := h.post.Get(c.Request().Context(), id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, post)
}

type submitRequest struct {
	Title    *string  `json:"title"`
	Body     string   `json:"content"`
	MoodTags []string `json:"mood_tags"`
}

func (h *Handler) handleSubmit(c echo.Context) error {
	ctx := c.Request().Context()

	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	submission, err := h.submission.Submit(ctx, middleware.Requester(ctx), req.Title, req.Body, req.MoodTags)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, echo.Map{
		"success":    true,
		"message":    "Thought submitted for review",
		"submission": submission,
	})
}

func (h *Handler) handleListSubmissions(c echo.Context) error {
	pending, err := h.submission.ListPending(c.Request().Context(), c.Request().Header.Get(domain.AdminTokenHeader))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, pending)
}

func (h *Handler) handlePublish(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return presenter.BadRequestMessage(c, "invalid submission id")
	}

	post, err := h.submission.Publish(c.Request().Context(), id, c.Request().Header.Get(domain.AdminTokenHeader))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{
		"success": true,
		"message": "Submission published",
		"post":    post,
	})
}

type commentRequest struct {
	PostID int64  `json:"post_id"`
	Body   string `json:"content"`
}

func (h *Handler) handleComment(c echo.Context) error {
	ctx := c.Request().Context()

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	result, err := h.comment.Create(ctx, middleware.Requester(ctx), req.PostID, req.Body)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, echo.Map{
		"success":       true,
		"comment_id":    result.CommentID,
		"created_at":    result.CreatedAt,
		"notifications": result.Notifications,
	})
}

func (h *Handler) handleListComments(c echo.Context) error {
	postID, ok := paramID(c, "post_id")
	if !ok {
		return presenter.BadRequestMessage(c, "invalid post id")
	}

	comments, err := h.comment.ListByPost(c.Request().Context(), postID)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, comments)
}

type reactRequest struct {
	PostID int64  `json:"post_id"`
	Emoji  string `json:"emoji"`
}

func (h *Handler) handleReact(c echo.Context) error {
	ctx := c.Request().Context()

	var req reactRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequestMessage(c, "invalid request body")
	}

	requester := middleware.Requester(ctx)
	if err := h.reaction.React(ctx, requester, req.PostID, req.Emoji); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"success": true})
}

func (h *Handler) handleReactions(c echo.Context) error {
	ctx := c.Request().Context()
	postID, ok := paramID(c, "post_id")
	if !ok {
		return presenter.BadRequestMessage(c, "invalid post id")
	}

	summary, err := h.reaction.Summary(ctx, postID, middleware.Requester(ctx))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{
		"counts":      summary.Counts,
		"my_reaction": summary.MyReaction,
	})
}

func (h *Handler) handleNotifications(c echo.Context) error {
	ctx := c.Request().Context()

	notifications, err := h.notification.ListMine(ctx, middleware.Requester(ctx))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, notifications)
}

func (h *Handler) handleSetRead(read bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id, ok := paramID(c, "id")
		if !ok {
			return presenter.BadRequestMessage(c, "invalid notification id")
		}

		if err := h.notification.SetRead(ctx, middleware.Requester(ctx), id, read); err != nil {
			return presenter.Error(c, err)
		}
		return presenter.OK(c, echo.Map{"success": true})
	}
}

func (h *Handler) handleProfile(c echo.Context) error {
	handle, err := url.PathUnescape(c.Param("handle"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid username")
	}

	profile, err := h.profile.Get(c.Request().Context(), handle)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, profile)
}

func paramID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
