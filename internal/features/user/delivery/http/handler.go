package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "user-admin-console/internal/common/errors"
	"user-admin-console/internal/common/logger"
	"user-admin-console/internal/common/validation"
	"user-admin-console/internal/features/session"
	"user-admin-console/internal/features/user/models"
	"user-admin-console/internal/features/user/service"
	"user-admin-console/internal/web"
)

const (
	controllerKey = "controller"
	sessionKey    = "session_id"
)

type createForm struct {
	FirstName string `form:"firstName"`
	LastName  string `form:"lastName"`
	Email     string `form:"email"`
	Password  string `form:"password"`
}

type filterForm struct {
	Search     string `form:"q"`
	ActiveOnly bool   `form:"activeOnly"`
	Sort       string `form:"sort"`
	Size       int    `form:"size" binding:"required"`
}

type UserHandler struct {
	sessions   session.Registry
	cookieName string
	cookieTTL  time.Duration
	now        func() time.Time
}

func NewUserHandler(sessions session.Registry, cookieName string, cookieTTL time.Duration) *UserHandler {
	return &UserHandler{
		sessions:   sessions,
		cookieName: cookieName,
		cookieTTL:  cookieTTL,
		now:        time.Now,
	}
}

func (h *UserHandler) RegisterRoutes(router gin.IRouter) {
	console := router.Group("/")
	console.Use(h.bindSession())
	{
		console.GET("/", h.page)
		console.GET("/state", h.state)

		console.POST("/users", h.create)
		console.POST("/users/:id/delete", h.requestDelete)
		console.POST("/filters", h.applyFilters)
		console.POST("/page/prev", h.changePage(service.Prev))
		console.POST("/page/next", h.changePage(service.Next))
		console.POST("/delete/confirm", h.confirmDelete)
		console.POST("/delete/cancel", h.cancelDelete)
		console.POST("/toast/dismiss", h.dismissToast)
		console.POST("/refresh", h.refresh)
	}
}

// bindSession resolves the session cookie to a controller, issuing a new
// session id when the browser has none.
func (h *UserHandler) bindSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(h.cookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(h.cookieName, id, int(h.cookieTTL.Seconds()), "/", "", false, true)

		ctrl, err := h.sessions.Get(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(sessionKey, id)
		c.Set(controllerKey, ctrl)
		c.Next()
	}
}

func controller(c *gin.Context) *service.Controller {
	return c.MustGet(controllerKey).(*service.Controller)
}

func (h *UserHandler) page(c *gin.Context) {
	c.HTML(http.StatusOK, web.PageTemplate, web.NewPage(controller(c).Snapshot(), h.now()))
}

// @Summary Console state
// @Description Returns the list view state bound to the session cookie, loading page 0 for a new session.
// @Tags console
// @Produce json
// @Success 200 {object} service.View
// @Failure 500 {object} map[string]interface{} "Session could not be loaded"
// @Router /state [get]
func (h *UserHandler) state(c *gin.Context) {
	c.JSON(http.StatusOK, controller(c).Snapshot())
}

func (h *UserHandler) create(c *gin.Context) {
	var form createForm
	if err := c.ShouldBind(&form); err != nil {
		h.reject(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid create form"))
		return
	}

	ctrl := controller(c)
	typed := service.CreateForm{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
	}

	firstName, err := validation.NormalizeName(form.FirstName, validation.MaxFirstNameLength, "firstName")
	if err != nil {
		ctrl.SetForm(typed)
		h.reject(c, apperrors.NewValidationError("firstName", err.Error()))
		return
	}
	lastName, err := validation.NormalizeName(form.LastName, validation.MaxLastNameLength, "lastName")
	if err != nil {
		ctrl.SetForm(typed)
		h.reject(c, apperrors.NewValidationError("lastName", err.Error()))
		return
	}
	email, err := validation.NormalizeEmail(form.Email)
	if err != nil {
		ctrl.SetForm(typed)
		h.reject(c, apperrors.NewValidationError("email", err.Error()))
		return
	}

	err = ctrl.Create(c.Request.Context(), service.CreateForm{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  form.Password,
	})
	if errors.Is(err, service.ErrCreateInProgress) {
		logger.Debug().Str("session", c.GetString(sessionKey)).Msg("Create ignored, another one is pending")
	}
	h.done(c)
}

func (h *UserHandler) applyFilters(c *gin.Context) {
	var form filterForm
	if err := c.ShouldBind(&form); err != nil {
		h.reject(c, apperrors.Wrap(err, apperrors.ErrCodeValidation, "Invalid filter form"))
		return
	}

	search, err := validation.NormalizeSearch(form.Search)
	if err != nil {
		h.reject(c, apperrors.NewValidationError("q", err.Error()))
		return
	}

	ctrl := controller(c)
	err = ctrl.SetFilters(service.Filters{
		Search:     search,
		ActiveOnly: form.ActiveOnly,
		Sort:       models.Sort(form.Sort),
		Size:       form.Size,
	})
	if err != nil {
		appErr, ok := apperrors.AsAppError(err)
		if !ok {
			appErr = apperrors.Wrap(err, apperrors.ErrCodeValidation, "Invalid filters")
		}
		h.reject(c, appErr)
		return
	}

	_ = ctrl.ApplyFilters(c.Request.Context())
	h.done(c)
}

func (h *UserHandler) changePage(dir service.Direction) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, _ = controller(c).ChangePage(c.Request.Context(), dir)
		h.done(c)
	}
}

func (h *UserHandler) requestDelete(c *gin.Context) {
	soft, err := strconv.ParseBool(c.DefaultQuery("soft", "true"))
	if err != nil {
		h.reject(c, apperrors.NewValidationError("soft", "must be true or false"))
		return
	}

	id := c.Param("id")
	if !controller(c).RequestDeleteByID(id, soft) {
		h.reject(c, apperrors.New(apperrors.ErrCodeNotFound, "User is not on the current page").WithDetail("id", id))
		return
	}
	h.done(c)
}

func (h *UserHandler) confirmDelete(c *gin.Context) {
	_ = controller(c).ConfirmDelete(c.Request.Context())
	h.done(c)
}

func (h *UserHandler) cancelDelete(c *gin.Context) {
	controller(c).CancelDelete()
	h.done(c)
}

func (h *UserHandler) dismissToast(c *gin.Context) {
	controller(c).DismissToast()
	h.done(c)
}

func (h *UserHandler) refresh(c *gin.Context) {
	_ = controller(c).Refresh(c.Request.Context())
	h.done(c)
}

// reject reports a bad submission as a red toast. The page stays as it was
// apart from the toast and any form values already recorded.
func (h *UserHandler) reject(c *gin.Context, err *apperrors.AppError) {
	logger.Debug().
		Str("session", c.GetString(sessionKey)).
		Str("code", string(err.Code)).
		Interface("details", err.Details).
		Err(err.Cause).
		Msg(err.Message)
	controller(c).Reject(err.Message)
	h.done(c)
}

// done saves the session and sends the browser back to the page. Outcomes of
// the action are already part of the controller state.
func (h *UserHandler) done(c *gin.Context) {
	id := c.GetString(sessionKey)
	if err := h.sessions.Save(c.Request.Context(), id, controller(c)); err != nil {
		logger.Warn().Err(err).Str("session", id).Msg("Session not saved")
	}
	c.Redirect(http.StatusSeeOther, "/")
}
