package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campus-webapps/internal/app"
	"campus-webapps/internal/session"
	"campus-webapps/internal/transport/http/middleware"
	"campus-webapps/internal/transport/http/response"
	"campus-webapps/internal/view"
)

const (
	msgUsernameExists     = "Username already exists"
	msgRegistrationFailed = "Registration failed"
	msgInvalidCredentials = "Invalid username or password"
	msgLoginFailed        = "Login failed"
	msgListUsersFailed    = "Failed to load users"
)

// AuthPaths are the absolute locations of the auth pages under a base path.
type AuthPaths struct {
	Home     string
	Register string
	Login    string
	Logout   string
	Me       string
}

func NewAuthPaths(base string) AuthPaths {
	return AuthPaths{
		Home:     base + "/",
		Register: base + "/register",
		Login:    base + "/login",
		Logout:   base + "/logout",
		Me:       base + "/me",
	}
}

type AuthHandler struct {
	pages
	authService *app.AuthService
	sessions    *session.Manager
	cookie      middleware.CookieConfig
	paths       AuthPaths
}

type AuthForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type userSummary struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewAuthHandler(
	authService *app.AuthService,
	sessions *session.Manager,
	cookie middleware.CookieConfig,
	paths AuthPaths,
	renderer view.Renderer,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		pages:       pages{renderer: renderer, logger: logger},
		authService: authService,
		sessions:    sessions,
		cookie:      cookie,
		paths:       paths,
	}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	h.render(c, http.StatusOK, view.PageRegister, view.RegisterPage{LoginPath: h.paths.Login})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form AuthForm
	_ = c.ShouldBind(&form)

	page := view.RegisterPage{
		Values:    view.AuthValues{Username: form.Username},
		LoginPath: h.paths.Login,
	}

	user, err := h.authService.Register(c.Request.Context(), app.RegisterInput{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		status := http.StatusBadRequest
		if v, ok := app.AsValidation(err); ok {
			page.Errors = v.Fields
		} else if errors.Is(err, app.ErrUsernameExists) {
			page.Errors = app.FieldErrors{app.FieldUsername: msgUsernameExists}
		} else {
			status = http.StatusInternalServerError
			h.logger.ErrorContext(c.Request.Context(), "register failed", "error", err)
			page.Errors = app.FieldErrors{app.FieldGeneral: msgRegistrationFailed}
		}
		h.render(c, status, view.PageRegister, page)
		return
	}

	if err := h.bindSession(c, user.ID); err != nil {
		// the account exists, the user only has to sign in again
		h.logger.ErrorContext(c.Request.Context(), "bind session after register failed",
			"user_id", user.ID, "error", err)
		response.Redirect(c, h.paths.Login)
		return
	}
	response.Redirect(c, h.paths.Home)
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	h.render(c, http.StatusOK, view.PageLogin, view.LoginPage{RegisterPath: h.paths.Register})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form AuthForm
	_ = c.ShouldBind(&form)

	page := view.LoginPage{
		Values:       view.AuthValues{Username: form.Username},
		RegisterPath: h.paths.Register,
	}

	user, err := h.authService.Login(c.Request.Context(), app.LoginInput{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		var status int
		switch v, ok := app.AsValidation(err); {
		case ok:
			status = http.StatusBadRequest
			page.Error = firstMessage(v.Fields, app.FieldUsername, app.FieldPassword)
		case errors.Is(err, app.ErrInvalidCredential):
			status = http.StatusUnauthorized
			page.Error = msgInvalidCredentials
		default:
			status = http.StatusInternalServerError
			h.logger.ErrorContext(c.Request.Context(), "login failed", "error", err)
			page.Error = msgLoginFailed
		}
		h.render(c, status, view.PageLogin, page)
		return
	}

	if err := h.bindSession(c, user.ID); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "bind session after login failed",
			"user_id", user.ID, "error", err)
		page.Error = msgLoginFailed
		h.render(c, http.StatusInternalServerError, view.PageLogin, page)
		return
	}
	response.Redirect(c, h.paths.Home)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	userID, _ := sess.UserID()

	if err := h.sessions.Destroy(c.Request.Context(), sess); err != nil {
		h.fail(c, http.StatusInternalServerError, response.MsgLogoutFailed, errors.Join(app.ErrSessionDestroy, err))
		return
	}
	middleware.ClearSession(c, h.cookie)
	h.authService.RecordLogout(c.Request.Context(), userID)
	response.Redirect(c, h.paths.Login)
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, msgListUsersFailed, err)
		return
	}

	out := make([]userSummary, 0, len(users))
	for _, u := range users {
		out = append(out, userSummary{Username: u.Username, CreatedAt: u.CreatedAt})
	}
	c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, _ := middleware.CurrentSession(c).UserID()

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, response.MsgInternal, err)
		return
	}
	if user == nil {
		response.Redirect(c, h.paths.Login)
		return
	}

	h.render(c, http.StatusOK, view.PageWelcome, view.WelcomePage{
		Username:   user.Username,
		LogoutPath: h.paths.Logout,
	})
}

func (h *AuthHandler) bindSession(c *gin.Context, userID uint) error {
	sess, token, err := h.sessions.Authenticate(c.Request.Context(), middleware.CurrentSession(c), userID)
	if err != nil {
		return err
	}
	middleware.SetSession(c, h.cookie, sess, token)
	return nil
}

func firstMessage(fields app.FieldErrors, order ...string) string {
	for _, name := range order {
		if msg, ok := fields[name]; ok {
			return msg
		}
	}
	for _, msg := range fields {
		return msg
	}
	return ""
}
