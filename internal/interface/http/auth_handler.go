package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todolist-api/config"
	"github.com/oksasatya/todolist-api/internal/application"
	"github.com/oksasatya/todolist-api/internal/interface/middleware"
	"github.com/oksasatya/todolist-api/pkg/helpers"
	"github.com/oksasatya/todolist-api/pkg/mailer"
	tpl "github.com/oksasatya/todolist-api/pkg/mailer/templates"
	"github.com/oksasatya/todolist-api/pkg/response"
	"github.com/oksasatya/todolist-api/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Lists   *application.TodoListService
	Logger  *logrus.Logger
	Cfg     *config.Config
	Pub     *helpers.RabbitPublisher
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, lists *application.TodoListService, logger *logrus.Logger, cfg *config.Config, pub *helpers.RabbitPublisher) *AuthHandler {
	return &AuthHandler{
		Svc:     svc,
		Lists:   lists,
		Logger:  logger,
		Cfg:     cfg,
		Pub:     pub,
		Cookies: helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
	}
}

type registerRequest struct {
	Name                 string `json:"name" binding:"required,max=255"`
	Email                string `json:"email" binding:"required,email,max=255"`
	Password             string `json:"password" binding:"required,pwd"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

// Register creates the account, logs the new user in and enqueues the
// welcome email. Non-sensitive input is echoed back on validation failure so
// the form can be redisplayed.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, pair, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		if fe, ok := application.AsFieldErrors(err); ok {
			response.ErrorWithData(c, http.StatusUnprocessableEntity, "invalid payload",
				map[string]string(fe), gin.H{"name": req.Name, "email": req.Email})
			return
		}
		renderServiceError(c, err)
		return
	}

	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	h.enqueueWelcome(c, u.Name, u.Email)

	response.Success(c, http.StatusCreated, gin.H{
		"redirect": "/todolists",
		"user":     userJSON(u),
	}, "Registration successful! Welcome to your To-Do List.", nil)
}

// Login authenticates and establishes a fresh session. On failure the error
// is attached to the email field and the email is preserved for redisplay;
// the password never is.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password, req.Remember)
	if err != nil {
		response.ErrorWithData(c, http.StatusUnauthorized, "invalid credentials",
			map[string]string{"email": "The provided credentials do not match our records."},
			gin.H{"email": req.Email})
		return
	}

	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{
		"redirect": "/todolists",
		"user":     userJSON(u),
	}, "Welcome back!", map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// Refresh rotates the session and token pair from the refresh cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, map[string]any{"refreshed": true}, "token refreshed", map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// Logout invalidates the server-side session and clears the cookie pair.
func (h *AuthHandler) Logout(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Logout(c.Request.Context(), uid); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Warn("session delete failed")
	}
	h.Cookies.Clear(c)
	response.Redirect(c, "/", "You have been logged out.")
}

// Home returns the caller's lists when authenticated, an anonymous landing
// payload otherwise.
func (h *AuthHandler) Home(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if uid == "" {
		response.Success(c, http.StatusOK, gin.H{"user": nil}, "welcome", nil)
		return
	}

	u, err := h.Svc.GetProfile(uid)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	lists, err := h.Lists.ListForOwner(c.Request.Context(), uid)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	payload := userJSON(u)
	payload["todolists"] = todoListsJSON(lists)
	response.Success(c, http.StatusOK, gin.H{"user": payload}, "welcome", nil)
}

func (h *AuthHandler) enqueueWelcome(c *gin.Context, name, email string) {
	if h.Pub == nil || h.Cfg == nil || !h.Cfg.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       email,
		Template: tpl.Welcome,
		Data: map[string]any{
			"AppName": h.Cfg.AppName,
			"Name":    name,
			"Email":   email,
		},
	}
	if err := h.Pub.PublishJSON(c.Request.Context(), job); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("email", email).Warn("failed to enqueue welcome email")
	}
}
