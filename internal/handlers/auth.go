package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/hash"
	"github.com/Skotchmaster/marketplace/internal/logging"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/mykafka"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/session"
)

type AuthHandler struct {
	Repo     *repo.GormRepo
	Sessions session.Store
	Producer *mykafka.Producer
}

func CreateCookie(name string, value string, path string, exp_time time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp_time,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}

	return cookie
}

func (h *AuthHandler) publish(c echo.Context, topic, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req struct {
		FirstName       string `json:"firstName"`
		LastName        string `json:"lastName"`
		Username        string `json:"username"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, "Invalid user details.")
	}

	if req.FirstName == "" || req.LastName == "" || req.Username == "" ||
		req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return c.JSON(http.StatusBadRequest, "Invalid user details.")
	}
	if req.Password != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, "Invalid user details.")
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}

	// The unique indexes decide uniqueness; a lost race against a
	// concurrent signup surfaces here as ErrDuplicate.
	if err := h.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			l.Warn("register_duplicate", "status", 400, "username", req.Username)
			return c.JSON(http.StatusBadRequest, "Invalid user details.")
		}
		l.Error("register_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, "user_events", fmt.Sprint(user.ID), map[string]interface{}{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})

	l.Info("user registered", "userID", user.ID)
	return c.JSON(http.StatusOK, "User registered successfully.")
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, "Username and password are required.")
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, "Username and password are required.")
	}

	user, err := h.Repo.UserByUsername(ctx, req.Username)

	// Compare against a dummy hash when the user is missing so both
	// failure paths cost one bcrypt comparison and return the same
	// message.
	passwordHash := hash.DummyHash
	if err == nil {
		passwordHash = user.PasswordHash
	}
	ok := hash.CheckPassword(passwordHash, req.Password)

	if err != nil || !ok {
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			l.Error("login_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, "internal error")
		}
		l.Warn("login_rejected", "status", 400)
		return c.JSON(http.StatusBadRequest, "Invalid username or password.")
	}

	sess, err := h.Sessions.Create(ctx, user.ID, user.Username)
	if err != nil {
		l.Error("login_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	c.SetCookie(CreateCookie(session.CookieName, sess.Token, "/", time.Now().Add(h.Sessions.TTL())))

	h.publish(c, "user_events", fmt.Sprint(user.ID), map[string]interface{}{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})

	l.Info("user logged in", "userID", user.ID)
	return c.JSON(http.StatusOK, "Login successful.")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	cookie, err := c.Cookie(session.CookieName)
	if err != nil {
		return c.JSON(http.StatusBadRequest, "User is not logged in.")
	}

	if _, err := h.Sessions.Get(ctx, cookie.Value); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, "User is not logged in.")
		}
		l.Error("logout_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	if err := h.Sessions.Delete(ctx, cookie.Value); err != nil {
		l.Error("logout_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	expired := time.Now().Add(-1 * time.Hour)
	c.SetCookie(CreateCookie(session.CookieName, "", "/", expired))

	l.Info("user logged out")
	return c.JSON(http.StatusOK, "Logout successful.")
}
