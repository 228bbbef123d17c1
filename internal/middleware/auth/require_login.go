package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/session"
)

// SessionGuard resolves the session cookie into a user before the
// handler runs.
type SessionGuard struct {
	Sessions session.Store
}

// RequireLogin rejects requests without a live session. Per the API
// contract every auth failure is a 400 with the same message, so the
// response does not reveal whether the cookie was missing, expired or
// fabricated.
func (g *SessionGuard) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(session.CookieName)
		if err != nil {
			return c.JSON(http.StatusBadRequest, "User is not logged in.")
		}

		sess, err := g.Sessions.Get(c.Request().Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return c.JSON(http.StatusBadRequest, "User is not logged in.")
			}
			return c.JSON(http.StatusInternalServerError, "internal error")
		}

		setUserContext(c, sess)
		return next(c)
	}
}

func setUserContext(c echo.Context, sess *session.Session) {
	c.Set("userID", sess.UserID)
	c.Set("username", sess.Username)
}

// UserID returns the authenticated user's id placed in the context by
// RequireLogin.
func UserID(c echo.Context) (uint, error) {
	id, ok := c.Get("userID").(uint)
	if !ok {
		return 0, errors.New("no authenticated user in context")
	}
	return id, nil
}
