package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// CookieName is the name of the session cookie issued to clients.
const CookieName = "connect.sid"

// sidKey is the cookie-session value under which the opaque server-side
// session identifier is stored.
const sidKey = "sid"

// EnsureSessionID returns the request's session identifier, minting and
// saving a fresh one when the cookie carries none. The identifier is owned
// by this transport layer; the core only ever receives it.
func EnsureSessionID(c echo.Context, maxAge int) (string, error) {
	sess := cookieSession(c)

	if sid, ok := sess.Values[sidKey].(string); ok && sid != "" {
		return sid, nil
	}

	sid := uuid.NewString()
	sess.Values[sidKey] = sid
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return "", err
	}
	return sid, nil
}

// CurrentSessionID returns the session identifier already present on the
// request, without minting one.
func CurrentSessionID(c echo.Context) (string, bool) {
	sess := cookieSession(c)
	sid, ok := sess.Values[sidKey].(string)
	return sid, ok && sid != ""
}

// ClearSession expires the session cookie so the client stops presenting
// the identifier. The server-side state is destroyed separately.
func ClearSession(c echo.Context) error {
	sess := cookieSession(c)
	sess.Values = map[interface{}]interface{}{}
	sess.Options = &sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true}
	return sess.Save(c.Request(), c.Response())
}

// cookieSession loads the request's cookie session. A cookie that fails to
// decode yields a fresh session rather than an error.
func cookieSession(c echo.Context) *sessions.Session {
	sess, _ := session.Get(CookieName, c)
	return sess
}
