package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"bizdir/internal/jwt"
	"bizdir/internal/session"
)

const (
	SessionCookieName = "session"
	sessionContextKey = "session"
)

// CookieOptions controls how the session cookie is written
type CookieOptions struct {
	Secure bool
	MaxAge int // seconds, 0 for a browser-session cookie
}

// Sessions loads the client's session from its signed cookie and stores it in the context
func Sessions(manager *session.Manager, tokens *jwt.JWTService, opts CookieOptions, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		issue := func(token string) {
			cookie := &http.Cookie{
				Name:     SessionCookieName,
				Path:     "/",
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   opts.MaxAge,
			}
			if token == "" {
				cookie.MaxAge = -1
			} else {
				signed, err := tokens.GenerateToken(token)
				if err != nil {
					log.Error().Err(err).Msg("failed to sign session cookie")
					return
				}
				cookie.Value = signed
			}
			http.SetCookie(c.Writer, cookie)
		}

		var sessionID string
		if raw, err := c.Cookie(SessionCookieName); err == nil && raw != "" {
			// Forged or expired cookies fall back to an anonymous session
			if id, err := tokens.ValidateToken(raw); err == nil {
				sessionID = id
			}
		}

		sess, err := manager.Load(c.Request.Context(), sessionID, issue)
		if err != nil {
			log.Error().Err(err).Msg("failed to load session")
			sess, _ = manager.Load(c.Request.Context(), "", issue)
		}

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// GetSession returns the session loaded by Sessions
func GetSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionContextKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}
