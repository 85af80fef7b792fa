package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// LoginRequired redirects anonymous clients to the login page, remembering where they were going
func LoginRequired(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess != nil && sess.Current() != nil {
			c.Next()
			return
		}

		if sess != nil {
			if err := sess.AddFlash(c.Request.Context(), "warning", "Please log in to access this page"); err != nil {
				log.Warn().Err(err).Msg("failed to store flash message")
			}
		}

		c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}
