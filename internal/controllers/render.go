package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"bizdir/internal/middleware"
)

const genericErrorMessage = "An error occurred, please try again"

// renderPage renders an HTML page with the current user and any pending flash messages
func renderPage(c *gin.Context, log zerolog.Logger, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if sess := middleware.GetSession(c); sess != nil {
		data["User"] = sess.Current()

		flashes, err := sess.Flashes(c.Request.Context())
		if err != nil {
			log.Warn().Err(err).Msg("failed to read flash messages")
		}
		data["Flashes"] = flashes
	}

	c.HTML(status, page, data)
}

// flash queues a message on the client's session; failures are logged only
func flash(c *gin.Context, log zerolog.Logger, category, message string) {
	sess := middleware.GetSession(c)
	if sess == nil {
		return
	}
	if err := sess.AddFlash(c.Request.Context(), category, message); err != nil {
		log.Warn().Err(err).Msg("failed to store flash message")
	}
}
