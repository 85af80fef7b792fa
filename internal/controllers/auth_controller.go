package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"bizdir/internal/middleware"
	"bizdir/internal/models"
	"bizdir/internal/service"
)

type AuthController struct {
	authService service.AuthService
	log         zerolog.Logger
}

func NewAuthController(authService service.AuthService, log zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		log:         log,
	}
}

// RegisterForm handles GET /register
func (ac *AuthController) RegisterForm(c *gin.Context) {
	renderPage(c, ac.log, http.StatusOK, "register.tmpl", gin.H{"Title": "Register"})
}

// Register handles POST /register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		ac.registerFailed(c, &service.ValidationError{Message: "All fields are required"})
		return
	}
	// A checkbox is only submitted when ticked
	_, req.IsBusinessOwner = c.GetPostForm("is_business_owner")

	response, err := ac.authService.Register(c.Request.Context(), &req)
	if err != nil {
		ac.registerFailed(c, err)
		return
	}

	flash(c, ac.log, "success", response.Message)
	c.Redirect(http.StatusFound, "/login")
}

func (ac *AuthController) registerFailed(c *gin.Context, err error) {
	flash(c, ac.log, "danger", ac.failureMessage(err))
	renderPage(c, ac.log, http.StatusOK, "register.tmpl", gin.H{"Title": "Register"})
}

// LoginForm handles GET /login
func (ac *AuthController) LoginForm(c *gin.Context) {
	renderPage(c, ac.log, http.StatusOK, "login.tmpl", gin.H{
		"Title": "Login",
		"Next":  c.Query("next"),
	})
}

// Login handles POST /login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		ac.loginFailed(c, &service.ValidationError{Message: "Both username and password are required"})
		return
	}

	identity, err := ac.authService.Login(c.Request.Context(), middleware.GetSession(c), &req)
	if err != nil {
		ac.loginFailed(c, err)
		return
	}

	flash(c, ac.log, "success", fmt.Sprintf("Welcome back, %s!", identity.Username))
	c.Redirect(http.StatusFound, safeRedirect(c.Query("next")))
}

func (ac *AuthController) loginFailed(c *gin.Context, err error) {
	flash(c, ac.log, "danger", ac.failureMessage(err))
	renderPage(c, ac.log, http.StatusOK, "login.tmpl", gin.H{
		"Title": "Login",
		"Next":  c.Query("next"),
	})
}

// Logout handles GET /logout
func (ac *AuthController) Logout(c *gin.Context) {
	ac.authService.Logout(c.Request.Context(), middleware.GetSession(c))

	flash(c, ac.log, "success", "You have been logged out successfully")
	c.Redirect(http.StatusFound, "/")
}

// Profile handles GET /profile. LoginRequired runs first.
func (ac *AuthController) Profile(c *gin.Context) {
	sess := middleware.GetSession(c)
	identity := sess.Current()

	user, err := ac.authService.Profile(c.Request.Context(), identity.UserID)
	if errors.Is(err, service.ErrUserNotFound) {
		// The account behind the session no longer exists
		ac.authService.Logout(c.Request.Context(), sess)
		c.Redirect(http.StatusFound, "/login")
		return
	}
	if err != nil {
		flash(c, ac.log, "danger", genericErrorMessage)
		c.Redirect(http.StatusFound, "/")
		return
	}

	renderPage(c, ac.log, http.StatusOK, "profile.tmpl", gin.H{
		"Title":   "Profile",
		"Profile": user,
	})
}

// failureMessage maps auth errors to the message shown on the form
func (ac *AuthController) failureMessage(err error) string {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.Is(err, service.ErrDuplicateUser):
		return "Username or email already exists"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid username or password"
	default:
		ac.log.Error().Err(err).Msg("auth request failed")
		return genericErrorMessage
	}
}

// safeRedirect only follows local paths so "next" cannot send users off-site
func safeRedirect(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") ||
		strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) {
		return "/"
	}
	return next
}
