package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"bizdir/internal/controllers"
	"bizdir/internal/jwt"
	"bizdir/internal/middleware"
	"bizdir/internal/service"
	"bizdir/internal/session"
	"bizdir/internal/web"
)

// Dependencies are the services and settings the router is built from
type Dependencies struct {
	AuthService        service.AuthService
	CatalogService     service.CatalogService
	Sessions           *session.Manager
	Tokens             *jwt.JWTService
	BaseURL            string
	CookieSecure       bool
	CORSAllowedOrigins []string
	Logger             zerolog.Logger
}

// NewRouter builds the gin engine with every page and API route
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	templates, err := web.Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(deps.Logger))
	router.SetHTMLTemplate(templates)

	authController := controllers.NewAuthController(deps.AuthService, deps.Logger)
	catalogController := controllers.NewCatalogController(deps.CatalogService, deps.Logger)
	pageController := controllers.NewPageController(deps.CatalogService, deps.Logger)
	qrcodeController := controllers.NewQRCodeController(deps.CatalogService, deps.BaseURL, deps.Logger)

	// Health check endpoint (no session)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// JSON API, stateless
	api := router.Group("/api")
	if len(deps.CORSAllowedOrigins) > 0 {
		api.Use(cors.New(cors.Config{
			AllowOrigins: deps.CORSAllowedOrigins,
			AllowMethods: []string{"GET", "OPTIONS"},
			AllowHeaders: []string{"Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}
	{
		api.GET("/categories", catalogController.ListCategories)
		api.GET("/businesses", catalogController.ListBusinesses)
		api.GET("/businesses/:id", catalogController.GetBusiness)
		api.GET("/businesses/:id/qrcode", qrcodeController.GenerateBusinessQRCode)
	}

	cookieOpts := middleware.CookieOptions{
		Secure: deps.CookieSecure,
		MaxAge: int(deps.Tokens.TTL().Seconds()),
	}

	// Server-rendered pages carry the session cookie
	pages := router.Group("")
	pages.Use(middleware.Sessions(deps.Sessions, deps.Tokens, cookieOpts, deps.Logger))
	{
		pages.GET("/", pageController.Index)
		pages.GET("/business/:id", pageController.BusinessDetails)

		pages.GET("/register", authController.RegisterForm)
		pages.POST("/register", authController.Register)
		pages.GET("/login", authController.LoginForm)
		pages.POST("/login", authController.Login)
		pages.GET("/logout", authController.Logout)

		pages.GET("/profile", middleware.LoginRequired(deps.Logger), authController.Profile)
	}

	return router, nil
}
