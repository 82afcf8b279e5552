package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"

	"github.com/vaxcare/vaxcare-backend/internal/auth"
	"github.com/vaxcare/vaxcare-backend/internal/health"
	"github.com/vaxcare/vaxcare-backend/internal/transport/http/handler"
	"github.com/vaxcare/vaxcare-backend/internal/transport/http/middleware"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Profile      *handler.ProfileHandler
	Child        *handler.ChildHandler
	Vaccine      *handler.VaccineHandler
	Drive        *handler.DriveHandler
	Notification *handler.NotificationHandler
}

func NewRouter(logger *slog.Logger, tokens *auth.TokenService, h Handlers, checker *health.Checker) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, checker.Liveness(c.Request.Context()))
	})

	authMW := middleware.Auth(tokens)
	optionalAuthMW := middleware.OptionalAuth(tokens)
	api := r.Group("/api")

	// Auth: register/login/refresh are public, me/logout require a token
	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)
	authGroup.GET("/me", authMW, h.Auth.Me)
	authGroup.POST("/logout", authMW, h.Auth.Logout)

	profile := api.Group("/profile", authMW)
	profile.GET("", h.Profile.Get)
	profile.POST("", h.Profile.Save)
	profile.DELETE("", h.Profile.Delete)

	children := api.Group("/children", authMW)
	children.GET("", h.Child.List)
	children.POST("", h.Child.Create)
	children.GET("/:childId", h.Child.Get)
	children.PUT("/:childId", h.Child.Update)
	children.DELETE("/:childId", h.Child.Delete)

	vaccines := api.Group("/vaccines", authMW)
	vaccines.GET("/schedule", h.Vaccine.Schedule)
	vaccines.GET("/records", h.Vaccine.Records)
	vaccines.GET("/dashboard", h.Vaccine.Dashboard)
	vaccines.POST("/record", h.Vaccine.CreateRecord)
	vaccines.PUT("/record/:recordId", h.Vaccine.UpdateRecord)
	vaccines.DELETE("/record/:recordId", h.Vaccine.DeleteRecord)

	// Drives are public; a token, when present, only personalizes logging.
	// The route tree cannot hold "location", "upcoming" and "search" as
	// static siblings of the ID wildcard, so the handler dispatches on the
	// first path segment.
	drives := api.Group("/drives", optionalAuthMW)
	drives.GET("", h.Drive.List)
	drives.GET("/:scope", h.Drive.Get)
	drives.GET("/:scope/:arg", h.Drive.Scoped)

	notifications := api.Group("/notifications", authMW)
	notifications.GET("", h.Notification.List)
	notifications.PUT("/:id/read", h.Notification.MarkRead)
	notifications.DELETE("/:id", h.Notification.Delete)

	return r
}
