package http

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	appsvc "campus-webapps/internal/app"
	"campus-webapps/internal/bootstrap"
	"campus-webapps/internal/config"
	"campus-webapps/internal/repository"
	"campus-webapps/internal/session"
	"campus-webapps/internal/transport/http/handler"
	"campus-webapps/internal/transport/http/middleware"
	"campus-webapps/internal/transport/http/response"
	"campus-webapps/internal/view"
)

type AuthDeps struct {
	Config      config.AuthConfig
	Cookie      middleware.CookieConfig
	AuthService *appsvc.AuthService
	Sessions    *session.Manager
	Renderer    view.Renderer
	Logger      *slog.Logger
	// Health is optional
	Health *handler.HealthHandler
}

type StudentDeps struct {
	StudentService *appsvc.StudentService
	Renderer       view.Renderer
	Logger         *slog.Logger
	Health         *handler.HealthHandler
}

func NewAuthRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)

	var events appsvc.EventPublisher
	if app.Events != nil {
		events = app.Events
	}

	userRepo := repository.NewUserRepository(app.MySQL)
	authService := appsvc.NewAuthService(
		userRepo,
		appsvc.NewPasswordHasher(app.Config.Auth.BcryptCost),
		events,
		app.Logger,
	)
	sessions := session.NewManager(app.SessionStore, app.Config.Session.Secret, app.Config.SessionTTL())

	return NewAuthEngine(AuthDeps{
		Config: app.Config.Auth,
		Cookie: middleware.CookieConfig{
			Name:   app.Config.Session.CookieName,
			Secure: app.Config.Session.Secure,
			MaxAge: int(app.Config.SessionTTL().Seconds()),
		},
		AuthService: authService,
		Sessions:    sessions,
		Renderer:    app.Renderer,
		Logger:      app.Logger,
		Health:      handler.NewHealthHandler(app.Config.App.Name, app.Config.App.Env, app.StartedAt, healthChecks(app)...),
	})
}

func NewAuthEngine(deps AuthDeps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(deps.Logger), gin.Recovery())

	if deps.Health != nil {
		router.GET("/healthz", deps.Health.Check)
	}

	paths := handler.NewAuthPaths(deps.Config.BasePath)
	authHandler := handler.NewAuthHandler(deps.AuthService, deps.Sessions, deps.Cookie, paths, deps.Renderer, deps.Logger)

	if deps.Config.BasePath != "" {
		router.GET("/", func(c *gin.Context) {
			response.Redirect(c, paths.Home)
		})
	}

	authGroup := router.Group(deps.Config.BasePath)
	authGroup.Use(middleware.NoCache(), middleware.Sessions(deps.Sessions, deps.Cookie, deps.Logger))

	entry := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if deps.Config.BlockAuthenticated {
			return []gin.HandlerFunc{middleware.RedirectIfLoggedIn(), h}
		}
		return []gin.HandlerFunc{h}
	}
	authGroup.GET("/register", entry(authHandler.ShowRegister)...)
	authGroup.POST("/register", entry(authHandler.Register)...)
	authGroup.GET("/login", entry(authHandler.ShowLogin)...)
	authGroup.POST("/login", entry(authHandler.Login)...)
	authGroup.GET("/logout", authHandler.Logout)

	requireLogin := middleware.RequireLogin(paths.Login)
	authGroup.GET("/", requireLogin, authHandler.ListUsers)
	authGroup.GET("/me", requireLogin, authHandler.Me)

	return router
}

func NewStudentRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)

	studentRepo := repository.NewStudentRepository(app.MySQL)
	return NewStudentEngine(StudentDeps{
		StudentService: appsvc.NewStudentService(studentRepo),
		Renderer:       app.Renderer,
		Logger:         app.Logger,
		Health:         handler.NewHealthHandler(app.Config.App.Name, app.Config.App.Env, app.StartedAt, healthChecks(app)...),
	})
}

func NewStudentEngine(deps StudentDeps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(deps.Logger), gin.Recovery())

	if deps.Health != nil {
		router.GET("/healthz", deps.Health.Check)
	}

	studentHandler := handler.NewStudentHandler(deps.StudentService, deps.Renderer, deps.Logger)
	router.GET("/", studentHandler.Index)
	router.POST("/add", studentHandler.Add)
	router.GET("/view/:id", studentHandler.View)
	router.GET("/edit/:id", studentHandler.Edit)
	router.POST("/update/:id", studentHandler.Update)
	router.GET("/delete/:id", studentHandler.Delete)

	return router
}

func healthChecks(app *bootstrap.App) []handler.HealthCheck {
	checks := []handler.HealthCheck{{
		Name: "mysql",
		Check: func(ctx context.Context) error {
			sqlDB, err := app.MySQL.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}}
	if app.Redis != nil {
		checks = append(checks, handler.HealthCheck{
			Name: "redis",
			Check: func(ctx context.Context) error {
				return app.Redis.Ping(ctx).Err()
			},
		})
	}
	if app.MQConn != nil {
		checks = append(checks, handler.HealthCheck{
			Name: "rabbitmq",
			Check: func(context.Context) error {
				if app.MQConn.IsClosed() {
					return errors.New("connection closed")
				}
				return nil
			},
		})
	}
	return checks
}
