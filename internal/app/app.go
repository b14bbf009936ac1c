package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/contacts-api/internal/config"
	"github.com/prperemyshlev/contacts-api/internal/handler"
	"github.com/prperemyshlev/contacts-api/internal/repository"
	"github.com/prperemyshlev/contacts-api/internal/service"
	"github.com/prperemyshlev/contacts-api/internal/utils"
	"github.com/prperemyshlev/contacts-api/pkg/observability"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
}

func NewApp(infra Infrastructure, cfg *config.Config) (*App, error) {
	repos := repository.NewRepositories(infra.Postgres(), infra.Redis(), cfg.Cache.UserTTL.Duration, infra.Logger())

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry.Duration,
		cfg.JWT.RefreshTokenExpiry.Duration,
		cfg.JWT.EmailVerificationExpiry.Duration,
		cfg.JWT.PasswordResetExpiry.Duration,
	)

	mailSender := service.NewLogSender(infra.Logger(), cfg.Mail.From, cfg.Mail.BaseURL)
	rateLimiter := service.NewRateLimiter(infra.Redis())
	healthChecker := NewHealthChecker(infra)

	avatarStorage, err := service.NewS3AvatarStorage(context.Background(), cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create avatar storage: %w", err)
	}

	authService := service.NewAuthService(
		repos.User,
		jwtManager,
		mailSender,
		infra.Logger(),
		cfg.Security.BCryptCost,
	)
	userService := service.NewUserService(repos.User, avatarStorage)
	contactService := service.NewContactService(repos.Contact)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	contactHandler := handler.NewContactHandler(contactService)

	router := gin.Default()
	router.Use(otelgin.Middleware("contacts-api"))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, cfg, authHandler, userHandler, contactHandler, authService, rateLimiter, healthChecker, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
	}, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	contactHandler *handler.ContactHandler,
	authService service.AuthService,
	rateLimiter *service.RateLimiter,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	api := router.Group("/api")
	{
		api.GET("/healthchecker", healthChecker.Handler)

		auth := api.Group("/auth")
		{
			rateLimit := handler.RateLimitMiddleware(rateLimiter, cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow.Duration, handler.IPBasedKey)

			auth.POST("/signup", rateLimit, authHandler.Signup)
			auth.POST("/login", rateLimit, authHandler.Login)
			auth.GET("/confirmed_email/:token", authHandler.ConfirmEmail)
			auth.GET("/refresh_token", authHandler.Refresh)
			auth.POST("/refresh_token", authHandler.Refresh)
			auth.POST("/logout", handler.AuthMiddleware(authService), authHandler.Logout)
			auth.POST("/forgot_password", rateLimit, authHandler.ForgotPassword)
			auth.POST("/reset_password/:token", rateLimit, authHandler.ResetPassword)
		}

		users := api.Group("/users", handler.AuthMiddleware(authService))
		{
			users.GET("/me", userHandler.GetMe)
			users.PATCH("/avatar", userHandler.UpdateAvatar)
		}

		contacts := api.Group("/contacts", handler.AuthMiddleware(authService))
		{
			contacts.POST("", contactHandler.Create)
			contacts.GET("", contactHandler.List)
			contacts.GET("/:id", contactHandler.Get)
			contacts.PUT("/:id", contactHandler.Update)
			contacts.DELETE("/:id", contactHandler.Delete)
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := make(chan error, 2)

	go func() {
		errs <- a.server.Shutdown(ctx)
	}()

	go func() {
		errs <- a.infra.Shutdown(ctx)
	}()

	err := errors.Join(<-errs, <-errs)
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
