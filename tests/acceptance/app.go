package acceptance

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/contacts-api/internal/app"
	"github.com/prperemyshlev/contacts-api/internal/config"
	"github.com/prperemyshlev/contacts-api/internal/utils"
	"github.com/prperemyshlev/contacts-api/pkg/database"
	"github.com/prperemyshlev/contacts-api/pkg/observability"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

const testJWTSecret = "test-secret-key-that-is-at-least-32-characters-long"

// TestApp wraps the real application wired against the test databases and
// served on a random port.
type TestApp struct {
	Config     *config.Config
	App        *app.App
	Server     *httptest.Server
	BaseURL    string
	JWTManager *utils.JWTManager
	Logger     *zap.Logger
}

// testInfrastructure satisfies app.Infrastructure with externally owned
// connections; Shutdown leaves them open for the suite to close.
type testInfrastructure struct {
	postgres       *database.Postgres
	redis          *database.Redis
	logger         *zap.Logger
	metricsHandler http.Handler
	meterProvider  *metric.MeterProvider
}

func (i *testInfrastructure) Postgres() *database.Postgres { return i.postgres }
func (i *testInfrastructure) Redis() *database.Redis       { return i.redis }
func (i *testInfrastructure) Logger() *zap.Logger          { return i.logger }
func (i *testInfrastructure) MetricsHandler() http.Handler { return i.metricsHandler }

func (i *testInfrastructure) MeterProvider() *metric.MeterProvider {
	return i.meterProvider
}

func (i *testInfrastructure) Shutdown(ctx context.Context) error {
	return observability.Shutdown(ctx, i.meterProvider, i.logger)
}

// NewTestApp builds the application on top of already connected databases.
func NewTestApp(postgres *database.Postgres, redis *database.Redis) (*TestApp, error) {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:         "localhost",
			Port:         "0",
			ReadTimeout:  config.Duration{Duration: 15 * time.Second},
			WriteTimeout: config.Duration{Duration: 15 * time.Second},
		},
		JWT: config.JWTConfig{
			Secret:                  testJWTSecret,
			AccessTokenExpiry:       config.Duration{Duration: 15 * time.Minute},
			RefreshTokenExpiry:      config.Duration{Duration: 7 * 24 * time.Hour},
			EmailVerificationExpiry: config.Duration{Duration: 24 * time.Hour},
			PasswordResetExpiry:     config.Duration{Duration: time.Hour},
		},
		Cache: config.CacheConfig{
			UserTTL: config.Duration{Duration: time.Hour},
		},
		Storage: config.StorageConfig{
			Region: "us-east-1",
			Bucket: "contacts-api-test",
		},
		Mail: config.MailConfig{
			From:    "noreply@contacts-api.local",
			BaseURL: "http://localhost:8080",
		},
		Security: config.SecurityConfig{
			BCryptCost:        4,
			RateLimitRequests: 1000,
			RateLimitWindow:   config.Duration{Duration: time.Minute},
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		},
		Env: "test",
	}

	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()

	meterProvider, metricsHandler, err := observability.InitTelemetry("contacts-api-test")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	infra := &testInfrastructure{
		postgres:       postgres,
		redis:          redis,
		logger:         logger,
		metricsHandler: metricsHandler,
		meterProvider:  meterProvider,
	}

	application, err := app.NewApp(infra, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build application: %w", err)
	}

	server := httptest.NewServer(application.Router())

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry.Duration,
		cfg.JWT.RefreshTokenExpiry.Duration,
		cfg.JWT.EmailVerificationExpiry.Duration,
		cfg.JWT.PasswordResetExpiry.Duration,
	)

	return &TestApp{
		Config:     cfg,
		App:        application,
		Server:     server,
		BaseURL:    server.URL,
		JWTManager: jwtManager,
		Logger:     logger,
	}, nil
}

func (app *TestApp) Close() error {
	app.Server.Close()
	return nil
}
