package main

import (
	"expvar"
	"os"
	"runtime"
	"strconv"
	"time"

	"spa/internal/auth"
	"spa/internal/db"
	"spa/internal/domain/storage"
	"spa/internal/ratelimiter"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel)

	return zap.New(core).Sugar(), nil
}

func getString(key, fallback string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return fallback
}

func getInt(logger *zap.SugaredLogger, key string, fallback int) int {
	val, exists := os.LookupEnv(key)
	if !exists || val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		logger.Warnw("invalid integer in environment, using default", "key", key, "value", val, "default", fallback)
		return fallback
	}
	return parsed
}

func getBool(logger *zap.SugaredLogger, key string, fallback bool) bool {
	val, exists := os.LookupEnv(key)
	if !exists || val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		logger.Warnw("invalid boolean in environment, using default", "key", key, "value", val, "default", fallback)
		return fallback
	}
	return parsed
}

func getDuration(logger *zap.SugaredLogger, key string, fallback time.Duration) time.Duration {
	val, exists := os.LookupEnv(key)
	if !exists || val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil || parsed <= 0 {
		logger.Warnw("invalid duration in environment, using default", "key", key, "value", val, "default", fallback)
		return fallback
	}
	return parsed
}

const defaultReviewRateLimit = 3

// LoadRateLimiterConfig retrieves the review submission limiter settings. The defaults
// allow 3 submissions per client every 15 minutes. A count below 1 is rejected; use
// REVIEW_RATE_LIMIT_ENABLED to switch limiting off.
func LoadRateLimiterConfig(logger *zap.SugaredLogger) ratelimiter.Config {
	count := getInt(logger, "REVIEW_RATE_LIMIT_COUNT", defaultReviewRateLimit)
	if count < 1 {
		logger.Warnw("REVIEW_RATE_LIMIT_COUNT must be at least 1, using default", "value", count, "default", defaultReviewRateLimit)
		count = defaultReviewRateLimit
	}

	return ratelimiter.Config{
		RequestsPerTimeFrame: count,
		TimeFrame:            getDuration(logger, "REVIEW_RATE_LIMIT_WINDOW", 15*time.Minute),
		Enabled:              getBool(logger, "REVIEW_RATE_LIMIT_ENABLED", true),
	}
}

func loadConfig(logger *zap.SugaredLogger) config {
	return config{
		addr:   getString("ADDR", ":8080"),
		env:    getString("ENV", "development"),
		apiURL: getString("EXTERNAL_URL", "localhost:8080"),
		db: dbConfig{
			addr:        os.Getenv("DB_ADDR"),
			maxConns:    int32(getInt(logger, "DB_MAX_CONNS", 30)),
			maxIdleTime: getDuration(logger, "DB_MAX_IDLE_TIME", 15*time.Minute),
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
			token: tokenConfig{
				secret: os.Getenv("AUTH_TOKEN_SECRET"),
				iss:    getString("AUTH_TOKEN_ISS", "spa"),
				aud:    getString("AUTH_TOKEN_AUD", "spa"),
			},
		},
		reviews: reviewsConfig{
			autoApprove: getBool(logger, "REVIEWS_AUTO_APPROVE", false),
			rateLimiter: LoadRateLimiterConfig(logger),
		},
	}
}

var version = "1.0.0"

//	@title			Spa Reviews API
//	@description	Review submission, moderation and rating statistics for the spa website.

//	@contact.name	API Support
//	@contact.url	http://www.swagger.io/support
//	@contact.email	support@swagger.io

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@BasePath					/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description

//	@securityDefinitions.basic	BasicAuth

func main() {
	logger, err := NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warnw("could not load .env file", "error", err)
	}

	cfg := loadConfig(logger)
	if cfg.auth.token.secret == "" {
		logger.Fatal("AUTH_TOKEN_SECRET must be set")
	}

	// Database
	pool, err := db.New(db.Config{
		Addr:        cfg.db.addr,
		MaxConns:    cfg.db.maxConns,
		MaxIdleTime: cfg.db.maxIdleTime,
	})
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()
	logger.Info("database connection pool established")

	store := storage.NewContainer(pool, storage.Options{
		AutoApproveReviews: cfg.reviews.autoApprove,
	})

	// Rate limiter
	limiter := ratelimiter.NewFixedWindowLimiter(
		cfg.reviews.rateLimiter.RequestsPerTimeFrame,
		cfg.reviews.rateLimiter.TimeFrame,
	)
	stop := make(chan struct{})
	defer close(stop)
	go limiter.RunCleanup(stop)

	// Authenticator
	jwtAuthenticator := auth.NewJWTAuthenticator(
		cfg.auth.token.secret,
		cfg.auth.token.aud,
		cfg.auth.token.iss,
	)

	app := &application{
		config:        cfg,
		logger:        logger,
		store:         store,
		authenticator: jwtAuthenticator,
		reviewLimiter: limiter,
	}

	//Metrics collected http://localhost:8080/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		return store.Stat()
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
