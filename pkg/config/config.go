package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"campreserv/pkg/client"
	"campreserv/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	APIBaseURL        string
	PaymentAPIBaseURL string

	SessionSecret string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	DraftDebounce time.Duration
	DraftTTL      time.Duration

	// CampgroundName is the guest-facing name printed on receipts. Each
	// front-desk deployment serves one campground.
	CampgroundName string

	LockFeeCents      int64
	HoldMinutes       int
	DefaultStayNights int

	DepositPolicy     string
	DepositPercent    int
	DepositFixedCents int64
	DepositMinCents   int64
	DepositMaxCents   int64

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		APIBaseURL:        getEnvStr(EnvAPIBaseURL, DefaultAPIBaseURL),
		PaymentAPIBaseURL: getEnvStr(EnvPaymentAPIBaseURL, DefaultPaymentAPIBaseURL),

		SessionSecret: getEnvStr(EnvSessionSecret, ""),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		DraftDebounce: getEnvDuration(EnvDraftDebounce, DefaultDraftDebounce),
		DraftTTL:      getEnvDuration(EnvDraftTTL, DefaultDraftTTL),

		CampgroundName: getEnvStr(EnvCampgroundName, DefaultCampgroundName),

		LockFeeCents:      getEnvInt64(EnvLockFeeCents, DefaultLockFeeCents),
		HoldMinutes:       getEnvNum(EnvDefaultHoldMin, DefaultHoldMinutes),
		DefaultStayNights: getEnvNum(EnvDefaultStayNights, DefaultDefaultStayNights),

		DepositPolicy:     getEnvStr(EnvDepositPolicy, DefaultDepositPolicy),
		DepositPercent:    getEnvNum(EnvDepositPercent, DefaultDepositPercent),
		DepositFixedCents: getEnvInt64(EnvDepositFixedCents, DefaultDepositFixedCents),
		DepositMinCents:   getEnvInt64(EnvDepositMinCents, DefaultDepositMinCents),
		DepositMaxCents:   getEnvInt64(EnvDepositMaxCents, DefaultDepositMaxCents),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, logger.INFO),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) SetBackendClients() {
	cfg.Client.SetGuestClient(cfg.APIBaseURL)
	cfg.Client.SetSiteClient(cfg.APIBaseURL)
	cfg.Client.SetQuoteClient(cfg.APIBaseURL)
	cfg.Client.SetReservationClient(cfg.APIBaseURL)
	cfg.Client.SetHoldClient(cfg.APIBaseURL)
	cfg.Client.SetPaymentClient(cfg.PaymentAPIBaseURL)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}

	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	if cfg.APIBaseURL == "" {
		errors = append(errors, "APIBaseURL cannot be empty")
	}

	for name, d := range map[string]time.Duration{
		"MongoConnTimeout": cfg.MongoConnTimeout,
		"RateLimitWindow":  cfg.RateLimitWindow,
		"RequestTimeout":   cfg.RequestTimeout,
		"IdempotencyTTL":   cfg.IdempotencyTTL,
		"ReadTimeout":      cfg.ReadTimeout,
		"WriteTimeout":     cfg.WriteTimeout,
		"IdleTimeout":      cfg.IdleTimeout,
		"ShutdownTimeout":  cfg.ShutdownTimeout,
		"DraftDebounce":    cfg.DraftDebounce,
		"DraftTTL":         cfg.DraftTTL,
	} {
		if d <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", name, d))
		}
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.LockFeeCents < 0 {
		errors = append(errors, fmt.Sprintf("LockFeeCents cannot be negative, got: %d", cfg.LockFeeCents))
	}
	if cfg.HoldMinutes < 1 || cfg.HoldMinutes > 120 {
		errors = append(errors, fmt.Sprintf("HoldMinutes must be between 1 and 120, got: %d", cfg.HoldMinutes))
	}
	if cfg.DefaultStayNights < 1 {
		errors = append(errors, fmt.Sprintf("DefaultStayNights must be at least 1, got: %d", cfg.DefaultStayNights))
	}

	switch cfg.DepositPolicy {
	case "percentage", "fixed", "first_night":
	default:
		errors = append(errors, fmt.Sprintf("DepositPolicy must be one of percentage, fixed, first_night, got: %s", cfg.DepositPolicy))
	}
	if cfg.DepositPercent < 0 || cfg.DepositPercent > 100 {
		errors = append(errors, fmt.Sprintf("DepositPercent must be between 0 and 100, got: %d", cfg.DepositPercent))
	}
	if cfg.DepositFixedCents < 0 {
		errors = append(errors, fmt.Sprintf("DepositFixedCents cannot be negative, got: %d", cfg.DepositFixedCents))
	}
	if cfg.DepositMaxCents != 0 && cfg.DepositMaxCents < cfg.DepositMinCents {
		errors = append(errors, fmt.Sprintf("DepositMaxCents (%d) must be >= DepositMinCents (%d)", cfg.DepositMaxCents, cfg.DepositMinCents))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"api_base_url", cfg.APIBaseURL,
		"payment_api_base_url", cfg.PaymentAPIBaseURL,
		"session_secret_set", cfg.SessionSecret != "",
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"draft_debounce", cfg.DraftDebounce,
		"draft_ttl", cfg.DraftTTL,
		"lock_fee_cents", cfg.LockFeeCents,
		"hold_minutes", cfg.HoldMinutes,
		"default_stay_nights", cfg.DefaultStayNights,
		"deposit_policy", cfg.DepositPolicy,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
