package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvAPIBaseURL        = "API_BASE_URL"
	EnvPaymentAPIBaseURL = "PAYMENT_API_BASE_URL"

	EnvSessionSecret = "SESSION_SECRET"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvDraftDebounce = "DRAFT_DEBOUNCE"
	EnvDraftTTL      = "DRAFT_TTL"

	EnvCampgroundName = "CAMPGROUND_NAME"

	EnvLockFeeCents      = "SITE_LOCK_FEE_CENTS"
	EnvDefaultHoldMin    = "DEFAULT_HOLD_MINUTES"
	EnvDefaultStayNights = "DEFAULT_STAY_NIGHTS"

	EnvDepositPolicy     = "DEPOSIT_POLICY"
	EnvDepositPercent    = "DEPOSIT_PERCENT"
	EnvDepositFixedCents = "DEPOSIT_FIXED_CENTS"
	EnvDepositMinCents   = "DEPOSIT_MIN_CENTS"
	EnvDepositMaxCents   = "DEPOSIT_MAX_CENTS"
)
