package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "campreserv"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultAPIBaseURL        = "http://localhost:3000"
	DefaultPaymentAPIBaseURL = "http://localhost:3100"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Draft writes are coalesced per key on this window; saved drafts
	// expire server-side after the TTL.
	DefaultDraftDebounce = 1 * time.Second
	DefaultDraftTTL      = 7 * 24 * time.Hour

	DefaultCampgroundName = ""

	DefaultLockFeeCents      = 2000
	DefaultHoldMinutes       = 15
	DefaultDefaultStayNights = 2

	DefaultDepositPolicy     = "first_night"
	DefaultDepositPercent    = 25
	DefaultDepositFixedCents = 5000
	DefaultDepositMinCents   = 0
	DefaultDepositMaxCents   = 0 // 0 = no cap

	DefaultPaginationLimit = 100
)
