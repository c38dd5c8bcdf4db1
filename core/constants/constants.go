package constants

import "time"

const (
	ContextTokenData = "token_data"
	ContextRequestID = "request_id"

	ScopeTokenAccess        = "access"
	ScopeTokenRefresh       = "refresh"
	ScopeTokenResetPassword = "reset_password"
)

const (
	DefaultTimeout        = 5 * time.Second
	DefaultRequestTimeout = 10 * time.Second

	DefaultPageSize = 20
	MaxPageSize     = 100
)

const (
	MaxLoginAttempts = 5
	BlockDuration    = 15 * time.Minute

	ResetCodeLength = 6
	ResetCodeTTL    = 15 * time.Minute
	OAuthStateTTL   = 10 * time.Minute
)

const (
	RedisKeyTokenBlacklist = "campusflow:blacklist:"
	RedisKeyLoginAttempt   = "campusflow:login:"
	RedisKeyResetCode      = "campusflow:reset:"
	RedisKeyOAuthState     = "campusflow:oauth_state:"
	RedisChannelRealtime   = "campusflow:rt"
)

const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 10
	DatabaseConnMaxLifetime = 30
)

// Content limits, counted in characters after sanitising.
const (
	MaxTaskTitleLength        = 100
	MaxTaskNotesLength        = 500
	MaxEventTitleLength       = 100
	MaxEventDescriptionLength = 1000
	MaxMessageLength          = 1000
	MaxReportReasonLength     = 500
	MaxBioLength              = 200
	MinPasswordLength         = 6
)

const (
	ReminderLeadTime   = time.Hour
	UpcomingWindowDays = 3
	UpcomingLimit      = 5
)
