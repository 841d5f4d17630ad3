package domain

type ctxKey string

const (
	RequesterCtxKey ctxKey = "lair-requester"
)

const (
	CredentialHeader = "x-plato-token"
	LookupKeyHeader  = "x-plato-key"
	AdminTokenHeader = "x-admin-token"
)

const (
	HandlePrefix    = "@"
	HandleMinLength = 3
	HandleMaxLength = 30

	DisplayNameMaxLength = 64

	MaxMoodTags      = 8
	MoodTagMaxLength = 32
)

type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "pending"
	SubmissionPublished SubmissionStatus = "published"
)

type NotificationType string

const (
	NotificationMention NotificationType = "mention"
)
