package core

import (
	"time"
)

const (
	// ResetVote is the value of the vote form field that zeroes both counters.
	ResetVote = "reset"

	FormFieldVote = "vote"

	ComponentNameServe       = "serve"
	ComponentNameHealthcheck = "healthcheck"

	StoreBackendRedis  = "redis"
	StoreBackendNATS   = "nats"
	StoreBackendMemory = "memory"

	DefaultOptionA = "Cats"
	DefaultOptionB = "Dogs"
	DefaultTitle   = "Azure Voting App"

	DefaultHTTPPort  = 8080
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	DefaultRedisPort    = 6379
	DefaultStoreTimeout = 3 * time.Second
	DefaultBucketName   = "votes"
	DefaultConfigFile   = "config_file.yaml"
)
