package config

import "time"

const (
	defaultPort             = 5000
	defaultOperationTimeout = 3 * time.Second
	defaultTokenTTL         = time.Hour
	defaultCORSOrigin       = "*"
)

var defaultMongo = Mongo{
	Host: "cluster0.oh6dvsr.mongodb.net",
	Name: "percelManagement",
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Rate:       20,
	Burst:      40,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultPprof = Pprof{
	Enabled: false,
	Addr:    "127.0.0.1:6060",
}

var defaultKafka = Kafka{
	Topic:   "parcel.assignments",
	GroupID: "service-parcel-worker",
}

// DefaultPort returns the default HTTP port.
func DefaultPort() int { return defaultPort }

// DefaultMongo returns the default MongoDB settings.
func DefaultMongo() Mongo { return defaultMongo }

// DefaultRateLimit returns the default rate limiter settings.
func DefaultRateLimit() RateLimit { return defaultRateLimit }

// DefaultPprof returns the default pprof server settings.
func DefaultPprof() Pprof { return defaultPprof }

// DefaultKafka returns the default Kafka settings.
func DefaultKafka() Kafka { return defaultKafka }
