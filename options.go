package memdex

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver   string // "redis" or "file"
	addrs    []string
	username string
	password string
	redisDB  int
	dir      string

	autoIndex      bool
	importMaxBytes int64

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to persist snapshots in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedisDB selects a logical Redis database. Only meaningful with WithRedis.
func WithRedisDB(db int) Option {
	return optionFunc(func(c *clientConfig) {
		c.redisDB = db
	})
}

// WithFileStore configures the client to persist snapshots in a local
// directory. The directory is created if it does not exist.
func WithFileStore(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "file"
		c.dir = dir
	})
}

// WithAutoIndex makes Add index new entries immediately instead of waiting
// for an explicit indexing pass.
func WithAutoIndex() Option {
	return optionFunc(func(c *clientConfig) {
		c.autoIndex = true
	})
}

// WithImportMaxBytes caps the size of files accepted by Import.
// Default: 1 MiB.
func WithImportMaxBytes(n int64) Option {
	return optionFunc(func(c *clientConfig) {
		c.importMaxBytes = n
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
