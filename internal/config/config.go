// Package config handles configuration for the sync agent, layering
// defaults, an optional JSON file, environment variables and command-line
// flags. Later sources override earlier ones.
package config

import "time"

// Config holds runtime settings for the fleetsync agent.
//
// Fields:
//   - CacheDSN: path of the local SQLite cache database.
//   - MongoURI / MongoDatabase: the remote document store.
//   - SyncInterval: cadence of scheduled sync passes.
//   - SyncMaxRetries / SyncRetryStep: in-run retry policy (linear backoff).
//   - ProbeURL / ProbeTimeout: connectivity probe before a sync pass.
//   - S3*: object storage for entry and expense photos.
//   - IDToken: identity token issued by the auth service; when empty,
//     UserID/UserRole configure a static identity instead.
//   - MetricsAddr: bind address of the Prometheus endpoint ("" disables it).
type Config struct {
	CacheDSN      string
	MongoURI      string
	MongoDatabase string

	SyncInterval   time.Duration
	SyncMaxRetries int
	SyncRetryStep  time.Duration

	ProbeURL     string
	ProbeTimeout time.Duration

	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3BaseEndpoint string

	IDToken  string
	UserID   string
	UserRole string

	MetricsAddr string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the S3 credentials are insecure and must be overridden in prod.
func (c *Config) LoadDefaults() {
	c.CacheDSN = "fleetsync.db"
	c.MongoURI = "mongodb://127.0.0.1:27017"
	c.MongoDatabase = "fleetsync"
	c.SyncInterval = 15 * time.Minute
	c.SyncMaxRetries = 3
	c.SyncRetryStep = 30 * time.Second
	c.ProbeURL = "https://www.gstatic.com/generate_204"
	c.ProbeTimeout = 5 * time.Second
	c.S3Region = "us-east-1"
	c.S3Bucket = "fleetsync-photos"
	c.S3AccessKey = "admin"
	c.S3SecretKey = "secretpassword"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.UserRole = "driver"
	c.MetricsAddr = "127.0.0.1:9464"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment (including a .env file) and
// finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
