package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with FLEETSYNC_* environment variables. A .env file
// in the working directory is loaded first if present; real environment
// variables win over the file.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	setString(&cfg.CacheDSN, "FLEETSYNC_CACHE_DSN")
	setString(&cfg.MongoURI, "FLEETSYNC_MONGO_URI")
	setString(&cfg.MongoDatabase, "FLEETSYNC_MONGO_DATABASE")
	setString(&cfg.ProbeURL, "FLEETSYNC_PROBE_URL")
	setString(&cfg.S3Region, "FLEETSYNC_S3_REGION")
	setString(&cfg.S3Bucket, "FLEETSYNC_S3_BUCKET")
	setString(&cfg.S3AccessKey, "FLEETSYNC_S3_ACCESS_KEY")
	setString(&cfg.S3SecretKey, "FLEETSYNC_S3_SECRET_KEY")
	setString(&cfg.S3BaseEndpoint, "FLEETSYNC_S3_BASE_ENDPOINT")
	setString(&cfg.IDToken, "FLEETSYNC_ID_TOKEN")
	setString(&cfg.UserID, "FLEETSYNC_USER_ID")
	setString(&cfg.UserRole, "FLEETSYNC_USER_ROLE")
	setString(&cfg.MetricsAddr, "FLEETSYNC_METRICS_ADDR")

	setDuration(&cfg.SyncInterval, "FLEETSYNC_SYNC_INTERVAL")
	setDuration(&cfg.SyncRetryStep, "FLEETSYNC_SYNC_RETRY_STEP")
	setDuration(&cfg.ProbeTimeout, "FLEETSYNC_PROBE_TIMEOUT")

	if v := os.Getenv("FLEETSYNC_SYNC_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SyncMaxRetries = n
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
