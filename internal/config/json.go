package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/fleetsync/internal/flagx"
	"github.com/dmitrijs2005/fleetsync/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration so the file can say "15m" instead of nanoseconds. Only
// fields present in the file override the current Config values.
type JsonConfig struct {
	CacheDSN      *string `json:"cache_dsn"`
	MongoURI      *string `json:"mongo_uri"`
	MongoDatabase *string `json:"mongo_database"`

	SyncInterval   *timex.Duration `json:"sync_interval"`
	SyncMaxRetries *int            `json:"sync_max_retries"`
	SyncRetryStep  *timex.Duration `json:"sync_retry_step"`

	ProbeURL     *string         `json:"probe_url"`
	ProbeTimeout *timex.Duration `json:"probe_timeout"`

	S3Region       *string `json:"s3_region"`
	S3Bucket       *string `json:"s3_bucket"`
	S3AccessKey    *string `json:"s3_access_key"`
	S3SecretKey    *string `json:"s3_secret_key"`
	S3BaseEndpoint *string `json:"s3_base_endpoint"`

	IDToken  *string `json:"id_token"`
	UserID   *string `json:"user_id"`
	UserRole *string `json:"user_role"`

	MetricsAddr *string `json:"metrics_addr"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flag. No flag means no JSON. Read or unmarshal errors panic;
// a broken config file should stop startup, not be silently ignored.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	override := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	override(&cfg.CacheDSN, jc.CacheDSN)
	override(&cfg.MongoURI, jc.MongoURI)
	override(&cfg.MongoDatabase, jc.MongoDatabase)
	override(&cfg.ProbeURL, jc.ProbeURL)
	override(&cfg.S3Region, jc.S3Region)
	override(&cfg.S3Bucket, jc.S3Bucket)
	override(&cfg.S3AccessKey, jc.S3AccessKey)
	override(&cfg.S3SecretKey, jc.S3SecretKey)
	override(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	override(&cfg.IDToken, jc.IDToken)
	override(&cfg.UserID, jc.UserID)
	override(&cfg.UserRole, jc.UserRole)
	override(&cfg.MetricsAddr, jc.MetricsAddr)

	if jc.SyncInterval != nil {
		cfg.SyncInterval = jc.SyncInterval.Duration
	}
	if jc.SyncRetryStep != nil {
		cfg.SyncRetryStep = jc.SyncRetryStep.Duration
	}
	if jc.ProbeTimeout != nil {
		cfg.ProbeTimeout = jc.ProbeTimeout.Duration
	}
	if jc.SyncMaxRetries != nil {
		cfg.SyncMaxRetries = *jc.SyncMaxRetries
	}
}
