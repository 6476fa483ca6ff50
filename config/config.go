// Package config loads the process-wide settings once at startup.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/joho/godotenv"
	"github.com/juju/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Port            string
	DataDir         string
	AdminKey        string
	NotifyEndpoint  string
	NotifyTimeout   time.Duration
	JWTSecret       string
	CatalogFile     string
	StoreName       string
	CurrencySymbol  string
	BackupDir       string
	BackupHour      int
	BackupRetention time.Duration
	BackupS3Bucket  string
	BackupS3Prefix  string
	AWSRegion       string
	LogFile         string
	LogMaxSizeMB    int
	LogMaxBackups   int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("data_dir", "data")
	v.SetDefault("admin_key", "")
	v.SetDefault("formspree_endpoint", "")
	v.SetDefault("notify_timeout", 10*time.Second)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("catalog_file", "")
	v.SetDefault("store_name", "Fish Parque")
	v.SetDefault("currency_symbol", "₦")
	v.SetDefault("backup_dir", "")
	v.SetDefault("backup_hour", 2)
	v.SetDefault("backup_retention", 4*24*time.Hour)
	v.SetDefault("backup_s3_bucket", "")
	v.SetDefault("backup_s3_prefix", "fishparque")
	v.SetDefault("aws_region", "")
	v.SetDefault("log_file", "")
	v.SetDefault("log_max_size_mb", 50)
	v.SetDefault("log_max_backups", 5)
}

// Load reads .env (if present), then the optional YAML file named by CONFIG_FILE,
// then the environment. Environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Annotatef(err, "reading config file %s", path)
		}
	}

	cfg := &Config{
		Port:            v.GetString("port"),
		DataDir:         v.GetString("data_dir"),
		AdminKey:        v.GetString("admin_key"),
		NotifyEndpoint:  v.GetString("formspree_endpoint"),
		NotifyTimeout:   v.GetDuration("notify_timeout"),
		JWTSecret:       v.GetString("jwt_secret"),
		CatalogFile:     v.GetString("catalog_file"),
		StoreName:       v.GetString("store_name"),
		CurrencySymbol:  v.GetString("currency_symbol"),
		BackupDir:       v.GetString("backup_dir"),
		BackupHour:      v.GetInt("backup_hour"),
		BackupRetention: v.GetDuration("backup_retention"),
		BackupS3Bucket:  v.GetString("backup_s3_bucket"),
		BackupS3Prefix:  v.GetString("backup_s3_prefix"),
		AWSRegion:       v.GetString("aws_region"),
		LogFile:         v.GetString("log_file"),
		LogMaxSizeMB:    v.GetInt("log_max_size_mb"),
		LogMaxBackups:   v.GetInt("log_max_backups"),
	}

	if cfg.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, errors.Trace(err)
		}
		cfg.JWTSecret = secret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.NotValidf("empty PORT")
	}
	if c.DataDir == "" {
		return errors.NotValidf("empty DATA_DIR")
	}
	if c.BackupHour < 0 || c.BackupHour > 23 {
		return errors.NotValidf("BACKUP_HOUR %d", c.BackupHour)
	}
	if c.BackupRetention <= 0 {
		return errors.NotValidf("BACKUP_RETENTION %s", c.BackupRetention)
	}
	if c.BackupS3Bucket != "" && c.BackupDir == "" {
		return errors.NotValidf("BACKUP_S3_BUCKET without BACKUP_DIR")
	}
	if c.LogFile != "" && c.LogMaxSizeMB <= 0 {
		return errors.NotValidf("LOG_MAX_SIZE_MB %d", c.LogMaxSizeMB)
	}
	if c.NotifyTimeout <= 0 {
		return errors.NotValidf("NOTIFY_TIMEOUT %s", c.NotifyTimeout)
	}
	return nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
