package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Env                 string `mapstructure:"env"`
	Port                int    `mapstructure:"port"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
	ShutdownSeconds     int    `mapstructure:"shutdown_seconds"`
}

type MongoConf struct {
	URI               string `mapstructure:"uri"`
	Database          string `mapstructure:"database"`
	UsersCollection   string `mapstructure:"users_collection"`
	UploadsCollection string `mapstructure:"uploads_collection"`
}

type StorageConf struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

type SessionConf struct {
	Secret  string `mapstructure:"secret"`
	TTLDays int    `mapstructure:"ttl_days"`
}

type RedisConf struct {
	Addr               string `mapstructure:"addr"`
	Password           string `mapstructure:"password"`
	DB                 int    `mapstructure:"db"`
	LoginLimit         int    `mapstructure:"login_limit"`
	LoginWindowSeconds int    `mapstructure:"login_window_seconds"`
}

type KafkaConf struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type Config struct {
	App     AppConf     `mapstructure:"app"`
	Mongo   MongoConf   `mapstructure:"mongo"`
	Storage StorageConf `mapstructure:"storage"`
	Session SessionConf `mapstructure:"session"`
	Redis   RedisConf   `mapstructure:"redis"`
	Kafka   KafkaConf   `mapstructure:"kafka"`

	// derived
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	SessionTTL      time.Duration
	LoginWindow     time.Duration
}

// Load reads the YAML config and applies environment overrides. Missing
// required settings are reported here so startup fails fast.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	override := func(env string, apply func(string)) {
		if val := os.Getenv(env); val != "" {
			apply(val)
		}
	}
	override("APP_ENV", func(val string) { cfg.App.Env = val })
	override("APP_PORT", func(val string) {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.App.Port = n
		}
	})
	override("MONGODB_URI", func(val string) { cfg.Mongo.URI = val })
	override("MONGODB_DATABASE", func(val string) { cfg.Mongo.Database = val })
	override("SESSION_SECRET", func(val string) { cfg.Session.Secret = val })
	override("STORAGE_REGION", func(val string) { cfg.Storage.Region = val })
	override("STORAGE_ENDPOINT", func(val string) { cfg.Storage.Endpoint = val })
	override("STORAGE_ACCESS_KEY", func(val string) { cfg.Storage.AccessKey = val })
	override("STORAGE_SECRET_KEY", func(val string) { cfg.Storage.SecretKey = val })
	override("REDIS_ADDR", func(val string) { cfg.Redis.Addr = val })
	override("REDIS_PASSWORD", func(val string) { cfg.Redis.Password = val })
	override("KAFKA_BROKERS", func(val string) { cfg.Kafka.Brokers = strings.Split(val, ",") })
	override("KAFKA_TOPIC", func(val string) { cfg.Kafka.Topic = val })

	if cfg.App.Port == 0 {
		cfg.App.Port = 8080
	}
	if cfg.App.ReadTimeoutSeconds == 0 {
		cfg.App.ReadTimeoutSeconds = 30
	}
	if cfg.App.WriteTimeoutSeconds == 0 {
		cfg.App.WriteTimeoutSeconds = 30
	}
	if cfg.App.ShutdownSeconds == 0 {
		cfg.App.ShutdownSeconds = 15
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "vito-x"
	}
	if cfg.Mongo.UsersCollection == "" {
		cfg.Mongo.UsersCollection = "users"
	}
	if cfg.Mongo.UploadsCollection == "" {
		cfg.Mongo.UploadsCollection = "uploads"
	}
	if cfg.Session.TTLDays == 0 {
		cfg.Session.TTLDays = 30
	}
	if cfg.Redis.LoginLimit == 0 {
		cfg.Redis.LoginLimit = 10
	}
	if cfg.Redis.LoginWindowSeconds == 0 {
		cfg.Redis.LoginWindowSeconds = 60
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "uploads.created"
	}

	if cfg.Mongo.URI == "" {
		return nil, errors.New("MONGODB_URI is required")
	}
	if cfg.Session.Secret == "" {
		return nil, errors.New("SESSION_SECRET is required")
	}
	if cfg.Storage.Region == "" && cfg.Storage.Endpoint == "" {
		return nil, errors.New("STORAGE_REGION or STORAGE_ENDPOINT is required")
	}
	if cfg.Storage.Endpoint != "" && (cfg.Storage.AccessKey == "" || cfg.Storage.SecretKey == "") {
		return nil, errors.New("STORAGE_ACCESS_KEY and STORAGE_SECRET_KEY are required with a custom endpoint")
	}

	cfg.ReadTimeout = time.Duration(cfg.App.ReadTimeoutSeconds) * time.Second
	cfg.WriteTimeout = time.Duration(cfg.App.WriteTimeoutSeconds) * time.Second
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSeconds) * time.Second
	cfg.SessionTTL = time.Duration(cfg.Session.TTLDays) * 24 * time.Hour
	cfg.LoginWindow = time.Duration(cfg.Redis.LoginWindowSeconds) * time.Second
	return &cfg, nil
}
