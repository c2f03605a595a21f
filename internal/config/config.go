package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type GatewayConfig struct {
	BaseURL string
	Timeout time.Duration
}

type MediaConfig struct {
	BaseURL        string
	PlaceholderURL string
}

type LocaleConfig struct {
	Tag      string
	Currency string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

type SessionConfig struct {
	Backend  string // "file" or "redis"
	FilePath string
	SealKey  string // hex-encoded 32 bytes; empty stores the record in the clear
	Redis    RedisConfig
}

type StartupConfig struct {
	MinSplash time.Duration
}

type RefreshConfig struct {
	Schedule string // cron spec; empty disables background refresh
}

type AppConfig struct {
	Environment string
	Gateway     GatewayConfig
	Media       MediaConfig
	Locale      LocaleConfig
	Session     SessionConfig
	Startup     StartupConfig
	Refresh     RefreshConfig
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("STOREFRONT")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("gateway.baseurl", "https://smfteapi.salesmate.app")
	// Zero disables the client timeout; a hung upstream call then hangs the
	// owning operation, matching the upstream app.
	v.SetDefault("gateway.timeout", "0s")

	v.SetDefault("media.baseurl", "https://smfteapi.salesmate.app/Media/Products_Images")
	v.SetDefault("media.placeholderurl", "https://via.placeholder.com/150")

	v.SetDefault("locale.tag", "en-GH")
	v.SetDefault("locale.currency", "GHS")

	v.SetDefault("session.backend", "file")
	v.SetDefault("session.filepath", "session.json")
	v.SetDefault("session.redis.addr", "127.0.0.1:6379")
	v.SetDefault("session.redis.db", 0)
	v.SetDefault("session.redis.key", "storefront:session")

	v.SetDefault("startup.minsplash", "1500ms")

	v.SetDefault("refresh.schedule", "@every 5m")
}
