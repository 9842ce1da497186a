package config

import (
	"github.com/spf13/viper"
)

// Config carries the runtime knobs. Everything has a working default;
// env vars (QM_*) or an optional config file override them.
type Config struct {
	DBPath         string `mapstructure:"QM_DB_PATH"`
	CatalogPath    string `mapstructure:"QM_CATALOG"`          // empty = embedded catalog
	LogLevel       string `mapstructure:"QM_LOG_LEVEL"`        // debug|info|warn|error
	Seed           uint64 `mapstructure:"QM_SEED"`             // 0 = crypto RNG
	AutoDismiss    bool   `mapstructure:"QM_AUTO_DISMISS"`     // dismiss notifications without prompting
	DismissDelayMS int    `mapstructure:"QM_DISMISS_DELAY_MS"` // presentational close delay
}

// Load reads configuration from env and, if present, a "questme.env"
// file in the given directory. A missing file is not an error.
func Load(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("questme")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("QM_DB_PATH", "")
	viper.SetDefault("QM_CATALOG", "")
	viper.SetDefault("QM_LOG_LEVEL", "warn")
	viper.SetDefault("QM_SEED", 0)
	viper.SetDefault("QM_AUTO_DISMISS", false)
	viper.SetDefault("QM_DISMISS_DELAY_MS", 0)

	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
