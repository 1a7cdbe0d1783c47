package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Driver   string `mapstructure:"driver"` // "sqlite" (default) or "postgres"
		Path     string `mapstructure:"path"`   // sqlite file path
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Daemon struct {
		TickMillis            int    `mapstructure:"tick_millis"`
		MusicDir              string `mapstructure:"music_dir"`
		LogsDir               string `mapstructure:"logs_dir"`
		SessionDefaultMinutes int    `mapstructure:"session_default_minutes"`
		VolumeDefault         int    `mapstructure:"volume_default"`
		Backend               string `mapstructure:"backend"` // "auto", "cvlc", "dummy"
		MetricsPort           string `mapstructure:"metrics_port"`
		BootstrapSchedules    string `mapstructure:"bootstrap_schedules"` // optional YAML file
	} `mapstructure:"daemon"`
	Relay struct {
		Enabled    bool `mapstructure:"enabled"`
		Pin        int  `mapstructure:"pin"`
		ActiveHigh bool `mapstructure:"active_high"`
	} `mapstructure:"relay"`
	API struct {
		Port     string `mapstructure:"port"`
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"api"`
}

func Load() *Config {
	viper.SetEnvPrefix("BELL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Register keys
	viper.BindEnv("database.driver")
	viper.BindEnv("database.path")
	viper.BindEnv("database.host")
	viper.BindEnv("database.port")
	viper.BindEnv("database.user")
	viper.BindEnv("database.password")
	viper.BindEnv("database.name")

	viper.BindEnv("daemon.tick_millis")
	viper.BindEnv("daemon.music_dir")
	viper.BindEnv("daemon.logs_dir")
	viper.BindEnv("daemon.session_default_minutes")
	viper.BindEnv("daemon.volume_default")
	viper.BindEnv("daemon.backend")
	viper.BindEnv("daemon.metrics_port")
	viper.BindEnv("daemon.bootstrap_schedules")

	viper.BindEnv("relay.enabled")
	viper.BindEnv("relay.pin")
	viper.BindEnv("relay.active_high")

	viper.BindEnv("api.port")
	viper.BindEnv("api.log_level")

	// Defaults
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.path", "musicschool.db")
	viper.SetDefault("database.port", "5432")

	viper.SetDefault("daemon.tick_millis", 500)
	viper.SetDefault("daemon.music_dir", "music")
	viper.SetDefault("daemon.logs_dir", "logs")
	viper.SetDefault("daemon.session_default_minutes", 15)
	viper.SetDefault("daemon.volume_default", 70)
	viper.SetDefault("daemon.backend", "auto")
	viper.SetDefault("daemon.metrics_port", ":9091")
	viper.SetDefault("daemon.bootstrap_schedules", "")

	viper.SetDefault("relay.enabled", false)
	viper.SetDefault("relay.pin", 17)
	viper.SetDefault("relay.active_high", true)

	viper.SetDefault("api.port", ":8080")
	viper.SetDefault("api.log_level", "error")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Config error: %s", err)
		} else {
			log.Println("Info: config.yaml not found, using Environment Variables only.")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}

	return &cfg
}
