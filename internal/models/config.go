package models

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

// GeneratorConfig drives the synthetic workload command.
type GeneratorConfig struct {
	Seed             int64   `mapstructure:"seed"`
	CommandCount     int     `mapstructure:"command_count"`
	HorizonDays      int     `mapstructure:"horizon_days"`
	ExpressRatio     float64 `mapstructure:"express_ratio"`
	AppointmentRatio float64 `mapstructure:"appointment_ratio"`
	CancelRatio      float64 `mapstructure:"cancel_ratio"`
	StatusRatio      float64 `mapstructure:"status_ratio"`
}

type Config struct {
	InputFile         string `mapstructure:"input_file"`
	OutputDestination string `mapstructure:"output_destination"` // console, file, parquet, kafka, postgres
	OutputPath        string `mapstructure:"output_path"`
	OutputFolder      string `mapstructure:"output_folder"`
	KafkaBrokerList   string `mapstructure:"kafka_broker_list"`
	SessionTimeoutMs  int    `mapstructure:"session_timeout_ms"`
	ShowProgress      bool   `mapstructure:"show_progress"`
	// MaxTicks bounds the tick loop so input that can never converge (for
	// example commands sharing a timestamp, of which only the first is ever
	// admitted) aborts with a diagnostic instead of spinning forever.
	MaxTicks int `mapstructure:"max_ticks"`

	Database     DatabaseConfig     `mapstructure:"database"`
	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`
	Generator    GeneratorConfig    `mapstructure:"generator"`
}

// DefaultMaxTicks is two simulated weeks of minutes.
const DefaultMaxTicks = 14 * 24 * 60

// LoadConfig initializes and reads the configuration using Viper. A missing
// config file is fine when none was named explicitly; flags and environment
// variables then provide everything.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv()

	viper.SetDefault("output_destination", "console")
	viper.SetDefault("max_ticks", DefaultMaxTicks)
	viper.SetDefault("generator.command_count", 50)
	viper.SetDefault("generator.horizon_days", 2)
	viper.SetDefault("generator.express_ratio", 0.3)
	viper.SetDefault("generator.appointment_ratio", 0.2)
	viper.SetDefault("generator.cancel_ratio", 0.1)
	viper.SetDefault("generator.status_ratio", 0.15)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}
