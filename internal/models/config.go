package models

import (
	"fmt"
	"time"

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

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

type KafkaConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	BrokerList       string `mapstructure:"broker_list"`
	TopicPrefix      string `mapstructure:"topic_prefix"`
	SessionTimeoutMs int    `mapstructure:"session_timeout_ms"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

// ExportConfig controls the optional Parquet export of Monte Carlo
// distributions and analysis summaries.
type ExportConfig struct {
	Enabled      bool               `mapstructure:"enabled"`
	Destination  string             `mapstructure:"destination"` // "local" or "s3"
	Path         string             `mapstructure:"path"`
	Folder       string             `mapstructure:"folder"`
	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`
}

type Config struct {
	Seed                 int           `mapstructure:"seed"`
	ListenAddr           string        `mapstructure:"listen_addr"`
	MonteCarloIterations int           `mapstructure:"monte_carlo_iterations"`
	GridPoints           int           `mapstructure:"grid_points"`
	MaxProtocolSize      int           `mapstructure:"max_protocol_size"`
	AnalysisTimeout      time.Duration `mapstructure:"analysis_timeout"`
	Workers              int           `mapstructure:"workers"`
	EfficacyWeight       float64       `mapstructure:"efficacy_weight"`
	CostWeight           float64       `mapstructure:"cost_weight"`
	SafetyWeight         float64       `mapstructure:"safety_weight"`

	// OutputDestination selects an additional event sink besides Kafka:
	// "console", "json" or empty for none.
	OutputDestination string `mapstructure:"output_destination"`
	OutputPath        string `mapstructure:"output_path"`
	OutputFolder      string `mapstructure:"output_folder"`

	Database DatabaseConfig `mapstructure:"database"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Export   ExportConfig   `mapstructure:"export"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("monte_carlo_iterations", 1000)
	viper.SetDefault("grid_points", 10)
	viper.SetDefault("max_protocol_size", 6)
	viper.SetDefault("analysis_timeout", "30s")
	viper.SetDefault("efficacy_weight", 0.5)
	viper.SetDefault("cost_weight", 0.3)
	viper.SetDefault("safety_weight", 0.2)
	viper.SetDefault("output_path", "output")
	viper.SetDefault("output_folder", "analysis_events")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
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
