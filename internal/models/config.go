package models

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type StorageConfig struct {
	Driver   string `mapstructure:"driver"`
	FilePath string `mapstructure:"file_path"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN returns the PostgreSQL connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type OutputConfig struct {
	Destination string `mapstructure:"destination"`
	Path        string `mapstructure:"path"`
}

type KafkaConfig struct {
	BrokerList  string `mapstructure:"broker_list"`
	TopicPrefix string `mapstructure:"topic_prefix"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type Config struct {
	PlayerName      string             `mapstructure:"player_name"`
	Seed            int64              `mapstructure:"seed"`
	SeatingPolicy   string             `mapstructure:"seating_policy"`
	TurnDelay       time.Duration      `mapstructure:"turn_delay"`
	ClearScreen     bool               `mapstructure:"clear_screen"`
	LeaderboardSize int                `mapstructure:"leaderboard_size"`
	Storage         StorageConfig      `mapstructure:"storage"`
	Database        DatabaseConfig     `mapstructure:"database"`
	Output          OutputConfig       `mapstructure:"output"`
	Kafka           KafkaConfig        `mapstructure:"kafka"`
	CloudStorage    CloudStorageConfig `mapstructure:"cloud_storage"`
	Log             LogConfig          `mapstructure:"log"`
}

// SetDefaults registers the default value of every config key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("player_name", "")
	v.SetDefault("seed", 0)
	v.SetDefault("seating_policy", SeatingPolicyBestFit)
	v.SetDefault("turn_delay", "1s")
	v.SetDefault("clear_screen", true)
	v.SetDefault("leaderboard_size", DefaultLeaderboardSize)

	v.SetDefault("storage.driver", StorageDriverFile)
	v.SetDefault("storage.file_path", "lunchrush_sessions.jsonl")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "lunchrush")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("output.destination", OutputNone)
	v.SetDefault("output.path", "output")

	v.SetDefault("kafka.broker_list", "localhost:9092")
	v.SetDefault("kafka.topic_prefix", "lunchrush_")

	v.SetDefault("cloud_storage.provider", "")
	v.SetDefault("cloud_storage.region", "us-east-1")
	v.SetDefault("cloud_storage.bucket_name", "")

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output_path", "stderr")
}

// LoadConfig initializes and reads the configuration using Viper. A missing
// default config file is not an error; a missing explicit one is.
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.GetViper()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".lunchrush")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("lunchrush")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return DecodeConfig(v)
}

// DecodeConfig unmarshals the settings held by v into a Config.
func DecodeConfig(v *viper.Viper) (*Config, error) {
	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (cfg *Config) Validate() error {
	switch cfg.SeatingPolicy {
	case SeatingPolicyBestFit, SeatingPolicyFirstFit, SeatingPolicyLargestFirst:
	default:
		return fmt.Errorf("unknown seating policy: %s", cfg.SeatingPolicy)
	}
	switch cfg.Storage.Driver {
	case StorageDriverFile, StorageDriverPostgres:
	default:
		return fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
	switch cfg.Output.Destination {
	case OutputNone, OutputConsole, OutputJSON, OutputKafka:
	default:
		return fmt.Errorf("unknown output destination: %s", cfg.Output.Destination)
	}
	if cfg.TurnDelay < 0 {
		return fmt.Errorf("turn_delay must not be negative, got %s", cfg.TurnDelay)
	}
	if cfg.LeaderboardSize <= 0 {
		cfg.LeaderboardSize = DefaultLeaderboardSize
	}
	return nil
}
