package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Engine   EngineConfig   `mapstructure:"engine"`
	Database DatabaseConfig `mapstructure:"database"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
}

type EngineConfig struct {
	IntentThreshold    float64       `mapstructure:"intent_threshold"`
	SubIntentThreshold float64       `mapstructure:"sub_intent_threshold"`
	HistoryWindow      int           `mapstructure:"history_window"`
	LookupTimeout      time.Duration `mapstructure:"lookup_timeout"`
	NotesLimit         int           `mapstructure:"notes_limit"`
	EventsLimit        int           `mapstructure:"events_limit"`
	PlacesLimit        int           `mapstructure:"places_limit"`
	MessagesLimit      int           `mapstructure:"messages_limit"`
	TransactionsLimit  int           `mapstructure:"transactions_limit"`
	SampleLimit        int           `mapstructure:"sample_limit"`
}

type DatabaseConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	DBName      string `mapstructure:"dbname"`
	SSLMode     string `mapstructure:"sslmode"`
	UseInMemory bool   `mapstructure:"use_in_memory"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

func parseDatabaseURL(dbURL string) (DatabaseConfig, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return DatabaseConfig{}, err
	}

	password, _ := u.User.Password()
	port := 5432 // default PostgreSQL port
	if u.Port() != "" {
		fmt.Sscanf(u.Port(), "%d", &port)
	}

	// Remove leading slash from path to get database name
	dbName := strings.TrimPrefix(u.Path, "/")

	return DatabaseConfig{
		Host:     u.Hostname(),
		Port:     port,
		User:     u.User.Username(),
		Password: password,
		DBName:   dbName,
		SSLMode:  "disable",
	}, nil
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("engine.intent_threshold", 0.1)
	v.SetDefault("engine.sub_intent_threshold", 0.1)
	v.SetDefault("engine.history_window", 6)
	v.SetDefault("engine.lookup_timeout", "2s")
	v.SetDefault("engine.notes_limit", 8)
	v.SetDefault("engine.events_limit", 10)
	v.SetDefault("engine.places_limit", 8)
	v.SetDefault("engine.messages_limit", 10)
	v.SetDefault("engine.transactions_limit", 10)
	v.SetDefault("engine.sample_limit", 2)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.use_in_memory", false)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 150)
	v.SetDefault("openai.temperature", 0.2)

	// Enable environment variable support
	v.AutomaticEnv()

	// Read the config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Check for DATABASE_URL environment variable
	if dbURL := v.GetString("DATABASE_URL"); dbURL != "" {
		dbConfig, err := parseDatabaseURL(dbURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %v", err)
		}
		dbConfig.UseInMemory = config.Database.UseInMemory
		config.Database = dbConfig
	}

	if apiKey := v.GetString("OPENAI_API_KEY"); apiKey != "" {
		config.OpenAI.APIKey = apiKey
	}

	return &config, nil
}

// DefaultEngineConfig returns the engine tuning used when no config file is
// loaded, e.g. by callers that embed the engine directly.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		IntentThreshold:    0.1,
		SubIntentThreshold: 0.1,
		HistoryWindow:      6,
		LookupTimeout:      2 * time.Second,
		NotesLimit:         8,
		EventsLimit:        10,
		PlacesLimit:        8,
		MessagesLimit:      10,
		TransactionsLimit:  10,
		SampleLimit:        2,
	}
}
