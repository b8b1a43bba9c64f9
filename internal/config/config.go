package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "NEWS_AGGREGATOR_CONFIG"
	dotenvPathEnv     = "NEWS_AGGREGATOR_DOTENV"
	databaseDriverEnv = "DATABASE_DRIVER"
	databaseDSNEnv    = "DATABASE_DSN"
	newsAPIKeyEnv     = "NEWSAPI_KEY"
	openAIKeyEnv      = "OPENAI_API_KEY"
	openAIModelEnv    = "OPENAI_MODEL"
	httpAddrEnv       = "HTTP_ADDR"
	baseURLEnv        = "NEWS_API_URL"
	logLevelEnv       = "LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Server     ServerConfig     `yaml:"server"`
	Client     ClientConfig     `yaml:"client"`
	Database   DatabaseConfig   `yaml:"database"`
	Providers  ProviderConfig   `yaml:"providers"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Ranking    RankingConfig    `yaml:"ranking"`
	Ingestion  IngestionConfig  `yaml:"ingestion"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// ClientConfig is consumed only by the CLI client commands.
type ClientConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// DatabaseConfig describes the relational store. Driver is "sqlite" or "postgres".
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// ProviderConfig groups settings for article sources. Order is the
// fallback priority for a single logical fetch.
type ProviderConfig struct {
	Order   []string      `yaml:"order"`
	Timeout time.Duration `yaml:"timeout"`
	NewsAPI NewsAPIConfig `yaml:"newsapi"`
	GDELT   GDELTConfig   `yaml:"gdelt"`
	RSS     RSSConfig     `yaml:"rss"`
	Sample  SampleConfig  `yaml:"sample"`
}

// NewsAPIConfig configures the newsapi.org adapter; an empty key disables it.
type NewsAPIConfig struct {
	Endpoint       string        `yaml:"endpoint"`
	APIKey         string        `yaml:"apiKey"`
	Country        string        `yaml:"country"`
	PageSize       int           `yaml:"pageSize"`
	AllowedSources []string      `yaml:"allowedSources"`
	MinInterval    time.Duration `yaml:"minInterval"`
}

// GDELTConfig configures the GDELT DOC API adapter.
type GDELTConfig struct {
	Endpoint       string        `yaml:"endpoint"`
	MaxRecords     int           `yaml:"maxRecords"`
	Languages      []string      `yaml:"languages"`
	AllowedDomains []string      `yaml:"allowedDomains"`
	MinInterval    time.Duration `yaml:"minInterval"`
}

// RSSConfig maps topic categories to feed URLs.
type RSSConfig struct {
	Feeds    map[string][]string `yaml:"feeds"`
	MaxItems int                 `yaml:"maxItems"`
}

// SampleConfig toggles the static fallback sample set.
type SampleConfig struct {
	Enabled bool `yaml:"enabled"`
}

// SummarizerConfig defines how to contact the generative summarization API.
// An empty APIKey selects the extractive summary.
type SummarizerConfig struct {
	Endpoint     string        `yaml:"endpoint"`
	Model        string        `yaml:"model"`
	APIKey       string        `yaml:"apiKey"`
	Temperature  float64       `yaml:"temperature"`
	MaxTokens    int           `yaml:"maxTokens"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxSentences int           `yaml:"maxSentences"`
}

// RankingConfig tunes recommendation scoring and windows.
type RankingConfig struct {
	DirectWeight     float64       `yaml:"directWeight"`
	CategoryWeight   float64       `yaml:"categoryWeight"`
	SimilarityWeight float64       `yaml:"similarityWeight"`
	RecentWindow     time.Duration `yaml:"recentWindow"`
	FallbackWindow   time.Duration `yaml:"fallbackWindow"`
	DefaultK         int           `yaml:"defaultK"`
	MaxK             int           `yaml:"maxK"`
}

// IngestionConfig tunes the ingestion entry points.
type IngestionConfig struct {
	DefaultTopic    string        `yaml:"defaultTopic"`
	DailyCategories []string      `yaml:"dailyCategories"`
	RetentionWindow time.Duration `yaml:"retentionWindow"`
	FetchLimit      int           `yaml:"fetchLimit"`
}

// Load reads an optional .env file and YAML configuration, then applies
// environment overrides. Unreadable files fall back to defaults.
func Load() Config {
	loadDotenv()

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			fileCfg := defaultConfig()
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = fileCfg
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Providers.Order) == 0 {
		cfg.Providers.Order = defaultConfig().Providers.Order
	}
	if len(cfg.Ingestion.DailyCategories) == 0 {
		cfg.Ingestion.DailyCategories = defaultConfig().Ingestion.DailyCategories
	}

	return cfg
}

func loadDotenv() {
	path := os.Getenv(dotenvPathEnv)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("config: cannot load %s: %v", path, err)
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDriverEnv); v != "" {
		c.Database.Driver = strings.ToLower(v)
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(newsAPIKeyEnv); v != "" {
		c.Providers.NewsAPI.APIKey = v
	}

	if v := os.Getenv(openAIKeyEnv); v != "" {
		c.Summarizer.APIKey = v
	}

	if v := os.Getenv(openAIModelEnv); v != "" {
		c.Summarizer.Model = v
	}

	if v := os.Getenv(httpAddrEnv); v != "" {
		c.Server.Addr = v
	}

	if v := os.Getenv(baseURLEnv); v != "" {
		c.Client.BaseURL = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Server:  ServerConfig{Addr: "127.0.0.1:8008"},
		Client:  ClientConfig{BaseURL: "http://127.0.0.1:8008", Timeout: 60 * time.Second},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "db/news.db",
		},
		Providers: ProviderConfig{
			Order:   []string{"newsapi", "gdelt", "rss", "sample"},
			Timeout: 20 * time.Second,
			NewsAPI: NewsAPIConfig{
				Endpoint: "https://newsapi.org/v2/top-headlines",
				Country:  "us",
				PageSize: 50,
			},
			GDELT: GDELTConfig{
				Endpoint:    "https://api.gdeltproject.org/api/v2/doc/doc",
				MaxRecords:  80,
				Languages:   []string{"English"},
				MinInterval: 5 * time.Second,
			},
			RSS: RSSConfig{
				MaxItems: 50,
				Feeds: map[string][]string{
					"general":       {"https://feeds.bbci.co.uk/news/rss.xml"},
					"technology":    {"https://feeds.bbci.co.uk/news/technology/rss.xml"},
					"business":      {"https://feeds.bbci.co.uk/news/business/rss.xml"},
					"health":        {"https://feeds.bbci.co.uk/news/health/rss.xml"},
					"science":       {"https://feeds.bbci.co.uk/news/science_and_environment/rss.xml"},
					"entertainment": {"https://feeds.bbci.co.uk/news/entertainment_and_arts/rss.xml"},
					"sports":        {"https://feeds.bbci.co.uk/sport/rss.xml"},
				},
			},
			Sample: SampleConfig{Enabled: false},
		},
		Summarizer: SummarizerConfig{
			Endpoint:     "https://api.openai.com/v1/chat/completions",
			Model:        "gpt-4o-mini",
			Temperature:  0.2,
			MaxTokens:    200,
			Timeout:      20 * time.Second,
			MaxSentences: 3,
		},
		Ranking: RankingConfig{
			DirectWeight:   3.0,
			CategoryWeight: 2.0,
			RecentWindow:   36 * time.Hour,
			FallbackWindow: 7 * 24 * time.Hour,
			DefaultK:       10,
			MaxK:           100,
		},
		Ingestion: IngestionConfig{
			DefaultTopic:    "technology",
			DailyCategories: []string{"general", "business", "technology", "sports", "entertainment", "health", "science"},
			RetentionWindow: 7 * 24 * time.Hour,
			FetchLimit:      80,
		},
	}
}
