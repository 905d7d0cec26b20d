package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"

	"github.com/cool-spots/internal/domain"
)

type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	OpenData OpenDataConfig
	Search   SearchConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	Env             string
	DefaultPageSize int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	// Backend - "memory" (по умолчанию) или "redis"
	Backend   string
	TTL       time.Duration
	KeyPrefix string
}

type LogConfig struct {
	Level  string
	Format string
}

type OpenDataConfig struct {
	ActivitiesURL      string
	GreenSpacesURL     string
	FountainsURL       string
	BaseURL            string
	GreenSpacesBaseURL string
	ActivitiesDataset  string
	GreenSpacesDataset string
	FountainsDataset   string
	RequestTimeout     time.Duration
	RetryMax           int
}

type SearchConfig struct {
	SynonymsFile string
}

type WorkerConfig struct {
	Enabled         bool
	RefreshSchedule string
	RefreshOnStart  bool
}

const (
	defaultBaseURL            = "https://opendata.paris.fr/api/explore/v2.1/catalog/datasets"
	defaultGreenSpacesBaseURL = "https://parisdata.opendatasoft.com/api/explore/v2.1/catalog/datasets"

	defaultActivitiesDataset  = "ilots-de-fraicheur-equipements-activites"
	defaultGreenSpacesDataset = "ilots-de-fraicheur-espaces-verts-frais"
	defaultFountainsDataset   = "fontaines-a-boire"
)

// Load читает конфигурацию из файла (если он есть) и переменных окружения
func Load(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = ".env"
	}
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// отсутствие .env допустимо: всё можно задать через окружение
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            v.GetString("API_HOST"),
			Port:            v.GetInt("API_PORT"),
			Env:             v.GetString("API_ENV"),
			DefaultPageSize: v.GetInt("DEFAULT_PAGE_SIZE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Backend:   v.GetString("CACHE_BACKEND"),
			TTL:       time.Duration(v.GetInt("CACHE_TTL")) * time.Second,
			KeyPrefix: v.GetString("CACHE_KEY_PREFIX"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		OpenData: OpenDataConfig{
			ActivitiesURL:      v.GetString("OPENDATA_ACTIVITIES_URL"),
			GreenSpacesURL:     v.GetString("OPENDATA_GREEN_SPACES_URL"),
			FountainsURL:       v.GetString("OPENDATA_FOUNTAINS_URL"),
			BaseURL:            v.GetString("OPENDATA_BASE_URL"),
			GreenSpacesBaseURL: v.GetString("OPENDATA_GREEN_SPACES_BASE_URL"),
			ActivitiesDataset:  v.GetString("OPENDATA_ACTIVITIES_DATASET"),
			GreenSpacesDataset: v.GetString("OPENDATA_GREEN_SPACES_DATASET"),
			FountainsDataset:   v.GetString("OPENDATA_FOUNTAINS_DATASET"),
			RequestTimeout:     time.Duration(v.GetInt("OPENDATA_REQUEST_TIMEOUT")) * time.Second,
			RetryMax:           v.GetInt("OPENDATA_RETRY_MAX"),
		},
		Search: SearchConfig{
			SynonymsFile: v.GetString("SYNONYMS_FILE"),
		},
		Worker: WorkerConfig{
			Enabled:         v.GetBool("WORKER_ENABLED"),
			RefreshSchedule: v.GetString("CACHE_REFRESH_SCHEDULE"),
			RefreshOnStart:  v.GetBool("CACHE_REFRESH_ON_START"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("DEFAULT_PAGE_SIZE", 8)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("CACHE_BACKEND", "memory")
	v.SetDefault("CACHE_TTL", 2*60*60)
	v.SetDefault("CACHE_KEY_PREFIX", "cool-spots")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "")

	v.SetDefault("OPENDATA_BASE_URL", defaultBaseURL)
	v.SetDefault("OPENDATA_GREEN_SPACES_BASE_URL", defaultGreenSpacesBaseURL)
	v.SetDefault("OPENDATA_ACTIVITIES_DATASET", defaultActivitiesDataset)
	v.SetDefault("OPENDATA_GREEN_SPACES_DATASET", defaultGreenSpacesDataset)
	v.SetDefault("OPENDATA_FOUNTAINS_DATASET", defaultFountainsDataset)
	v.SetDefault("OPENDATA_ACTIVITIES_URL", exportURL(defaultBaseURL, defaultActivitiesDataset))
	v.SetDefault("OPENDATA_GREEN_SPACES_URL", exportURL(defaultGreenSpacesBaseURL, defaultGreenSpacesDataset))
	v.SetDefault("OPENDATA_FOUNTAINS_URL", exportURL(defaultBaseURL, defaultFountainsDataset))
	v.SetDefault("OPENDATA_REQUEST_TIMEOUT", 30)
	v.SetDefault("OPENDATA_RETRY_MAX", 0)

	v.SetDefault("WORKER_ENABLED", false)
	v.SetDefault("CACHE_REFRESH_SCHEDULE", "0 */2 * * *")
	v.SetDefault("CACHE_REFRESH_ON_START", true)
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("invalid CACHE_BACKEND %q: expected memory or redis", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if c.Server.DefaultPageSize <= 0 {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be positive")
	}
	return nil
}

func exportURL(baseURL, datasetID string) string {
	return fmt.Sprintf("%s/%s/exports/json", baseURL, datasetID)
}

// Datasets возвращает описания трёх источников; порядок совпадает с domain.AllCategories
func (c *Config) Datasets() []domain.Dataset {
	return []domain.Dataset{
		{
			ID:       c.OpenData.ActivitiesDataset,
			Category: domain.CategoryActivities,
			URL:      c.OpenData.ActivitiesURL,
			BaseURL:  c.OpenData.BaseURL,
		},
		{
			ID:       c.OpenData.GreenSpacesDataset,
			Category: domain.CategoryGreenSpaces,
			URL:      c.OpenData.GreenSpacesURL,
			BaseURL:  c.OpenData.GreenSpacesBaseURL,
		},
		{
			ID:       c.OpenData.FountainsDataset,
			Category: domain.CategoryWaterFountains,
			URL:      c.OpenData.FountainsURL,
			BaseURL:  c.OpenData.BaseURL,
		},
	}
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
