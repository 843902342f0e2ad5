package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

const (
	LLMProviderAnthropic = "anthropic"
	LLMProviderGemini    = "gemini"

	GeocoderNominatim = "nominatim"
	GeocoderGoogle    = "google"
)

// apiKeyEnvVars are read without the TRAVEL_ prefix.
var apiKeyEnvVars = []string{"DEEPSEEK_API_KEY", "GOOGLE_GEMINI_API_KEY", "GOOGLE_MAPS_API_KEY"}

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Server struct {
		HTTPPort     string        `mapstructure:"HTTPPort"`
		Timeout      time.Duration `mapstructure:"HTTPTimeout"`
		ReadTimeout  time.Duration `mapstructure:"readTimeout"`
		WriteTimeout time.Duration `mapstructure:"writeTimeout"`
		IdleTimeout  time.Duration `mapstructure:"idleTimeout"`
	} `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Geocoding GeocodingConfig `mapstructure:"geocoding"`
}

// LLMConfig selects and configures the generative-text provider.
type LLMConfig struct {
	Provider    string  `mapstructure:"provider"`
	BaseURL     string  `mapstructure:"baseURL"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"maxTokens"`
	Temperature float64 `mapstructure:"temperature"`
	APIKey      string  `mapstructure:"apiKey"`
}

// GeocodingConfig selects and configures the geocoding provider.
type GeocodingConfig struct {
	Provider       string        `mapstructure:"provider"`
	BaseURL        string        `mapstructure:"baseURL"`
	UserAgent      string        `mapstructure:"userAgent"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Concurrency    int           `mapstructure:"concurrency"`
	FallbackJitter float64       `mapstructure:"fallbackJitter"`
	APIKey         string        `mapstructure:"apiKey"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// TRAVEL_LLM_MODEL overrides llm.model, and so on.
	v.SetEnvPrefix("TRAVEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, name := range apiKeyEnvVars {
		_ = v.BindEnv(strings.ToLower(name), name)
	}

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	resolveAPIKeys(&config, func(name string) string { return v.GetString(strings.ToLower(name)) })

	if err = config.Validate(); err != nil {
		return Config{}, err
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}

// resolveAPIKeys fills provider keys from the conventional environment variables
// when the config file leaves them empty.
func resolveAPIKeys(cfg *Config, getenv func(string) string) {
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case LLMProviderGemini:
			cfg.LLM.APIKey = getenv("GOOGLE_GEMINI_API_KEY")
		default:
			cfg.LLM.APIKey = getenv("DEEPSEEK_API_KEY")
		}
	}
	if cfg.Geocoding.APIKey == "" && cfg.Geocoding.Provider == GeocoderGoogle {
		cfg.Geocoding.APIKey = getenv("GOOGLE_MAPS_API_KEY")
	}
}

// Validate reports configuration that would make the service unusable.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Timeout <= 0 {
		errs = append(errs, errors.New("server.HTTPTimeout must be positive"))
	}
	switch c.LLM.Provider {
	case LLMProviderAnthropic, LLMProviderGemini:
	default:
		errs = append(errs, fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider))
	}
	if c.LLM.APIKey == "" {
		errs = append(errs, errors.New("llm api key is not set (DEEPSEEK_API_KEY, GOOGLE_GEMINI_API_KEY or llm.apiKey)"))
	}
	if c.LLM.Model == "" {
		errs = append(errs, errors.New("llm.model is required"))
	}
	if c.LLM.MaxTokens <= 0 {
		errs = append(errs, errors.New("llm.maxTokens must be positive"))
	}

	switch c.Geocoding.Provider {
	case GeocoderNominatim:
		if c.Geocoding.UserAgent == "" {
			errs = append(errs, errors.New("geocoding.userAgent is required by nominatim"))
		}
	case GeocoderGoogle:
		if c.Geocoding.APIKey == "" {
			errs = append(errs, errors.New("geocoding api key is not set (GOOGLE_MAPS_API_KEY or geocoding.apiKey)"))
		}
	default:
		errs = append(errs, fmt.Errorf("geocoding.provider %q is not supported", c.Geocoding.Provider))
	}
	if c.Geocoding.Concurrency <= 0 {
		errs = append(errs, errors.New("geocoding.concurrency must be positive"))
	}
	if c.Geocoding.FallbackJitter < 0 {
		errs = append(errs, errors.New("geocoding.fallbackJitter must not be negative"))
	}
	return errors.Join(errs...)
}
