package config

import (
	"time"

	"github.com/vclens/vclens/internal/providers"
)

// Config holds vclens configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Server   ServerCfg             `mapstructure:"server" yaml:"server"`
	Gateways map[string]GatewayCfg `mapstructure:"gateways" yaml:"gateways"`
	Model    ModelCfg              `mapstructure:"model" yaml:"model"`
	Storage  StorageCfg            `mapstructure:"storage" yaml:"storage"`
}

// ServerCfg configures the HTTP listener.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// GatewayCfg configures a model gateway.
type GatewayCfg struct {
	Type           string `mapstructure:"type" yaml:"type"`                       // "openai"
	BaseURL        string `mapstructure:"base_url" yaml:"base_url"`               // OpenAI-compatible endpoint
	Model          string `mapstructure:"model" yaml:"model"`                     // Model name
	APIKey         string `mapstructure:"api_key" yaml:"api_key"`                 // API key (supports ${ENV_VAR} syntax)
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"` // HTTP timeout
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
}

// ModelCfg holds the fixed decoding parameters and gateway selection
// applied to every extraction and chat call.
type ModelCfg struct {
	Gateway       string  `mapstructure:"gateway" yaml:"gateway"` // Name of the gateway to use
	SystemMessage string  `mapstructure:"system_message" yaml:"system_message"`
	MaxTokens     int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	Temperature   float64 `mapstructure:"temperature" yaml:"temperature"`
	TopP          float64 `mapstructure:"top_p" yaml:"top_p"`
}

// StorageCfg configures uploaded document storage.
type StorageCfg struct {
	// Dir is the upload directory. Empty means {home}/uploads.
	Dir string `mapstructure:"dir" yaml:"dir"`
	// Layout is "flat" (files keyed by name) or "contract-id"
	// (one generated-id directory per upload).
	Layout string `mapstructure:"layout" yaml:"layout"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerCfg{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Gateways: map[string]GatewayCfg{
			"openai": {
				Type:           "openai",
				BaseURL:        "",
				Model:          "gpt-4o-mini",
				APIKey:         "${OPENAI_API_KEY}",
				TimeoutSeconds: 300,
				Enabled:        true,
			},
		},
		Model: ModelCfg{
			Gateway:       "openai",
			SystemMessage: "",
			MaxTokens:     providers.DefaultMaxTokens,
			Temperature:   providers.DefaultTemperature,
			TopP:          providers.DefaultTopP,
		},
		Storage: StorageCfg{
			Dir:    "",
			Layout: "flat",
		},
	}
}

// GetGateway returns a gateway config by name.
func (c *Config) GetGateway(name string) (GatewayCfg, bool) {
	cfg, ok := c.Gateways[name]
	return cfg, ok
}

// EnabledGateways returns all enabled gateways.
func (c *Config) EnabledGateways() map[string]GatewayCfg {
	result := make(map[string]GatewayCfg)
	for name, cfg := range c.Gateways {
		if cfg.Enabled {
			result[name] = cfg
		}
	}
	return result
}

// Timeout returns the gateway timeout as a duration.
func (g GatewayCfg) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}
