// Package config loads crosswalk settings from an optional YAML file and
// CROSSWALK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/ethanolivertroy/crosswalk/internal/grc"
	"github.com/ethanolivertroy/crosswalk/internal/llm"
	"github.com/ethanolivertroy/crosswalk/internal/model"
)

type Config struct {
	Data   DataConfig   `mapstructure:"data"`
	Log    LogConfig    `mapstructure:"log"`
	Export ExportConfig `mapstructure:"export"`
	Rules  RulesConfig  `mapstructure:"rules"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Server ServerConfig `mapstructure:"server"`
}

// DataConfig selects the record store. URL wins over Dir; with neither
// set the built-in catalogs are used.
type DataConfig struct {
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format"`
	URL    string `mapstructure:"url"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// RulesConfig overrides the matching weights. Profiles are keyed by
// framework name or alias; zero bases and empty keyword lists keep the
// built-in values.
type RulesConfig struct {
	CrossReference int                             `mapstructure:"cross_reference"`
	ExactStandard  int                             `mapstructure:"exact_standard"`
	GapPenalty     int                             `mapstructure:"gap_penalty"`
	Profiles       map[string]grc.FrameworkProfile `mapstructure:"profiles"`
}

type LLMConfig struct {
	Provider       string `mapstructure:"provider"`
	Model          string `mapstructure:"model"`
	APIKey         string `mapstructure:"api_key"`
	OllamaURL      string `mapstructure:"ollama_url"`
	VertexProject  string `mapstructure:"vertex_project"`
	VertexLocation string `mapstructure:"vertex_location"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Load reads configPath, or crosswalk.yaml from the working directory or
// ~/.config/crosswalk when configPath is empty. A missing default file is
// not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	w := grc.DefaultWeights()
	v.SetDefault("data.dir", "")
	v.SetDefault("data.format", "yaml")
	v.SetDefault("data.url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("export.dir", ".")
	v.SetDefault("rules.cross_reference", w.CrossReference)
	v.SetDefault("rules.exact_standard", w.ExactStandard)
	v.SetDefault("rules.gap_penalty", w.GapPenalty)
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.ollama_url", "http://localhost:11434")
	v.SetDefault("llm.vertex_project", "")
	v.SetDefault("llm.vertex_location", "")
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8001)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("crosswalk")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/crosswalk")
	}

	// CROSSWALK_DATA_DIR, CROSSWALK_LLM_PROVIDER, ...
	v.SetEnvPrefix("CROSSWALK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// conventional provider variables are honoured as well
	_ = v.BindEnv("llm.api_key", "CROSSWALK_LLM_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("llm.ollama_url", "CROSSWALK_LLM_OLLAMA_URL", "OLLAMA_URL")
	_ = v.BindEnv("llm.vertex_project", "CROSSWALK_LLM_VERTEX_PROJECT", "VERTEX_PROJECT", "GOOGLE_CLOUD_PROJECT")
	_ = v.BindEnv("llm.vertex_location", "CROSSWALK_LLM_VERTEX_LOCATION", "VERTEX_LOCATION", "GOOGLE_CLOUD_LOCATION")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// RuleSet overlays the configured weights and profiles on the built-in
// ones and validates the result.
func (c *Config) RuleSet() (*grc.RuleSet, error) {
	w := grc.Weights{
		CrossReference: c.Rules.CrossReference,
		ExactStandard:  c.Rules.ExactStandard,
		GapPenalty:     c.Rules.GapPenalty,
	}

	profiles := grc.DefaultProfiles()
	for name, override := range c.Rules.Profiles {
		fw, err := model.ParseFramework(name)
		if err != nil {
			return nil, fmt.Errorf("rules.profiles: %w", err)
		}
		p, ok := profiles[fw]
		if !ok {
			p = grc.FallbackProfile()
		}
		if override.Partial != 0 {
			p.Partial = override.Partial
		}
		if override.Keyword != 0 {
			p.Keyword = override.Keyword
		}
		if len(override.Keywords) > 0 {
			p.Keywords = override.Keywords
		}
		profiles[fw] = p
	}

	return grc.NewRuleSet(w, profiles)
}

// LLMConfig converts the llm section into a provider config, filling in
// the provider's default model.
func (c *Config) LLMConfig() llm.Config {
	cfg := llm.Config{
		Provider:       c.LLM.Provider,
		Model:          c.LLM.Model,
		APIKey:         c.LLM.APIKey,
		OllamaURL:      c.LLM.OllamaURL,
		VertexProject:  c.LLM.VertexProject,
		VertexLocation: c.LLM.VertexLocation,
	}
	if cfg.Model == "" {
		cfg.Model = llm.DefaultModel(cfg.Provider)
	}
	return cfg
}

// Address returns host:port for the A2A server
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
