package agent

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/tagus/supplysense/pkg/interfaces"
	"github.com/tagus/supplysense/pkg/logging"
	"github.com/tagus/supplysense/pkg/memory"
	"github.com/tagus/supplysense/pkg/ontology"
)

// Settings is the YAML agent-settings file format.
type Settings struct {
	Strategy string `yaml:"strategy"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`

	Memory struct {
		Backend    string `yaml:"backend"` // inprocess (default) or redis
		MaxEntries int    `yaml:"max_entries"`

		Redis struct {
			URL      string `yaml:"url"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"memory"`
}

// LoadSettings reads and parses a YAML settings file.
func LoadSettings(path string) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	settings := &Settings{}
	if err := yaml.Unmarshal(raw, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	if settings.Strategy == "" {
		settings.Strategy = StrategyReflex
	}
	return settings, nil
}

// Build constructs the configured agent over g.
func (s *Settings) Build(g *ontology.Graph) (interfaces.Agent, error) {
	level := zerolog.InfoLevel
	if s.Logging.Level != "" {
		parsed, err := zerolog.ParseLevel(s.Logging.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", s.Logging.Level, err)
		}
		level = parsed
	}
	logger := logging.New(logging.WithLevel(level))

	opts := []Option{WithLogger(logger)}

	switch s.Memory.Backend {
	case "", "inprocess":
		if s.Memory.MaxEntries > 0 {
			opts = append(opts, WithMemory(memory.NewContextBuffer(s.Memory.MaxEntries)))
		}
	case "redis":
		m, err := memory.NewRedisContextMemoryFromConfig(memory.RedisConfig{
			URL:      s.Memory.Redis.URL,
			Password: s.Memory.Redis.Password,
			DB:       s.Memory.Redis.DB,
		}, memory.WithMaxEntries(s.Memory.MaxEntries))
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithMemory(m))
	default:
		return nil, fmt.Errorf("unknown memory backend %q", s.Memory.Backend)
	}

	return New(s.Strategy, g, opts...)
}
