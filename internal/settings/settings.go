// Package settings holds run settings that are not part of a dataset config:
// seeding, sampler limits, renderer quality and logging.
package settings

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const EnvPrefix = "COMMEDIA"

type Settings struct {
	Seed    uint64        `mapstructure:"seed" yaml:"seed"`
	Sampler SamplerConfig `mapstructure:"sampler" yaml:"sampler"`
	Render  RenderConfig  `mapstructure:"render" yaml:"render"`
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
}

// SamplerConfig caps the rejection loops; 0 disables a cap.
type SamplerConfig struct {
	MaxFrustumTries    int `mapstructure:"max_frustum_tries" yaml:"max_frustum_tries"`
	MaxVisibilityTries int `mapstructure:"max_visibility_tries" yaml:"max_visibility_tries"`
}

type RenderConfig struct {
	Supersample int     `mapstructure:"supersample" yaml:"supersample"`
	HeadRadius  float64 `mapstructure:"head_radius" yaml:"head_radius"`
}

type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("seed", 0)

	v.SetDefault("sampler.max_frustum_tries", 100000)
	v.SetDefault("sampler.max_visibility_tries", 10000)

	v.SetDefault("render.supersample", 4)
	v.SetDefault("render.head_radius", 0.09)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "commedia")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", false)
}

// Load reads settings layered as defaults, then file, then COMMEDIA_* env.
// An empty file looks for commedia.yaml in the working directory and
// tolerates its absence; an explicit file must exist.
func Load(v *viper.Viper, file string) (*Settings, error) {
	SetDefaults(v)
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("commedia")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "error reading settings file")
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal settings")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) Validate() error {
	if s.Sampler.MaxFrustumTries < 0 || s.Sampler.MaxVisibilityTries < 0 {
		return errors.New("sampler limits must not be negative")
	}
	if s.Render.Supersample < 1 {
		return errors.Errorf("render.supersample must be at least 1, got %d", s.Render.Supersample)
	}
	if s.Render.HeadRadius <= 0 {
		return errors.Errorf("render.head_radius must be positive, got %g", s.Render.HeadRadius)
	}
	return nil
}
