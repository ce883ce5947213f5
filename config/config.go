package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ErrNoConfig is returned when an explicitly requested config file is missing.
var ErrNoConfig = errors.New("config file not found")

// EnvPrefix prefixes every environment override, e.g. CALLCHECK_SERVICES_NLP_URL.
const EnvPrefix = "CALLCHECK"

type Service struct {
	URL        string `yaml:"url" mapstructure:"url"`
	TimeoutSec int    `yaml:"timeout_sec" mapstructure:"timeout_sec"`
	Retries    int    `yaml:"retries" mapstructure:"retries"`
}
type Services struct {
	NLP Service `yaml:"nlp" mapstructure:"nlp"`
}
type Workers struct {
	Annotate  int `yaml:"annotate" mapstructure:"annotate"`
	Dialogues int `yaml:"dialogues" mapstructure:"dialogues"`
}

// Windows sizes the lookup windows over a dialogue's manager turns.
type Windows struct {
	Leading  int `yaml:"leading" mapstructure:"leading"`
	Trailing int `yaml:"trailing" mapstructure:"trailing"`
}
type Report struct {
	Formats []string `yaml:"formats" mapstructure:"formats"`
}
type Root struct {
	Pipeline struct {
		Name      string `yaml:"name" mapstructure:"name"`
		Version   string `yaml:"version" mapstructure:"version"`
		LogLvl    string `yaml:"log_level" mapstructure:"log_level"`
		LogFormat string `yaml:"log_format" mapstructure:"log_format"`
	} `yaml:"pipeline" mapstructure:"pipeline"`
	Services Services `yaml:"services" mapstructure:"services"`
	Workers  Workers  `yaml:"workers" mapstructure:"workers"`
	Windows  Windows  `yaml:"windows" mapstructure:"windows"`
	Paths    struct {
		Transcripts string `yaml:"transcripts" mapstructure:"transcripts"`
		Gazetteer   string `yaml:"gazetteer" mapstructure:"gazetteer"`
		Outputs     string `yaml:"outputs" mapstructure:"outputs"`
	} `yaml:"paths" mapstructure:"paths"`
	Report Report `yaml:"report" mapstructure:"report"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pipeline.name", "callcheck")
	v.SetDefault("pipeline.version", "dev")
	v.SetDefault("pipeline.log_level", "info")
	v.SetDefault("pipeline.log_format", "text")
	v.SetDefault("services.nlp.url", "http://localhost:8001")
	v.SetDefault("services.nlp.timeout_sec", 10)
	v.SetDefault("services.nlp.retries", 2)
	v.SetDefault("workers.annotate", 8)
	v.SetDefault("workers.dialogues", 4)
	v.SetDefault("windows.leading", 5)
	v.SetDefault("windows.trailing", 6)
	v.SetDefault("paths.transcripts", "test_data.csv")
	v.SetDefault("paths.gazetteer", "russian_names.json")
	v.SetDefault("paths.outputs", "outputs")
	v.SetDefault("report.formats", []string{"csv", "json"})
}

// Load builds the config from defaults, a YAML file and CALLCHECK_* env vars.
// With an empty path the file is guessed from CONFIG_ENV; finding none is not
// an error.
func Load(path string) (*Root, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNoConfig, path)
		}
	} else {
		path = guess()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func guess() string {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	for _, p := range []string{
		filepath.Join("config", env, "config.yaml"),
		filepath.Join("src", "shared", "config.yaml"),
	} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate rejects settings the pipeline cannot run with.
func (r *Root) Validate() error {
	if r.Windows.Leading <= 0 || r.Windows.Trailing <= 0 {
		return fmt.Errorf("config: windows must be positive (leading=%d trailing=%d)", r.Windows.Leading, r.Windows.Trailing)
	}
	if r.Workers.Annotate <= 0 || r.Workers.Dialogues <= 0 {
		return fmt.Errorf("config: workers must be positive (annotate=%d dialogues=%d)", r.Workers.Annotate, r.Workers.Dialogues)
	}
	if r.Services.NLP.TimeoutSec <= 0 {
		return fmt.Errorf("config: services.nlp.timeout_sec must be positive")
	}
	for _, f := range r.Report.Formats {
		switch f {
		case "csv", "json", "sqlite":
		default:
			return fmt.Errorf("config: unknown report format %q", f)
		}
	}
	return nil
}

// YAML renders the effective config.
func (r *Root) YAML() ([]byte, error) { return yaml.Marshal(r) }

func DurSeconds(n int) time.Duration { return time.Duration(n) * time.Second }
