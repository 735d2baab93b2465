package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/tango/internal/questiongen"
	"github.com/abhisek/tango/internal/vocab"
)

// EnvPrefix prefixes every environment override, e.g. TANGO_QUIZ_COUNT.
const EnvPrefix = "TANGO"

// Config holds all configuration for the application.
type Config struct {
	Level    string     `mapstructure:"level"`
	Language string     `mapstructure:"language"`
	DB       string     `mapstructure:"db"`
	Data     DataConfig `mapstructure:"data"`
	Quiz     QuizConfig `mapstructure:"quiz"`
	Log      LogConfig  `mapstructure:"log"`
}

// DataConfig says where vocabulary and UI catalogs come from.
type DataConfig struct {
	// Source is "embedded", a directory, or an http(s) base URL.
	Source string `mapstructure:"source"`

	// Locales optionally overrides the built-in UI catalogs with a
	// directory of <lang>.json files.
	Locales string `mapstructure:"locales"`
}

// QuizConfig holds quiz defaults.
type QuizConfig struct {
	Mode string `mapstructure:"mode"`

	// Count is the number of questions. 0 means every selected item.
	Count int `mapstructure:"count"`

	CorrectDelay   time.Duration `mapstructure:"correct_delay"`
	IncorrectDelay time.Duration `mapstructure:"incorrect_delay"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// QuestionCounts are the counts offered by the UI, 0 standing for all.
var QuestionCounts = []int{5, 10, 20, 30, 0}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("level", string(vocab.DefaultLevel))
	v.SetDefault("language", "")
	v.SetDefault("db", "")

	v.SetDefault("data.source", "embedded")
	v.SetDefault("data.locales", "")

	v.SetDefault("quiz.mode", string(questiongen.ModeMixed))
	v.SetDefault("quiz.count", 10)
	v.SetDefault("quiz.correct_delay", 150*time.Millisecond)
	v.SetDefault("quiz.incorrect_delay", 1800*time.Millisecond)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
}

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"level":     "level",
	"lang":      "language",
	"db":        "db",
	"data":      "data.source",
	"log-level": "log.level",
}

// BindFlags binds the known flags present in fs to their config keys.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the config file, if any, and returns the validated config.
// An empty file means $XDG_CONFIG_HOME/tango/config.yaml, which may be
// absent. A file named explicitly must exist.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Language == "" {
		cfg.Language = string(DetectLanguage())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every enumerated field and numeric range.
func (c Config) Validate() error {
	if _, err := vocab.ParseLevel(c.Level); err != nil {
		return err
	}
	if _, err := vocab.ParseLanguage(c.Language); err != nil {
		return err
	}
	if _, err := questiongen.ParseMode(c.Quiz.Mode); err != nil {
		return err
	}
	if c.Quiz.Count < 0 {
		return fmt.Errorf("quiz.count must not be negative, got %d", c.Quiz.Count)
	}
	if c.Quiz.CorrectDelay < 0 || c.Quiz.IncorrectDelay < 0 {
		return fmt.Errorf("quiz delays must not be negative")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format: %q", c.Log.Format)
	}
	return nil
}

// VocabLevel returns the parsed level. Call after Validate.
func (c Config) VocabLevel() vocab.Level {
	l, _ := vocab.ParseLevel(c.Level)
	return l
}

// VocabLanguage returns the parsed language. Call after Validate.
func (c Config) VocabLanguage() vocab.Language {
	l, _ := vocab.ParseLanguage(c.Language)
	return l
}

// QuizMode returns the parsed quiz mode. Call after Validate.
func (c Config) QuizMode() questiongen.Mode {
	m, _ := questiongen.ParseMode(c.Quiz.Mode)
	return m
}

// DetectLanguage picks the UI language from LC_ALL, LC_MESSAGES or LANG,
// falling back to the default when none names a supported language.
func DetectLanguage() vocab.Language {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if s := os.Getenv(env); s != "" && s != "C" && s != "POSIX" {
			if l, err := vocab.ParseLanguage(s); err == nil {
				return l
			}
		}
	}
	return vocab.DefaultLanguage
}

// Dir returns the directory holding config.yaml.
func Dir() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "tango")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "tango")
	}
	return filepath.Join(home, ".config", "tango")
}
