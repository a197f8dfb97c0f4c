package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar permet de pointer vers un fichier YAML explicite.
const ConfigPathEnvVar = "ANIME_CONFIG"

const defaultConfigFile = "anime-api.yaml"

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Log       LogConfig       `koanf:"log"`
	CORS      CORSConfig      `koanf:"cors"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

type ServerConfig struct {
	Addr           string        `koanf:"addr"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// DatasetConfig décrit le fichier source. Le chemin est passé tel quel au
// loader: changer de fixture se fait par la config, pas par le code.
type DatasetConfig struct {
	Path     string `koanf:"path"`
	Selector string `koanf:"selector"`
	// MaxConcurrentLoads borne les lectures simultanées du fichier; 0 = sans limite.
	MaxConcurrentLoads int `koanf:"max_concurrent_loads"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// RateLimitConfig: Requests == 0 désactive la limitation.
type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           "127.0.0.1:8080",
			RequestTimeout: 30 * time.Second,
		},
		Dataset: DatasetConfig{
			Path:               "assets/anime.json",
			Selector:           "data",
			MaxConcurrentLoads: 16,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{},
		},
		RateLimit: RateLimitConfig{
			Requests: 0,
			Window:   time.Minute,
		},
	}
}

var envMappings = map[string]string{
	"ANIME_ADDR":                "server.addr",
	"ANIME_REQUEST_TIMEOUT":     "server.request_timeout",
	"ANIME_DATASET_PATH":        "dataset.path",
	"ANIME_DATASET_SELECTOR":    "dataset.selector",
	"ANIME_DATASET_MAX_LOADS":   "dataset.max_concurrent_loads",
	"ANIME_LOG_LEVEL":           "log.level",
	"ANIME_LOG_FORMAT":          "log.format",
	"ANIME_CORS_ORIGINS":        "cors.allowed_origins",
	"ANIME_RATE_LIMIT_REQUESTS": "rate_limit.requests",
	"ANIME_RATE_LIMIT_WINDOW":   "rate_limit.window",
}

// Load applique, dans l'ordre: valeurs par défaut, fichier YAML optionnel,
// variables d'environnement.
func Load() (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// Les variables inconnues renvoient "" et sont ignorées.
	if err := k.Load(env.Provider("ANIME_", ".", func(key string) string {
		return envMappings[key]
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	if err := splitListFields(k); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.CORS.AllowedOrigins = cleanList(cfg.CORS.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if strings.TrimSpace(c.Dataset.Path) == "" {
		errs = append(errs, errors.New("dataset.path is required"))
	}
	if c.Dataset.MaxConcurrentLoads < 0 {
		errs = append(errs, errors.New("dataset.max_concurrent_loads must be >= 0"))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	if c.RateLimit.Requests < 0 {
		errs = append(errs, errors.New("rate_limit.requests must be >= 0"))
	}
	if c.RateLimit.Requests > 0 && c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("rate_limit.window must be > 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		return p
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile
	}
	return ""
}

var listPaths = []string{"cors.allowed_origins"}

// splitListFields découpe les listes reçues en chaîne "a,b" (env) en slices.
func splitListFields(k *koanf.Koanf) error {
	for _, path := range listPaths {
		v, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		if err := k.Set(path, cleanList(strings.Split(v, ","))); err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
	}
	return nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
