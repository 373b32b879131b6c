package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/mcoot/userportal/internal/client"
	"github.com/mcoot/userportal/internal/factory"
	filestorage "github.com/mcoot/userportal/internal/storage/file"
	redisstorage "github.com/mcoot/userportal/internal/storage/redis"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds CLI configuration. Keys match the flag names so a YAML config
// file can set any flag.
type Config struct {
	ServerURL      string        `koanf:"server"`
	ConfigFile     string        `koanf:"config"`
	Store          string        `koanf:"store"`
	StorePath      string        `koanf:"store-path"`
	RedisURL       string        `koanf:"redis-url"`
	RedisNamespace string        `koanf:"redis-namespace"`
	Timeout        time.Duration `koanf:"timeout"`
	Output         string        `koanf:"output"`
	Verbose        bool          `koanf:"verbose"`
}

// DefaultConfig returns a Config with defaults taken from the environment
func DefaultConfig() *Config {
	return &Config{
		ServerURL:      getEnvOrDefault("USERCTL_SERVER", factory.DefaultServerURL),
		ConfigFile:     os.Getenv("USERCTL_CONFIG"),
		Store:          getEnvOrDefault("USERCTL_STORE", factory.StoreTypeFile),
		StorePath:      getEnvOrDefault("USERCTL_STORE_PATH", filestorage.DefaultPath()),
		RedisURL:       getEnvOrDefault("USERCTL_REDIS_URL", redisstorage.DefaultConfig().URL),
		RedisNamespace: getEnvOrDefault("USERCTL_REDIS_NAMESPACE", redisstorage.DefaultConfig().Namespace),
		Timeout:        getDurationEnvOrDefault("USERCTL_TIMEOUT", client.DefaultTimeout),
		Output:         OutputText,
		Verbose:        false,
	}
}

// LoadConfig merges the config file named by the --config flag with the
// parsed flags. Flags set on the command line win over the file, and the
// file wins over flag defaults.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	path, _ := flags.GetString("config")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	loaded := &Config{}
	if err := k.Unmarshal("", loaded); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := loaded.Validate(); err != nil {
		return nil, err
	}
	return loaded, nil
}

// Validate checks option values cobra cannot check on its own
func (c *Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("invalid output format %q: must be 'text' or 'json'", c.Output)
	}

	switch c.Store {
	case factory.StoreTypeMemory, factory.StoreTypeFile, factory.StoreTypeRedis:
	default:
		return fmt.Errorf("invalid store %q: must be 'memory', 'file' or 'redis'", c.Store)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s", c.Timeout)
	}
	return nil
}

// FactoryConfig converts the CLI configuration into application wiring
func (c *Config) FactoryConfig() factory.Config {
	fc := factory.Config{
		ServerURL: c.ServerURL,
		StoreType: c.Store,
		StorePath: c.StorePath,
		Timeout:   c.Timeout,
	}

	if c.Store == factory.StoreTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		redisCfg.Namespace = c.RedisNamespace
		fc.RedisConfig = &redisCfg
	}

	return fc
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDurationEnvOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
