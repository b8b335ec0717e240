package cliparse

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort         = 3318
	DefaultDatabaseType = "sqlite"
	DefaultDatabaseURL  = "file:signup.db?_pragma=busy_timeout(5000)"
	DefaultRedirectPath = "/dashboard"
	DefaultLoginPath    = "/login"
	DefaultSessionTTL   = 7 * 24 * time.Hour
	DefaultAPITimeout   = 15 * time.Second
)

type Config struct {
	Port         int    `yaml:"port"`
	DatabaseURL  string `yaml:"database_url"`
	DatabaseType string `yaml:"database_type"`

	// Remote registration API (e.g. http://localhost:3319)
	AuthAPIURL string        `yaml:"auth_api_url"`
	APITimeout time.Duration `yaml:"api_timeout"`

	// Empty site key disables the CAPTCHA step entirely
	RecaptchaSiteKey string `yaml:"recaptcha_site_key"`
	RecaptchaSecret  string `yaml:"recaptcha_secret"`

	RedirectPath  string        `yaml:"redirect_path"`
	LoginPath     string        `yaml:"login_path"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	SecureCookies bool          `yaml:"secure_cookies"`

	IPHashSalt string `yaml:"ip_hash_salt"`
	JWTSecret  string `yaml:"jwt_secret"`

	ConfigFile string `yaml:"-"`

	// secureSet records an explicit flag or env value for SecureCookies, which
	// a config file must not override.
	secureSet bool
}

// LoadEnvFile loads KEY=VALUE pairs from a .env file without overriding
// variables already present in the environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ParseFlags parses the web server configuration.
// Precedence: CLI flags, then environment, then the YAML config file, then defaults.
func ParseFlags(args []string) (Config, error) {
	cfg, err := parse("signup-web", args)
	if err != nil {
		return Config{}, err
	}

	if cfg.AuthAPIURL == "" {
		return Config{}, errors.New("auth API URL required (use --api-url or AUTH_API_URL env)")
	}
	if cfg.IPHashSalt == "" {
		return Config{}, errors.New("IP_HASH_SALT required")
	}

	return cfg, nil
}

// ParseMockFlags parses the configuration of the development registration API.
func ParseMockFlags(args []string) (Config, error) {
	cfg, err := parse("signup-web mock-api", args)
	if err != nil {
		return Config{}, err
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	return cfg, nil
}

func parse(name string, args []string) (Config, error) {
	var cfg Config

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)

	fs.IntVarP(&cfg.Port, "port", "p", 0, "Server port")
	fs.StringVarP(&cfg.DatabaseURL, "database-url", "d", "", "Database URL")
	fs.StringVarP(&cfg.DatabaseType, "database-type", "t", "", "Database type (sqlite or postgres)")
	fs.StringVarP(&cfg.ConfigFile, "config", "c", "", "YAML config file")

	fs.StringVar(&cfg.AuthAPIURL, "api-url", "", "Registration API base URL")
	fs.DurationVar(&cfg.APITimeout, "api-timeout", 0, "Registration API request timeout")
	fs.StringVar(&cfg.RecaptchaSiteKey, "recaptcha-site-key", "", "reCAPTCHA site key (empty disables CAPTCHA)")
	fs.StringVar(&cfg.RedirectPath, "redirect", "", "Path to redirect to after sign up")
	fs.StringVar(&cfg.LoginPath, "login-path", "", "Sign-in page path")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Session lifetime")
	fs.BoolVar(&cfg.SecureCookies, "secure-cookies", false, "Mark session cookies Secure")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.RecaptchaSecret, "recaptcha-secret", "", "reCAPTCHA secret (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "Client IP hash salt (prefer env)")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "Access token signing secret (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.secureSet = fs.Changed("secure-cookies")
	if err := fromEnv(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.ConfigFile != "" {
		fileCfg, err := LoadFromFile(cfg.ConfigFile)
		if err != nil {
			return Config{}, err
		}
		cfg.Merge(fileCfg)
	}

	cfg.applyDefaults()

	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (sqlite or postgres)", cfg.DatabaseType)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}

	return cfg, nil
}

// fromEnv fills every unset field from its environment variable.
func fromEnv(cfg *Config) error {
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		}
	}
	if cfg.APITimeout == 0 {
		if s := os.Getenv("AUTH_API_TIMEOUT"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return errors.New("invalid AUTH_API_TIMEOUT env variable")
			}
			cfg.APITimeout = d
		}
	}
	if cfg.SessionTTL == 0 {
		if s := os.Getenv("SESSION_TTL"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return errors.New("invalid SESSION_TTL env variable")
			}
			cfg.SessionTTL = d
		}
	}
	if !cfg.secureSet {
		if s := os.Getenv("SECURE_COOKIES"); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return errors.New("invalid SECURE_COOKIES env variable")
			}
			cfg.SecureCookies = b
			cfg.secureSet = true
		}
	}

	envString(&cfg.DatabaseURL, "DATABASE_URL")
	envString(&cfg.DatabaseType, "DATABASE_TYPE")
	envString(&cfg.ConfigFile, "CONFIG_FILE")
	envString(&cfg.AuthAPIURL, "AUTH_API_URL")
	envString(&cfg.RecaptchaSiteKey, "RECAPTCHA_SITE_KEY")
	envString(&cfg.RecaptchaSecret, "RECAPTCHA_SECRET")
	envString(&cfg.RedirectPath, "REDIRECT_PATH")
	envString(&cfg.LoginPath, "LOGIN_PATH")
	envString(&cfg.IPHashSalt, "IP_HASH_SALT")
	envString(&cfg.JWTSecret, "JWT_SECRET")

	return nil
}

func envString(dst *string, key string) {
	if *dst == "" {
		*dst = os.Getenv(key)
	}
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.DatabaseType == "" {
		c.DatabaseType = DefaultDatabaseType
	}
	if c.DatabaseURL == "" && c.DatabaseType == "sqlite" {
		c.DatabaseURL = DefaultDatabaseURL
	}
	if c.APITimeout == 0 {
		c.APITimeout = DefaultAPITimeout
	}
	if c.RedirectPath == "" {
		c.RedirectPath = DefaultRedirectPath
	}
	if c.LoginPath == "" {
		c.LoginPath = DefaultLoginPath
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = DefaultSessionTTL
	}
}

// LoadFromFile reads a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// Merge fills fields still unset in c from other.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if c.Port == 0 {
		c.Port = other.Port
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = other.DatabaseURL
	}
	if c.DatabaseType == "" {
		c.DatabaseType = other.DatabaseType
	}
	if c.AuthAPIURL == "" {
		c.AuthAPIURL = other.AuthAPIURL
	}
	if c.APITimeout == 0 {
		c.APITimeout = other.APITimeout
	}
	if c.RecaptchaSiteKey == "" {
		c.RecaptchaSiteKey = other.RecaptchaSiteKey
	}
	if c.RecaptchaSecret == "" {
		c.RecaptchaSecret = other.RecaptchaSecret
	}
	if c.RedirectPath == "" {
		c.RedirectPath = other.RedirectPath
	}
	if c.LoginPath == "" {
		c.LoginPath = other.LoginPath
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = other.SessionTTL
	}
	if !c.secureSet {
		c.SecureCookies = other.SecureCookies
		c.secureSet = other.secureSet
	}
	if c.IPHashSalt == "" {
		c.IPHashSalt = other.IPHashSalt
	}
	if c.JWTSecret == "" {
		c.JWTSecret = other.JWTSecret
	}
}
