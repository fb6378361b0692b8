package config

import (
	"errors"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"iceberg_farmer/internal/utils"
)

type Config struct {
	Files   FilesConfig   `yaml:"files"`
	Site    SiteConfig    `yaml:"site"`
	Ads     AdsConfig     `yaml:"ads"`
	Proxy   ProxyConfig   `yaml:"proxy"`
	Loop    LoopConfig    `yaml:"loop"`
	Limits  LimitsConfig  `yaml:"limits"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Notify  NotifyConfig  `yaml:"notify"`
}

type FilesConfig struct {
	Data  string `yaml:"data"`
	Proxy string `yaml:"proxy"`
}

type SiteConfig struct {
	BaseURL    string `yaml:"baseURL"`
	AuthHeader string `yaml:"authHeader"`
	UserAgent  string `yaml:"userAgent"`
	TimeoutMs  int    `yaml:"timeoutMs"`
}

func (c SiteConfig) Timeout() time.Duration {
	if c.TimeoutMs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

type AdsConfig struct {
	BaseURL    string `yaml:"baseURL"`
	BlockID    string `yaml:"blockId"`
	TgPlatform string `yaml:"tgPlatform"`
	Platform   string `yaml:"platform"`
	Language   string `yaml:"language"`
	TopDomain  string `yaml:"topDomain"`
	Origin     string `yaml:"origin"`
}

type ProxyConfig struct {
	// Verify makes every configured proxy prove its exit IP before the account runs.
	Verify         *bool  `yaml:"verify"`
	CheckURL       string `yaml:"checkURL"`
	CheckTimeoutMs int    `yaml:"checkTimeoutMs"`
}

func (c ProxyConfig) VerifyEnabled() bool {
	return c.Verify == nil || *c.Verify
}

func (c ProxyConfig) CheckTimeout() time.Duration {
	if c.CheckTimeoutMs <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.CheckTimeoutMs) * time.Millisecond
}

type LoopConfig struct {
	CooldownSeconds int `yaml:"cooldownSeconds"`
	AccountPauseMs  int `yaml:"accountPauseMs"`
}

func (c LoopConfig) AccountPause() time.Duration {
	if c.AccountPauseMs <= 0 {
		return time.Second
	}
	return time.Duration(c.AccountPauseMs) * time.Millisecond
}

type LimitsConfig struct {
	QPS   float64 `yaml:"qps"`
	Burst int     `yaml:"burst"`
}

type LogConfig struct {
	Mode   string `yaml:"mode"`
	Level  string `yaml:"level"`
	Buffer int    `yaml:"buffer"`
}

type ServerConfig struct {
	Addr string     `yaml:"addr"`
	Cors CorsConfig `yaml:"cors"`
}

type CorsConfig struct {
	AllowOrigins     []string `yaml:"allowOrigins"`
	AllowCredentials bool     `yaml:"allowCredentials"`
}

type StorageConfig struct {
	// JournalPath enables the SQLite pass journal when non-empty.
	JournalPath string `yaml:"journalPath"`
}

type NotifyConfig struct {
	Email EmailConfig `yaml:"email"`
}

type EmailConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Email    string `yaml:"email"`
	AuthCode string `yaml:"authCode"`
}

// Load reads the YAML file at path (a missing file means defaults), applies the
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, err
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadEnv loads a dotenv file into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	setString(&c.Files.Data, "ICEBERG_DATA_FILE")
	setString(&c.Files.Proxy, "ICEBERG_PROXY_FILE")
	setString(&c.Log.Mode, "ICEBERG_LOG_MODE")
	setString(&c.Log.Level, "ICEBERG_LOG_LEVEL")
	setString(&c.Server.Addr, "ICEBERG_SERVER_ADDR")
	setString(&c.Storage.JournalPath, "ICEBERG_JOURNAL_PATH")
	setString(&c.Notify.Email.Email, "ICEBERG_NOTIFY_EMAIL")
	setString(&c.Notify.Email.AuthCode, "ICEBERG_NOTIFY_AUTH_CODE")
}

func (c *Config) applyDefaults() {
	if c.Files.Data == "" {
		c.Files.Data = "./data.txt"
	}
	if c.Files.Proxy == "" {
		c.Files.Proxy = "./proxy.txt"
	}
	if c.Site.BaseURL == "" {
		c.Site.BaseURL = "https://0xiceberg.com"
	}
	if c.Site.AuthHeader == "" {
		c.Site.AuthHeader = "X-Telegram-Auth"
	}
	c.Site.UserAgent = utils.NormalizeWebViewUserAgent(c.Site.UserAgent)
	if c.Ads.BaseURL == "" {
		c.Ads.BaseURL = "https://api.adsgram.ai"
	}
	if c.Ads.BlockID == "" {
		c.Ads.BlockID = "3721"
	}
	if c.Ads.TgPlatform == "" {
		c.Ads.TgPlatform = "android"
	}
	if c.Ads.Platform == "" {
		c.Ads.Platform = "Win32"
	}
	if c.Ads.Language == "" {
		c.Ads.Language = "vi"
	}
	if c.Ads.TopDomain == "" {
		c.Ads.TopDomain = "0xiceberg.com"
	}
	if c.Ads.Origin == "" {
		c.Ads.Origin = "https://0xiceberg.com"
	}
	if c.Proxy.CheckURL == "" {
		c.Proxy.CheckURL = "https://api.ipify.org?format=json"
	}
	if c.Loop.CooldownSeconds <= 0 {
		c.Loop.CooldownSeconds = 6 * 60
	}
	if c.Limits.QPS <= 0 {
		c.Limits.QPS = 5
	}
	if c.Limits.Burst <= 0 {
		c.Limits.Burst = 5
	}
	if c.Log.Mode == "" {
		c.Log.Mode = "development"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Buffer <= 0 {
		c.Log.Buffer = 200
	}
}

func (c Config) validate() error {
	for name, raw := range map[string]string{
		"site.baseURL":   c.Site.BaseURL,
		"ads.baseURL":    c.Ads.BaseURL,
		"proxy.checkURL": c.Proxy.CheckURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.New(name + " must be an absolute URL")
		}
	}
	switch c.Log.Mode {
	case "development", "production":
	default:
		return errors.New("log.mode must be development or production")
	}
	if c.Notify.Email.Enabled && strings.TrimSpace(c.Notify.Email.Email) == "" {
		return errors.New("notify.email.email is required when e-mail notifications are enabled")
	}
	return nil
}
