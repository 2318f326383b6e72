package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ResolverFixed  = "fixed"
	ResolverGemini = "gemini"
	ResolverPlugin = "plugin"

	defaultListenAddr  = ":8080"
	defaultLogLevel    = "info"
	defaultGeminiModel = "gemini-2.0-flash"
)

// Config is resolved from the data directory, an optional config.yaml inside
// it, and environment overrides, in that order.
type Config struct {
	DataDir      string
	DBPath       string
	ConfigPath   string
	LogLevel     string
	ListenAddr   string
	DatabaseURL  string
	NATSURL      string
	Resolver     string
	PluginBinary string
	PluginSHA256 string
	GeminiModel  string
	GeminiAPIKey string
}

type fileConfig struct {
	LogLevel     string `yaml:"log_level"`
	ListenAddr   string `yaml:"listen_addr"`
	DatabaseURL  string `yaml:"database_url"`
	NATSURL      string `yaml:"nats_url"`
	Resolver     string `yaml:"resolver"`
	PluginBinary string `yaml:"plugin_binary"`
	PluginSHA256 string `yaml:"plugin_sha256"`
	GeminiModel  string `yaml:"gemini_model"`
}

// DefaultDataDir honours GHOSTNOTE_DATA_DIR and falls back to ~/.ghostnote.
func DefaultDataDir() string {
	if dir := strings.TrimSpace(os.Getenv("GHOSTNOTE_DATA_DIR")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".ghostnote"
	}
	return filepath.Join(home, ".ghostnote")
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:     dataDir,
		DBPath:      filepath.Join(dataDir, "ghostnote.db"),
		ConfigPath:  filepath.Join(dataDir, "config.yaml"),
		LogLevel:    defaultLogLevel,
		ListenAddr:  defaultListenAddr,
		Resolver:    ResolverFixed,
		GeminiModel: defaultGeminiModel,
	}

	file, err := readFile(cfg.ConfigPath)
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = pick(file.LogLevel, cfg.LogLevel)
	cfg.ListenAddr = pick(file.ListenAddr, cfg.ListenAddr)
	cfg.DatabaseURL = pick(file.DatabaseURL, cfg.DatabaseURL)
	cfg.NATSURL = pick(file.NATSURL, cfg.NATSURL)
	cfg.Resolver = pick(file.Resolver, cfg.Resolver)
	cfg.PluginBinary = pick(file.PluginBinary, cfg.PluginBinary)
	cfg.PluginSHA256 = pick(file.PluginSHA256, cfg.PluginSHA256)
	cfg.GeminiModel = pick(file.GeminiModel, cfg.GeminiModel)

	cfg.LogLevel = pick(os.Getenv("GHOSTNOTE_LOG_LEVEL"), cfg.LogLevel)
	cfg.ListenAddr = pick(os.Getenv("GHOSTNOTE_LISTEN_ADDR"), cfg.ListenAddr)
	cfg.DatabaseURL = pick(os.Getenv("DATABASE_URL"), cfg.DatabaseURL)
	cfg.NATSURL = pick(os.Getenv("NATS_URL"), cfg.NATSURL)
	cfg.GeminiAPIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))

	switch cfg.Resolver {
	case ResolverFixed, ResolverGemini, ResolverPlugin:
	default:
		cfg.Resolver = ResolverFixed
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		cfg.LogLevel = defaultLogLevel
	}
	return cfg, nil
}

func readFile(path string) (fileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("read config: %w", err)
	}
	out := fileConfig{}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return fileConfig{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return out, nil
}

func pick(v, fallback string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return fallback
}
