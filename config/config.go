package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"traychat/model"
)

// SystemConfig lives in the platform config dir (settings.toml) and only
// points at the data directory.
type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

// SecurityConfig selects how credentials are stored on disk.
type SecurityConfig struct {
	Method     string `toml:"method"` // "plaintext" or "ssh_key"
	SSHKeyPath string `toml:"ssh_key_path,omitempty"`
}

// UserConfig lives in the data dir (config.toml).
type UserConfig struct {
	DefaultModel string         `toml:"default_model,omitempty"` // "provider/model-id"
	Security     SecurityConfig `toml:"security"`
}

// Config is the resolved runtime configuration.
type Config struct {
	DataDirectory   string
	DefaultModel    string
	CredentialStore *CredentialStore
}

var Debug = false
var DebugLog *log.Logger

func init() {
	// Keep DebugLog safe to call before EnableDebugLog wires a file.
	DebugLog = log.New(os.Stderr, "", log.LstdFlags)
}

// EnableDebugLog switches diagnostics on, appending to debug.log in the data
// directory.
func EnableDebugLog(dataDir string) error {
	f, err := os.OpenFile(filepath.Join(dataDir, "debug.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}
	Debug = true
	DebugLog = log.New(f, "", log.LstdFlags)
	return nil
}

// Load reads the system and user config files, applies environment
// overrides, and loads the credential store. Missing files fall back to
// defaults so a first launch works with zero setup.
func Load() (*Config, error) {
	dataDir := dataDirectory()
	if err := EnsureDir(dataDir); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	user := DefaultUserConfig()
	userPath := filepath.Join(dataDir, "config.toml")
	if FileExists(userPath) {
		if _, err := toml.DecodeFile(userPath, user); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", userPath, err)
		}
	}

	store := NewCredentialStore(SecurityMethod(user.Security.Method), user.Security.SSHKeyPath)
	if err := store.Load(dataDir); err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	return &Config{
		DataDirectory:   dataDir,
		DefaultModel:    user.DefaultModel,
		CredentialStore: store,
	}, nil
}

// dataDirectory resolves the data dir: env override, then settings.toml,
// then the platform default.
func dataDirectory() string {
	if dir := os.Getenv("TRAYCHAT_DATA_DIR"); dir != "" {
		return ExpandPath(dir)
	}

	settingsPath := GetSettingsFilePath()
	if FileExists(settingsPath) {
		var sys SystemConfig
		if _, err := toml.DecodeFile(settingsPath, &sys); err == nil && sys.DataDirectory != "" {
			return ExpandPath(sys.DataDirectory)
		}
	}

	return GetDefaultDataDir()
}

// Credentials returns the current API keys as the read-only value the core
// passes per call. Conventional environment variables fill any key the store
// does not have.
func (c *Config) Credentials() model.Credentials {
	creds := model.Credentials{
		OpenAI:     c.CredentialStore.Get("openai"),
		Anthropic:  c.CredentialStore.Get("anthropic"),
		Gemini:     c.CredentialStore.Get("gemini"),
		OpenRouter: c.CredentialStore.Get("openrouter"),
	}

	if creds.OpenAI == "" {
		creds.OpenAI = os.Getenv("OPENAI_API_KEY")
	}
	if creds.Anthropic == "" {
		creds.Anthropic = os.Getenv("ANTHROPIC_API_KEY")
	}
	if creds.Gemini == "" {
		creds.Gemini = os.Getenv("GEMINI_API_KEY")
	}
	if creds.OpenRouter == "" {
		creds.OpenRouter = os.Getenv("OPENROUTER_API_KEY")
	}

	return creds
}
