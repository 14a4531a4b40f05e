package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	pkgerrors "github.com/zhubert/chatclone/internal/errors"
)

// Pending scope values accepted in the config file.
const (
	PendingScopeChat   = "chat"
	PendingScopeGlobal = "global"
)

// Reply delay defaults, in milliseconds.
const (
	DefaultReplyDelayMinMS = 1000
	DefaultReplyDelayMaxMS = 3000
)

// Config holds the user's preferences. Chats are never written here.
type Config struct {
	Theme                string `json:"theme,omitempty"`                 // UI theme name (e.g., "dark-purple", "nord")
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notification when a reply lands
	WelcomeShown         bool   `json:"welcome_shown,omitempty"`         // Whether the first-run flash has been shown

	ReplyDelayMinMS int    `json:"reply_delay_min_ms"`
	ReplyDelayMaxMS int    `json:"reply_delay_max_ms"`
	PendingScope    string `json:"pending_scope"` // "chat" or "global"

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".chatclone"), nil
}

// DefaultPath returns the path of the config file in the user's home.
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Default returns a config holding default values that saves to path.
func Default(path string) *Config {
	cfg := &Config{filePath: path}
	cfg.ensureInitialized()
	return cfg
}

// Load reads the config from the default location, or returns defaults if
// the file doesn't exist yet.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, pkgerrors.ConfigLoadFailed("~/.chatclone/config.json", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads the config stored at path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.ensureInitialized()
		return cfg, nil
	}
	if err != nil {
		return nil, pkgerrors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, pkgerrors.ConfigLoadFailed(path, err)
	}

	// Must run before Validate, which only reads.
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureInitialized fills in defaults for fields missing from the file.
// Not thread-safe: only called from Load before the Config is shared.
func (c *Config) ensureInitialized() {
	if c.ReplyDelayMinMS == 0 && c.ReplyDelayMaxMS == 0 {
		c.ReplyDelayMinMS = DefaultReplyDelayMinMS
		c.ReplyDelayMaxMS = DefaultReplyDelayMaxMS
	}
	if c.PendingScope == "" {
		c.PendingScope = PendingScopeChat
	}
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := validateDelay(c.ReplyDelayMinMS, c.ReplyDelayMaxMS); err != nil {
		return err
	}
	if !validScope(c.PendingScope) {
		return pkgerrors.ConfigInvalid(fmt.Sprintf("unknown pending scope %q", c.PendingScope))
	}
	return nil
}

func validateDelay(minMS, maxMS int) error {
	if minMS < 0 {
		return pkgerrors.ConfigInvalid(fmt.Sprintf("reply_delay_min_ms must be >= 0, got %d", minMS))
	}
	if maxMS <= minMS {
		return pkgerrors.ConfigInvalid(fmt.Sprintf("reply_delay_max_ms (%d) must be greater than reply_delay_min_ms (%d)", maxMS, minMS))
	}
	return nil
}

func validScope(scope string) bool {
	return scope == PendingScopeChat || scope == PendingScopeGlobal
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		return pkgerrors.ConfigSaveFailed("", fmt.Errorf("config has no file path"))
	}

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return pkgerrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return pkgerrors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return pkgerrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// Path returns the file the config is saved to.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// Remove deletes the config file. A missing file is not an error.
func (c *Config) Remove() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.filePath); err != nil && !os.IsNotExist(err) {
		return pkgerrors.E(pkgerrors.Op("config.Remove"), pkgerrors.KindIO, c.filePath, err)
	}
	return nil
}

// Reset restores every preference to its default value.
func (c *Config) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Theme = ""
	c.NotificationsEnabled = false
	c.WelcomeShown = false
	c.ReplyDelayMinMS = DefaultReplyDelayMinMS
	c.ReplyDelayMaxMS = DefaultReplyDelayMaxMS
	c.PendingScope = PendingScopeChat
}

// HasSeenWelcome returns whether the welcome flash has been shown
func (c *Config) HasSeenWelcome() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.WelcomeShown
}

// MarkWelcomeShown marks the welcome flash as shown
func (c *Config) MarkWelcomeShown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.WelcomeShown = true
}

// GetTheme returns the configured theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetPendingScope returns "chat" or "global".
func (c *Config) GetPendingScope() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.PendingScope
}

// SetPendingScope sets the pending scope, rejecting unknown values.
func (c *Config) SetPendingScope(scope string) error {
	if !validScope(scope) {
		return pkgerrors.ConfigInvalid(fmt.Sprintf("unknown pending scope %q", scope))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.PendingScope = scope
	return nil
}

// GetReplyDelay returns the reply delay bounds.
func (c *Config) GetReplyDelay() (min, max time.Duration) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.ReplyDelayMinMS) * time.Millisecond,
		time.Duration(c.ReplyDelayMaxMS) * time.Millisecond
}

// SetReplyDelay sets the reply delay bounds in milliseconds.
// The config is left unchanged when the bounds are invalid.
func (c *Config) SetReplyDelay(minMS, maxMS int) error {
	if err := validateDelay(minMS, maxMS); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ReplyDelayMinMS = minMS
	c.ReplyDelayMaxMS = maxMS
	return nil
}
