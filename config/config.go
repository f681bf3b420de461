// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: System configuration store for texelwin.

package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const systemConfigName = "texelwin.json"

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

var (
	mu      sync.RWMutex
	once    sync.Once
	system  Config
	loadErr error
)

// Err returns the most recent system config load error. A missing file is
// not an error; defaults apply.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// System returns the system configuration (texelwin.json).
func System() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return system
}

// Dir returns the configuration directory (~/.config/texelwin on Linux).
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "texelwin"), nil
}

func initStore() {
	system = make(Config)
	dir, err := Dir()
	if err != nil {
		loadErr = err
		return
	}
	raw, err := os.ReadFile(filepath.Join(dir, systemConfigName))
	if err != nil {
		if !os.IsNotExist(err) {
			loadErr = err
			log.Printf("Config: failed to read %s: %v", systemConfigName, err)
		}
		return
	}
	if err := json.Unmarshal(raw, &system); err != nil {
		loadErr = err
		system = make(Config)
		log.Printf("Config: failed to parse %s: %v", systemConfigName, err)
	}
}

// Section returns the named section, nil when absent.
func (c Config) Section(name string) Section {
	if c == nil {
		return nil
	}
	if raw, ok := c[name].(map[string]interface{}); ok {
		return Section(raw)
	}
	return nil
}

// Str returns a string value from a section, falling back to def.
func (c Config) Str(section, key, def string) string {
	if v, ok := c.Section(section)[key].(string); ok {
		return v
	}
	return def
}

// Int returns an integer value from a section, falling back to def.
// JSON numbers arrive as float64.
func (c Config) Int(section, key string, def int) int {
	switch v := c.Section(section)[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

// Bool returns a boolean value from a section, falling back to def.
func (c Config) Bool(section, key string, def bool) bool {
	if v, ok := c.Section(section)[key].(bool); ok {
		return v
	}
	return def
}

// Str reads from the system config.
func Str(section, key, def string) string {
	return System().Str(section, key, def)
}

// Int reads from the system config.
func Int(section, key string, def int) int {
	return System().Int(section, key, def)
}

// Bool reads from the system config.
func Bool(section, key string, def bool) bool {
	return System().Bool(section, key, def)
}
