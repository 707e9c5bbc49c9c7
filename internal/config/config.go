/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package config loads the YAML configuration of the server.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API struct {
		Port         uint16 `yaml:"port"`
		ReadTimeout  int64  `yaml:"read_timeout"`  // Seconds
		WriteTimeout int64  `yaml:"write_timeout"` // Seconds
	} `yaml:"api"`

	Database struct {
		Path string `yaml:"path"` // Path of the SQLite file
	} `yaml:"database"`

	Auth struct {
		JWTSecret     string `yaml:"jwt_secret"`
		TokenTTLHours int64  `yaml:"token_ttl_hours"`
	} `yaml:"auth"`

	Mail struct {
		Mode     string `yaml:"mode"` // "log" or "smtp"
		Host     string `yaml:"host"`
		Port     uint16 `yaml:"port"`
		From     string `yaml:"from"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"mail"`
}

// Load reads and decodes the configuration at path, applying defaults for the omitted fields.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret must be set")
	}
	return cfg, nil
}

// Default returns a configuration good enough for local development, except
// for the JWT secret which has no sane default.
func Default() *Config {
	cfg := &Config{}
	cfg.API.Port = 8000
	cfg.API.ReadTimeout = 15
	cfg.API.WriteTimeout = 15
	cfg.Database.Path = "yamdb.db"
	cfg.Auth.TokenTTLHours = 24
	cfg.Mail.Mode = "log"
	cfg.Mail.From = "noreply@yamdb.com"
	return cfg
}
