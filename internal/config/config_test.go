/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := write(t, "auth:\n  jwt_secret: sssh\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint16(8000), cfg.API.Port)
	assert.Equal(t, "yamdb.db", cfg.Database.Path)
	assert.Equal(t, int64(24), cfg.Auth.TokenTTLHours)
	assert.Equal(t, "log", cfg.Mail.Mode)
	assert.Equal(t, "sssh", cfg.Auth.JWTSecret)
}

func TestLoadOverrides(t *testing.T) {
	path := write(t, `
api:
  port: 9090
auth:
  jwt_secret: sssh
  token_ttl_hours: 1
mail:
  mode: smtp
  host: relay.example.com
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint16(9090), cfg.API.Port)
	assert.Equal(t, int64(1), cfg.Auth.TokenTTLHours)
	assert.Equal(t, "smtp", cfg.Mail.Mode)
	assert.Equal(t, "relay.example.com", cfg.Mail.Host)
}

func TestLoadRequiresSecret(t *testing.T) {
	path := write(t, "api:\n  port: 9090\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
