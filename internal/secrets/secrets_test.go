// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  Secrets
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "cookie-key", "  abc123  \n")
				writeFile(t, dir, "admin-token", "tok")
				return dir
			},
			want: Secrets{"cookie-key": "abc123", "admin-token": "tok"},
		},
		{
			name: "missing directory is empty",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: Secrets{},
		},
		{
			name: "skips empty files, dotfiles and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "cookie-key", "k")
				writeFile(t, dir, "blank", "  \n\t")
				writeFile(t, dir, ".gitkeep", "")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
				return dir
			},
			want: Secrets{"cookie-key": "k"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var warn bytes.Buffer
			got, err := Load(tt.setup(t), &warn)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, warn.String())
		})
	}
}

func TestLoadNotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "file", "x")
	_, err := Load(filepath.Join(dir, "file"), &bytes.Buffer{})
	assert.ErrorContains(t, err, "reading secrets directory")
}

func TestKeysAndGet(t *testing.T) {
	s := Secrets{"b": "2", "a": "1"}
	assert.Equal(t, []string{"a", "b"}, s.Keys())
	assert.Equal(t, "1", s.Get("a", ""))
	assert.Equal(t, "flag", s.Get("a", "flag"))
	assert.Equal(t, "", s.Get("missing", ""))
}

func TestCookieEncryptionKey(t *testing.T) {
	valid := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))
	other := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{9}, 32))

	key, ok, err := Secrets{CookieKey: valid}.CookieEncryptionKey("")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, valid, key)

	key, ok, err = Secrets{CookieKey: valid}.CookieEncryptionKey(other)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, other, key, "flag value wins over the secret file")

	key, ok, err = Secrets(nil).CookieEncryptionKey(other)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, other, key)

	_, ok, err = Secrets{}.CookieEncryptionKey("")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = Secrets{CookieKey: "not base64!"}.CookieEncryptionKey("")
	assert.True(t, ok)
	assert.Error(t, err)

	short := base64.StdEncoding.EncodeToString([]byte("short"))
	_, _, err = Secrets{}.CookieEncryptionKey(short)
	assert.ErrorContains(t, err, "32 bytes")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
