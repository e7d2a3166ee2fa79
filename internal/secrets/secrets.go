// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file is one secret: the filename is the key and the trimmed file
// contents are the value.
//
// Recognized keys: cookie-key (base64 encoded 32-byte key used to encrypt
// session cookies).
package secrets

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDir is where the CLI looks for secrets.
const DefaultDir = ".secrets/"

// CookieKey names the session cookie encryption key.
const CookieKey = "cookie-key"

// Secrets maps key names to values.
type Secrets map[string]string

// Load reads every regular, non-hidden file in dir. A missing directory is
// not an error and yields an empty set. Unreadable files are reported to w
// and skipped.
func Load(dir string, w io.Writer) (Secrets, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Secrets)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(w, "warning: could not read secret %s: %v\n", name, err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			s[name] = value
		}
	}
	return s, nil
}

// Keys returns the loaded key names in sorted order.
func (s Secrets) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value for key, or fallback when fallback is not empty or
// the key is absent. An explicit fallback (for example from a flag) wins.
func (s Secrets) Get(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return s[key]
}

// CookieEncryptionKey returns the session cookie key after checking that it
// decodes to 32 bytes. A non-empty override (for example from a flag) is
// used instead of the cookie-key secret. ok is false when neither is set.
func (s Secrets) CookieEncryptionKey(override string) (key string, ok bool, err error) {
	key = s.Get(CookieKey, override)
	if key == "" {
		return "", false, nil
	}
	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return "", true, fmt.Errorf("%s is not valid base64: %w", CookieKey, err)
	}
	if len(raw) != 32 {
		return "", true, fmt.Errorf("%s must decode to 32 bytes, got %d", CookieKey, len(raw))
	}
	return key, true, nil
}
