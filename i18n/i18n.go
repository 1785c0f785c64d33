// Package i18n provides the user-facing message catalog. A Catalog is loaded
// once at startup for the configured locale and passed explicitly to every
// consumer; there is no swappable package-level state.
package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/user/recipebox-go/apperror"
)

// Catalog holds the messages for one locale.
type Catalog struct {
	locale   string
	messages map[string]string
}

// NewCatalog loads <dir>/<locale>.json into an immutable catalog.
func NewCatalog(dir, locale string) (*Catalog, error) {
	path := filepath.Join(dir, locale+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperror.NewConfigError(fmt.Sprintf("failed to read locale file %s", path), err)
	}

	messages := make(map[string]string)
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, apperror.NewConfigError(fmt.Sprintf("failed to parse locale file %s", path), err)
	}

	return &Catalog{locale: locale, messages: messages}, nil
}

// NewStaticCatalog builds a catalog directly from a message map.
func NewStaticCatalog(locale string, messages map[string]string) *Catalog {
	if messages == nil {
		messages = make(map[string]string)
	}
	return &Catalog{locale: locale, messages: messages}
}

// Locale returns the locale the catalog was loaded for.
func (c *Catalog) Locale() string {
	return c.locale
}

// Text returns the message for key. Unknown keys fall back to the key itself
// so a missing translation never blanks out an error response.
func (c *Catalog) Text(key string) string {
	if msg, ok := c.messages[key]; ok {
		return msg
	}
	return key
}
