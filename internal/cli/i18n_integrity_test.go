package cli_test

import (
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contacts/internal/config"
)

// catalogKeys are the translation keys referenced from Go code.
var catalogKeys = []string{
	config.TKeyWelcome,
	config.TKeyGreeting,
	config.TKeyGoodbye,
	config.TKeyContactAdded,
	config.TKeyContactUpdated,
	config.TKeyContactDeleted,
	config.TKeyPhoneChanged,
	config.TKeyBirthdayAdded,
	config.TKeyNoBirthday,
	config.TKeyNoUpcoming,
	config.TKeyBookEmpty,
	config.TKeyCongratulate,
	config.TKeyImported,
	config.TKeySecretSaved,
	config.TKeyHelp,
	config.TKeyEvtSummary,
	config.TKeyErrNotFound,
	config.TKeyErrArgs,
	config.TKeyErrInvalidPhone,
	config.TKeyErrInvalidDate,
	config.TKeyErrPhoneMissing,
	config.TKeyErrEmptyName,
	config.TKeyErrUnknownCmd,
}

func loadCatalog(t *testing.T, lang string) map[string]any {
	t.Helper()
	content, err := os.ReadFile(fmt.Sprintf("locales/active.%s.json", lang))
	require.NoErrorf(t, err, "Must load the %s catalog", lang)

	var m map[string]any
	require.NoError(t, json.Unmarshal(content, &m), "JSON must be valid")
	return m
}

// TestI18nIntegrity ensures every translation key defined in config.go exists
// in every locale catalog, and that catalogs do not drift apart.
func TestI18nIntegrity(t *testing.T) {
	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			catalog := loadCatalog(t, lang)
			for _, key := range catalogKeys {
				_, exists := catalog[key]
				assert.Truef(t, exists, "Key %q defined in config.go is missing in active.%s.json", key, lang)
			}
		})
	}
}

// TestI18nNoOrphans flags catalog entries that no Go code references.
func TestI18nNoOrphans(t *testing.T) {
	defined := make(map[string]bool, len(catalogKeys))
	for _, key := range catalogKeys {
		defined[key] = true
	}

	for _, lang := range config.SupportedLanguages {
		for key := range loadCatalog(t, lang) {
			assert.Truef(t, defined[key], "Key %q in active.%s.json is not referenced from Go code", key, lang)
		}
	}
}

// TestI18nFixedTexts pins the English texts that form the user-facing
// contract of the command loop.
func TestI18nFixedTexts(t *testing.T) {
	catalog := loadCatalog(t, "en")
	assert.Equal(t, "Contact not found.", catalog[config.TKeyErrNotFound])
	assert.Equal(t, "Give me name and phone please.", catalog[config.TKeyErrArgs])
	assert.Equal(t, "Invalid date format. Use DD.MM.YYYY", catalog[config.TKeyErrInvalidDate])
}
