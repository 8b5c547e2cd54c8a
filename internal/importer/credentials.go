package importer

import (
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/zalando/go-keyring"
)

// LookupPassword reads the import password for user from the OS keyring.
func LookupPassword(user string) (string, error) {
	pass, err := keyring.Get(config.KeyringService, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrKeyringGet, err)
	}
	return pass, nil
}

// StorePassword saves the import password for user in the OS keyring.
func StorePassword(user, pass string) error {
	if err := keyring.Set(config.KeyringService, user, pass); err != nil {
		slog.Error(config.ErrKeyringSet,
			config.LogKeyComponent, config.CompImporter,
			config.LogKeyUser, user,
			config.LogKeyError, err,
		)
		return fmt.Errorf("%s: %w", config.ErrKeyringSet, err)
	}

	slog.Info(config.MsgSecretStored,
		config.LogKeyComponent, config.CompImporter,
		config.LogKeyUser, user,
	)
	return nil
}
