//go:build darwin

package config

import (
	"fmt"

	"github.com/keybase/go-keychain"
)

const (
	keychainService = "shortclip"
	keychainAccount = "token"
)

// keychainToken retrieves the upload token from the macOS Keychain.
func keychainToken() (string, error) {
	query := keychain.NewItem()
	query.SetSecClass(keychain.SecClassGenericPassword)
	query.SetService(keychainService)
	query.SetAccount(keychainAccount)
	query.SetMatchLimit(keychain.MatchLimitOne)
	query.SetReturnData(true)

	results, err := keychain.QueryItem(query)
	if err != nil {
		return "", fmt.Errorf("keychain query failed: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("no keychain item for %s/%s", keychainService, keychainAccount)
	}

	return string(results[0].Data), nil
}
