//go:build !darwin

package config

import "errors"

// keychainToken is darwin-only; elsewhere the token comes from the file.
func keychainToken() (string, error) {
	return "", errors.New("keychain not available")
}
