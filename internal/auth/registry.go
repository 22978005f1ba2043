// Package auth maps upload tokens to usernames.
package auth

import (
	"fmt"
	"os"
	"strings"
)

// DefaultTokensFile is the token file read at server startup.
const DefaultTokensFile = ".authorized_tokens"

// Registry is an immutable token to username mapping.
type Registry struct {
	users map[string]string
}

// NewRegistry builds a registry from an explicit mapping.
func NewRegistry(users map[string]string) *Registry {
	m := make(map[string]string, len(users))
	for token, username := range users {
		m[token] = username
	}
	return &Registry{users: m}
}

// Load reads a newline-delimited token file. Each line is
// "<token> <username>"; any malformed line is an error.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}

	users := make(map[string]string)
	trimmed := strings.TrimRight(string(data), "\n")
	if trimmed == "" {
		return &Registry{users: users}, nil
	}
	lines := strings.Split(trimmed, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		token, username, ok := strings.Cut(line, " ")
		if !ok || token == "" || username == "" {
			return nil, fmt.Errorf("%s:%d: expected \"<token> <username>\"", path, i+1)
		}
		users[token] = username
	}

	return &Registry{users: users}, nil
}

// Lookup returns the username for a token.
func (r *Registry) Lookup(token string) (string, bool) {
	username, ok := r.users[token]
	return username, ok
}

// Len returns the number of registered tokens.
func (r *Registry) Len() int {
	return len(r.users)
}
