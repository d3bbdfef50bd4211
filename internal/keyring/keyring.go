// Package keyring keeps remote store secrets in the OS keyring so they never
// appear in flags, .env files or shell history.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/whosfree/internal/constants"
)

// Secret names one entry under the whosfree keyring service.
type Secret string

const (
	// StoreConnection is a postgres:// or redis:// store URL.
	StoreConnection Secret = constants.DefaultKeyringUser
	// RedisPassword is the AUTH password for a redis store.
	RedisPassword Secret = "redis-password"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// ParseSecret maps a user-facing name to a Secret.
func ParseSecret(name string) (Secret, error) {
	switch Secret(name) {
	case StoreConnection, "connection-string":
		return StoreConnection, nil
	case RedisPassword:
		return RedisPassword, nil
	default:
		return "", fmt.Errorf("unknown secret %q (want %q or %q)", name, StoreConnection, RedisPassword)
	}
}

// Get returns the stored value of secret, or ErrNotFound.
func Get(secret Secret) (string, error) {
	value, err := keyring.Get(constants.AppName, string(secret))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

// Set stores value under secret, replacing any previous value.
func Set(secret Secret, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", secret)
	}
	if err := keyring.Set(constants.AppName, string(secret), value); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// Delete removes secret from the keyring.
func Delete(secret Secret) error {
	if err := keyring.Delete(constants.AppName, string(secret)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// GetConnectionString returns the stored store URL.
func GetConnectionString() (string, error) {
	return Get(StoreConnection)
}

// IsAvailable is a best-effort check that the OS keyring answers reads.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
