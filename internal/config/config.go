// Package config resolves runtime configuration: .env files, environment
// variables, the OS keyring and the selected store backend.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/keyring"
	"github.com/julianstephens/whosfree/internal/logger"
	"github.com/julianstephens/whosfree/internal/storage"
	"github.com/julianstephens/whosfree/internal/storage/postgres"
	"github.com/julianstephens/whosfree/internal/storage/redisstore"
	"github.com/julianstephens/whosfree/internal/storage/sqlite"
)

// KeyringStore is the --store value that reads the store URL from
// WHOSFREE_DB_CONNECTION or the OS keyring.
const KeyringStore = "keyring"

// Backend names the storage implementation selected by a store value.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendJSON     Backend = "json"
	BackendPostgres Backend = "postgres"
	BackendRedis    Backend = "redis"
)

type Config struct {
	Store         string
	Tenant        string
	Debug         bool
	Listen        string
	RedisPassword string
	PollInterval  time.Duration
}

// LoadDotenv loads .env files into the environment. Missing files are
// ignored and variables already set win.
func LoadDotenv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !stderrors.Is(err, os.ErrNotExist) {
			logger.Warn("Failed to load env file", "path", p, "error", err)
		}
	}
}

// FromEnv builds a Config from WHOSFREE_* variables.
func FromEnv() Config {
	return Config{
		Store:         getEnv("WHOSFREE_STORE", constants.DefaultConfigPath),
		Tenant:        getEnv("WHOSFREE_TENANT", constants.DefaultTenant),
		Debug:         getEnvBool("WHOSFREE_DEBUG", false),
		Listen:        getEnv("WHOSFREE_LISTEN", constants.DefaultListenAddr),
		RedisPassword: getEnv("WHOSFREE_REDIS_PASSWORD", ""),
		PollInterval:  time.Duration(getEnvInt("WHOSFREE_POLL_SECONDS", 2)) * time.Second,
	}
}

// Validate checks the values a command needs before touching a store.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Store) == "" {
		return fmt.Errorf("store is required")
	}
	if strings.TrimSpace(c.Tenant) == "" {
		return fmt.Errorf("tenant cannot be empty")
	}
	if strings.ContainsAny(c.Tenant, ": ") {
		return fmt.Errorf("tenant %q must not contain spaces or colons", c.Tenant)
	}
	return nil
}

// BackendFor reports which backend a store value selects.
func BackendFor(store string) Backend {
	switch {
	case postgres.IsConnString(store):
		return BackendPostgres
	case redisstore.IsURL(store):
		return BackendRedis
	case strings.HasSuffix(strings.ToLower(store), ".json"):
		return BackendJSON
	default:
		return BackendSQLite
	}
}

// ResolveStore expands ~ in file paths and replaces the keyring marker with
// the stored connection string.
func (c Config) ResolveStore() (string, error) {
	store := c.Store
	if store == KeyringStore {
		if env := os.Getenv("WHOSFREE_DB_CONNECTION"); env != "" {
			return env, nil
		}
		conn, err := keyring.GetConnectionString()
		if err != nil {
			return "", fmt.Errorf("no store connection in WHOSFREE_DB_CONNECTION or keyring: %w", err)
		}
		return conn, nil
	}

	if BackendFor(store) == BackendSQLite || BackendFor(store) == BackendJSON {
		return ExpandPath(store)
	}
	return store, nil
}

// OpenStore creates the provider selected by the configuration. The store
// is not initialized or loaded.
func (c Config) OpenStore() (storage.Provider, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	store, err := c.ResolveStore()
	if err != nil {
		return nil, err
	}

	switch BackendFor(store) {
	case BackendPostgres:
		if _, err := postgres.ValidateConnString(store); err != nil {
			if stderrors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: use .pgpass, PGPASSWORD or 'whosfree keyring set'", err)
			}
			return nil, err
		}
		return postgres.New(store, c.Tenant), nil
	case BackendRedis:
		password := c.RedisPassword
		if password == "" {
			if p, err := keyring.Get(keyring.RedisPassword); err == nil {
				password = p
			}
		}
		return redisstore.NewFromURL(store, password, c.Tenant)
	case BackendJSON:
		return storage.NewJSONStore(store, c.Tenant), nil
	default:
		return sqlite.NewStore(store, c.Tenant), nil
	}
}

// DataDir returns the directory used for logs, backups and lock files. For
// file stores it is the store's directory; remote stores use the default
// config directory.
func (c Config) DataDir() string {
	store, err := c.ResolveStore()
	if err == nil {
		if b := BackendFor(store); b == BackendSQLite || b == BackendJSON {
			return filepath.Dir(store)
		}
	}
	dir, err := ExpandPath(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		return "."
	}
	return dir
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
