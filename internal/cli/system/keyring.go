package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/whosfree/internal/cli"
	"github.com/julianstephens/whosfree/internal/config"
	"github.com/julianstephens/whosfree/internal/keyring"
	"github.com/julianstephens/whosfree/internal/printer"
	"github.com/julianstephens/whosfree/internal/storage/postgres"
)

// KeyringSetCmd stores a secret in the OS keyring
type KeyringSetCmd struct {
	Value  string `arg:"" help:"Store connection string (postgres:// or redis://), or the redis password."`
	Secret string `default:"store-connection" enum:"store-connection,connection-string,redis-password" help:"Which secret to set."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	secret, err := keyring.ParseSecret(cmd.Secret)
	if err != nil {
		return err
	}

	if secret == keyring.StoreConnection {
		switch config.BackendFor(cmd.Value) {
		case config.BackendPostgres:
			if _, err := postgres.ValidateConnString(cmd.Value); err != nil {
				if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
					return fmt.Errorf("invalid connection string: %w", err)
				}
				printer.Warning("Connection string contains embedded credentials.")
				printer.Muted("  It will be stored as-is in the encrypted OS keyring.")
			}
		case config.BackendRedis:
		default:
			return errors.New("connection string must be a postgres:// or redis:// URL")
		}
	}

	if err := keyring.Set(secret, cmd.Value); err != nil {
		return err
	}

	printer.Success("%s stored in OS keyring", secret)
	if secret == keyring.StoreConnection {
		printer.Muted("  Use --store=%s to connect with it", config.KeyringStore)
	}
	return nil
}

// KeyringGetCmd prints a stored secret with any password masked
type KeyringGetCmd struct {
	Secret string `arg:"" optional:"" default:"store-connection" help:"Which secret to show."`
}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	secret, err := keyring.ParseSecret(cmd.Secret)
	if err != nil {
		return err
	}
	value, err := keyring.Get(secret)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring. Use 'whosfree keyring set' to store one", secret)
		}
		return err
	}

	if secret == keyring.RedisPassword {
		printer.Println("****")
		return nil
	}
	printer.Println(maskPassword(value))
	return nil
}

// KeyringDeleteCmd removes a secret from the OS keyring
type KeyringDeleteCmd struct {
	Secret string `arg:"" optional:"" default:"store-connection" help:"Which secret to delete."`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	secret, err := keyring.ParseSecret(cmd.Secret)
	if err != nil {
		return err
	}
	if err := keyring.Delete(secret); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring", secret)
		}
		return err
	}
	printer.Success("%s deleted from OS keyring", secret)
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		printer.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	printer.Success("OS keyring is available")

	for _, secret := range []keyring.Secret{keyring.StoreConnection, keyring.RedisPassword} {
		if _, err := keyring.Get(secret); err == nil {
			printer.Success("%s is stored in keyring", secret)
		} else if errors.Is(err, keyring.ErrNotFound) {
			printer.Muted("ℹ No %s stored in keyring", secret)
		}
	}
	return nil
}

// maskPassword masks the password of a URL-style connection string and the
// password= field of a key/value DSN.
func maskPassword(connStr string) string {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" && u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "****")
			// String escapes '*' in userinfo.
			return strings.Replace(u.String(), "%2A%2A%2A%2A", "****", 1)
		}
		return connStr
	}

	if strings.Contains(connStr, "password=") {
		parts := strings.Fields(connStr)
		for i, part := range parts {
			if strings.HasPrefix(part, "password=") {
				parts[i] = "password=****"
			}
		}
		return strings.Join(parts, " ")
	}
	return connStr
}
