package redisstore

import (
	"fmt"

	"github.com/julianstephens/whosfree/internal/constants"
)

// DocumentKey returns the key holding a JSON document for a tenant.
func DocumentKey(tenant, name string) string {
	return fmt.Sprintf("%s:%s:%s", constants.AppName, tenant, name)
}

// SettingsKey returns the hash holding a tenant's settings.
func SettingsKey(tenant string) string {
	return DocumentKey(tenant, constants.DocSettings)
}

// CatchphrasesKey returns the hash mapping lower-cased phrase to phrase.
func CatchphrasesKey(tenant string) string {
	return DocumentKey(tenant, constants.DocCatchphrases)
}

// CatchphraseOrderKey returns the list recording insertion order.
func CatchphraseOrderKey(tenant string) string {
	return DocumentKey(tenant, constants.DocCatchphrases+":order")
}

// UpdatesChannel returns the pub/sub channel announcing document changes.
func UpdatesChannel(tenant string) string {
	return DocumentKey(tenant, "updates")
}
