package data

import (
	"sync"

	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/shared/types"
	"gorm.io/gorm"
)

// Bootstrap settings (token, app id, home guild) can live in the settings
// table, so a deployment needs nothing but MYSQL_DSN in its environment.
// They are read into a cache once at startup; environment variables take
// over for anything the table leaves unset.

var (
	settingsCache map[string]string
	settingsMu    sync.RWMutex
)

// LoadSettings snapshots the settings table into the cache, replacing any
// earlier snapshot. Call again to pick up rows edited directly in the
// database.
func LoadSettings(db *gorm.DB) error {
	var settings []types.Setting
	if err := db.Find(&settings).Error; err != nil {
		return err
	}

	settingsMu.Lock()
	defer settingsMu.Unlock()

	settingsCache = make(map[string]string)
	for _, s := range settings {
		settingsCache[s.Name] = s.Value
	}

	return nil
}

// GetSetting returns the cached value, empty when the setting is absent.
func GetSetting(name string) string {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settingsCache[name]
}
