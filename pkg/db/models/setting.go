package models

import "time"

// SettingKeyLibraryRoot persists the configured library root so the agent
// and one-shot commands agree on it without re-passing flags.
const SettingKeyLibraryRoot = "mods_folder_path"

// Setting is a key/value row for persisted application state.
type Setting struct {
	Key   string `gorm:"primaryKey;type:text"`
	Value string `gorm:"type:text;not null"`

	UpdatedAt time.Time
}
