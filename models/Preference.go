package models

import (
	"strings"

	"gorm.io/gorm"
)

// Preference is a single persisted key/value setting, such as the active theme.
type Preference struct {
	gorm.Model
	Key   string `gorm:"uniqueIndex;type:varchar(64);not null" json:"key"`
	Value string `gorm:"type:varchar(255);not null" json:"value"`
}

// NormalizeKey trims and lower-cases a preference key.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
