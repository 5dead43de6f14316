package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pureui/internal/theme"
	"pureui/models"
)

// PreferenceStore keeps the theme preference as one row of the preferences
// table.
type PreferenceStore struct {
	db  *gorm.DB
	key string
}

// NewPreferenceStore returns a theme.Store reading and writing key.
func NewPreferenceStore(db *gorm.DB, key string) *PreferenceStore {
	if normalized := models.NormalizeKey(key); normalized != "" {
		key = normalized
	} else {
		key = "theme"
	}
	return &PreferenceStore{db: db, key: key}
}

// Key returns the preference key the store uses.
func (s *PreferenceStore) Key() string {
	return s.key
}

func (s *PreferenceStore) Load(ctx context.Context) (theme.Theme, bool, error) {
	if s.db == nil {
		return "", false, gorm.ErrInvalidDB
	}

	var pref models.Preference
	err := s.db.WithContext(ctx).Where("key = ?", s.key).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load preference %s: %w", s.key, err)
	}
	return theme.Theme(pref.Value), true, nil
}

func (s *PreferenceStore) Save(ctx context.Context, t theme.Theme) error {
	if s.db == nil {
		return gorm.ErrInvalidDB
	}

	pref := models.Preference{Key: s.key, Value: string(t)}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at", "deleted_at"}),
	}).Create(&pref).Error
	if err != nil {
		return fmt.Errorf("save preference %s: %w", s.key, err)
	}
	return nil
}
