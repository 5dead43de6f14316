package mock

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "pureui/internal/log"
	"pureui/models"
)

// New returns a migrated in-memory sqlite database seeded with prefs. Every
// call gets its own database so parallel tests never share rows.
func New(ctx context.Context, prefs ...models.Preference) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	name := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:pureui-%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.Preference{}); err != nil {
		return nil, err
	}

	for _, pref := range prefs {
		pref.Key = models.NormalizeKey(pref.Key)
		if err := db.WithContext(ctx).Create(&pref).Error; err != nil {
			return nil, err
		}
	}

	applog.Debug(ctx, "mock database ready", "seeded", len(prefs))
	return db, nil
}
