package db

import (
	"context"
	"errors"
	"testing"

	"pureui/internal/config"
	"pureui/internal/db/mock"
	"pureui/internal/theme"
	"pureui/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestInitializeRequiresURL(t *testing.T) {
	t.Parallel()

	db, err := Initialize(config.DatabaseConfig{URL: ""})
	if err == nil {
		t.Fatal("expected error when database URL is empty")
	}
	if db != nil {
		t.Fatal("expected returned db handle to be nil on error")
	}
}

func TestDialectorSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"postgres://user@localhost/pureui", "postgres", false},
		{"host=localhost user=pureui dbname=pureui", "postgres", false},
		{"sqlite://./pureui.db", "sqlite", false},
		{"file:pureui?mode=memory", "sqlite", false},
		{"data/pureui.db", "sqlite", false},
		{"mysql://root@localhost/pureui", "", true},
		{"  ", "", true},
	}

	for _, tt := range tests {
		d, err := Dialector(tt.url)
		if (err != nil) != tt.wantErr {
			t.Fatalf("Dialector(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
		if err == nil && d.Name() != tt.want {
			t.Fatalf("Dialector(%q) = %s, want %s", tt.url, d.Name(), tt.want)
		}
	}
}

func TestAutoMigrateRejectsNilDatabase(t *testing.T) {
	t.Parallel()

	if err := AutoMigrate(nil); err == nil {
		t.Fatal("expected error when database handle is nil")
	}
}

func TestAutoMigrateWithSQLite(t *testing.T) {
	t.Parallel()

	sqliteDB, err := gorm.Open(sqlite.Open("file:pureui-automigrate?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}

	if err := AutoMigrate(sqliteDB); err != nil {
		t.Fatalf("automigrate sqlite database: %v", err)
	}
	if !sqliteDB.Migrator().HasTable(&models.Preference{}) {
		t.Fatal("expected preferences table to exist")
	}
}

func TestConfigureWithSQLiteURL(t *testing.T) {
	t.Parallel()

	database, err := Configure(config.DatabaseConfig{URL: "sqlite:file:pureui-configure?mode=memory&cache=shared", MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("Configure returned error: %v", err)
	}
	if Get() == nil || database == nil {
		t.Fatal("expected configured database to be retained")
	}
}

func TestConfigurePropagatesInitializationError(t *testing.T) {
	t.Parallel()

	if _, err := Configure(config.DatabaseConfig{}); err == nil {
		t.Fatal("expected configuration error when initialize fails")
	}
}

func TestMustConfigurePanicsOnError(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic when configuration fails")
		}
	}()

	MustConfigure(config.DatabaseConfig{})
}

func TestPreferenceStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database, err := mock.New(ctx)
	if err != nil {
		t.Fatalf("mock database: %v", err)
	}
	store := NewPreferenceStore(database, " UI.Theme ")
	if store.Key() != "ui.theme" {
		t.Fatalf("expected normalized key, got %q", store.Key())
	}

	if _, ok, err := store.Load(ctx); err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	for _, want := range []theme.Theme{theme.Dark, theme.Light} {
		if err := store.Save(ctx, want); err != nil {
			t.Fatalf("Save(%q) returned error: %v", want, err)
		}
		got, ok, err := store.Load(ctx)
		if err != nil || !ok || got != want {
			t.Fatalf("Load = %q ok=%v err=%v, want %q", got, ok, err, want)
		}
	}

	var count int64
	if err := database.WithContext(ctx).Model(&models.Preference{}).Count(&count).Error; err != nil {
		t.Fatalf("count preferences: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected upsert to keep a single row, found %d", count)
	}
}

func TestPreferenceStoreBacksController(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database, err := mock.New(ctx, models.Preference{Key: "theme", Value: "light"})
	if err != nil {
		t.Fatalf("mock database: %v", err)
	}

	controller := theme.New(NewPreferenceStore(database, ""))
	if got := controller.Theme(ctx); got != theme.Light {
		t.Fatalf("expected persisted light theme, got %q", got)
	}
	if err := controller.SetTheme(ctx, theme.Dark); err != nil {
		t.Fatalf("SetTheme returned error: %v", err)
	}

	reopened := theme.New(NewPreferenceStore(database, "theme"))
	if got := reopened.Theme(ctx); got != theme.Dark {
		t.Fatalf("expected dark after restart, got %q", got)
	}
}

func TestPreferenceStoreWithoutDatabase(t *testing.T) {
	t.Parallel()

	store := NewPreferenceStore(nil, "theme")
	if _, _, err := store.Load(context.Background()); !errors.Is(err, gorm.ErrInvalidDB) {
		t.Fatalf("expected ErrInvalidDB, got %v", err)
	}
	if err := store.Save(context.Background(), theme.Dark); !errors.Is(err, gorm.ErrInvalidDB) {
		t.Fatalf("expected ErrInvalidDB, got %v", err)
	}
}
