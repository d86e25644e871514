package store

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"promptbook/internal/config"
	"promptbook/internal/models"
)

// defaultTags are seeded exactly once, when the store file is first created.
var defaultTags = []models.Tag{
	{Name: "claude", Category: "ai_tool", Color: "#7C3AED"},
	{Name: "chatgpt", Category: "ai_tool", Color: "#10B981"},
	{Name: "perplexity", Category: "ai_tool", Color: "#3B82F6"},
	{Name: "gemini", Category: "ai_tool", Color: "#F59E0B"},
	{Name: "coding", Category: "topic", Color: "#EF4444"},
	{Name: "writing", Category: "topic", Color: "#8B5CF6"},
	{Name: "analysis", Category: "topic", Color: "#06B6D4"},
}

// Store is the catalogue store: folders, tags, prompts and their
// associations, persisted in a single SQLite file. It assumes a single
// caller; there is no row-level locking.
type Store struct {
	db *gorm.DB
}

// Open connects to the SQLite database at cfg.DatabasePath, migrates the
// schema, and seeds the root folder and default tags on first use.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Folder{},
		&models.Tag{},
		&models.Prompt{},
	); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	s := &Store{db: db}
	if err := s.seedDefaults(); err != nil {
		return nil, fmt.Errorf("failed to seed defaults: %w", err)
	}

	return s, nil
}

// seedDefaults creates the root folder, and on the very first run the default
// tag set. Tags are deliberately not re-seeded afterward, so deleting a
// default tag sticks across restarts.
func (s *Store) seedDefaults() error {
	var root models.Folder
	err := s.db.Where("path = ?", RootPath).First(&root).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	root = models.Folder{Name: "Root", Path: RootPath}
	if err := s.db.Create(&root).Error; err != nil {
		return err
	}

	for i := range defaultTags {
		tag := defaultTags[i]
		if err := s.db.Create(&tag).Error; err != nil {
			return err
		}
	}
	return nil
}
