package store

import (
	"errors"
	"regexp"

	"gorm.io/gorm"

	"promptbook/internal/models"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// CreateTag creates a tag, or returns the existing tag unchanged when the
// name is already taken. Names are matched case-sensitively.
func (s *Store) CreateTag(name, category, color string) (*models.Tag, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if len(name) > 50 {
		return nil, &ValidationError{Field: "name", Message: "must be at most 50 characters"}
	}
	if color != "" && !colorPattern.MatchString(color) {
		return nil, &ValidationError{Field: "color", Message: "must be a hex color like #RRGGBB"}
	}

	existing, err := s.GetTagByName(name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	tag := models.Tag{Name: name, Category: category, Color: color}
	if err := s.db.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetTagByName looks a tag up by exact name.
func (s *Store) GetTagByName(name string) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.Where("name = ?", name).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListTags returns all tags, optionally filtered by category.
func (s *Store) ListTags(category string) ([]models.Tag, error) {
	query := s.db.Order("name ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var tags []models.Tag
	if err := query.Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// DeleteTag removes a tag by name along with its prompt associations.
func (s *Store) DeleteTag(name string) error {
	tag, err := s.GetTagByName(name)
	if err != nil {
		return err
	}

	if err := s.db.Model(tag).Association("Prompts").Clear(); err != nil {
		return err
	}
	return s.db.Delete(&models.Tag{}, tag.ID).Error
}

// resolveTags maps tag names to tag rows, creating missing tags with the
// "custom" category and no color. Existing tags are reused, never duplicated.
func (s *Store) resolveTags(names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		tag, err := s.GetTagByName(name)
		if errors.Is(err, ErrNotFound) {
			tag, err = s.CreateTag(name, "custom", "")
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}
