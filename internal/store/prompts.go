package store

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"promptbook/internal/models"
)

const (
	defaultSearchLimit = 100
	maxSearchLimit     = 1000
)

func validateTitle(title string) error {
	if title == "" {
		return &ValidationError{Field: "title", Message: "must not be empty"}
	}
	if utf8.RuneCountInString(title) > 200 {
		return &ValidationError{Field: "title", Message: "must be at most 200 characters"}
	}
	return nil
}

// CreatePrompt stores a new prompt, materializing the folder hierarchy and
// resolving or creating the named tags.
func (s *Store) CreatePrompt(req models.PromptCreate) (*models.Prompt, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}
	if req.Content == "" {
		return nil, &ValidationError{Field: "content", Message: "must not be empty"}
	}

	folderID, err := s.resolveFolderID(req.FolderPath)
	if err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(req.Tags)
	if err != nil {
		return nil, err
	}

	prompt := models.Prompt{
		Title:       req.Title,
		Content:     req.Content,
		Description: req.Description,
		FolderID:    folderID,
		Tags:        tags,
	}
	if err := s.db.Create(&prompt).Error; err != nil {
		return nil, err
	}

	return s.GetPrompt(prompt.ID)
}

// GetPrompt returns the prompt with the given id, including its tags and
// resolved folder path.
func (s *Store) GetPrompt(id uint) (*models.Prompt, error) {
	var prompt models.Prompt
	err := s.db.Preload("Tags").Preload("Folder").First(&prompt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	s.fillFolderPath(&prompt)
	return &prompt, nil
}

// UpdatePrompt applies a partial update. Only non-nil fields are touched; a
// set FolderPath (even empty, meaning root) re-resolves the folder, and a set
// Tags replaces the whole tag set, so an empty slice clears all tags.
func (s *Store) UpdatePrompt(id uint, req models.PromptUpdate) (*models.Prompt, error) {
	var prompt models.Prompt
	err := s.db.First(&prompt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return nil, err
		}
		prompt.Title = *req.Title
	}
	if req.Content != nil {
		if *req.Content == "" {
			return nil, &ValidationError{Field: "content", Message: "must not be empty"}
		}
		prompt.Content = *req.Content
	}
	if req.Description != nil {
		prompt.Description = *req.Description
	}
	if req.FolderPath != nil {
		folderID, err := s.resolveFolderID(*req.FolderPath)
		if err != nil {
			return nil, err
		}
		prompt.FolderID = folderID
	}

	if err := s.db.Save(&prompt).Error; err != nil {
		return nil, err
	}

	if req.Tags != nil {
		tags, err := s.resolveTags(*req.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.db.Model(&prompt).Association("Tags").Replace(&tags); err != nil {
			return nil, err
		}
	}

	return s.GetPrompt(id)
}

// DeletePrompt hard-deletes a prompt; tag associations are dropped with it.
func (s *Store) DeletePrompt(id uint) error {
	var prompt models.Prompt
	err := s.db.First(&prompt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if err := s.db.Model(&prompt).Association("Tags").Clear(); err != nil {
		return err
	}
	return s.db.Delete(&models.Prompt{}, id).Error
}

// SearchPrompts filters prompts by substring query (case-insensitive across
// title, content, and description), folder path, and tags (every listed tag
// must match; unknown tag names are ignored). Results are ordered by id
// ascending; total is the match count before offset/limit are applied.
func (s *Store) SearchPrompts(params models.PromptSearch) ([]models.Prompt, int64, error) {
	query := s.db.Model(&models.Prompt{})

	if params.Query != "" {
		term := "%" + escapeLike(strings.ToLower(params.Query)) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(content) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\'",
			term, term, term,
		)
	}

	if params.FolderPath != "" {
		if NormalizePath(params.FolderPath) == RootPath {
			// Prompts at the root have no folder row
			query = query.Where("folder_id IS NULL")
		} else {
			folder, err := s.GetFolderByPath(params.FolderPath)
			if errors.Is(err, ErrNotFound) {
				// A missing folder is an empty result set, not an error
				return []models.Prompt{}, 0, nil
			}
			if err != nil {
				return nil, 0, err
			}
			query = query.Where("folder_id = ?", folder.ID)
		}
	}

	for _, name := range params.Tags {
		tag, err := s.GetTagByName(name)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, 0, err
		}
		query = query.Where(
			"prompts.id IN (SELECT prompt_id FROM prompt_tags WHERE tag_id = ?)",
			tag.ID,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	var prompts []models.Prompt
	err := query.
		Preload("Tags").
		Preload("Folder").
		Order("prompts.id ASC").
		Offset(params.Offset).
		Limit(limit).
		Find(&prompts).Error
	if err != nil {
		return nil, 0, err
	}

	for i := range prompts {
		s.fillFolderPath(&prompts[i])
	}

	return prompts, total, nil
}

// ListPrompts lists prompts with optional folder filtering.
func (s *Store) ListPrompts(folderPath string, limit, offset int) ([]models.Prompt, int64, error) {
	return s.SearchPrompts(models.PromptSearch{
		FolderPath: folderPath,
		Limit:      limit,
		Offset:     offset,
	})
}

// resolveFolderID maps a folder path to a folder id, creating the hierarchy
// as needed. The empty path and "/" both mean root, represented as nil.
func (s *Store) resolveFolderID(path string) (*uint, error) {
	if NormalizePath(path) == RootPath {
		return nil, nil
	}
	folder, err := s.EnsureFolder(path)
	if err != nil {
		return nil, err
	}
	return &folder.ID, nil
}

func (s *Store) fillFolderPath(p *models.Prompt) {
	if p.Folder != nil {
		p.FolderPath = p.Folder.Path
	}
}

// escapeLike escapes SQL LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
