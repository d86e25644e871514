package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"promptbook/internal/models"
)

// RootPath is the path of the root folder, which always exists and can never
// be deleted or renamed.
const RootPath = "/"

// NormalizePath converts user-supplied folder paths to canonical form:
// leading slash, no trailing slash, "" and "/" both meaning the root.
func NormalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == RootPath {
		return RootPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(path, "/")
}

// CreateFolder creates a single folder row at path, resolving parentPath to
// a parent id when it denotes an existing folder. Most callers want
// EnsureFolder instead, which builds the whole hierarchy.
func (s *Store) CreateFolder(name, path, parentPath string) (*models.Folder, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "must not be empty"}
	}

	var parentID *uint
	if parentPath != "" {
		var parent models.Folder
		if err := s.db.Where("path = ?", NormalizePath(parentPath)).First(&parent).Error; err == nil {
			parentID = &parent.ID
		}
	}

	folder := models.Folder{Name: name, Path: NormalizePath(path), ParentID: parentID}
	if err := s.db.Create(&folder).Error; err != nil {
		return nil, err
	}
	return &folder, nil
}

// EnsureFolder materializes the folder at path, creating every missing
// ancestor segment in order and reusing existing ones. Returns the folder at
// the full path; for the root path it returns the root folder.
func (s *Store) EnsureFolder(path string) (*models.Folder, error) {
	path = NormalizePath(path)

	var folder models.Folder
	err := s.db.Where("path = ?", path).First(&folder).Error
	if err == nil {
		return &folder, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	root, err := s.GetFolderByPath(RootPath)
	if err != nil {
		return nil, err
	}

	parentID := &root.ID
	current := ""
	last := root
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		current += "/" + part

		var f models.Folder
		err := s.db.Where("path = ?", current).First(&f).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			f = models.Folder{Name: part, Path: current, ParentID: parentID}
			if err := s.db.Create(&f).Error; err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}

		parentID = &f.ID
		last = &f
	}

	return last, nil
}

// GetFolderByPath looks a folder up by its materialized path.
func (s *Store) GetFolderByPath(path string) (*models.Folder, error) {
	var folder models.Folder
	err := s.db.Where("path = ?", NormalizePath(path)).First(&folder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

// ListFolders returns folders with their direct prompt counts. With a
// non-empty parentPath only direct children are returned; a parentPath that
// does not resolve yields an empty list, not an error.
func (s *Store) ListFolders(parentPath string) ([]models.Folder, error) {
	query := s.db.Model(&models.Folder{}).Order("path ASC")

	if parentPath != "" {
		parent, err := s.GetFolderByPath(parentPath)
		if errors.Is(err, ErrNotFound) {
			return []models.Folder{}, nil
		}
		if err != nil {
			return nil, err
		}
		query = query.Where("parent_id = ?", parent.ID)
	}

	var folders []models.Folder
	if err := query.Find(&folders).Error; err != nil {
		return nil, err
	}

	for i := range folders {
		var count int64
		if err := s.db.Model(&models.Prompt{}).
			Where("folder_id = ?", folders[i].ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		folders[i].PromptCount = count
	}

	return folders, nil
}

// DeleteFolder removes the folder at path after reparenting its directly
// contained prompts to the folder's own parent. Child folders are untouched;
// cascading over a subtree is the caller's job (deepest first, see the
// folder-rename orchestration in internal/mcp).
func (s *Store) DeleteFolder(path string) error {
	path = NormalizePath(path)
	if path == RootPath {
		return &ConflictError{Message: "cannot delete the root folder"}
	}

	folder, err := s.GetFolderByPath(path)
	if err != nil {
		return err
	}

	// Prompts at the root carry a nil folder id, so a parent that is the root
	// folder row must not leak through as a concrete id.
	parentID := folder.ParentID
	if parentID != nil {
		var parent models.Folder
		if err := s.db.First(&parent, *parentID).Error; err != nil {
			return err
		}
		if parent.Path == RootPath {
			parentID = nil
		}
	}

	if err := s.db.Model(&models.Prompt{}).
		Where("folder_id = ?", folder.ID).
		Update("folder_id", parentID).Error; err != nil {
		return err
	}

	return s.db.Delete(&models.Folder{}, folder.ID).Error
}

// FoldersUnder returns the folder at path plus every descendant (path equal
// to or prefixed by path + "/"), ordered shallowest first.
func (s *Store) FoldersUnder(path string) ([]models.Folder, error) {
	path = NormalizePath(path)

	var folders []models.Folder
	err := s.db.
		Where("path = ? OR path LIKE ? ESCAPE '\\'", path, escapeLike(path)+"/%").
		Order("path ASC").
		Find(&folders).Error
	if err != nil {
		return nil, err
	}
	return folders, nil
}
