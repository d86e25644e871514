package mcp

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"promptbook/internal/models"
	"promptbook/internal/store"
)

// renamePageSize is the page size used when collecting prompts for a folder
// rename; folders holding more prompts than this are walked in pages.
var renamePageSize = 1000

func (s *Server) getFoldersTool(args map[string]interface{}) (interface{}, error) {
	folders, err := s.store.ListFolders("")
	if err != nil {
		return nil, err
	}

	results := make([]map[string]interface{}, 0, len(folders))
	for _, f := range folders {
		results = append(results, map[string]interface{}{
			"path":         f.Path,
			"prompt_count": f.PromptCount,
			"created_at":   f.CreatedAt.Format(time.RFC3339),
		})
	}

	return map[string]interface{}{
		"folders": results,
		"count":   len(results),
	}, nil
}

func (s *Server) createFolderTool(args map[string]interface{}) (interface{}, error) {
	path := argString(args, "folder_path")
	if path == "" {
		return nil, &store.ValidationError{Field: "folder_path", Message: "is required"}
	}

	folder, err := s.store.EnsureFolder(path)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"success":     true,
		"folder_path": folder.Path,
		"message":     fmt.Sprintf("Created folder path '%s'", folder.Path),
	}, nil
}

func (s *Server) deleteFolderTool(args map[string]interface{}) (interface{}, error) {
	path := argString(args, "folder_path")
	if path == "" {
		return nil, &store.ValidationError{Field: "folder_path", Message: "is required"}
	}
	path = store.NormalizePath(path)

	if path == store.RootPath {
		return map[string]interface{}{"error": "Cannot delete the root folder"}, nil
	}

	folder, err := s.store.GetFolderByPath(path)
	if errors.Is(err, store.ErrNotFound) {
		return notFoundf("Folder '%s' not found", path), nil
	}
	if err != nil {
		return nil, err
	}

	_, moved, err := s.store.ListPrompts(path, 1, 0)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteFolder(folder.Path); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"success":     true,
		"folder_path": path,
		"message": fmt.Sprintf("Deleted folder '%s' and moved %d prompts to parent folder",
			path, moved),
	}, nil
}

// updateFolderTool renames a folder and everything beneath it. The store only
// offers single-entity primitives, so this is an explicit orchestration:
// collect, recreate, migrate, then delete deepest-first. A failure partway
// through leaves partially-migrated state; there is no rollback.
func (s *Server) updateFolderTool(args map[string]interface{}) (interface{}, error) {
	oldPath := argString(args, "old_path")
	newPath := argString(args, "new_path")
	if oldPath == "" || newPath == "" {
		return nil, &store.ValidationError{Field: "old_path/new_path", Message: "both are required"}
	}
	oldPath = store.NormalizePath(oldPath)
	newPath = store.NormalizePath(newPath)

	if oldPath == store.RootPath {
		return nil, &store.ConflictError{Message: "cannot rename the root folder"}
	}
	if strings.HasPrefix(newPath, oldPath+"/") {
		return nil, &store.ConflictError{Message: "cannot move a folder to be a child of itself"}
	}
	if _, err := s.store.GetFolderByPath(newPath); err == nil {
		return nil, &store.ConflictError{Message: fmt.Sprintf("folder '%s' already exists", newPath)}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if _, err := s.store.GetFolderByPath(oldPath); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundf("Folder '%s' not found", oldPath), nil
		}
		return nil, err
	}

	// Everything at or below oldPath, by path prefix
	folders, err := s.store.FoldersUnder(oldPath)
	if err != nil {
		return nil, err
	}

	type migration struct {
		prompt  models.Prompt
		newPath string
	}
	var migrations []migration
	for _, folder := range folders {
		target := newPath + strings.TrimPrefix(folder.Path, oldPath)
		for offset := 0; ; {
			prompts, total, err := s.store.ListPrompts(folder.Path, renamePageSize, offset)
			if err != nil {
				return nil, err
			}
			for _, p := range prompts {
				migrations = append(migrations, migration{prompt: p, newPath: target})
			}
			offset += len(prompts)
			if len(prompts) == 0 || int64(offset) >= total {
				break
			}
		}
	}

	// Build the replacement hierarchy before touching any prompt
	for _, folder := range folders {
		target := newPath + strings.TrimPrefix(folder.Path, oldPath)
		if _, err := s.store.EnsureFolder(target); err != nil {
			return nil, err
		}
	}

	for _, m := range migrations {
		path := m.newPath
		if _, err := s.store.UpdatePrompt(m.prompt.ID, models.PromptUpdate{FolderPath: &path}); err != nil {
			return nil, err
		}
	}

	// Deepest first, so no folder is deleted while still a parent of another
	// folder awaiting deletion
	sort.Slice(folders, func(i, j int) bool {
		return strings.Count(folders[i].Path, "/") > strings.Count(folders[j].Path, "/")
	})
	for _, folder := range folders {
		if err := s.store.DeleteFolder(folder.Path); err != nil {
			return nil, err
		}
	}

	return map[string]interface{}{
		"success":         true,
		"old_path":        oldPath,
		"new_path":        newPath,
		"folders_updated": len(folders),
		"prompts_updated": len(migrations),
		"message": fmt.Sprintf("Renamed folder '%s' to '%s' and updated %d folders and %d prompts",
			oldPath, newPath, len(folders), len(migrations)),
	}, nil
}

func (s *Server) getTagsTool(args map[string]interface{}) (interface{}, error) {
	tags, err := s.store.ListTags("")
	if err != nil {
		return nil, err
	}

	results := make([]map[string]interface{}, 0, len(tags))
	for _, t := range tags {
		results = append(results, map[string]interface{}{
			"id":         t.ID,
			"name":       t.Name,
			"category":   t.Category,
			"color":      t.Color,
			"created_at": t.CreatedAt.Format(time.RFC3339),
		})
	}

	return map[string]interface{}{
		"tags":  results,
		"count": len(results),
	}, nil
}

func tagPayload(t *models.Tag) map[string]interface{} {
	return map[string]interface{}{
		"id":       t.ID,
		"name":     t.Name,
		"category": t.Category,
		"color":    t.Color,
	}
}

func (s *Server) createTagTool(args map[string]interface{}) (interface{}, error) {
	name := argString(args, "name")
	if name == "" {
		return nil, &store.ValidationError{Field: "name", Message: "is required"}
	}

	existing, err := s.store.GetTagByName(name)
	if err == nil {
		return map[string]interface{}{
			"success": true,
			"tag":     tagPayload(existing),
			"message": fmt.Sprintf("Tag '%s' already exists", name),
		}, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	tag, err := s.store.CreateTag(name, argString(args, "category"), argString(args, "color"))
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"success": true,
		"tag":     tagPayload(tag),
		"message": fmt.Sprintf("Created tag '%s'", name),
	}, nil
}

// updateTagTool is a delete-then-create composition; the store has no tag
// update primitive. Unsupplied fields keep their current values.
func (s *Server) updateTagTool(args map[string]interface{}) (interface{}, error) {
	currentName := argString(args, "current_name")
	if currentName == "" {
		return nil, &store.ValidationError{Field: "current_name", Message: "is required"}
	}

	existing, err := s.store.GetTagByName(currentName)
	if errors.Is(err, store.ErrNotFound) {
		return notFoundf("Tag '%s' not found", currentName), nil
	}
	if err != nil {
		return nil, err
	}

	newName := existing.Name
	if v, ok := args["new_name"].(string); ok {
		newName = v
	}
	category := existing.Category
	if v, ok := args["category"].(string); ok {
		category = v
	}
	color := existing.Color
	if v, ok := args["color"].(string); ok {
		color = v
	}

	if newName != currentName {
		if _, err := s.store.GetTagByName(newName); err == nil {
			return nil, &store.ConflictError{Message: fmt.Sprintf("tag '%s' already exists", newName)}
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	if err := s.store.DeleteTag(currentName); err != nil {
		return nil, err
	}
	tag, err := s.store.CreateTag(newName, category, color)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Updated tag '%s'", currentName)
	if newName != currentName {
		message = fmt.Sprintf("Updated tag '%s' to '%s'", currentName, newName)
	}

	return map[string]interface{}{
		"success":  true,
		"tag":      tagPayload(tag),
		"old_name": currentName,
		"message":  message,
	}, nil
}

func (s *Server) deleteTagTool(args map[string]interface{}) (interface{}, error) {
	name := argString(args, "name")
	if name == "" {
		return nil, &store.ValidationError{Field: "name", Message: "is required"}
	}

	err := s.store.DeleteTag(name)
	if errors.Is(err, store.ErrNotFound) {
		return notFoundf("Tag '%s' not found", name), nil
	}
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"success":  true,
		"tag_name": name,
		"message":  fmt.Sprintf("Deleted tag '%s'", name),
	}, nil
}
