package mcp

import (
	"errors"
	"time"

	"promptbook/internal/models"
	"promptbook/internal/store"
)

func promptPayload(p *models.Prompt) map[string]interface{} {
	return map[string]interface{}{
		"id":          p.ID,
		"title":       p.Title,
		"content":     p.Content,
		"description": p.Description,
		"folder_path": p.FolderPath,
		"tags":        p.TagNames(),
		"created_at":  p.CreatedAt.Format(time.RFC3339),
	}
}

func (s *Server) searchPromptsTool(args map[string]interface{}) (interface{}, error) {
	prompts, total, err := s.store.SearchPrompts(models.PromptSearch{
		Query:      argString(args, "query"),
		FolderPath: argString(args, "folder_path"),
		Tags:       argStringSlice(args, "tags"),
		Limit:      argInt(args, "limit", 10),
		Offset:     argInt(args, "offset", 0),
	})
	if err != nil {
		return nil, err
	}

	results := make([]map[string]interface{}, 0, len(prompts))
	for i := range prompts {
		results = append(results, promptPayload(&prompts[i]))
	}

	return map[string]interface{}{
		"prompts": results,
		"total":   total,
		"count":   len(results),
	}, nil
}

func (s *Server) createPromptTool(args map[string]interface{}) (interface{}, error) {
	prompt, err := s.store.CreatePrompt(models.PromptCreate{
		Title:       argString(args, "title"),
		Content:     argString(args, "content"),
		Description: argString(args, "description"),
		FolderPath:  argString(args, "folder_path"),
		Tags:        argStringSlice(args, "tags"),
	})
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"success": true,
		"prompt":  promptPayload(prompt),
	}, nil
}

func (s *Server) getPromptTool(args map[string]interface{}) (interface{}, error) {
	id, err := argUint(args, "prompt_id")
	if err != nil {
		return nil, err
	}

	prompt, err := s.store.GetPrompt(id)
	if errors.Is(err, store.ErrNotFound) {
		return notFoundf("Prompt with ID %d not found", id), nil
	}
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"prompt_content": prompt.Content,
		"title":          prompt.Title,
		"description":    prompt.Description,
		"tags":           prompt.TagNames(),
		"folder_path":    prompt.FolderPath,
	}, nil
}

func (s *Server) usePromptTemplateTool(args map[string]interface{}) (interface{}, error) {
	id, err := argUint(args, "prompt_id")
	if err != nil {
		return nil, err
	}
	variables := argVariables(args, "variables")

	prompt, err := s.store.GetPrompt(id)
	if errors.Is(err, store.ErrNotFound) {
		return notFoundf("Prompt with ID %d not found", id), nil
	}
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"prompt_content":   SubstituteVariables(prompt.Content, variables),
		"original_content": prompt.Content,
		"title":            prompt.Title,
		"variables_used":   variables,
		"description":      prompt.Description,
		"tags":             prompt.TagNames(),
		"folder_path":      prompt.FolderPath,
	}, nil
}

func (s *Server) findAndUsePromptTool(args map[string]interface{}) (interface{}, error) {
	query := argString(args, "query")
	if query == "" {
		return nil, &store.ValidationError{Field: "query", Message: "is required"}
	}
	variables := argVariables(args, "variables")

	prompts, total, err := s.store.SearchPrompts(models.PromptSearch{Query: query, Limit: 5})
	if err != nil {
		return nil, err
	}
	if len(prompts) == 0 {
		return notFoundf("No prompts found matching '%s'", query), nil
	}

	best := &prompts[0]
	result := map[string]interface{}{
		"prompt_content":       SubstituteVariables(best.Content, variables),
		"prompt_id":            best.ID,
		"title":                best.Title,
		"description":          best.Description,
		"tags":                 best.TagNames(),
		"folder_path":          best.FolderPath,
		"search_results_count": total,
	}
	if len(variables) > 0 {
		result["original_content"] = best.Content
		result["variables_used"] = variables
	}
	return result, nil
}

func (s *Server) updatePromptTool(args map[string]interface{}) (interface{}, error) {
	id, err := argUint(args, "prompt_id")
	if err != nil {
		return nil, err
	}

	// Only fields actually present in the arguments are applied; presence of
	// folder_path or tags matters even when the value is empty.
	var update models.PromptUpdate
	if v, ok := args["title"].(string); ok {
		update.Title = &v
	}
	if v, ok := args["content"].(string); ok {
		update.Content = &v
	}
	if v, ok := args["description"].(string); ok {
		update.Description = &v
	}
	if v, ok := args["folder_path"].(string); ok {
		update.FolderPath = &v
	}
	if _, ok := args["tags"]; ok {
		tags := argStringSlice(args, "tags")
		if tags == nil {
			tags = []string{}
		}
		update.Tags = &tags
	}

	prompt, err := s.store.UpdatePrompt(id, update)
	if errors.Is(err, store.ErrNotFound) {
		return notFoundf("Prompt with ID %d not found", id), nil
	}
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"success": true,
		"prompt":  promptPayload(prompt),
	}, nil
}

func (s *Server) deletePromptTool(args map[string]interface{}) (interface{}, error) {
	id, err := argUint(args, "prompt_id")
	if err != nil {
		return nil, err
	}

	prompt, err := s.store.GetPrompt(id)
	if errors.Is(err, store.ErrNotFound) {
		return notFoundf("Prompt with ID %d not found", id), nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.store.DeletePrompt(id); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"success": true,
		"message": "Deleted prompt '" + prompt.Title + "'",
		"id":      id,
	}, nil
}
