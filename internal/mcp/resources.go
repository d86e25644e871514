package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"promptbook/internal/models"
	"promptbook/internal/store"
)

const resourceURIPrefix = "prompt:///"

// handleResourcesList exposes every prompt as an addressable resource.
func (s *Server) handleResourcesList(req *request) *response {
	prompts, _, err := s.store.ListPrompts("", 1000, 0)
	if err != nil {
		return errorResponse(req.ID, codeInternalError, "Internal error", err.Error())
	}

	resources := make([]map[string]interface{}, 0, len(prompts))
	for i := range prompts {
		p := &prompts[i]
		resources = append(resources, map[string]interface{}{
			"uri":         fmt.Sprintf("%s%d", resourceURIPrefix, p.ID),
			"name":        p.Title,
			"description": resourceDescription(p),
			"mimeType":    "text/plain",
		})
	}

	return resultResponse(req.ID, map[string]interface{}{
		"resources": resources,
	})
}

func (s *Server) handleResourcesRead(req *request) *response {
	var params struct {
		URI string `json:"uri"`
	}
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
	}

	if !strings.HasPrefix(params.URI, resourceURIPrefix) {
		return errorResponse(req.ID, codeInvalidParams, "Invalid URI", nil)
	}
	id, err := strconv.ParseUint(strings.TrimPrefix(params.URI, resourceURIPrefix), 10, 64)
	if err != nil {
		return errorResponse(req.ID, codeInvalidParams, "Invalid URI", nil)
	}

	prompt, err := s.store.GetPrompt(uint(id))
	if errors.Is(err, store.ErrNotFound) {
		return errorResponse(req.ID, codeInvalidParams,
			fmt.Sprintf("Prompt %d not found", id), nil)
	}
	if err != nil {
		return errorResponse(req.ID, codeInternalError, "Internal error", err.Error())
	}

	return resultResponse(req.ID, map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"uri":      params.URI,
				"mimeType": "text/plain",
				"text":     FormatPromptDocument(prompt),
			},
		},
	})
}

// resourceDescription falls back to a content preview when the prompt has no
// description of its own.
func resourceDescription(p *models.Prompt) string {
	if p.Description != "" {
		return p.Description
	}
	preview := []rune(p.Content)
	if len(preview) > 100 {
		return "Prompt: " + string(preview[:100]) + "..."
	}
	return "Prompt: " + string(preview)
}

// FormatPromptDocument renders a prompt as a readable document: a title
// heading, optional metadata lines, a separator, then the raw content.
func FormatPromptDocument(p *models.Prompt) string {
	lines := []string{"# " + p.Title, ""}

	if p.Description != "" {
		lines = append(lines, "**Description:** "+p.Description, "")
	}
	if p.FolderPath != "" {
		lines = append(lines, "**Folder:** "+p.FolderPath, "")
	}
	if len(p.Tags) > 0 {
		lines = append(lines, "**Tags:** "+strings.Join(p.TagNames(), ", "), "")
	}

	lines = append(lines, "---", "", p.Content)
	return strings.Join(lines, "\n")
}
