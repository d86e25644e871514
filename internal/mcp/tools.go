package mcp

import (
	"encoding/json"
	"fmt"

	"promptbook/internal/store"
)

// Tool describes a named operation the calling agent may invoke, with a
// declared input schema used for client-side validation.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func intProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": description}
}

func stringArrayProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": description,
	}
}

// ToolDefinitions returns the fixed tool catalogue.
func ToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "search_prompts",
			Description: "Search for prompts by query, tags, or folder",
			InputSchema: objectSchema(map[string]interface{}{
				"query":       stringProp("Search query"),
				"tags":        stringArrayProp("Filter by tags"),
				"folder_path": stringProp("Filter by folder"),
				"limit":       intProp("Maximum results to return"),
				"offset":      intProp("Results to skip"),
			}),
		},
		{
			Name:        "create_prompt",
			Description: "Create a new prompt",
			InputSchema: objectSchema(map[string]interface{}{
				"title":       stringProp("Prompt title"),
				"content":     stringProp("Prompt content"),
				"description": stringProp("Optional description"),
				"folder_path": stringProp("Folder path"),
				"tags":        stringArrayProp("Tags"),
			}, "title", "content"),
		},
		{
			Name:        "get_prompt",
			Description: "Get a prompt by ID for immediate use",
			InputSchema: objectSchema(map[string]interface{}{
				"prompt_id": intProp("Prompt ID"),
			}, "prompt_id"),
		},
		{
			Name:        "use_prompt_template",
			Description: "Use a prompt template with variable substitution",
			InputSchema: objectSchema(map[string]interface{}{
				"prompt_id": intProp("Prompt ID"),
				"variables": map[string]interface{}{
					"type":        "object",
					"description": "Variables to substitute",
				},
			}, "prompt_id"),
		},
		{
			Name:        "find_and_use_prompt",
			Description: "Search for and use a prompt with variables",
			InputSchema: objectSchema(map[string]interface{}{
				"query": stringProp("Search query"),
				"variables": map[string]interface{}{
					"type":        "object",
					"description": "Variables to substitute",
				},
			}, "query"),
		},
		{
			Name:        "update_prompt",
			Description: "Update an existing prompt's title, content, description, folder, or tags",
			InputSchema: objectSchema(map[string]interface{}{
				"prompt_id":   intProp("Prompt ID to update"),
				"title":       stringProp("New prompt title"),
				"content":     stringProp("New prompt content"),
				"description": stringProp("New description"),
				"folder_path": stringProp("New folder path"),
				"tags":        stringArrayProp("New tags (replaces all existing tags)"),
			}, "prompt_id"),
		},
		{
			Name:        "delete_prompt",
			Description: "Delete a prompt by ID",
			InputSchema: objectSchema(map[string]interface{}{
				"prompt_id": intProp("Prompt ID to delete"),
			}, "prompt_id"),
		},
		{
			Name:        "get_folders",
			Description: "List all folders in the prompt library",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "create_folder",
			Description: "Create a new folder path",
			InputSchema: objectSchema(map[string]interface{}{
				"folder_path": stringProp("Folder path to create (e.g., 'AI/Coding/Python')"),
			}, "folder_path"),
		},
		{
			Name:        "delete_folder",
			Description: "Delete a folder and move its prompts to the parent folder",
			InputSchema: objectSchema(map[string]interface{}{
				"folder_path": stringProp("Folder path to delete (e.g., 'AI/Coding/Python')"),
			}, "folder_path"),
		},
		{
			Name:        "update_folder",
			Description: "Rename a folder (updates the folder path and all child folders/prompts)",
			InputSchema: objectSchema(map[string]interface{}{
				"old_path": stringProp("Current folder path (e.g., 'AI/Coding')"),
				"new_path": stringProp("New folder path (e.g., 'AI/Development')"),
			}, "old_path", "new_path"),
		},
		{
			Name:        "get_tags",
			Description: "List all tags in the prompt library",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "create_tag",
			Description: "Create a new tag",
			InputSchema: objectSchema(map[string]interface{}{
				"name":     stringProp("Tag name"),
				"category": stringProp("Tag category (optional)"),
				"color":    stringProp("Hex color code (optional, e.g., '#FF5733')"),
			}, "name"),
		},
		{
			Name:        "update_tag",
			Description: "Update an existing tag's name, category, or color",
			InputSchema: objectSchema(map[string]interface{}{
				"current_name": stringProp("Current tag name"),
				"new_name":     stringProp("New tag name (optional)"),
				"category":     stringProp("New category (optional)"),
				"color":        stringProp("New hex color code (optional, e.g., '#FF5733')"),
			}, "current_name"),
		},
		{
			Name:        "delete_tag",
			Description: "Delete a tag by name",
			InputSchema: objectSchema(map[string]interface{}{
				"name": stringProp("Tag name to delete"),
			}, "name"),
		},
	}
}

func (s *Server) handleToolsList(req *request) *response {
	return resultResponse(req.ID, map[string]interface{}{
		"tools": ToolDefinitions(),
	})
}

func (s *Server) handleToolsCall(req *request) *response {
	var params struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}
	if params.Arguments == nil {
		params.Arguments = map[string]interface{}{}
	}

	var (
		result interface{}
		err    error
	)
	switch params.Name {
	case "search_prompts":
		result, err = s.searchPromptsTool(params.Arguments)
	case "create_prompt":
		result, err = s.createPromptTool(params.Arguments)
	case "get_prompt":
		result, err = s.getPromptTool(params.Arguments)
	case "use_prompt_template":
		result, err = s.usePromptTemplateTool(params.Arguments)
	case "find_and_use_prompt":
		result, err = s.findAndUsePromptTool(params.Arguments)
	case "update_prompt":
		result, err = s.updatePromptTool(params.Arguments)
	case "delete_prompt":
		result, err = s.deletePromptTool(params.Arguments)
	case "get_folders":
		result, err = s.getFoldersTool(params.Arguments)
	case "create_folder":
		result, err = s.createFolderTool(params.Arguments)
	case "delete_folder":
		result, err = s.deleteFolderTool(params.Arguments)
	case "update_folder":
		result, err = s.updateFolderTool(params.Arguments)
	case "get_tags":
		result, err = s.getTagsTool(params.Arguments)
	case "create_tag":
		result, err = s.createTagTool(params.Arguments)
	case "update_tag":
		result, err = s.updateTagTool(params.Arguments)
	case "delete_tag":
		result, err = s.deleteTagTool(params.Arguments)
	default:
		return errorResponse(req.ID, codeMethodNotFound,
			fmt.Sprintf("Unknown tool: %s", params.Name), nil)
	}
	if err != nil {
		return toolError(req.ID, err)
	}

	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errorResponse(req.ID, codeInternalError, "Internal error", err.Error())
	}

	return resultResponse(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": string(text)},
		},
	})
}

// Argument extraction helpers. Arguments arrive as generic JSON, so numbers
// are float64 and arrays are []interface{}.

func argString(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func argUint(args map[string]interface{}, key string) (uint, error) {
	v, ok := args[key]
	if !ok {
		return 0, &store.ValidationError{Field: key, Message: "is required"}
	}
	f, ok := v.(float64)
	if !ok || f < 0 || f != float64(uint(f)) {
		return 0, &store.ValidationError{Field: key, Message: "must be a non-negative integer"}
	}
	return uint(f), nil
}

func argInt(args map[string]interface{}, key string, fallback int) int {
	if f, ok := args[key].(float64); ok {
		return int(f)
	}
	return fallback
}

func argStringSlice(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if str, ok := v.(string); ok {
			out = append(out, str)
		}
	}
	return out
}

func argVariables(args map[string]interface{}, key string) map[string]interface{} {
	if m, ok := args[key].(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}
