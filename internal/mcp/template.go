package mcp

import (
	"fmt"
	"strings"
)

// SubstituteVariables replaces placeholders in content with the textual form
// of each supplied variable. Both single-brace {name} and double-brace
// {{name}} spellings are substituted; placeholders with no matching variable
// are left verbatim.
func SubstituteVariables(content string, variables map[string]interface{}) string {
	for name, value := range variables {
		text := fmt.Sprint(value)
		content = strings.ReplaceAll(content, "{{"+name+"}}", text)
		content = strings.ReplaceAll(content, "{"+name+"}", text)
	}
	return content
}
