package renderer

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/tsdoc/internal/extraction"
)

// DefaultTitle is used when no title override is configured.
const DefaultTitle = "API Reference"

// Options configures document rendering.
type Options struct {
	// Title replaces the document's top heading. Empty means DefaultTitle.
	Title string
}

// Render produces the markdown reference document for the given files.
// Files are consumed in caller order; given identical input the output is
// byte-identical across runs.
func Render(files []extraction.ParsedFile, opts Options) string {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	collisions := newCollisionSet(files)

	var lines []string
	lines = append(lines, "# "+title)

	if hasItems(files) {
		lines = append(lines, renderTableOfContents(files, collisions)...)
	}

	for _, file := range files {
		for _, iface := range file.Interfaces {
			lines = append(lines, renderInterface(iface, file.FilePath, collisions)...)
		}
	}
	for _, file := range files {
		for _, alias := range file.TypeAliases {
			lines = append(lines, renderTypeAlias(alias, file.FilePath, collisions)...)
		}
	}
	for _, file := range files {
		for _, fn := range file.Functions {
			lines = append(lines, renderFunction(fn, file.FilePath, collisions)...)
		}
	}

	return strings.Join(lines, "\n")
}

// hasItems reports whether any file contributed at least one item.
func hasItems(files []extraction.ParsedFile) bool {
	for _, file := range files {
		if !file.IsEmpty() {
			return true
		}
	}
	return false
}

// renderTableOfContents emits the link lists for each non-empty item group.
func renderTableOfContents(files []extraction.ParsedFile, collisions collisionSet) []string {
	lines := []string{"", "## Table of Contents"}

	var interfaces, types, functions []string
	for _, file := range files {
		for _, iface := range file.Interfaces {
			interfaces = append(interfaces, tocEntry(iface.Name, file.FilePath, collisions))
		}
		for _, alias := range file.TypeAliases {
			types = append(types, tocEntry(alias.Name, file.FilePath, collisions))
		}
		for _, fn := range file.Functions {
			functions = append(functions, tocEntry(fn.Name, file.FilePath, collisions))
		}
	}

	if len(interfaces) > 0 {
		lines = append(lines, "", "### Interfaces", "")
		lines = append(lines, interfaces...)
	}
	if len(types) > 0 {
		lines = append(lines, "", "### Types", "")
		lines = append(lines, types...)
	}
	if len(functions) > 0 {
		lines = append(lines, "", "### Functions", "")
		lines = append(lines, functions...)
	}

	lines = append(lines, "", "---")
	return lines
}

// tocEntry renders one table-of-contents link list item.
func tocEntry(name, filePath string, collisions collisionSet) string {
	return fmt.Sprintf("- [%s](#%s)", collisions.displayName(name, filePath), collisions.anchor(name, filePath))
}

// renderInterface emits one interface section.
func renderInterface(iface extraction.ParsedInterface, filePath string, collisions collisionSet) []string {
	lines := []string{"", "## " + collisions.displayName(iface.Name, filePath)}

	if len(iface.Extends) > 0 {
		lines = append(lines, "", "*Extends: "+strings.Join(iface.Extends, ", ")+"*")
	}
	if iface.Description != "" {
		lines = append(lines, "", iface.Description)
	}

	if len(iface.Properties) == 0 {
		lines = append(lines, "", "*No properties*")
	} else {
		lines = append(lines, "",
			"| Property | Type | Required | Description |",
			"|----------|------|----------|-------------|")
		for _, prop := range iface.Properties {
			lines = append(lines, fmt.Sprintf("| %s | `%s` | %s | %s |",
				prop.Name, escapePipes(prop.Type), requiredMark(prop.Required), prop.Description))
		}
	}

	return append(lines, "", "---")
}

// renderTypeAlias emits one type alias section.
func renderTypeAlias(alias extraction.ParsedTypeAlias, filePath string, collisions collisionSet) []string {
	lines := []string{"", "## " + collisions.displayName(alias.Name, filePath)}

	if alias.Description != "" {
		lines = append(lines, "", alias.Description)
	}

	lines = append(lines, "",
		"```typescript",
		fmt.Sprintf("type %s = %s", alias.Name, alias.Type),
		"```")

	return append(lines, "", "---")
}

// renderFunction emits one function section.
func renderFunction(fn extraction.ParsedFunction, filePath string, collisions collisionSet) []string {
	lines := []string{"", "## " + collisions.displayName(fn.Name, filePath)}

	if fn.Description != "" {
		lines = append(lines, "", fn.Description)
	}

	lines = append(lines, "",
		"```typescript",
		functionSignature(fn),
		"```")

	if len(fn.Parameters) > 0 {
		lines = append(lines, "", "Parameters:", "",
			"| Parameter | Type | Required | Description |",
			"|-----------|------|----------|-------------|")
		for _, param := range fn.Parameters {
			lines = append(lines, fmt.Sprintf("| %s | `%s` | %s | %s |",
				param.Name, escapePipes(param.Type), requiredMark(param.Required), param.Description))
		}
	}

	lines = append(lines, "", fmt.Sprintf("**Returns:** `%s`", escapePipes(fn.ReturnType)))

	return append(lines, "", "---")
}

// functionSignature reconstructs the declared signature, with a trailing "?"
// on each optional parameter.
func functionSignature(fn extraction.ParsedFunction) string {
	params := make([]string, 0, len(fn.Parameters))
	for _, param := range fn.Parameters {
		name := param.Name
		if !param.Required {
			name += "?"
		}
		params = append(params, fmt.Sprintf("%s: %s", name, param.Type))
	}

	signature := fmt.Sprintf("function %s(%s): %s", fn.Name, strings.Join(params, ", "), fn.ReturnType)
	if fn.IsAsync {
		signature = "async " + signature
	}
	return signature
}

// requiredMark renders the Required table cell: a check mark or blank.
func requiredMark(required bool) string {
	if required {
		return "✓"
	}
	return ""
}

// escapePipes escapes pipe characters in type text rendered inside a table
// cell. No other escaping is performed.
func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
