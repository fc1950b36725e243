package parsers

import "strings"

// docComment is the resolved content of a declaration's documentation
// comment blocks: the free-text summary and, for functions, per-parameter
// descriptions keyed by parameter name.
type docComment struct {
	description string
	params      map[string]string
}

// resolveDocComment resolves a declaration's documentation from its attached
// comment blocks. Only the last block counts; earlier blocks document
// unrelated preceding code or are file banners.
func resolveDocComment(blocks []string) docComment {
	if len(blocks) == 0 {
		return docComment{}
	}

	lines := cleanCommentBlock(blocks[len(blocks)-1])

	var summary []string
	var tags []string
	inTags := false
	for _, line := range lines {
		if strings.HasPrefix(line, "@") {
			inTags = true
			tags = append(tags, line)
			continue
		}
		if inTags {
			// Continuation line of the current tag. Alignment indentation
			// after the leading "*" is dropped before joining.
			if trimmed := strings.TrimSpace(line); len(tags) > 0 && trimmed != "" {
				tags[len(tags)-1] += " " + trimmed
			}
			continue
		}
		summary = append(summary, line)
	}

	doc := docComment{
		description: strings.TrimSpace(strings.Join(summary, "\n")),
	}

	for _, tag := range tags {
		rest, ok := strings.CutPrefix(tag, "@param")
		if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
			continue
		}
		name, desc, ok := parseParamTag(rest)
		if !ok {
			continue
		}
		if doc.params == nil {
			doc.params = make(map[string]string)
		}
		doc.params[name] = desc
	}

	return doc
}

// cleanCommentBlock strips the /** */ delimiters and per-line leading
// asterisks from a JSDoc block, returning the content lines.
func cleanCommentBlock(block string) []string {
	block = strings.TrimPrefix(block, "/**")
	block = strings.TrimSuffix(block, "*/")

	var lines []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(line, "*"); ok {
			line = strings.TrimPrefix(after, " ")
		}
		lines = append(lines, line)
	}
	return lines
}

// parseParamTag parses the text after "@param" into a parameter name and
// description. Dotted names (fields of destructured parameters) and tags
// with no comment text are skipped.
func parseParamTag(text string) (name, desc string, ok bool) {
	text = strings.TrimSpace(text)

	// Optional braced type: @param {Type} name text
	if strings.HasPrefix(text, "{") {
		depth := 0
		end := -1
		for i, r := range text {
			switch r {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					end = i
				}
			}
			if end >= 0 {
				break
			}
		}
		if end < 0 {
			return "", "", false
		}
		text = strings.TrimSpace(text[end+1:])
	}

	name, desc, _ = strings.Cut(text, " ")

	// Bracketed optional form: [name] or [name=default]
	if strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]") {
		name = name[1 : len(name)-1]
		name, _, _ = strings.Cut(name, "=")
	}

	if name == "" || strings.Contains(name, ".") {
		return "", "", false
	}

	desc = strings.TrimSpace(desc)
	desc = strings.TrimPrefix(desc, "- ")
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return "", "", false
	}

	return name, desc, true
}
