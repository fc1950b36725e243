package renderer

import (
	"path/filepath"
	"strings"

	"github.com/mvp-joe/tsdoc/internal/extraction"
)

// collisionSet holds the item names that occur more than once across all
// files being rendered. It is computed once before rendering starts so the
// rendering pass itself stays side-effect-free.
type collisionSet map[string]bool

// newCollisionSet pools every emitted item name (interfaces, type aliases,
// and functions together) and records the duplicates.
func newCollisionSet(files []extraction.ParsedFile) collisionSet {
	counts := make(map[string]int)
	for _, file := range files {
		for _, iface := range file.Interfaces {
			counts[iface.Name]++
		}
		for _, alias := range file.TypeAliases {
			counts[alias.Name]++
		}
		for _, fn := range file.Functions {
			counts[fn.Name]++
		}
	}

	set := make(collisionSet)
	for name, count := range counts {
		if count > 1 {
			set[name] = true
		}
	}
	return set
}

// displayName returns the label for an item, suffixed with its source file's
// base name when the bare name collides with another item.
func (c collisionSet) displayName(name, filePath string) string {
	if c[name] {
		return name + " (" + filepath.Base(filePath) + ")"
	}
	return name
}

// anchor returns the normalized anchor identifier for an item. Two items
// with the same name from different files get anchors differing only by the
// appended sanitized file name.
func (c collisionSet) anchor(name, filePath string) string {
	if c[name] {
		return normalizeAnchor(name + "-" + filepath.Base(filePath))
	}
	return normalizeAnchor(name)
}

// normalizeAnchor lower-cases the input and replaces every run of one or
// more characters outside [a-z0-9] with a single hyphen.
func normalizeAnchor(s string) string {
	var sb strings.Builder
	inRun := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			inRun = false
			continue
		}
		if !inRun {
			sb.WriteByte('-')
			inRun = true
		}
	}
	return sb.String()
}
