package generator

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob. For
// "**/"-prefixed patterns, rootGlob is the precompiled remainder used to
// match files that sit directly in the root.
type compiledPattern struct {
	pattern  string
	glob     glob.Glob
	rootGlob glob.Glob
}

// compilePattern compiles a glob pattern, including the simplified variant
// for root-level files when the pattern starts with "**/".
func compilePattern(pattern string) (compiledPattern, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return compiledPattern{}, err
	}

	cp := compiledPattern{pattern: pattern, glob: g}
	if simplified, ok := strings.CutPrefix(pattern, "**/"); ok {
		if rootGlob, err := glob.Compile(simplified, '/'); err == nil {
			cp.rootGlob = rootGlob
		}
	}
	return cp, nil
}

// FileDiscovery resolves which source files feed the pipeline, using
// include glob patterns filtered by exclude patterns.
type FileDiscovery struct {
	rootDir         string
	includePatterns []compiledPattern
	excludePatterns []compiledPattern
}

// NewFileDiscovery creates a new file discovery instance.
func NewFileDiscovery(rootDir string, includePatterns, excludePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{
		rootDir: rootDir,
	}

	for _, pattern := range includePatterns {
		cp, err := compilePattern(pattern)
		if err != nil {
			return nil, err
		}
		fd.includePatterns = append(fd.includePatterns, cp)
	}

	for _, pattern := range excludePatterns {
		cp, err := compilePattern(pattern)
		if err != nil {
			return nil, err
		}
		fd.excludePatterns = append(fd.excludePatterns, cp)
	}

	return fd, nil
}

// DiscoverFiles walks the directory tree and returns the matching files in
// lexical order, so downstream output is stable across runs.
func (fd *FileDiscovery) DiscoverFiles() ([]string, error) {
	files := []string{}

	err := filepath.Walk(fd.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(fd.rootDir, path)
		if err != nil {
			return err
		}

		// Normalize path separators for glob matching
		relPath = filepath.ToSlash(relPath)

		if fd.shouldExclude(relPath) {
			return nil
		}

		if fd.matchesAnyPattern(relPath, fd.includePatterns) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// Matches reports whether a relative path is an input file: it matches an
// include pattern and no exclude pattern.
func (fd *FileDiscovery) Matches(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	return !fd.shouldExclude(relPath) && fd.matchesAnyPattern(relPath, fd.includePatterns)
}

// shouldExclude checks if a path matches any exclude pattern.
func (fd *FileDiscovery) shouldExclude(relPath string) bool {
	if fd.matchesAnyPattern(relPath, fd.excludePatterns) {
		return true
	}

	// Also check if this is a directory that would match with /** suffix.
	// For example, "node_modules" should match pattern "node_modules/**".
	return fd.matchesAnyPattern(relPath+"/**", fd.excludePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (fd *FileDiscovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Special handling: if path is in root (no slash), also try matching
	// against patterns with **/ prefix removed, so "**/*.ts" matches both
	// "index.ts" and "src/index.ts" as users would expect.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if cp.rootGlob != nil && cp.rootGlob.Match(path) {
				return true
			}
		}
	}

	return false
}
