package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/tsdoc/internal/extraction"
	"github.com/mvp-joe/tsdoc/internal/parsers"
	"github.com/mvp-joe/tsdoc/internal/renderer"
)

// Test Plan for the Generation Pipeline:
// - Rendered output consumes files in input order regardless of concurrency
// - A failing file becomes a warning and is omitted from the document
// - Warnings keep input order
// - All files empty or failing yields ErrNoDeclarations, warnings attached
// - Context cancellation aborts the run
// - Progress callbacks fire once per successful file
// - End to end over real fixtures, colliding names resolved in the document

// stubParser serves canned results keyed by file path.
type stubParser struct {
	mu    sync.Mutex
	files map[string]*extraction.ParsedFile
	errs  map[string]error
	calls []string
}

func (s *stubParser) ParseFile(_ context.Context, filePath string) (*extraction.ParsedFile, error) {
	s.mu.Lock()
	s.calls = append(s.calls, filePath)
	s.mu.Unlock()

	if err, ok := s.errs[filePath]; ok {
		return nil, err
	}
	if file, ok := s.files[filePath]; ok {
		return file, nil
	}
	return &extraction.ParsedFile{FilePath: filePath}, nil
}

func fileWithInterface(path, name string) *extraction.ParsedFile {
	return &extraction.ParsedFile{
		FilePath:   path,
		Interfaces: []extraction.ParsedInterface{{Name: name}},
	}
}

func TestGenerator_PreservesInputOrder(t *testing.T) {
	t.Parallel()

	paths := make([]string, 20)
	stub := &stubParser{files: map[string]*extraction.ParsedFile{}}
	for i := range paths {
		paths[i] = fmt.Sprintf("src/f%02d.ts", i)
		stub.files[paths[i]] = fileWithInterface(paths[i], fmt.Sprintf("Item%02d", i))
	}

	gen := New(stub, 8, nil)
	result, err := gen.Generate(context.Background(), paths, renderer.Options{})
	require.NoError(t, err)
	require.Len(t, result.Files, len(paths))

	for i, file := range result.Files {
		assert.Equal(t, paths[i], file.FilePath)
	}

	// The rendered sections must follow the same order
	posA := strings.Index(result.Markdown, "## Item00")
	posB := strings.Index(result.Markdown, "## Item19")
	assert.Greater(t, posB, posA)
}

func TestGenerator_FailedFileBecomesWarning(t *testing.T) {
	t.Parallel()

	parseErr := errors.New("syntax error at byte 12")
	stub := &stubParser{
		files: map[string]*extraction.ParsedFile{
			"a.ts": fileWithInterface("a.ts", "Alpha"),
			"c.ts": fileWithInterface("c.ts", "Gamma"),
		},
		errs: map[string]error{"b.ts": parseErr},
	}

	gen := New(stub, 2, nil)
	result, err := gen.Generate(context.Background(), []string{"a.ts", "b.ts", "c.ts"}, renderer.Options{})
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "b.ts", result.Warnings[0].FilePath)
	assert.ErrorIs(t, result.Warnings[0].Err, parseErr)
	assert.Equal(t, "skipping b.ts: syntax error at byte 12", result.Warnings[0].String())

	require.Len(t, result.Files, 2)
	assert.Equal(t, "a.ts", result.Files[0].FilePath)
	assert.Equal(t, "c.ts", result.Files[1].FilePath)
	assert.NotContains(t, result.Markdown, "b.ts")
}

func TestGenerator_AllEmptyIsFatal(t *testing.T) {
	t.Parallel()

	stub := &stubParser{
		errs: map[string]error{"bad.ts": errors.New("unreadable")},
	}

	gen := New(stub, 1, nil)
	result, err := gen.Generate(context.Background(), []string{"empty.ts", "bad.ts"}, renderer.Options{})
	require.ErrorIs(t, err, ErrNoDeclarations)

	// Warnings still travel with the error
	require.NotNil(t, result)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "bad.ts", result.Warnings[0].FilePath)
	assert.Empty(t, result.Markdown)
}

func TestGenerator_NoInputFiles(t *testing.T) {
	t.Parallel()

	gen := New(&stubParser{}, 1, nil)
	_, err := gen.Generate(context.Background(), nil, renderer.Options{})
	assert.ErrorIs(t, err, ErrNoDeclarations)
}

func TestGenerator_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := New(&stubParser{}, 1, nil)
	_, err := gen.Generate(ctx, []string{"a.ts"}, renderer.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

// countingReporter records progress callbacks.
type countingReporter struct {
	mu        sync.Mutex
	total     int
	extracted []string
}

func (r *countingReporter) OnExtractionStart(totalFiles int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total = totalFiles
}

func (r *countingReporter) OnFileExtracted(filePath string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extracted = append(r.extracted, filePath)
}

func TestGenerator_ProgressReporting(t *testing.T) {
	t.Parallel()

	stub := &stubParser{
		files: map[string]*extraction.ParsedFile{
			"a.ts": fileWithInterface("a.ts", "Alpha"),
		},
		errs: map[string]error{"b.ts": errors.New("boom")},
	}
	reporter := &countingReporter{}

	gen := New(stub, 2, reporter)
	_, err := gen.Generate(context.Background(), []string{"a.ts", "b.ts"}, renderer.Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, reporter.total)
	assert.Equal(t, []string{"a.ts"}, reporter.extracted)
}

func TestGenerator_EndToEnd(t *testing.T) {
	t.Parallel()

	root := "../../testdata/typescript/collide"
	fd, err := NewFileDiscovery(root, []string{"**/*.ts"}, nil)
	require.NoError(t, err)

	files, err := fd.DiscoverFiles()
	require.NoError(t, err)
	require.Len(t, files, 2)

	gen := New(parsers.NewTypeScriptParser(), 4, nil)
	result, err := gen.Generate(context.Background(), files, renderer.Options{Title: "Collide"})
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	md := result.Markdown
	assert.True(t, strings.HasPrefix(md, "# Collide\n"))
	assert.Contains(t, md, "- [Config (a.ts)](#config-a-ts)")
	assert.Contains(t, md, "- [Config (b.ts)](#config-b-ts)")
	assert.Contains(t, md, "## Config (a.ts)")
	assert.Contains(t, md, "Client configuration.")
	assert.Contains(t, md, "## Config (b.ts)")
	assert.Contains(t, md, "Server configuration.")
	assert.Contains(t, md, "- [defaultPort](#defaultport)")
	assert.Contains(t, md, "function defaultPort(fallback: number): number")

	// Same input again, byte-identical output
	again, err := gen.Generate(context.Background(), files, renderer.Options{Title: "Collide"})
	require.NoError(t, err)
	assert.Equal(t, md, again.Markdown)
}
