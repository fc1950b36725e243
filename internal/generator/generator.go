package generator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mvp-joe/tsdoc/internal/extraction"
	"github.com/mvp-joe/tsdoc/internal/renderer"
)

// ErrNoDeclarations is returned when no input file contributed any exported
// interface, type alias, or function. There is nothing to render.
var ErrNoDeclarations = errors.New("no exported declarations found in input files")

// Parser turns one source file into its documentation model.
type Parser interface {
	ParseFile(ctx context.Context, filePath string) (*extraction.ParsedFile, error)
}

// ProgressReporter receives generation progress events.
type ProgressReporter interface {
	OnExtractionStart(totalFiles int)
	OnFileExtracted(filePath string)
}

// Warning records a file that was excluded from the merged result.
type Warning struct {
	FilePath string
	Err      error
}

func (w Warning) String() string {
	return fmt.Sprintf("skipping %s: %v", w.FilePath, w.Err)
}

// Result holds the outcome of one generation run.
type Result struct {
	Markdown string
	Files    []extraction.ParsedFile
	Warnings []Warning
}

// Generator drives the extraction and rendering pipeline.
type Generator struct {
	parser   Parser
	workers  int
	progress ProgressReporter
}

// New creates a generator. workers bounds concurrent per-file extraction;
// values below 1 are treated as 1. progress may be nil.
func New(parser Parser, workers int, progress ProgressReporter) *Generator {
	if workers < 1 {
		workers = 1
	}
	return &Generator{
		parser:   parser,
		workers:  workers,
		progress: progress,
	}
}

// Generate extracts every input file and renders the merged markdown
// document. A file that fails extraction is downgraded to a warning and
// omitted; only an entirely empty result is fatal. Rendering consumes files
// in the given order regardless of extraction concurrency.
func (g *Generator) Generate(ctx context.Context, filePaths []string, opts renderer.Options) (*Result, error) {
	if g.progress != nil {
		g.progress.OnExtractionStart(len(filePaths))
	}

	// Index-addressed slots keep results and warnings in input order even
	// when extraction runs concurrently.
	parsed := make([]*extraction.ParsedFile, len(filePaths))
	failures := make([]error, len(filePaths))

	sem := make(chan struct{}, g.workers)
	var wg sync.WaitGroup
	for i, filePath := range filePaths {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, filePath string) {
			defer wg.Done()
			defer func() { <-sem }()

			file, err := g.parser.ParseFile(ctx, filePath)
			if err == nil && file == nil {
				err = errors.New("parser returned no result")
			}
			if err != nil {
				failures[i] = err
				return
			}
			parsed[i] = file
			if g.progress != nil {
				g.progress.OnFileExtracted(filePath)
			}
		}(i, filePath)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		Files:    []extraction.ParsedFile{},
		Warnings: []Warning{},
	}
	for i, file := range parsed {
		if failures[i] != nil {
			result.Warnings = append(result.Warnings, Warning{FilePath: filePaths[i], Err: failures[i]})
			continue
		}
		if file != nil {
			result.Files = append(result.Files, *file)
		}
	}

	empty := true
	for i := range result.Files {
		if !result.Files[i].IsEmpty() {
			empty = false
			break
		}
	}
	if empty {
		// Warnings still travel with the error so callers can explain why
		// the run came up empty.
		return result, ErrNoDeclarations
	}

	result.Markdown = renderer.Render(result.Files, opts)
	return result, nil
}
