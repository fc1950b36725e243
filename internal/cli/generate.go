package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/tsdoc/internal/config"
	"github.com/mvp-joe/tsdoc/internal/generator"
	"github.com/mvp-joe/tsdoc/internal/parsers"
	"github.com/mvp-joe/tsdoc/internal/renderer"
)

var (
	titleFlag   string
	outputFlag  string
	workersFlag int
	quietFlag   bool
	watchFlag   bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Generate markdown API documentation",
	Long: `Generate scans a project for TypeScript source files, extracts the
exported declarations (interfaces, type aliases, functions), and writes a
single markdown reference document.

Files that fail to parse are skipped with a warning; the run only fails when
no file contributed any exported declaration.

Examples:
  # Document the current directory into API.md
  tsdoc generate

  # Document a specific project with a custom title
  tsdoc generate ./my-lib --title "My Library" --output docs/api.md

  # Regenerate whenever source files change
  tsdoc generate --watch
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&titleFlag, "title", "", "Document title (overrides config)")
	generateCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file path, or - for stdout (overrides config)")
	generateCmd.Flags().IntVar(&workersFlag, "workers", 0, "Concurrent extraction workers (overrides config)")
	generateCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	generateCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch for file changes and regenerate")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted! Cancelling generation...")
		cancel()
	}()

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	if len(args) == 1 {
		rootDir, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", args[0], err)
		}
	}

	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Flag overrides take precedence over config file and environment
	if cmd.Flags().Changed("title") {
		cfg.Title = titleFlag
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = outputFlag
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workersFlag
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	discovery, err := generator.NewFileDiscovery(rootDir, cfg.Include, cfg.Exclude)
	if err != nil {
		return fmt.Errorf("failed to compile file patterns: %w", err)
	}

	gen := generator.New(parsers.NewTypeScriptParser(), cfg.Workers, NewCLIProgressReporter(quietFlag))

	if err := generateOnce(ctx, gen, discovery, rootDir, cfg); err != nil {
		return err
	}

	if !watchFlag {
		return nil
	}

	watcher, err := generator.NewWatcher(rootDir, discovery, func(ctx context.Context) {
		if err := generateOnce(ctx, gen, discovery, rootDir, cfg); err != nil {
			log.Printf("Regeneration failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start watch mode: %w", err)
	}
	defer watcher.Stop()

	if !quietFlag {
		log.Println("Watching for changes (Ctrl+C to stop)...")
	}
	watcher.Start(ctx)
	<-ctx.Done()
	return nil
}

// generateOnce runs one full discover → extract → render → write pass.
func generateOnce(ctx context.Context, gen *generator.Generator, discovery *generator.FileDiscovery, rootDir string, cfg *config.Config) error {
	files, err := discovery.DiscoverFiles()
	if err != nil {
		return fmt.Errorf("file discovery failed: %w", err)
	}

	result, err := gen.Generate(ctx, files, renderer.Options{Title: cfg.Title})
	if result != nil {
		for _, warning := range result.Warnings {
			fmt.Fprintln(os.Stderr, "Warning: "+warning.String())
		}
	}
	if err != nil {
		if errors.Is(err, generator.ErrNoDeclarations) {
			return fmt.Errorf("%w (searched %d files)", err, len(files))
		}
		if ctx.Err() != nil {
			return fmt.Errorf("generation cancelled")
		}
		return fmt.Errorf("generation failed: %w", err)
	}

	if cfg.Output == "-" {
		fmt.Println(result.Markdown)
		return nil
	}

	outputPath := cfg.Output
	if !filepath.IsAbs(outputPath) {
		outputPath = filepath.Join(rootDir, outputPath)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(result.Markdown+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if !quietFlag {
		fmt.Printf("✓ Documented %d file(s) → %s\n", len(result.Files), outputPath)
	}
	return nil
}
