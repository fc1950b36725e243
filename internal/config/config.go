package config

// Config represents the complete tsdoc configuration.
// It can be loaded from .tsdoc/config.yml with environment variable overrides.
type Config struct {
	// Title replaces the document's top heading.
	Title string `yaml:"title" mapstructure:"title"`
	// Output is the path of the generated markdown file, relative to the
	// project root. "-" writes to stdout.
	Output string `yaml:"output" mapstructure:"output"`
	// Include holds glob patterns for input files.
	Include []string `yaml:"include" mapstructure:"include"`
	// Exclude holds glob patterns filtered out of the input set.
	Exclude []string `yaml:"exclude" mapstructure:"exclude"`
	// Workers bounds concurrent per-file extraction.
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Title:  "API Reference",
		Output: "API.md",
		Include: []string{
			"**/*.ts",
			"**/*.tsx",
		},
		Exclude: []string{
			"node_modules/**",
			"dist/**",
			"build/**",
			".git/**",
			"**/*.d.ts",
			"**/*.test.ts",
			"**/*.spec.ts",
		},
		Workers: 1,
	}
}
