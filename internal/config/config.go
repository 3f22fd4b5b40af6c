package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/vango-dev/querido/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "querido.json"

	// DefaultArtifactDir is the default generated-artifact output directory.
	DefaultArtifactDir = "__generated__"

	// DefaultSchemaFile is the default schema file name.
	DefaultSchemaFile = "schema.json"

	// DefaultDebounce is the default watch debounce window.
	DefaultDebounce = "100ms"
)

// Config represents the complete querido.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// Sources lists the directories scanned for host files containing
	// tagged literals.
	Sources []string `json:"sources,omitempty"`

	// Schema is the path to the schema file, relative to the project root.
	Schema string `json:"schema,omitempty"`

	// Artifacts contains generated-artifact output configuration.
	Artifacts ArtifactsConfig `json:"artifacts,omitempty"`

	// Watch contains file-watcher configuration.
	Watch WatchConfig `json:"watch,omitempty"`

	// LSP contains language-server configuration.
	LSP LSPConfig `json:"lsp,omitempty"`

	// configPath stores the path this config was loaded from.
	configPath string
}

// ArtifactsConfig contains generated-file output configuration.
type ArtifactsConfig struct {
	// Output is the directory generated artifacts are written to.
	Output string `json:"output,omitempty"`

	// Archive optionally describes a remote object store for a tarball of
	// the output directory. It is loaded and checked by Validate; the
	// compile command does not read it and uploads only when its --archive
	// flag is given.
	Archive *ArchiveConfig `json:"archive,omitempty"`
}

// ArchiveConfig describes a remote archive destination for generated
// artifacts.
type ArchiveConfig struct {
	// Bucket is the destination S3 bucket name.
	Bucket string `json:"bucket,omitempty"`

	// Region is the AWS region the bucket lives in.
	Region string `json:"region,omitempty"`

	// Prefix is prepended to every uploaded object key.
	Prefix string `json:"prefix,omitempty"`
}

// WatchConfig contains file-watcher settings.
type WatchConfig struct {
	// Debounce is the delay between a batch of filesystem events and the
	// recompile they trigger (e.g. "100ms").
	Debounce string `json:"debounce,omitempty"`

	// Ignore contains glob patterns to skip.
	Ignore []string `json:"ignore,omitempty"`
}

// LSPConfig contains language-server settings.
type LSPConfig struct {
	// LogFile, if set, receives a trace of requests/notifications handled.
	LogFile string `json:"logFile,omitempty"`
}

// New creates a Config populated with default values.
func New() *Config {
	return &Config{
		Version: "0.1.0",
		Sources: []string{"app", "src"},
		Schema:  DefaultSchemaFile,
		Artifacts: ArtifactsConfig{
			Output: DefaultArtifactDir,
		},
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
			Ignore:   []string{"node_modules", ".git", "dist", DefaultArtifactDir},
		},
	}
}

// Load reads configuration from the querido.json file in dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the given file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("Q502").
				WithDetail("No querido.json found in " + filepath.Dir(path)).
				WithSuggestion("Create a querido.json at the project root")
		}
		return nil, errors.New("Q500").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("Q500").
			WithDetail("Failed to parse querido.json: " + err.Error()).
			WithSuggestion("Check that querido.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the given path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("Q500").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("Q500").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path this config was loaded from, or "" if it was
// constructed with New and never saved.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

func (c *Config) applyDefaults() {
	if len(c.Sources) == 0 {
		c.Sources = []string{"app", "src"}
	}
	if c.Schema == "" {
		c.Schema = DefaultSchemaFile
	}
	if c.Artifacts.Output == "" {
		c.Artifacts.Output = DefaultArtifactDir
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = DefaultDebounce
	}
	if c.Watch.Ignore == nil {
		c.Watch.Ignore = []string{"node_modules", ".git", "dist", c.Artifacts.Output}
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return errors.New("Q501").WithDetail("at least one entry in \"sources\" is required")
	}
	if c.Artifacts.Archive != nil {
		if c.Artifacts.Archive.Bucket == "" {
			return errors.New("Q501").WithDetail("artifacts.archive.bucket is required when archive is configured")
		}
	}
	return nil
}

// SchemaPath returns the absolute path to the schema file.
func (c *Config) SchemaPath() string {
	if filepath.IsAbs(c.Schema) {
		return c.Schema
	}
	return filepath.Join(c.Dir(), c.Schema)
}

// SourcePaths returns the absolute paths to every configured source
// directory.
func (c *Config) SourcePaths() []string {
	paths := make([]string, len(c.Sources))
	for i, s := range c.Sources {
		if filepath.IsAbs(s) {
			paths[i] = s
		} else {
			paths[i] = filepath.Join(c.Dir(), s)
		}
	}
	return paths
}

// ArtifactOutputPath returns the absolute path to the generated-artifact
// output directory.
func (c *Config) ArtifactOutputPath() string {
	path := c.Artifacts.Output
	if path == "" {
		path = DefaultArtifactDir
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists reports whether a querido.json exists in dir.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up from startDir looking for a querido.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("Q502").
				WithDetail("No querido.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the configuration for the current working
// directory's project.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}
	return Load(root)
}
