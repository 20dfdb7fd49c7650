// Package cli implements the skyline command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/internal/config"
	"github.com/matzehuels/skyline/pkg/buildinfo"
	"github.com/matzehuels/skyline/pkg/cache"
	"github.com/matzehuels/skyline/pkg/pipeline"
	"github.com/matzehuels/skyline/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "skyline"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "skyline",
		Short: "Skyline edits streets and draws their silhouettes",
		Long: `Skyline models a street as two rows of houses, offices, markets and
playgrounds, checks that buildings never overlap or leave the street, and
draws the street's skyline silhouette as text, SVG, PNG or a Graphviz plan.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			registerLogHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/skyline/config.toml)")

	// Register all subcommands
	root.AddCommand(c.newCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.deleteCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.planCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// cfg returns the loaded configuration, or defaults before the root
// command's pre-run has loaded it.
func (c *CLI) cfg() *config.Config {
	if c.config == nil {
		c.config = config.Default()
	}
	return c.config
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner opens the configured store and cache and returns a pipeline
// runner over them. Callers must Close it.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	st, err := store.Open(ctx, c.cfg().StoreConfig())
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("opened store", "backend", c.cfg().Store.Backend)
	return pipeline.NewRunner(st, c.newCache(noCache), nil, c.Logger), nil
}

// newCache opens the artifact cache. Any failure to set up the cache
// directory disables caching instead of failing the command.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache || c.cfg().Cache.Disabled {
		return cache.NewNullCache()
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default
// (~/.cache/skyline/).
func (c *CLI) cacheDir() (string, error) {
	if dir := c.cfg().Cache.Dir; dir != "" {
		return dir, nil
	}
	return cache.DefaultDir()
}
