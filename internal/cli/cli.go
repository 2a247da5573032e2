package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/eggsposition/eggsposition/pkg/buildinfo"
	"github.com/eggsposition/eggsposition/pkg/cache"
	"github.com/eggsposition/eggsposition/pkg/config"
	"github.com/eggsposition/eggsposition/pkg/errors"
	"github.com/eggsposition/eggsposition/pkg/observability"
	"github.com/eggsposition/eggsposition/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display and completion scripts.
const appName = "eggsposition"

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
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
//
// Given a file argument, the root command inspects that e-graph. With no
// arguments it prints help.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName + " [file.json]",
		Short: "Eggsposition - E-graph Visualization Tool",
		Long: `Eggsposition loads e-graphs in egraph-serialize format and hypergraphs,
flattens them into node/edge graphs, and renders them as JSON, force-graph
data, Graphviz DOT, SVG or PNG.

Arguments:
  file.json    Path to an e-graph JSON file (egraph-serialize format)`,
		Example: `  eggsposition fibonacci.json
  eggsposition render path/to/egraph.json -f svg,png
  eggsposition samples list`,
		Version:           buildinfo.Version,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return c.runInspect(cmd.Context(), args[0])
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/eggsposition/config.toml)")

	// Register all subcommands
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.samplesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// setup loads .env and the config file, then applies --verbose.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	if c.verbose {
		c.SetLogLevel(LogDebug)
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	ttl := c.Config.Cache.TTL.Duration
	switch c.Config.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, c.Config.Cache.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		return cache.WithTTL(rc, ttl), nil
	default:
		dir, err := c.Config.CacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return cache.WithTTL(fc, ttl), nil
	}
}

// stdin is read for the "-" path.
var stdin io.Reader = os.Stdin

// readInput reads path, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return data, nil
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot read %s", path)
	}
	return data, nil
}
