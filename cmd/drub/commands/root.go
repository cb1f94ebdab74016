// Package commands implements the CLI commands for the drub deployment tool.
package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/drub/internal/app"
	"go.trai.ch/drub/internal/build"
	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/core/ports"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for drub.
type CLI struct {
	app     *app.App
	logger  ports.Logger
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app. Flag defaults come from
// the DRUB_* environment, mirroring the settings of a deployment host.
func New(a *app.App, logger ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "drub",
		Short:         "A build and deployment tool for multi-site Drupal installations",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	pf := rootCmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Report the state of every target")
	pf.Bool("debug", false, "Enable debug logging and keep temporary build directories")
	pf.BoolP("devel", "d", false, "Include development-only resources")
	pf.BoolP("rebuild", "r", false, "Rebuild projects even when they are up to date")
	pf.BoolP("update", "u", false, "Rebuild projects that track a moving branch")
	pf.BoolP("dry-run", "n", false, "Show what would be built without building it")
	pf.String("source-dir", envOr("DRUB_SOURCE_DIR", "."), "Directory holding the project configuration")
	pf.String("install-dir", os.Getenv("DRUB_INSTALL_DIR"), "Directory the tree is built and installed under")
	pf.String("downloads-dir", "", "Download cache directory (default <install-dir>/downloads)")
	pf.String("overrides-dir", os.Getenv("DRUB_OVERRIDES_DIR"), "Base directory for relative override paths")
	pf.StringArray("override", nil, "Replace a project symlink, $name[:$path] (repeatable)")
	pf.String("db-prefix", os.Getenv("DRUB_DB_PREFIX"), "Prefix for site database names")
	pf.String("drush", envOr("DRUB_DRUSH", "drush"), "Drush command used for site provisioning")
	pf.String("opcache-reset-url", os.Getenv("DRUB_OPCACHE_RESET_URL"), "Opcache reset endpoint, the key is appended")
	pf.String("opcache-reset-key", os.Getenv("DRUB_OPCACHE_RESET_KEY"), "Secret appended to the opcache reset URL")

	c := &CLI{
		app:     a,
		logger:  logger,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			if l, ok := logger.(interface{ SetDebug(bool) }); ok {
				l.SetDebug(true)
			}
		}
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newDBInstallCmd())
	rootCmd.AddCommand(c.newConvertToMakeCmd())
	rootCmd.AddCommand(c.newReportCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// runConfig assembles the per-invocation settings from the parsed flags.
func runConfig(flags *pflag.FlagSet) (domain.RunConfig, error) {
	var cfg domain.RunConfig
	cfg.Verbose, _ = flags.GetBool("verbose")
	cfg.Debug, _ = flags.GetBool("debug")
	cfg.Devel, _ = flags.GetBool("devel")
	cfg.Rebuild, _ = flags.GetBool("rebuild")
	cfg.Update, _ = flags.GetBool("update")
	cfg.DryRun, _ = flags.GetBool("dry-run")
	cfg.SourceDir, _ = flags.GetString("source-dir")
	cfg.InstallDir, _ = flags.GetString("install-dir")
	cfg.DownloadDir, _ = flags.GetString("downloads-dir")
	cfg.OverridesDir, _ = flags.GetString("overrides-dir")
	cfg.DBPrefix, _ = flags.GetString("db-prefix")
	cfg.Drush, _ = flags.GetString("drush")
	cfg.OpcacheResetURL, _ = flags.GetString("opcache-reset-url")
	cfg.OpcacheResetKey, _ = flags.GetString("opcache-reset-key")

	if cfg.InstallDir == "" {
		return cfg, domain.ErrNoInstallDir
	}

	specs, _ := flags.GetStringArray("override")
	overrides, err := parseOverrides(specs, cfg.OverridesDir)
	if err != nil {
		return cfg, err
	}
	cfg.Overrides = overrides

	return cfg, nil
}

// parseOverrides turns "$name[:$path]" specs into a map of absolute paths.
// The path defaults to the name itself, relative paths are anchored at the
// overrides directory.
func parseOverrides(specs []string, baseDir string) (map[string]string, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	overrides := make(map[string]string, len(specs))
	for _, spec := range specs {
		name, path, _ := strings.Cut(spec, ":")
		if name == "" {
			return nil, zerr.With(zerr.New("invalid override, expected $name[:$path]"), "spec", spec)
		}
		if path == "" {
			path = name
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to resolve override path"), "spec", spec)
		}
		overrides[name] = abs
	}
	return overrides, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
