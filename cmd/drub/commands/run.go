package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build [sites...]",
		Short: "Build the core and every project the sites need",
		Long: "Build fetches and assembles the core and every project the named sites " +
			"reference into the projects directory, without touching the document root. " +
			"Pass '*' to build all configured sites, or no site to pick the one named " +
			"like the working directory.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := runConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return c.app.Build(cmd.Context(), cfg, args)
		},
	}
}

func (c *CLI) newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install [sites...]",
		Short: "Build and install the sites into the document root",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := runConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return c.app.Install(cmd.Context(), cfg, args)
		},
	}
}

func (c *CLI) newDBInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "db-install [sites...]",
		Short: "Install the sites and provision their databases with drush",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := runConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return c.app.DBInstall(cmd.Context(), cfg, args)
		},
	}
}

func (c *CLI) newConvertToMakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "convert-to-make",
		Aliases: []string{"make"},
		Short:   "Write the configuration as a drush makefile to stdout",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := runConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return c.app.ConvertToMake(cmd.Context(), cfg)
		},
	}
}

func (c *CLI) newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Report obsolete and unused projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := runConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return c.app.Report(cmd.Context(), cfg)
		},
	}
}

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete obsolete projects from the projects directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := runConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return c.app.Clean(cmd.Context(), cfg)
		},
	}
}
