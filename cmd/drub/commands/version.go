package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/drub/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("drub version %s\n", build.Version)
		},
	}
}
