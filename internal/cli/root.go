package cli

import (
	"github.com/spf13/cobra"

	"github.com/pablasso/guia/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "guia",
	Short:   "Guided planning workflow tracker",
	Long:    `Guia walks a planning task through plan, review, update and final stages, saving progress to disk so you can pause at any prompt and resume later.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(initCmd, newCmd, resumeCmd, statusCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
