package cli

import "github.com/spf13/cobra"

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new planning task",
	Long:  `Create a task folder under the configured tasks folder and walk through the planning stages, starting with the initial plan.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return NewTask()
	},
}
