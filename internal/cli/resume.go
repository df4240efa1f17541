package cli

import "github.com/spf13/cobra"

var resumeCmd = &cobra.Command{
	Use:   "resume [task-folder]",
	Short: "Resume an incomplete planning task",
	Long: `Pick up an incomplete task at whichever stage was last persisted.
With no argument the task is found automatically: a single incomplete task
is resumed directly, several bring up a picker. A folder name argument
resumes that exact task.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		return ResumeTask(name)
	},
}
