package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pablasso/guia/internal/config"
	"github.com/pablasso/guia/internal/display"
	"github.com/pablasso/guia/internal/task"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List all tasks and their stages",
	Long:  `List every task under the configured tasks folder with its current stage and when it was last touched, most recent first.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	fsys := afero.NewOsFs()
	store, err := config.NewFileStore(fsys)
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return err
	}
	if cfg.TasksRoot == "" {
		return fmt.Errorf("no tasks folder configured. Run `guia init` first")
	}

	tasks := task.List(fsys, cfg.TasksRoot)
	if len(tasks) == 0 {
		fmt.Println("No tasks yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TASK\tSTAGE\tUPDATED")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			t.Name,
			t.Record.CurrentStage,
			display.FormatAge(t.Record.UpdatedAt),
		)
	}
	return w.Flush()
}

// Status prints the task listing. Exposed for the home screen.
func Status() error {
	return runStatus(nil, nil)
}
