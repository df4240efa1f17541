package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pablasso/guia/internal/config"
	"github.com/pablasso/guia/internal/tui"
)

var initPath string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Configure the tasks folder",
	Long:  `Choose the folder where task folders are created. Without --path an interactive folder picker is shown.`,
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().StringVar(&initPath, "path", "", "Tasks folder path (skips the interactive picker)")
}

func runInit(cmd *cobra.Command, args []string) error {
	fsys := afero.NewOsFs()
	store, err := config.NewFileStore(fsys)
	if err != nil {
		return err
	}

	dir := initPath
	if dir == "" {
		dir, err = tui.RunFolderPicker("Select the tasks folder")
		if err != nil {
			return err
		}
		if dir == "" {
			fmt.Println("No folder selected.")
			return nil
		}
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	if err := fsys.MkdirAll(abs, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", abs, err)
	}

	cfg, err := store.Load()
	if err != nil {
		return err
	}
	cfg.TasksRoot = abs
	cfg.SetupHintDismissed = false
	if err := store.Save(cfg); err != nil {
		return err
	}

	fmt.Println("Tasks folder set to", abs)
	return nil
}
