package main

import (
	"fmt"
	"os"

	"github.com/pablasso/guia/internal/cli"
	"github.com/pablasso/guia/internal/tui"
)

func main() {
	// If no args, launch the home screen; otherwise route to the CLI
	if len(os.Args) == 1 {
		if err := runHome(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := cli.Execute(); err != nil {
			os.Exit(1)
		}
	}
}

func runHome() error {
	action, err := tui.RunHome()
	if err != nil {
		return err
	}

	switch action {
	case tui.ActionNew:
		return cli.NewTask()
	case tui.ActionResume:
		return cli.ResumeTask("")
	case tui.ActionStatus:
		return cli.Status()
	}
	return nil
}
