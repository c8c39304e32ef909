// Package main provides the borncse CLI.
package main

import (
	"fmt"
	"os"

	"github.com/mitchellh/cli"
)

const version = "v0.1.0-dev"

func main() {
	ui := &cli.BasicUi{
		Reader:      os.Stdin,
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}
	os.Exit(realMain(os.Args[1:], ui))
}

func realMain(args []string, ui cli.Ui) int {
	c := &cli.CLI{
		Name:       "borncse",
		Version:    version,
		Args:       args,
		Commands:   commands(ui),
		HelpFunc:   cli.BasicHelpFunc("borncse"),
		HelpWriter: os.Stdout,
	}

	code, err := c.Run()
	if err != nil {
		ui.Error(fmt.Sprintf("Error executing CLI: %s", err))
		return 1
	}
	return code
}

func commands(ui cli.Ui) map[string]cli.CommandFactory {
	return map[string]cli.CommandFactory{
		"dups": func() (cli.Command, error) {
			return &DupsCommand{Ui: ui}, nil
		},
		"version": func() (cli.Command, error) {
			return &VersionCommand{Ui: ui, Version: version}, nil
		},
	}
}
