package main

import (
	"fmt"

	"github.com/mitchellh/cli"
)

// VersionCommand prints the tool version.
type VersionCommand struct {
	Ui      cli.Ui
	Version string
}

func (c *VersionCommand) Help() string {
	return "Usage: borncse version\n\n  Displays the version of borncse."
}

func (c *VersionCommand) Run(_ []string) int {
	c.Ui.Output(fmt.Sprintf("borncse %s", c.Version))
	return 0
}

func (c *VersionCommand) Synopsis() string {
	return "Show the current borncse version"
}
