package main

import (
	"slices"

	"github.com/urfave/cli/v3"
)

// getCommands returns the server lifecycle commands followed by the offline file tools.
func getCommands(version string) []*cli.Command {
	return slices.Concat(getSystemCommands(version), getFileCommands())
}
