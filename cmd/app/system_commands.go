package main

import (
	"context"
	"crypto/rand"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/examvault/cmd/app/commands"
	"github.com/allisson/examvault/internal/app"
	"github.com/allisson/examvault/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "clean-orphans",
			Usage: "Delete stored envelopes that no artifact references (never against a live server's storage)",
			Description: "This command starts with an empty registry, so every envelope older than " +
				"--max-age-hours counts as an orphan, including those a running server still serves. " +
				"Stop the server or use --dry-run first. Deleting requires --force.",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "max-age-hours",
					Aliases: []string{"a"},
					Value:   24,
					Usage:   "Only delete envelopes older than this many hours",
				},
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Value:   false,
					Usage:   "List the envelopes that would be deleted without deleting",
				},
				&cli.BoolFlag{
					Name:  "force",
					Value: false,
					Usage: "Confirm deletion; the storage root must not belong to a running server",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer commands.CloseContainer(container)

				cleanupUseCase, err := container.CleanupUseCase()
				if err != nil {
					return err
				}

				return commands.RunCleanOrphans(
					ctx,
					cleanupUseCase,
					container.Logger(),
					os.Stdout,
					int(cmd.Int("max-age-hours")),
					cmd.Bool("dry-run"),
					cmd.Bool("force"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "create-secret-key",
			Usage: "Generate a random value for SECRET_KEY",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCreateSecretKey(rand.Reader, os.Stdout)
			},
		},
	}
}
