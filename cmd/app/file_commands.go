package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/examvault/cmd/app/commands"
	"github.com/allisson/examvault/internal/app"
	"github.com/allisson/examvault/internal/config"
)

// fileFlags are shared by encrypt-file and decrypt-file.
func fileFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "in",
			Aliases:  []string{"i"},
			Required: true,
			Usage:    "Input file path",
		},
		&cli.StringFlag{
			Name:     "out",
			Aliases:  []string{"o"},
			Required: true,
			Usage:    "Output file path",
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Sources: cli.EnvVars("EXAMVAULT_PASSWORD"),
			Usage:   "Envelope password (prefer the EXAMVAULT_PASSWORD environment variable)",
		},
	}
}

func getFileCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "encrypt-file",
			Usage: "Encrypt a local file into a password envelope",
			Flags: fileFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunEncryptFile(
					container.EnvelopeCodec(),
					container.IntegrityVerifier(),
					container.Logger(),
					os.Stdout,
					cmd.String("in"),
					cmd.String("out"),
					cmd.String("password"),
				)
			},
		},
		{
			Name:  "decrypt-file",
			Usage: "Decrypt a password envelope into a local file",
			Flags: append(fileFlags(), &cli.StringFlag{
				Name:  "sha256",
				Usage: "Expected base64 SHA-256 of the plaintext, as printed by encrypt-file",
			}),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunDecryptFile(
					container.EnvelopeCodec(),
					container.IntegrityVerifier(),
					container.Logger(),
					os.Stdout,
					cmd.String("in"),
					cmd.String("out"),
					cmd.String("password"),
					cmd.String("sha256"),
				)
			},
		},
	}
}
