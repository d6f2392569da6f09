package cli

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

const VERSION = "0.1.0"

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:    "vote",
		Usage:   "Two-option voting web application.",
		Version: VERSION,
		Commands: []*cli.Command{
			newServeCMD(),
			newHealthcheckCMD(),
		},
	}
}

func Run() {
	if err := NewCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
