// Command dinnerctl is the operator CLI: provider checks, one-off ingestion
// runs and webhook payload signing for local testing.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "dinnerctl:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "dinnerctl",
		Usage: "Operate the dinner scheduler from the command line.",
		Commands: []*cli.Command{
			whoamiCommand(),
			checkCommand(),
			signCommand(),
			recipientsCommand(),
			gcalAuthCommand(),
		},
	}
}
