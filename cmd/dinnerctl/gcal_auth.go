package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// gcalAuthCommand runs the OAuth desktop flow once and stores token.json,
// which the google provider picks up for installed-app credentials.
func gcalAuthCommand() *cli.Command {
	return &cli.Command{
		Name:  "gcal-auth",
		Usage: "Authorize Google Calendar read access and write token.json.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "credentials", Value: "google-credentials.json", Usage: "OAuth desktop app credentials file."},
			&cli.StringFlag{Name: "token", Value: "token.json", Usage: "Where to write the token."},
		},
		Action: func(c *cli.Context) error {
			data, err := os.ReadFile(c.String("credentials"))
			if err != nil {
				return fmt.Errorf("failed to read credentials file: %w", err)
			}

			oauthConfig, err := google.ConfigFromJSON(data, calendar.CalendarEventsReadonlyScope)
			if err != nil {
				return fmt.Errorf("failed to parse credentials (expected an OAuth desktop app file): %w", err)
			}

			out := c.App.Writer
			fmt.Fprintln(out, "Open this URL, sign in, and paste the authorization code below:")
			fmt.Fprintln(out)
			fmt.Fprintln(out, oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline))
			fmt.Fprintln(out)
			fmt.Fprint(out, "Authorization code: ")

			reader := c.App.Reader
			if reader == nil {
				reader = os.Stdin
			}
			code, err := bufio.NewReader(reader).ReadString('\n')
			if err != nil && code == "" {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}

			tok, err := oauthConfig.Exchange(c.Context, strings.TrimSpace(code))
			if err != nil {
				return fmt.Errorf("failed to exchange authorization code: %w", err)
			}

			f, err := os.OpenFile(c.String("token"), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
			if err != nil {
				return fmt.Errorf("failed to create token file: %w", err)
			}
			defer f.Close()

			if err := json.NewEncoder(f).Encode(tok); err != nil {
				return fmt.Errorf("failed to write token file: %w", err)
			}

			fmt.Fprintf(out, "\nToken saved to %s. Restart the server to use the google provider.\n", c.String("token"))
			return nil
		},
	}
}
