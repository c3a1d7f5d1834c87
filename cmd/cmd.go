// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for config and the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config file and local database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Log in through your browser",
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Log out and clear stored credentials",
				Action: r.AuthLogout,
			},
			{
				Name:  "status",
				Usage: "Show current authentication state",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthStatus,
			},
		},
	}
}

// accountsCommand handles the connected account collection
func accountsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "accounts",
		Aliases: []string{"acc"},
		Usage:   "Manage connected social accounts",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List connected accounts with the portfolio summary",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.AccountsList,
			},
			{
				Name:  "connect",
				Usage: "Connect a platform account",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "platform",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "demo",
						Usage: "Attach a demo account instead of the browser flow",
					},
				},
				Action: r.AccountsConnect,
			},
			{
				Name:  "sync",
				Usage: "Refresh metrics for one account",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.AccountsSync,
			},
			{
				Name:    "disconnect",
				Aliases: []string{"rm"},
				Usage:   "Disconnect an account",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.AccountsDisconnect,
			},
			{
				Name:  "export",
				Usage: "Export the account collection as CSV or Markdown",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: csv or markdown",
						Value: "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: stdout)",
					},
				},
				Action: r.AccountsExport,
			},
			{
				Name:  "history",
				Usage: "Show recent sync and connect activity",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries to show",
						Value: 20,
					},
				},
				Action: r.AccountsHistory,
			},
		},
	}
}

// facebookCommand handles the Facebook message surface
func facebookCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "facebook",
		Aliases: []string{"fb"},
		Usage:   "Facebook account operations",
		Commands: []*cli.Command{
			{
				Name:  "messages",
				Usage: "Show the latest messages for a Facebook account",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.FacebookMessages,
			},
			{
				Name:  "send",
				Usage: "Send a reply in a Facebook conversation",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "to",
						Usage:    "Recipient ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "message",
						Aliases:  []string{"m"},
						Usage:    "Message text",
						Required: true,
					},
				},
				Action: r.FacebookSend,
			},
		},
	}
}

// linkedinCommand handles the LinkedIn post feed and manual metrics
func linkedinCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "linkedin",
		Aliases: []string{"li"},
		Usage:   "LinkedIn account operations",
		Commands: []*cli.Command{
			{
				Name:  "posts",
				Usage: "Show recent posts for a LinkedIn company account",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of posts to return",
						Value: 10,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.LinkedInPosts,
			},
			{
				Name:  "metrics",
				Usage: "Overwrite metrics for a personal LinkedIn account",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "connections",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "posts",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "pending",
						Usage:    "Pending responses",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "messages",
						Usage:    "New messages",
						Required: true,
					},
				},
				Action: r.LinkedInMetrics,
			},
		},
	}
}

// subscriptionCommand handles plan tier operations
func subscriptionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "subscription",
		Aliases: []string{"sub"},
		Usage:   "Manage your subscription",
		Commands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Show the current plan tier",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SubscriptionStatus,
			},
			{
				Name:   "upgrade",
				Usage:  "Upgrade to premium through hosted checkout",
				Action: r.SubscriptionUpgrade,
			},
		},
	}
}

// profileCommand handles the user profile surface
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "View and update your profile",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the authenticated user's profile",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ProfileShow,
			},
			{
				Name:  "picture",
				Usage: "Upload a new profile picture (jpeg, png or gif, max 5MB)",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Action: r.ProfilePicture,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for the interactive dashboard.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "dash"},
		Usage:   "Launch the interactive dashboard",
		Action:  r.TUI,
	}
}
