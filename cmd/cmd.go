// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, sheetCommand, sourceCommand, levelCommand, genreCommand,
		profileCommand, statsCommand, exportCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Output raw JSON",
	}
}

func pageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "page",
			Usage: "1-based page to fetch",
			Value: 1,
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Records per page",
			Value: 10,
		},
		&cli.StringFlag{
			Name:    "search",
			Aliases: []string{"s"},
			Usage:   "Free-text search",
		},
		jsonFlag(),
	}
}

// setupCommand initializes local state
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and the local database",
		Flags: []cli.Flag{configFlag()},
		Commands: []*cli.Command{
			{
				Name:   "db",
				Usage:  "Create the local database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
		},
		Action: r.SetupDatabase,
	}
}

// authCommand handles account operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Account and session operations",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in and store the session token locally",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Account password (prompted when omitted)",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "signup",
				Usage: "Create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Display name",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Account password (prompted when omitted)",
					},
				},
				Action: r.AuthSignup,
			},
			{
				Name:   "logout",
				Usage:  "Forget the stored session",
				Action: r.AuthLogout,
			},
			{
				Name:   "whoami",
				Usage:  "Verify the stored token and show the account",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.AuthWhoami,
			},
		},
	}
}

// sheetCommand handles music sheet operations
func sheetCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "sheet",
		Aliases: []string{"sheets"},
		Usage:   "Music sheet operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List sheets with optional filters",
				Flags: append(pageFlags(),
					&cli.StringFlag{
						Name:  "key",
						Usage: "Filter by musical key",
					},
					&cli.StringFlag{
						Name:  "level",
						Usage: "Filter by level id",
					},
					&cli.StringFlag{
						Name:  "genre",
						Usage: "Filter by genre id",
					},
					&cli.BoolFlag{
						Name:  "exam",
						Usage: "Only exam pieces",
					},
				),
				Action: r.SheetList,
			},
			{
				Name:   "create",
				Usage:  "Add a sheet to the catalog",
				Flags:  sheetFormFlags(true),
				Action: r.SheetCreate,
			},
			{
				Name:  "update",
				Usage: "Update a sheet",
				Flags: append(sheetFormFlags(false), &cli.StringFlag{
					Name:     "id",
					Usage:    "Sheet id",
					Required: true,
				}),
				Action: r.SheetUpdate,
			},
			{
				Name:  "delete",
				Usage: "Remove a sheet from the catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Sheet id",
						Required: true,
					},
				},
				Action: r.SheetDelete,
			},
		},
	}
}

func sheetFormFlags(titleRequired bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "title",
			Usage:    "Sheet title",
			Required: titleRequired,
		},
		&cli.StringFlag{
			Name:  "composer",
			Usage: "Composer name",
		},
		&cli.StringFlag{
			Name:  "key",
			Usage: "Musical key",
		},
		&cli.StringFlag{
			Name:  "source",
			Usage: "Source id",
		},
		&cli.StringFlag{
			Name:  "level",
			Usage: "Level id",
		},
		&cli.StringFlag{
			Name:  "genre",
			Usage: "Genre id",
		},
		&cli.BoolFlag{
			Name:  "exam",
			Usage: "Mark as exam piece",
		},
	}
}

// sourceCommand handles sheet source operations
func sourceCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "source",
		Aliases: []string{"sources"},
		Usage:   "Sheet source operations",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List sources",
				Flags:  pageFlags(),
				Action: r.SourceList,
			},
			{
				Name:  "create",
				Usage: "Add a source",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Source title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "author",
						Usage: "Author or editor",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Physical or digital format",
					},
				},
				Action: r.SourceCreate,
			},
			{
				Name:  "update",
				Usage: "Update a source",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Source id",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Source title",
					},
					&cli.StringFlag{
						Name:  "author",
						Usage: "Author or editor",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Physical or digital format",
					},
				},
				Action: r.SourceUpdate,
			},
			{
				Name:  "delete",
				Usage: "Remove a source",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Source id",
						Required: true,
					},
				},
				Action: r.SourceDelete,
			},
			{
				Name:   "lookup",
				Usage:  "List id/title pairs for form dropdowns",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.SourceLookup,
			},
		},
	}
}

// levelCommand handles difficulty level operations
func levelCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "level",
		Aliases: []string{"levels"},
		Usage:   "Difficulty level operations",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List levels",
				Flags:  pageFlags(),
				Action: r.LevelList,
			},
			{
				Name:  "create",
				Usage: "Add a level",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Level name",
						Required: true,
					},
				},
				Action: r.LevelCreate,
			},
			{
				Name:  "update",
				Usage: "Rename a level",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Level id",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Level name",
						Required: true,
					},
				},
				Action: r.LevelUpdate,
			},
			{
				Name:  "delete",
				Usage: "Remove a level",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Level id",
						Required: true,
					},
				},
				Action: r.LevelDelete,
			},
		},
	}
}

// genreCommand handles genre operations
func genreCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "genre",
		Aliases: []string{"genres"},
		Usage:   "Genre operations",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List genres",
				Flags:  pageFlags(),
				Action: r.GenreList,
			},
			{
				Name:  "create",
				Usage: "Add a genre",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Genre name",
						Required: true,
					},
				},
				Action: r.GenreCreate,
			},
			{
				Name:  "update",
				Usage: "Rename a genre",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Genre id",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Genre name",
						Required: true,
					},
				},
				Action: r.GenreUpdate,
			},
			{
				Name:  "delete",
				Usage: "Remove a genre",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Genre id",
						Required: true,
					},
				},
				Action: r.GenreDelete,
			},
		},
	}
}

// profileCommand shows the signed-in user's details
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "profile",
		Usage:  "Show the signed-in user's profile",
		Flags:  []cli.Flag{jsonFlag()},
		Action: r.Profile,
	}
}

// statsCommand shows catalog aggregates
func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Show catalog statistics",
		Flags:  []cli.Flag{jsonFlag()},
		Action: r.Stats,
	}
}

// exportCommand exports the full catalog
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the full sheet catalog to a file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, csv, markdown, txt",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path",
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Requests per second while walking pages",
				Value: 5.0,
			},
		},
		Action: r.Export,
	}
}

// apiCommand handles direct backend calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the catalog backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the backend, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST to the backend",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "data",
						Aliases: []string{"d"},
						Usage:   "JSON request body",
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// tuiCommand launches the interactive terminal UI
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"ui"},
		Usage:   "Browse the catalog interactively",
		Action:  r.TUI,
	}
}
