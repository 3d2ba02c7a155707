package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/trezcool/gradebook/storage/database"
)

var (
	migrateFunc = database.Migrate // mockable

	errNoDatabase = errors.New("migrations need a SQL storage driver (postgres or sqlite)")
)

func (cli *commandLine) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate COMMAND [ARGS...]",
		Short: "Run a goose migration command (up, down, status, version, ...)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return helpOnly(cmd, args)
			}
			if cli.db == nil {
				return errNoDatabase
			}
			return migrateFunc(cmd.Context(), cli.db, args[0], args[1:]...)
		},
	}
}
