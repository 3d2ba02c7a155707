package main

import (
	"errors"
	"fmt"
	"io"

	ut "github.com/go-playground/universal-translator"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/roster"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	svc        *grade.Service
	importer   *roster.Importer
	translator ut.Translator
	db         *sqlx.DB // nil unless the storage driver is a SQL one
	in         io.Reader
	inFd       int
	out        io.Writer
}

// helpOnly makes a command print its usage and fail with errHelp.
func helpOnly(cmd *cobra.Command, _ []string) error {
	_ = cmd.Usage()
	return errHelp
}

func (cli *commandLine) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Manage the grade book: courses, students, scores and reports",
		RunE:          helpOnly,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(cli.in)
	root.SetOut(cli.out)
	root.SetErr(cli.out)
	root.AddCommand(
		cli.courseCommand(),
		cli.studentCommand(),
		cli.rosterCommand(),
		cli.scoreCommand(),
		cli.reportCommand(),
		cli.migrateCommand(),
	)
	return root
}

// run executes `args` (program name included).
func (cli *commandLine) run(args []string) error {
	root := cli.rootCommand()
	if len(args) > 0 {
		args = args[1:]
	}
	root.SetArgs(args)
	return root.Execute()
}

// explain renders an error for the operator, translating validation errors.
func (cli *commandLine) explain(err error) string {
	if fldErrs := core.TranslateErrors(err, cli.translator); len(fldErrs) > 0 {
		msg := "invalid input:"
		for fld, text := range fldErrs {
			msg += fmt.Sprintf("\n  %s: %s", fld, text)
		}
		return msg
	}
	var vErr *core.ValidationError
	if errors.As(err, &vErr) {
		msg := err.Error()
		for _, fld := range vErr.Fields {
			msg += fmt.Sprintf("\n  %s: %s", fld.Field, fld.Error)
		}
		return msg
	}
	return err.Error()
}
