package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/trezcool/gradebook/core/roster"
)

func (cli *commandLine) rosterCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "roster", Short: "Import student rosters", RunE: helpOnly}

	var (
		header   bool
		subjects []string
	)
	imp := &cobra.Command{
		Use:   "import FILE",
		Short: "Import \"course;name\" lines from FILE (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codes, err := roster.ParseSubjectMap(subjects)
			if err != nil {
				return err
			}

			var r io.Reader = cli.in
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				r = f
			}

			rep, err := cli.importer.Import(cmd.Context(), r, roster.ImportOptions{SkipHeader: header, Subjects: codes})
			if err != nil {
				return err
			}
			cli.printImport(rep)
			return nil
		},
	}
	imp.Flags().BoolVar(&header, "header", false, "skip the first line")
	imp.Flags().StringArrayVarP(&subjects, "subjects", "s", nil, "subject list of a new course, as \"<course>:<SUBJ>, <SUBJ>\" (repeatable)")

	cmd.AddCommand(imp)
	return cmd
}

func (cli *commandLine) printImport(rep roster.Report) {
	fmt.Fprintf(cli.out, "import %s: %d imported out of %d rows\n", rep.ID, rep.Imported, rep.Rows)
	for _, id := range rep.CreatedCourses {
		fmt.Fprintf(cli.out, "  new course %s\n", id.Display())
	}
	for _, row := range rep.Duplicates {
		fmt.Fprintf(cli.out, "  line %d: %s already in %s\n", row.Line, row.Name, row.Course.Display())
	}
	for _, row := range rep.Dropped {
		fmt.Fprintf(cli.out, "  line %d dropped: %s\n", row.Line, row.Reason)
	}
}
