package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grade"
)

func (cli *commandLine) courseCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "course", Short: "Manage courses", RunE: helpOnly}

	var subjects string
	add := &cobra.Command{
		Use:   "add COURSE",
		Short: "Register a course with its subject list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nc := grade.NewCourse{Course: args[0], Subjects: core.SplitList(subjects, ",")}
			if err := cli.svc.AddCourse(cmd.Context(), nc); err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "course %s added\n", strings.ToUpper(core.CleanString(args[0])))
			return nil
		},
	}
	add.Flags().StringVarP(&subjects, "subjects", "s", "", "comma separated subject codes, e.g. \"BLG, ART\"")

	list := &cobra.Command{
		Use:   "list",
		Short: "List the courses and their subjects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := cli.svc.Catalog()
			for _, id := range catalog.Courses() {
				codes, _ := catalog.Subjects(id)
				items := make([]string, 0, len(codes))
				for _, code := range codes {
					items = append(items, code.String())
				}
				fmt.Fprintf(cli.out, "%s: %s\n", id.Display(), strings.Join(items, ", "))
			}
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}
