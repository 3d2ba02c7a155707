package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/curriculum"
	"github.com/trezcool/gradebook/core/grade"
)

func (cli *commandLine) studentCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "student", Short: "Manage students", RunE: helpOnly}

	var subjects string
	add := &cobra.Command{
		Use:   "add COURSE NAME",
		Short: "Add a student; a new course also needs its subject list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			course, name := args[0], args[1]
			id := curriculum.NormalizeCourse(course)
			if subjects == "" && !cli.svc.Catalog().HasCourse(id) {
				raw, err := cli.promptSubjects(id)
				if err != nil {
					return err
				}
				subjects = raw
			}
			if err := cli.importer.AddStudent(cmd.Context(), course, name, subjects); err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "%s added to %s\n", core.CleanString(name), id.Display())
			return nil
		},
	}
	add.Flags().StringVarP(&subjects, "subjects", "s", "", "comma separated subject codes, when the course is new")

	show := &cobra.Command{
		Use:   "show COURSE NAME",
		Short: "Show the scores of a student",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := cli.svc.Student(args[0], args[1])
			if err != nil {
				return err
			}
			codes, _ := cli.svc.Catalog().Subjects(curriculum.NormalizeCourse(args[0]))
			for _, code := range codes {
				sr := rec[code]
				fmt.Fprintf(cli.out, "%-4s %s %s\n", code, markText(sr.Mark(grade.Period1)), markText(sr.Mark(grade.Period2)))
			}
			return nil
		},
	}

	cmd.AddCommand(add, show)
	return cmd
}

func markText(m grade.Mark) string {
	if !m.Score.Valid {
		return "  -    "
	}
	return fmt.Sprintf("%3d %-3s", m.Score.Int, m.Tier())
}

// promptSubjects asks for the subject list of a new course, when stdin is a terminal.
func (cli *commandLine) promptSubjects(id curriculum.CourseID) (string, error) {
	if !isTerminalFunc(cli.inFd) {
		return "", grade.ErrMissingSubjects
	}
	fmt.Fprintf(cli.out, "%s is a new course. Subjects (comma separated): ", id.Display())
	scanner := bufio.NewScanner(cli.in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", grade.ErrMissingSubjects
	}
	return scanner.Text(), nil
}
