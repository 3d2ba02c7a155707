package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/trezcool/gradebook/core/curriculum"
	"github.com/trezcool/gradebook/core/grade"
)

func (cli *commandLine) scoreCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "score", Short: "Record scores", RunE: helpOnly}

	set := &cobra.Command{
		Use:   "set COURSE STUDENT SUBJECT PERIOD [SCORE]",
		Short: "Set the score of a period (1 or 2); without SCORE the period is cleared",
		Args:  cobra.RangeArgs(4, 5),
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("period must be 1 or 2 (got %q)", args[3])
			}
			e := grade.ScoreEntry{Course: args[0], Student: args[1], Subject: args[2], Period: period}
			if len(args) == 5 {
				e.Score = args[4]
			}
			if err := cli.svc.SetScore(cmd.Context(), e); err != nil {
				return err
			}

			rec, err := cli.svc.Student(e.Course, e.Student)
			if err != nil {
				return err
			}
			m := rec[curriculum.NormalizeSubject(e.Subject)].Mark(grade.Period(period))
			fmt.Fprintf(cli.out, "period %d: %s\n", period, markText(m))
			return nil
		},
	}

	cmd.AddCommand(set)
	return cmd
}
