package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trezcool/gradebook/core/report"
)

func (cli *commandLine) reportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Tier reports",
		Long: `Tier reports over a scope:
  course:<course>           e.g. course:1ro 1ra
  cycle:<name>              basic or upper
  school                    every course with students
  student:<course>/<name>   e.g. student:1ro 1ra/Ana Gomez
The --filter flag restricts the subjects: a code (MTM) or a group (group:math).`,
		RunE: helpOnly,
	}

	var (
		filter    string
		breakdown bool
	)
	aggregate := &cobra.Command{
		Use:   "aggregate SCOPE",
		Short: "Print the TEA/TEP/TED percentages of a scope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, f, err := parseSelectors(args[0], filter)
			if err != nil {
				return err
			}
			store, catalog := cli.svc.Snapshot(), cli.svc.Catalog()

			w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SCOPE\tTEA\tTEP\tTED\tPERIODS")
			if breakdown {
				rows, err := report.Breakdown(store, catalog, scope, f)
				if err != nil {
					return err
				}
				for _, cs := range rows {
					printSummary(w, cs.Course.Display(), cs.Summary)
				}
			}
			sum, err := report.Aggregate(store, catalog, scope, f)
			if err != nil {
				return err
			}
			printSummary(w, scope.String(), sum)
			return w.Flush()
		},
	}
	aggregate.Flags().StringVarP(&filter, "filter", "f", "", "subject code or group:<name>")
	aggregate.Flags().BoolVarP(&breakdown, "breakdown", "b", false, "also print one line per course")

	var seriesFilter string
	series := &cobra.Command{
		Use:   "series SCOPE",
		Short: "Print the recorded scores of a scope, by period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, f, err := parseSelectors(args[0], seriesFilter)
			if err != nil {
				return err
			}
			points, err := report.NumericSeries(cli.svc.Snapshot(), cli.svc.Catalog(), scope, f)
			if err != nil {
				return err
			}
			for _, pt := range points {
				fmt.Fprintf(cli.out, "%s: %d\n", pt.Label, pt.Score)
			}
			return nil
		},
	}
	series.Flags().StringVarP(&seriesFilter, "filter", "f", "", "subject code or group:<name>")

	cmd.AddCommand(aggregate, series)
	return cmd
}

func parseSelectors(rawScope, rawFilter string) (report.Scope, report.Filter, error) {
	scope, err := report.ParseScope(rawScope)
	if err != nil {
		return report.Scope{}, report.Filter{}, err
	}
	f, err := report.ParseFilter(rawFilter)
	if err != nil {
		return report.Scope{}, report.Filter{}, err
	}
	return scope, f, nil
}

func printSummary(w *tabwriter.Writer, label string, sum report.Summary) {
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", label, sum.TEA, sum.TEP, sum.TED, sum.Counted)
}
