package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aristath/taskrank/internal/analysis"
	"github.com/aristath/taskrank/internal/client"
	"github.com/aristath/taskrank/internal/config"
	"github.com/aristath/taskrank/internal/report"
)

func newSuggestCmd(a *app) *cobra.Command {
	var (
		top    int
		sets   []string
		asJSON bool
		server string
	)

	cmd := &cobra.Command{
		Use:   "suggest FILE",
		Short: "Suggest the tasks to work on today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := parseSets(sets)
			if err != nil {
				return err
			}
			p, err := analysis.ReadPayload(args[0])
			if err != nil {
				return err
			}
			p.Config = config.MergeMaps(p.Config, overrides)

			var suggestions []analysis.Suggestion
			if server != "" {
				c, err := client.New(server, client.WithLogger(a.logger))
				if err != nil {
					return err
				}
				suggestions, err = c.Suggest(cmd.Context(), *p, top)
				if err != nil {
					return err
				}
			} else {
				suggestions, err = a.analyzer().Suggest(p.Tasks, p.Config, top)
				if err != nil {
					return err
				}
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), suggestions)
			}
			fmt.Fprint(cmd.OutOrStdout(), report.RenderSuggestions(suggestions))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&top, "top", "n", analysis.DefaultTopN, "number of suggestions")
	flags.StringArrayVar(&sets, "set", nil, "scoring override as key=value (repeatable)")
	flags.BoolVar(&asJSON, "json", false, "print suggestions as JSON")
	flags.StringVar(&server, "server", "", "ask a remote taskrank server instead")

	return cmd
}
