package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/reconcile/contributor"
	"github.com/lehigh-university-libraries/reconcile/helpers"
)

var matchCmd = &cobra.Command{
	Use:   "match <author field>",
	Short: "Show which contributors an author field links to",
	Long: `Split an author field on "and", unescape LaTeX and print every
contributor whose name scores at least the match threshold.

Examples:
  reconcile match "Heath, Jeffrey and Mor{\'a}n, Steven"
  reconcile match "J. Heath" --registry people.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&registryFile, "registry", "", "Contributor registry YAML (default: embedded)")
}

func runMatch(cmd *cobra.Command, args []string) error {
	registry, err := loadRegistry()
	if err != nil {
		return err
	}

	m := &contributor.Matcher{Threshold: cfg.Match.Threshold}
	out := cmd.OutOrStdout()

	for _, author := range contributor.SplitAuthors(args[0]) {
		fmt.Fprintf(out, "%s\n", author)
		for c := range registry.All() {
			score := helpers.TokenSortRatio(author, c.DisplayName())
			if score < m.Threshold {
				continue
			}
			fmt.Fprintf(out, "  %-14s %-28s %3d\n", c.ID, c.DisplayName(), score)
		}
	}

	ids := m.MatchAll(args[0], registry)
	fmt.Fprintf(out, "\nMatched %d contributor link(s)\n", len(ids))
	return nil
}
