package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/reconcile/urlresolve"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <url>...",
	Short: "Resolve legacy document URLs to archive URLs",
	Long: `Look up each URL in the local document archive and print its canonical
archive URL. URLs that cannot be resolved are printed unchanged.

Examples:
  reconcile resolve http://dogonlanguages.org/docs/foo.pdf --docs ./docs`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&docsDir, "docs", "", "Local document archive directory")
	resolveCmd.Flags().StringVar(&indexFile, "index", "", "Archive metadata XML (relative to the parent of --docs)")
}

func runResolve(cmd *cobra.Command, args []string) error {
	resolver, err := urlresolve.Load(cmd.Context(), resolverOptions())
	if err != nil {
		return fmt.Errorf("loading url resolver: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, raw := range args {
		rec, ok := resolver.Lookup(raw)
		if !ok {
			fmt.Fprintf(out, "%s\t%s\n", raw, raw)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", raw, rec.URL, rec.Checksum)
	}
	return nil
}
