package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/reconcile/format"
	"github.com/lehigh-university-libraries/reconcile/format/bibtex"
	"github.com/lehigh-university-libraries/reconcile/importer"
)

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair a citation dump without matching or URL rewriting",
	Long: `Repair every entry of a citation dump and disambiguate ids. Contributors
are not linked and URLs are left alone.

Examples:
  reconcile repair -i dump.bib -o clean.bib
  reconcile repair -i dump.bib --to ndjson`,
	Args: cobra.NoArgs,
	RunE: runRepair,
}

var repairTo string

func init() {
	repairCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file (default: stdin)")
	repairCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	repairCmd.Flags().StringVar(&repairTo, "to", "bibtex", "Output format (bibtex, ndjson)")
	repairCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
}

func runRepair(cmd *cobra.Command, args []string) (err error) {
	input, inputName, closeInput, err := openInput(inputFile)
	if err != nil {
		return err
	}
	defer closeInput()

	serializer, err := format.GetSerializer(repairTo)
	if err != nil {
		return fmt.Errorf("unknown target format %q: %w", repairTo, err)
	}

	im := &importer.Importer{
		Repairer: &bibtex.Repairer{NoiseMarkers: cfg.Repair.NoiseMarkers},
		Workers:  cfg.Import.Workers,
	}
	result, err := im.Run(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("repairing %s: %w", inputName, err)
	}

	fmt.Fprintf(os.Stderr, "Repaired %d entries (%d malformed, %d empty)\n",
		len(result.Entries), result.Malformed, result.Empty)

	output, closeOutput, err := openOutput(outputFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOutput(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()

	opts := format.NewSerializeOptions()
	opts.Pretty = pretty
	return serializer.Serialize(output, result.Entries, opts)
}
