package cmd

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/reconcile/helpers"
	"github.com/lehigh-university-libraries/reconcile/mapping"
)

var fieldMapName string

const defaultFieldMap = "dogon-lexicon"

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Normalize a legacy lexicon spreadsheet",
	Long: `Rename the columns of a legacy lexicon CSV export with a field map and
split word form columns into parsed forms. One JSON object is written per row.

Examples:
  reconcile lexicon -i flora.csv -o flora.ndjson
  reconcile lexicon -i sheet.csv --field-map my-sheet

Without --field-map the field map knowing most of the header columns is
used, falling back to ` + defaultFieldMap + `.`,
	Args: cobra.NoArgs,
	RunE: runLexicon,
}

func init() {
	lexiconCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input CSV file (default: stdin)")
	lexiconCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	lexiconCmd.Flags().StringVar(&fieldMapName, "field-map", "", "Field map name (default: detected from the header)")
}

// lexiconRow is one normalized spreadsheet row.
type lexiconRow struct {
	Fields map[string]string         `json:"fields"`
	Forms  map[string][]helpers.Form `json:"forms,omitempty"`
}

func runLexicon(cmd *cobra.Command, args []string) (err error) {
	registry, err := fieldMapRegistry()
	if err != nil {
		return err
	}

	input, inputName, closeInput, err := openInput(inputFile)
	if err != nil {
		return err
	}
	defer closeInput()

	output, closeOutput, err := openOutput(outputFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOutput(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()

	n, err := normalizeLexicon(input, output, func(header []string) (*mapping.FieldMap, error) {
		return chooseFieldMap(registry, fieldMapName, header)
	})
	if err != nil {
		return fmt.Errorf("normalizing %s: %w", inputName, err)
	}
	fmt.Fprintf(os.Stderr, "Normalized %d rows\n", n)
	return nil
}

// normalizeLexicon renames every row of a CSV sheet and writes it as JSON.
// choose picks the field map once the header is known.
func normalizeLexicon(r io.Reader, w io.Writer, choose func(header []string) (*mapping.FieldMap, error)) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading header: %w", err)
	}

	fm, err := choose(header)
	if err != nil {
		return 0, err
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	n := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return n, fmt.Errorf("reading row %d: %w", n+1, err)
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = helpers.CleanText(record[i])
			}
		}

		renamed := fm.Rename(row)
		out := lexiconRow{Fields: renamed, Forms: fm.Forms(renamed)}
		if err := enc.Encode(out); err != nil {
			return n, fmt.Errorf("writing row %d: %w", n+1, err)
		}
		n++
	}

	return n, nil
}

// chooseFieldMap returns the named field map, or the best match for header
// when name is empty.
func chooseFieldMap(registry *mapping.FieldMapRegistry, name string, header []string) (*mapping.FieldMap, error) {
	if name != "" {
		return lookupFieldMap(registry, name)
	}
	if fm, score := registry.MatchHeader(header); fm != nil {
		slog.Info("detected field map", "field_map", fm.Name, "score", score)
		return fm, nil
	}
	return lookupFieldMap(registry, defaultFieldMap)
}

// loadFieldMap looks a field map up among the embedded and user maps.
func loadFieldMap(name string) (*mapping.FieldMap, error) {
	registry, err := fieldMapRegistry()
	if err != nil {
		return nil, err
	}
	return lookupFieldMap(registry, name)
}

func lookupFieldMap(registry *mapping.FieldMapRegistry, name string) (*mapping.FieldMap, error) {
	fm, ok := registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown field map: %s (not found in ~/.reconcile/fieldmaps/ or embedded field maps)", name)
	}
	return fm, nil
}

func fieldMapRegistry() (*mapping.FieldMapRegistry, error) {
	registry, err := mapping.NewFieldMapRegistry()
	if err != nil {
		return nil, err
	}
	dir, err := mapping.UserDir()
	if err != nil {
		return registry, nil
	}
	if err := registry.LoadFromDirectory(dir); err != nil {
		return nil, err
	}
	return registry, nil
}
