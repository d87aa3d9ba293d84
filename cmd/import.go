package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/reconcile/catalog"
	"github.com/lehigh-university-libraries/reconcile/contributor"
	"github.com/lehigh-university-libraries/reconcile/format"
	"github.com/lehigh-university-libraries/reconcile/format/bibtex"
	"github.com/lehigh-university-libraries/reconcile/importer"
	"github.com/lehigh-university-libraries/reconcile/urlresolve"
)

var (
	inputFile    string
	outputFile   string
	toFormat     string
	pretty       bool
	catalogFile  string
	registryFile string
	docsDir      string
	indexFile    string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a citation dump",
	Long: `Repair every entry of a citation dump, disambiguate ids, link authors to
contributors and canonicalize document URLs.

Input defaults to stdin, output defaults to stdout.

Examples:
  # Repair and write NDJSON (stdin to stdout)
  cat dump.bib | reconcile import

  # Canonicalize URLs against the local document archive
  reconcile import -i dump.bib -o out.ndjson --docs ./docs --index Edmond.xml

  # Write cleaned BibTeX and store the entries in a catalog
  reconcile import -i dump.bib --to bibtex --catalog catalog.db`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file (default: stdin)")
	importCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	importCmd.Flags().StringVar(&toFormat, "to", "ndjson", "Output format (ndjson, bibtex)")
	importCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	importCmd.Flags().StringVar(&catalogFile, "catalog", "", "Also store entries in this SQLite catalog")
	importCmd.Flags().StringVar(&registryFile, "registry", "", "Contributor registry YAML (default: embedded)")
	importCmd.Flags().StringVar(&docsDir, "docs", "", "Local document archive directory")
	importCmd.Flags().StringVar(&indexFile, "index", "", "Archive metadata XML (relative to the parent of --docs)")
}

func runImport(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()

	input, inputName, closeInput, err := openInput(inputFile)
	if err != nil {
		return err
	}
	defer closeInput()

	serializer, err := format.GetSerializer(toFormat)
	if err != nil {
		return fmt.Errorf("unknown target format %q: %w", toFormat, err)
	}

	registry, err := loadRegistry()
	if err != nil {
		return err
	}

	resolver, err := urlresolve.Load(ctx, resolverOptions())
	if err != nil {
		return fmt.Errorf("loading url resolver: %w", err)
	}

	im := &importer.Importer{
		Repairer:    &bibtex.Repairer{NoiseMarkers: cfg.Repair.NoiseMarkers},
		Matcher:     &contributor.Matcher{Threshold: cfg.Match.Threshold},
		Registry:    registry,
		Resolver:    resolver,
		AuthorField: cfg.Match.AuthorField,
		URLFields:   cfg.Import.URLFields,
		Workers:     cfg.Import.Workers,
	}

	result, err := im.Run(ctx, input)
	if err != nil {
		return fmt.Errorf("importing %s: %w", inputName, err)
	}

	fmt.Fprintf(os.Stderr, "Imported %d entries (%d malformed, %d empty)\n",
		len(result.Entries), result.Malformed, result.Empty)

	if catalogFile != "" {
		db, err := catalog.Open(catalogFile)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Save(ctx, result.Entries); err != nil {
			return fmt.Errorf("saving catalog: %w", err)
		}
		n, err := db.Count(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Catalog %s holds %d entries\n", catalogFile, n)
	}

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
	if err := serializer.Serialize(output, result.Entries, opts); err != nil {
		return fmt.Errorf("serializing output: %w", err)
	}

	return nil
}

// openInput opens path, or stdin when path is empty.
func openInput(path string) (io.Reader, string, func() error, error) {
	if path == "" {
		return os.Stdin, "stdin", func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", nil, fmt.Errorf("opening input file: %w", err)
	}
	return f, path, f.Close, nil
}

// openOutput creates path, or returns stdout when path is empty.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}

// loadRegistry honors --registry over the configured registry file.
func loadRegistry() (*contributor.Registry, error) {
	if registryFile != "" {
		return contributor.LoadRegistry(registryFile)
	}
	return cfg.LoadRegistry()
}

// resolverOptions overlays --docs and --index on the configured options.
func resolverOptions() urlresolve.Options {
	opts := cfg.ResolverOptions()
	if docsDir != "" {
		opts.DocsDir = docsDir
	}
	if indexFile != "" {
		opts.IndexFile = indexFile
	}
	return opts
}
