package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/reconcile/format"
)

// peekSize is how much of a file format detection looks at.
const peekSize = 4096

var detectFile string

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List registered formats",
	Long: `List registered formats, or detect the format of a file.

Examples:
  reconcile formats
  reconcile formats --detect dump.bib`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if detectFile != "" {
			f, err := detectFormat(detectFile)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, f.Name())
			return nil
		}

		for _, name := range format.List() {
			f, _ := format.Get(name)

			var caps []string
			if _, ok := f.(format.Parser); ok {
				caps = append(caps, "parse")
			}
			if _, ok := f.(format.Serializer); ok {
				caps = append(caps, "serialize")
			}

			fmt.Fprintf(out, "  %-8s %-16s %s (.%s)\n",
				name, strings.Join(caps, ","), f.Description(), strings.Join(f.Extensions(), ", ."))
		}
		return nil
	},
}

func init() {
	formatsCmd.Flags().StringVar(&detectFile, "detect", "", "Detect the format of this file")
}

// detectFormat detects a file's format from its extension and first bytes.
func detectFormat(path string) (format.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	peek := make([]byte, peekSize)
	n, err := io.ReadFull(f, peek)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return format.DetectFormat(path, peek[:n])
}
