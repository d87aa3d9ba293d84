package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var fieldmapsCmd = &cobra.Command{
	Use:   "fieldmaps",
	Short: "Manage legacy field maps",
	Long:  `List and inspect the field maps used to normalize legacy spreadsheets.`,
}

var fieldmapsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available field maps",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := fieldMapRegistry()
		if err != nil {
			return err
		}

		names := registry.List()
		out := cmd.OutOrStdout()
		if len(names) == 0 {
			fmt.Fprintln(out, "No field maps found")
			return nil
		}

		fmt.Fprintln(out, "Available field maps:")
		for _, name := range names {
			fm, _ := registry.Get(name)
			desc := ""
			if fm.Description != "" {
				desc = " - " + fm.Description
			}
			fmt.Fprintf(out, "  %s%s\n", name, desc)
		}

		return nil
	},
}

var fieldmapsShowCmd = &cobra.Command{
	Use:   "show [field map]",
	Short: "Show field map details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fm, err := loadFieldMap(args[0])
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(fm)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var fieldmapsFieldsCmd = &cobra.Command{
	Use:   "fields [field map]",
	Short: "List the columns of a field map",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fm, err := loadFieldMap(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Columns in %s:\n\n", fm.Name)
		fmt.Fprintf(out, "%-36s -> %-24s %s\n", "Source Column", "Target Field", "Forms")
		fmt.Fprintf(out, "%-36s    %-24s %s\n", "-------------", "------------", "-----")

		for _, m := range fm.Fields {
			target := m.Target
			if m.Skip() {
				target = "(dropped)"
			}
			forms := ""
			if m.Forms {
				forms = "yes"
			}
			fmt.Fprintf(out, "%-36s -> %-24s %s\n", m.Source, target, forms)
		}

		return nil
	},
}

func init() {
	fieldmapsCmd.AddCommand(fieldmapsListCmd)
	fieldmapsCmd.AddCommand(fieldmapsShowCmd)
	fieldmapsCmd.AddCommand(fieldmapsFieldsCmd)
}
