package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/flanksource/pdfo"
	"github.com/flanksource/pdfo/api"
	"github.com/flanksource/pdfo/design"
	"github.com/flanksource/pdfo/report"
	"github.com/flanksource/pdfo/shutdown"
)

func openEditor() (*design.Editor, func(), error) {
	store, err := design.OpenSQLite(settings.DesignDB)
	if err != nil {
		return nil, nil, err
	}
	shutdown.AddHookWithPriority("design store", shutdown.PriorityDatabase, func() { _ = store.Close() })
	return design.NewEditor(store), shutdown.Shutdown, nil
}

func newDesignsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "designs",
		Short: "Manage saved product designs",
	}
	cmd.AddCommand(newDesignsListCommand())
	cmd.AddCommand(newDesignsSaveCommand())
	cmd.AddCommand(newDesignsDeleteCommand())
	cmd.AddCommand(newDesignsExportCommand())
	cmd.AddCommand(newDesignsIndexCommand())
	cmd.AddCommand(newDesignsPresetsCommand())
	return cmd
}

func newDesignsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved designs, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			editor, closeStore, err := openEditor()
			if err != nil {
				return err
			}
			defer closeStore()

			designs, err := editor.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(designs) == 0 {
				fmt.Println("No saved designs")
				return nil
			}

			header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
			cell := lipgloss.NewStyle().Padding(0, 1)
			t := table.New().
				Border(lipgloss.NormalBorder()).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return header
					}
					return cell
				}).
				Headers("ID", "MODEL", "SIZES", "IMAGES", "UPDATED").
				Rows(lo.Map(designs, func(d api.ProductDesign, _ int) []string {
					return []string{d.ID, d.ModelCode, d.Sizes, fmt.Sprint(len(d.Images)), d.UpdatedAt.Local().Format(time.DateTime)}
				})...)
			fmt.Println(t)
			return nil
		},
	}
}

func newDesignsSaveCommand() *cobra.Command {
	var preset string

	cmd := &cobra.Command{
		Use:   "save <design.yaml>",
		Short: "Save a design file; a design with an id updates the saved copy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := pdfo.LoadDesign(args[0])
			if err != nil {
				return err
			}
			if preset != "" {
				if d, err = design.ApplyPreset(d, preset); err != nil {
					return err
				}
			}

			editor, closeStore, err := openEditor()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := editor.Update(func(current *api.ProductDesign) { *current = d }); err != nil {
				return err
			}
			saved, err := editor.Save(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(saved.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "", "Colour preset to apply before saving")
	return cmd
}

func newDesignsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			editor, closeStore, err := openEditor()
			if err != nil {
				return err
			}
			defer closeStore()
			return editor.Delete(cmd.Context(), args[0])
		},
	}
}

func newDesignsExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <id> <design.yaml>",
		Short: "Write a saved design to a YAML file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			editor, closeStore, err := openEditor()
			if err != nil {
				return err
			}
			defer closeStore()

			d, err := editor.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return pdfo.WriteDesign(args[1], d)
		},
	}
}

func newDesignsIndexCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Render an overview PDF of every saved design",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			editor, closeStore, err := openEditor()
			if err != nil {
				return err
			}
			defer closeStore()

			designs, err := editor.List(cmd.Context())
			if err != nil {
				return err
			}
			data, err := report.DesignIndex(cmd.Context(), designs, nil)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Println(output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "designs.pdf", "Output file")
	return cmd
}

func newDesignsPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the colour presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range design.Presets() {
				swatch := lipgloss.NewStyle().
					Background(lipgloss.Color(p.Header)).
					Foreground(lipgloss.Color(p.Background)).
					Padding(0, 1).
					Render(p.Name)
				fmt.Printf("%s  background %s  header %s  text %s\n", swatch, p.Background, p.Header, p.Text)
			}
		},
	}
}
