package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/okian/incentivo/internal/domain/catalog"
)

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List task types and their weighted criteria",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.LoadFile(a.cfg.CatalogPath)
			if err != nil {
				return err
			}
			renderCatalog(cmd.OutOrStdout(), cat)
			return nil
		},
	}
}

func renderCatalog(w io.Writer, cat *catalog.Catalog) {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true)
	dim := r.NewStyle().Faint(true)

	for _, tt := range cat.Types() {
		fmt.Fprintf(w, "%s %s\n", header.Render(tt.Name), dim.Render("("+string(tt.Rule)+")"))
		for _, c := range tt.Criteria {
			fmt.Fprintf(w, "  %-32s %5.1f\n", c.Name, c.Weight)
		}
	}
}
