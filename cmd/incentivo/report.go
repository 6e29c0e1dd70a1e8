package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/okian/incentivo/internal/domain/bucket"
	"github.com/okian/incentivo/internal/domain/filter"
	"github.com/okian/incentivo/internal/domain/stats"
	"github.com/okian/incentivo/internal/domain/types"
)

type reportFlags struct {
	employeeID int64
	taskType   string
	start      string
	end        string
	pending    bool
	query      string
	asJSON     bool
}

func (f reportFlags) criteria() filter.Criteria {
	c := filter.Criteria{
		Type:            f.taskType,
		Start:           f.start,
		End:             f.end,
		OnlyUnevaluated: f.pending,
		Query:           f.query,
	}
	if f.employeeID > 0 {
		c = c.ForEmployee(f.employeeID)
	}
	return c
}

func newReportCmd(a *app) *cobra.Command {
	var f reportFlags
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print statistics, criteria impact and tasks for a filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.report(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().Int64Var(&f.employeeID, "employee-id", 0, "Only tasks of this employee")
	cmd.Flags().StringVar(&f.taskType, "type", "", "Only tasks of this type")
	cmd.Flags().StringVar(&f.start, "start", "", "First day, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.end, "end", "", "Last day, YYYY-MM-DD")
	cmd.Flags().BoolVar(&f.pending, "pending", false, "Only tasks without a score")
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "Match title or comments")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Print the report as JSON")
	return cmd
}

func (a *app) report(ctx context.Context, w io.Writer, f reportFlags) error {
	svc, err := a.newService(ctx)
	if err != nil {
		return err
	}
	defer svc.Stop(ctx)

	r, err := svc.Report(ctx, f.criteria())
	if err != nil {
		return err
	}
	if f.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	renderReport(w, r)
	return nil
}

// reportStyles holds the styles used in the text report.
type reportStyles struct {
	header  lipgloss.Style
	dim     lipgloss.Style
	buckets map[bucket.Bucket]lipgloss.Style
}

func newReportStyles(w io.Writer) reportStyles {
	r := lipgloss.NewRenderer(w)
	s := reportStyles{
		header:  r.NewStyle().Bold(true),
		dim:     r.NewStyle().Faint(true),
		buckets: make(map[bucket.Bucket]lipgloss.Style, len(bucket.All())),
	}
	for _, b := range bucket.All() {
		s.buckets[b] = r.NewStyle().Foreground(lipgloss.Color(b.Color()))
	}
	return s
}

func renderReport(w io.Writer, r types.Report) {
	st := newReportStyles(w)

	fmt.Fprintln(w, st.header.Render("REPORTE DE EVALUACIONES"))
	fmt.Fprintf(w, "Tareas evaluadas: %d  Pendientes: %d  Promedio: %.2f  Bono: %s%%\n",
		r.Stats.TotalTasks, r.Stats.PendingTasks, r.Stats.AverageScore, r.Stats.BonusPercentage)
	fmt.Fprintln(w, renderDistribution(r.Stats, st))

	fmt.Fprintln(w)
	fmt.Fprintln(w, st.header.Render("TAREAS"))
	if len(r.Tasks) == 0 {
		fmt.Fprintln(w, st.dim.Render("  sin tareas"))
	}
	for _, t := range r.Tasks {
		score := st.dim.Render(fmt.Sprintf("%8s", "pendiente"))
		level := ""
		if t.TotalScore != nil && t.Bucket != nil {
			style := st.buckets[*t.Bucket]
			score = style.Render(fmt.Sprintf("%8.2f", *t.TotalScore))
			level = style.Render(t.Bucket.Label())
		}
		fmt.Fprintf(w, "  #%-4d %-10s %-18s %-24s %s  %s %s\n",
			t.ID, t.Date, truncate(t.Employee, 18), truncate(t.Type, 24), truncate(t.Title, 40), score, level)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, st.header.Render("CRITERIOS CON IMPACTO"))
	shown := 0
	for _, ci := range r.Impact {
		if ci.ImpactScore <= 0 {
			continue
		}
		shown++
		fmt.Fprintf(w, "  %-32s impacto %7.1f  (%5.1f%%)  promedio %6.2f  %s\n",
			truncate(ci.Criterion, 32), ci.ImpactScore, ci.ImpactPercentage, ci.AvgScore,
			st.dim.Render(strings.Join(ci.AffectedTaskTypes, ", ")))
	}
	if shown == 0 {
		fmt.Fprintln(w, st.dim.Render("  ningún criterio por debajo de 100"))
	}
}

func renderDistribution(s stats.Stats, st reportStyles) string {
	parts := make([]string, 0, len(bucket.All()))
	for _, b := range bucket.All() {
		parts = append(parts, st.buckets[b].Render(fmt.Sprintf("%s %d", b.Label(), s.Distribution[b])))
	}
	return "Distribución: " + strings.Join(parts, " · ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
