package domain

import (
	"context"
	"fmt"
	"log/slog"

	"layermap.dev/pkg/layermap/internal/adapter"
	"layermap.dev/pkg/layermap/internal/controller"
	m "layermap.dev/pkg/layermap/internal/model"
)

// ReportArgs contains the arguments of one report run.
type ReportArgs struct {
	Root     m.Path
	Sections []m.Section
	Exclude  []string
	Format   controller.Format
	Save     m.Path // snapshot destination, empty to skip
}

// ViewArgs contains the arguments for displaying a saved snapshot.
type ViewArgs struct {
	Report m.Path
	Format controller.Format
}

// Workflow scans a project and presents the resulting report.
type Workflow interface {
	Report(ctx context.Context, args ReportArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	Analyzer
	adapter.ReportStore
	controller.UI
}

// NewWorkflow creates a Workflow from its analyzer, snapshot store and UI.
func NewWorkflow(analyzer Analyzer, store adapter.ReportStore, ui controller.UI) Workflow {
	return &workflow{
		Analyzer:    analyzer,
		ReportStore: store,
		UI:          ui,
	}
}

func (w *workflow) Report(ctx context.Context, args ReportArgs) error {
	report, err := w.Scan(ctx, ScanArgs{
		Root:     args.Root,
		Sections: args.Sections,
		Exclude:  args.Exclude,
	})
	if err != nil {
		slog.Error("Scan failed", "root", args.Root, "error", err)
		return fmt.Errorf("scan: %w", err)
	}

	if args.Save != "" {
		if err := w.SaveReport(args.Save, report); err != nil {
			return fmt.Errorf("save report: %w", err)
		}

		slog.Info("Saved report", "path", args.Save)
	}

	if err := w.DisplayReport(ctx, report, controller.WithFormat(args.Format)); err != nil {
		return fmt.Errorf("display report: %w", err)
	}

	return nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.LoadReport(args.Report)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	if err := w.DisplayReport(ctx, report, controller.WithFormat(args.Format)); err != nil {
		return fmt.Errorf("display report: %w", err)
	}

	return nil
}
