package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/mholmer/giftlog/currency"
	"github.com/mholmer/giftlog/date"
	"github.com/mholmer/giftlog/ledger"
	"github.com/mholmer/giftlog/report"
	"github.com/mholmer/giftlog/telemetry"
)

type SpentCmd struct {
	From string `help:"First day of the window (YYYY-MM-DD)."`
	To   string `help:"Last day of the window (YYYY-MM-DD)."`
	Last int    `help:"Look back this many units from today."`
	Unit string `help:"Unit for --last: days, weeks, months, or years." default:"days"`
}

func (cmd *SpentCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, reportTelemetry := setupTelemetry(ctx, globals, "spent")
	defer reportTelemetry()

	window, err := cmd.resolveWindow()
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return reportedError()
	}

	cfg, err := loadConfig(ctx.Stderr)
	if err != nil {
		return err
	}

	loadTimer := telemetry.StartPhase(runCtx, "load ledger")
	entries, err := ledger.ReadFile(cfg.LedgerPath())
	loadTimer.End()
	if err != nil {
		return err
	}

	buildTimer := telemetry.StartPhase(runCtx, "build report")
	rep := report.Build(entries, window)
	buildTimer.End()

	if rep.Empty() {
		printInfof(ctx.Stdout, "no spending found between %s and %s", window.From, window.To)
		return nil
	}

	fmt.Fprintf(ctx.Stdout, "%s\n", headerStyle.Render(fmt.Sprintf("Spending %s", window)))

	if rep.MultiCurrency() {
		// Several currencies: group the itemization under one heading per
		// currency so amounts are never visually blended.
		for _, code := range rep.Totals.Currencies() {
			fmt.Fprintf(ctx.Stdout, "\n%s\n", headerStyle.Render(code))
			for _, e := range rep.Itemized {
				if e.Currency == code {
					fmt.Fprintf(ctx.Stdout, "  %s\n", e.Raw)
				}
			}
			printInfof(ctx.Stdout, "total %s", currency.Format(rep.Totals[code], code))
		}
		return nil
	}

	for _, e := range rep.Itemized {
		fmt.Fprintf(ctx.Stdout, "  %s\n", e.Raw)
	}
	for _, code := range rep.Totals.Currencies() {
		printInfof(ctx.Stdout, "total %s", currency.Format(rep.Totals[code], code))
	}
	return nil
}

// resolveWindow enforces that exactly one of the absolute pair or the
// relative spec is present.
func (cmd *SpentCmd) resolveWindow() (date.Range, error) {
	absolute := cmd.From != "" || cmd.To != ""
	relative := cmd.Last != 0

	switch {
	case absolute && relative:
		return date.Range{}, fmt.Errorf("pass either --from/--to or --last, not both")
	case absolute:
		if cmd.From == "" || cmd.To == "" {
			return date.Range{}, fmt.Errorf("--from and --to must be given together")
		}
		return report.AbsoluteWindow(cmd.From, cmd.To)
	case relative:
		unit, err := report.ParseUnit(cmd.Unit)
		if err != nil {
			return date.Range{}, err
		}
		return report.RelativeWindow(date.Today(), cmd.Last, unit)
	default:
		return date.Range{}, fmt.Errorf("pass a window: --from/--to or --last N [--unit u]")
	}
}
