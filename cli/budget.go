package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/shopspring/decimal"

	"github.com/mholmer/giftlog/budget"
	"github.com/mholmer/giftlog/currency"
	"github.com/mholmer/giftlog/date"
	"github.com/mholmer/giftlog/ledger"
	"github.com/mholmer/giftlog/telemetry"
)

type BudgetCmd struct {
	Add    BudgetAddCmd    `cmd:"" help:"Add a budget for a date period."`
	Edit   BudgetEditCmd   `cmd:"" help:"Edit an existing budget."`
	List   BudgetListCmd   `cmd:"" help:"List all budgets with their status."`
	Status BudgetStatusCmd `cmd:"" help:"Show the active budget and its usage."`
}

// loadBudgets opens the store and surfaces its non-fatal load warning.
func loadBudgets(ctx *kong.Context, path string) (*budget.Store, error) {
	store, err := budget.Load(path)
	if err != nil {
		return nil, err
	}
	if store.Warning() != "" {
		printWarning(ctx.Stderr, store.Warning())
	}
	return store, nil
}

type BudgetAddCmd struct {
	Amount      float64 `help:"Total budget amount." required:""`
	From        string  `help:"First day of the budget period (YYYY-MM-DD)." required:""`
	To          string  `help:"Last day of the budget period (YYYY-MM-DD)." required:""`
	Description string  `help:"Budget description." optional:""`
}

func (cmd *BudgetAddCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := loadConfig(ctx.Stderr)
	if err != nil {
		return err
	}
	store, err := loadBudgets(ctx, cfg.BudgetsPath())
	if err != nil {
		return err
	}

	b, err := store.Add(decimal.NewFromFloat(cmd.Amount), cmd.From, cmd.To, cmd.Description)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return reportedError()
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("added budget #%d %q: %s for %s", b.ID, b.Description, b.TotalAmount, b.Period()))
	return nil
}

type BudgetEditCmd struct {
	ID          int      `arg:"" help:"Budget id to edit."`
	Amount      *float64 `help:"New total amount."`
	From        *string  `help:"New first day (YYYY-MM-DD)."`
	To          *string  `help:"New last day (YYYY-MM-DD)."`
	Description *string  `help:"New description."`
}

func (cmd *BudgetEditCmd) Run(ctx *kong.Context, globals *Globals) error {
	if cmd.Amount == nil && cmd.From == nil && cmd.To == nil && cmd.Description == nil {
		printError(ctx.Stderr, "nothing to change: pass at least one of --amount, --from, --to, --description")
		return reportedError()
	}

	cfg, err := loadConfig(ctx.Stderr)
	if err != nil {
		return err
	}
	store, err := loadBudgets(ctx, cfg.BudgetsPath())
	if err != nil {
		return err
	}

	req := budget.EditRequest{
		From:        cmd.From,
		To:          cmd.To,
		Description: cmd.Description,
	}
	if cmd.Amount != nil {
		amount := decimal.NewFromFloat(*cmd.Amount)
		req.Amount = &amount
	}

	b, err := store.Edit(cmd.ID, req)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return reportedError()
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("updated budget #%d %q: %s for %s", b.ID, b.Description, b.TotalAmount, b.Period()))
	return nil
}

type BudgetListCmd struct{}

func (cmd *BudgetListCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := loadConfig(ctx.Stderr)
	if err != nil {
		return err
	}
	store, err := loadBudgets(ctx, cfg.BudgetsPath())
	if err != nil {
		return err
	}

	budgets := store.List()
	if len(budgets) == 0 {
		printInfof(ctx.Stdout, "no budgets configured")
		return nil
	}

	today := date.Today()
	rows := make([][]string, 0, len(budgets))
	for _, b := range budgets {
		rows = append(rows, []string{
			fmt.Sprintf("#%d", b.ID),
			b.Description,
			b.TotalAmount.String(),
			b.Period().String(),
			string(b.StatusOn(today)),
		})
	}
	writeTable(ctx.Stdout, []string{"ID", "DESCRIPTION", "AMOUNT", "PERIOD", "STATUS"}, rows)
	return nil
}

type BudgetStatusCmd struct {
	Currency string `help:"Currency the budget is tracked in. Defaults to the configured currency." short:"c"`
}

func (cmd *BudgetStatusCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, report := setupTelemetry(ctx, globals, "budget status")
	defer report()

	cfg, err := loadConfig(ctx.Stderr)
	if err != nil {
		return err
	}
	store, err := loadBudgets(ctx, cfg.BudgetsPath())
	if err != nil {
		return err
	}

	today := date.Today()
	active := store.ActiveOn(today)
	if active == nil {
		printInfof(ctx.Stdout, "no active budget")
		return nil
	}

	code := cmd.Currency
	if code == "" {
		code = cfg.Settings.Currency
	}
	if code == "" {
		code = "SEK"
	}

	loadTimer := telemetry.StartPhase(runCtx, "load ledger")
	entries, err := ledger.ReadFile(cfg.LedgerPath())
	loadTimer.End()
	if err != nil {
		return err
	}

	usage := budget.CalculateUsage(entries, active, code)

	fmt.Fprintf(ctx.Stdout, "%s\n", headerStyle.Render(fmt.Sprintf("Budget #%d %q", active.ID, active.Description)))
	printInfof(ctx.Stdout, "period %s, %d of %d days remaining",
		active.Period(), active.RemainingDays(today), active.TotalDays())
	printInfof(ctx.Stdout, "spent %s of %s",
		currency.Format(usage.TotalSpent, code), currency.Format(active.TotalAmount, code))

	remaining := usage.Remaining(active, decimal.Zero)
	if remaining.IsNegative() {
		printWarning(ctx.Stdout, fmt.Sprintf("over budget by %s", currency.Format(remaining.Neg(), code)))
	} else {
		printSuccess(ctx.Stdout, fmt.Sprintf("%s remaining", currency.Format(remaining, code)))
	}

	if usage.MixedCurrencies {
		printWarning(ctx.Stderr, "entries in other currencies were not counted:")
		for _, skipped := range usage.Skipped {
			fmt.Fprintf(ctx.Stderr, "  %s %s on %s%s\n",
				skipped.Amount, skipped.Currency, skipped.Date.Format("2006-01-02"), forName(skipped.Recipient))
		}
	}
	return nil
}

func forName(recipient string) string {
	if recipient == "" {
		return ""
	}
	return " for " + recipient
}
