package cli

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/alecthomas/kong"
	"github.com/atotto/clipboard"
	"github.com/shopspring/decimal"

	"github.com/mholmer/giftlog/budget"
	"github.com/mholmer/giftlog/calc"
	"github.com/mholmer/giftlog/config"
	"github.com/mholmer/giftlog/currency"
	"github.com/mholmer/giftlog/date"
	"github.com/mholmer/giftlog/ledger"
	"github.com/mholmer/giftlog/person"
	"github.com/mholmer/giftlog/telemetry"
)

type CalcCmd struct {
	Name        string   `help:"Recipient name. Stored profile values are used as defaults." short:"n"`
	BaseValue   *float64 `help:"Base gift value." short:"b"`
	Currency    string   `help:"Currency code for the gift." short:"c"`
	Variation   *int     `help:"Maximum variation from the base value, in percent." short:"v"`
	FriendScore *float64 `help:"Friend score, 1-10." short:"f"`
	NiceScore   *float64 `help:"Nice score, 0-10. Zero puts the recipient on the naughty list." short:"s"`
	Decimals    *int     `help:"Decimal places in the result." short:"d"`
	Max         bool     `help:"Pin the result to the maximum of the variation band." xor:"extreme"`
	Min         bool     `help:"Pin the result to the minimum of the variation band." xor:"extreme"`
	Match       bool     `help:"Repeat the previous gift amount instead of calculating (for --name when given)." short:"m"`
	NoLog       bool     `help:"Do not append the result to the gift log."`
	Copy        bool     `help:"Copy the amount to the clipboard." short:"C"`
	ConvertTo   string   `help:"Additionally display the amount converted to this currency." name:"convert"`

	// naughty is set during amount resolution when the effective nice
	// score, from flag or stored profile, is zero.
	naughty bool
}

func (cmd *CalcCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, report := setupTelemetry(ctx, globals, "calc")
	defer report()

	cfg, err := loadConfig(ctx.Stderr)
	if err != nil {
		return err
	}

	persons, err := person.Load(cfg.PersonsPath())
	if err != nil {
		return err
	}
	if persons.Warning() != "" {
		printWarning(ctx.Stderr, persons.Warning())
	}

	loadTimer := telemetry.StartPhase(runCtx, "load ledger")
	entries, err := ledger.ReadFile(cfg.LedgerPath())
	loadTimer.End()
	if err != nil {
		return err
	}

	amount, code, err := cmd.resolveAmount(ctx, cfg.Settings, persons.Get(cmd.Name), entries)
	if err != nil {
		return err
	}

	active, usage := cmd.budgetContext(ctx, cfg.BudgetsPath(), entries, code)

	logGift := !cmd.NoLog
	if logGift && active != nil && usage.OverBudget(active, amount) && isTerminal() {
		over := usage.Remaining(active, amount).Neg()
		confirmed, err := promptYesNo(fmt.Sprintf("This gift puts budget %q over by %s. Log it anyway?",
			active.Description, currency.Format(over, code)))
		if err != nil {
			return err
		}
		logGift = confirmed
	}

	if logGift {
		if err := ledger.Append(cfg.LedgerPath(), cmd.renderLine(amount, code)); err != nil {
			return err
		}
	} else if !cmd.NoLog {
		printInfof(ctx.Stderr, "gift not logged")
	}

	fmt.Fprintln(ctx.Stdout, currency.Format(amount, code))

	if cmd.ConvertTo != "" && cmd.ConvertTo != code {
		converter := currency.NewClient(cfg.CacheDir())
		if converted, ok := converter.Convert(amount, code, cmd.ConvertTo); ok {
			printInfof(ctx.Stdout, "≈ %s", currency.Format(converted, cmd.ConvertTo))
		} else {
			printWarning(ctx.Stderr, fmt.Sprintf("could not convert %s to %s", code, cmd.ConvertTo))
		}
	}

	if active != nil {
		cmd.printBudgetContext(ctx, active, usage, amount, code)
	}

	if cmd.Copy {
		if err := clipboard.WriteAll(amount.String()); err != nil {
			printWarning(ctx.Stderr, fmt.Sprintf("could not copy to clipboard: %v", err))
		}
	}

	return nil
}

// resolveAmount either repeats the previous matching gift or runs a fresh
// calculation from the resolved input.
func (cmd *CalcCmd) resolveAmount(ctx *kong.Context, settings config.Settings, profile *person.Person, entries []*ledger.Entry) (decimal.Decimal, string, error) {
	if cmd.Match {
		var previous *ledger.Entry
		if cmd.Name != "" {
			previous = ledger.LastFor(entries, cmd.Name)
		} else {
			previous = ledger.Last(entries)
		}
		if previous != nil {
			printInfof(ctx.Stdout, "matched previous gift from %s", previous.Timestamp.Format("2006-01-02"))
			return previous.Amount, previous.Currency, nil
		}
		printWarning(ctx.Stderr, "no previous gift to match, calculating instead")
	}

	input, code := cmd.resolveInput(settings, profile)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	amount := calc.Random(input, rng)

	if input.Naughty() {
		cmd.naughty = true
		printWarning(ctx.Stderr, fmt.Sprintf("%s is on the naughty list", cmd.Name))
	}
	return amount, code, nil
}

// resolveInput layers flag values over the stored person profile over the
// saved config defaults.
func (cmd *CalcCmd) resolveInput(settings config.Settings, profile *person.Person) (calc.Input, string) {
	input := calc.Input{
		BaseValue:   decimal.NewFromInt(70),
		Variation:   calc.DefaultVariation,
		FriendScore: calc.DefaultFriendScore,
		NiceScore:   calc.DefaultNiceScore,
		Decimals:    calc.DefaultDecimals,
		Max:         cmd.Max,
		Min:         cmd.Min,
	}
	code := "SEK"

	if settings.BaseValue > 0 {
		input.BaseValue = decimal.NewFromFloat(settings.BaseValue)
	}
	if settings.Variation > 0 {
		input.Variation = settings.Variation
	}
	if settings.Decimals != nil {
		input.Decimals = *settings.Decimals
	}
	if settings.Currency != "" {
		code = settings.Currency
	}

	if profile != nil {
		if profile.BaseValue != nil {
			input.BaseValue = *profile.BaseValue
		}
		if profile.Currency != "" {
			code = profile.Currency
		}
		if profile.FriendScore != nil {
			input.FriendScore = *profile.FriendScore
		}
		if profile.NiceScore != nil {
			input.NiceScore = *profile.NiceScore
		}
	}

	if cmd.BaseValue != nil {
		input.BaseValue = decimal.NewFromFloat(*cmd.BaseValue)
	}
	if cmd.Currency != "" {
		code = cmd.Currency
	}
	if cmd.Variation != nil {
		input.Variation = *cmd.Variation
	}
	if cmd.FriendScore != nil {
		input.FriendScore = *cmd.FriendScore
	}
	if cmd.NiceScore != nil {
		input.NiceScore = *cmd.NiceScore
	}
	if cmd.Decimals != nil {
		input.Decimals = *cmd.Decimals
	}

	return input, code
}

// renderLine produces the canonical log line for the calculated gift.
func (cmd *CalcCmd) renderLine(amount decimal.Decimal, code string) string {
	entry := &ledger.Entry{
		Timestamp: time.Now().UTC(),
		Amount:    amount,
		Currency:  code,
		Recipient: cmd.Name,
	}
	if cmd.naughty {
		return entry.RenderAnnotated(calc.NaughtyAnnotation)
	}
	return entry.Render()
}

// budgetContext loads the budget store and derives usage for the active
// budget, if any. Store problems degrade to warnings: a broken budget
// store never blocks a gift calculation.
func (cmd *CalcCmd) budgetContext(ctx *kong.Context, budgetsPath string, entries []*ledger.Entry, code string) (*budget.Budget, budget.Usage) {
	store, err := budget.Load(budgetsPath)
	if err != nil {
		printWarning(ctx.Stderr, err.Error())
		return nil, budget.Usage{}
	}
	if store.Warning() != "" {
		printWarning(ctx.Stderr, store.Warning())
	}

	active := store.ActiveOn(date.Today())
	if active == nil {
		return nil, budget.Usage{}
	}
	return active, budget.CalculateUsage(entries, active, code)
}

// printBudgetContext shows how the new gift lands against the active
// budget, including entries skipped for currency mismatch.
func (cmd *CalcCmd) printBudgetContext(ctx *kong.Context, active *budget.Budget, usage budget.Usage, amount decimal.Decimal, code string) {
	for _, skipped := range usage.Skipped {
		printWarning(ctx.Stderr, fmt.Sprintf("budget skips %s %s from %s (different currency)",
			skipped.Amount, skipped.Currency, skipped.Date.Format("2006-01-02")))
	}

	remaining := usage.Remaining(active, amount)
	if remaining.IsNegative() {
		printWarning(ctx.Stdout, fmt.Sprintf("over budget %q by %s",
			active.Description, currency.Format(remaining.Neg(), code)))
		return
	}
	printInfof(ctx.Stdout, "budget %q: %s remaining", active.Description, currency.Format(remaining, code))
}
