package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mholmer/giftlog/currency"
	"github.com/mholmer/giftlog/ledger"
	"github.com/mholmer/giftlog/person"
	"github.com/mholmer/giftlog/telemetry"
	"github.com/mholmer/giftlog/toplist"
)

type ToplistCmd struct {
	Sort           string `help:"Ranking criterion: total, nice-score, or friend-score." default:"total" enum:"total,nice-score,friend-score"`
	Length         int    `help:"Number of rows per list." default:"10"`
	Currency       string `help:"Rank totals in this currency only." short:"c"`
	ListCurrencies bool   `help:"List the currencies observed in the log and exit." name:"list-currencies"`
}

func (cmd *ToplistCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, report := setupTelemetry(ctx, globals, "toplist")
	defer report()

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

	if cmd.ListCurrencies {
		codes := ledger.Currencies(entries)
		if len(codes) == 0 {
			printInfof(ctx.Stdout, "no currencies in the log yet")
			return nil
		}
		fmt.Fprintln(ctx.Stdout, strings.Join(codes, "\n"))
		return nil
	}

	persons, err := person.Load(cfg.PersonsPath())
	if err != nil {
		return err
	}
	if persons.Warning() != "" {
		printWarning(ctx.Stderr, persons.Warning())
	}

	rankTimer := telemetry.StartPhase(runCtx, "rank")
	ranking := toplist.Rank(persons.All(), entries, toplist.Options{
		SortBy:   toplist.SortBy(cmd.Sort),
		Length:   cmd.Length,
		Currency: strings.ToUpper(cmd.Currency),
	})
	rankTimer.End()

	if ranking.IsPerCurrency() {
		for _, code := range ranking.Currencies() {
			fmt.Fprintf(ctx.Stdout, "%s\n", headerStyle.Render(code))
			cmd.writeList(ctx, ranking.PerCurrency[code], code)
			fmt.Fprintln(ctx.Stdout)
		}
		return nil
	}

	cmd.writeList(ctx, ranking.Single, strings.ToUpper(cmd.Currency))
	return nil
}

// writeList renders one ranked list. The value column depends on the
// ranking criterion; names are truncated to keep rows on one line.
func (cmd *ToplistCmd) writeList(ctx *kong.Context, list toplist.List, code string) {
	if len(list) == 0 {
		printInfof(ctx.Stdout, "nothing to rank")
		return
	}

	nameWidth := terminalWidth() / 2

	rows := make([][]string, 0, len(list))
	for i, row := range list {
		rows = append(rows, []string{
			fmt.Sprintf("%d.", i+1),
			truncateToWidth(row.Name, nameWidth),
			cmd.value(row, code),
		})
	}
	writeTable(ctx.Stdout, []string{"#", "NAME", cmd.valueHeader()}, rows)
}

func (cmd *ToplistCmd) valueHeader() string {
	switch toplist.SortBy(cmd.Sort) {
	case toplist.ByNiceScore:
		return "NICE"
	case toplist.ByFriendScore:
		return "FRIEND"
	default:
		return "TOTAL"
	}
}

// value renders the ranked quantity for one row.
func (cmd *ToplistCmd) value(row toplist.Row, code string) string {
	switch toplist.SortBy(cmd.Sort) {
	case toplist.ByNiceScore:
		return formatScore(row.NiceScore())
	case toplist.ByFriendScore:
		return formatScore(row.FriendScore())
	default:
		if code != "" {
			return currency.Format(row.Total(code), code)
		}
		// Single-currency dataset: every non-empty total shares one code.
		for _, only := range row.Totals.Currencies() {
			return currency.Format(row.Totals[only], only)
		}
		return "-"
	}
}

func formatScore(score float64) string {
	if score < 0 {
		return "-"
	}
	return fmt.Sprintf("%g", score)
}
