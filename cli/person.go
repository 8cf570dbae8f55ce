package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/shopspring/decimal"

	"github.com/mholmer/giftlog/person"
)

type PersonCmd struct {
	Set              PersonSetCmd         `cmd:"" help:"Create or update a recipient profile."`
	List             PersonListCmd        `cmd:"" help:"List stored recipient profiles."`
	ClearNiceScore   PersonClearNiceCmd   `cmd:"" name:"clear-nice-score" help:"Remove a recipient's nice score."`
	ClearFriendScore PersonClearFriendCmd `cmd:"" name:"clear-friend-score" help:"Remove a recipient's friend score."`
}

// loadPersons opens the registry and surfaces its non-fatal load warning.
func loadPersons(ctx *kong.Context, path string) (*person.Store, error) {
	store, err := person.Load(path)
	if err != nil {
		return nil, err
	}
	if store.Warning() != "" {
		printWarning(ctx.Stderr, store.Warning())
	}
	return store, nil
}

type PersonSetCmd struct {
	Name        string   `arg:"" help:"Recipient name."`
	NiceScore   *float64 `help:"Nice score, 0-10."`
	FriendScore *float64 `help:"Friend score, 1-10."`
	BaseValue   *float64 `help:"Base gift value for this recipient."`
	Currency    *string  `help:"Currency for this recipient's gifts."`
}

func (cmd *PersonSetCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := loadConfig(ctx.Stderr)
	if err != nil {
		return err
	}
	store, err := loadPersons(ctx, cfg.PersonsPath())
	if err != nil {
		return err
	}

	update := person.Update{
		NiceScore:   cmd.NiceScore,
		FriendScore: cmd.FriendScore,
		Currency:    cmd.Currency,
	}
	if cmd.BaseValue != nil {
		base := decimal.NewFromFloat(*cmd.BaseValue)
		update.BaseValue = &base
	}

	p, err := store.Set(cmd.Name, update)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return reportedError()
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("saved %s", p.Name))
	return nil
}

type PersonListCmd struct{}

func (cmd *PersonListCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := loadConfig(ctx.Stderr)
	if err != nil {
		return err
	}
	store, err := loadPersons(ctx, cfg.PersonsPath())
	if err != nil {
		return err
	}

	keys := store.Keys()
	if len(keys) == 0 {
		printInfof(ctx.Stdout, "no recipients stored")
		return nil
	}

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		p := store.All()[key]
		rows = append(rows, []string{
			p.Name,
			formatOptScore(p.NiceScore),
			formatOptScore(p.FriendScore),
			formatOptBase(p),
		})
	}
	writeTable(ctx.Stdout, []string{"NAME", "NICE", "FRIEND", "BASE"}, rows)
	return nil
}

func formatOptScore(score *float64) string {
	if score == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *score)
}

func formatOptBase(p *person.Person) string {
	if p.BaseValue == nil {
		return "-"
	}
	if p.Currency != "" {
		return fmt.Sprintf("%s %s", p.BaseValue, p.Currency)
	}
	return p.BaseValue.String()
}

type PersonClearNiceCmd struct {
	Name string `arg:"" help:"Recipient name."`
}

func (cmd *PersonClearNiceCmd) Run(ctx *kong.Context, globals *Globals) error {
	return clearScore(ctx, cmd.Name, func(s *person.Store, name string) (*person.Person, error) {
		return s.ClearNiceScore(name)
	})
}

type PersonClearFriendCmd struct {
	Name string `arg:"" help:"Recipient name."`
}

func (cmd *PersonClearFriendCmd) Run(ctx *kong.Context, globals *Globals) error {
	return clearScore(ctx, cmd.Name, func(s *person.Store, name string) (*person.Person, error) {
		return s.ClearFriendScore(name)
	})
}

func clearScore(ctx *kong.Context, name string, clear func(*person.Store, string) (*person.Person, error)) error {
	cfg, err := loadConfig(ctx.Stderr)
	if err != nil {
		return err
	}
	store, err := loadPersons(ctx, cfg.PersonsPath())
	if err != nil {
		return err
	}

	p, err := clear(store, name)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return reportedError()
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("cleared score for %s", p.Name))
	return nil
}
