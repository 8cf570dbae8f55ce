package cli

// Globals defines flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Calc         CalcCmd         `cmd:"" default:"withargs" help:"Calculate a gift amount and log it."`
	Budget       BudgetCmd       `cmd:"" help:"Manage spending budgets."`
	Spent        SpentCmd        `cmd:"" help:"Report spending over a date window."`
	Toplist      ToplistCmd      `cmd:"" help:"Rank recipients by gift total or score."`
	Person       PersonCmd       `cmd:"" help:"Manage the recipient registry."`
	Log          LogCmd          `cmd:"" help:"Show the raw gift log."`
	InitConfig   InitConfigCmd   `cmd:"" name:"init-config" help:"Interactively create the config file."`
	UpdateConfig UpdateConfigCmd `cmd:"" name:"update-config" help:"Interactively update the config file."`
}
