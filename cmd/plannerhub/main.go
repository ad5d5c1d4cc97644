package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/plannerhub/internal/access"
	"github.com/julianstephens/plannerhub/internal/cli"
	"github.com/julianstephens/plannerhub/internal/logger"
	"github.com/julianstephens/plannerhub/internal/storage"
	"github.com/julianstephens/plannerhub/internal/store"
)

var CLI struct {
	Version  kong.VersionFlag
	Data     string `help:"Storage path: a .db file for SQLite or a directory for JSON snapshots." type:"path" default:"~/.config/plannerhub/plannerhub.db"`
	LogLevel string `help:"Log level (debug, info, warn, error)." default:"info"`

	Init   cli.InitCmd   `cmd:"" help:"Initialize plannerhub storage."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks."`

	Account struct {
		Create cli.AccountCreateCmd `cmd:"" help:"Sign up a new account."`
		Login  cli.AccountLoginCmd  `cmd:"" help:"Verify credentials."`
		Show   cli.AccountShowCmd   `cmd:"" help:"Show account details and planners."`
		Edit   cli.AccountEditCmd   `cmd:"" help:"Change user name or password."`
		Delete cli.AccountDeleteCmd `cmd:"" help:"Delete the account and its private planners."`
	} `cmd:"" help:"Manage accounts."`

	Planner struct {
		Create struct {
			Daily    cli.PlannerCreateDailyCmd    `cmd:"" help:"Create a daily planner."`
			Project  cli.PlannerCreateProjectCmd  `cmd:"" help:"Create a project planner."`
			Reminder cli.PlannerCreateReminderCmd `cmd:"" help:"Create a reminder planner."`
		} `cmd:"" help:"Create planners."`
		Edit    cli.PlannerEditCmd    `cmd:"" help:"Edit a planner."`
		Status  cli.PlannerStatusCmd  `cmd:"" help:"Toggle a reminder task's completion."`
		Privacy cli.PlannerPrivacyCmd `cmd:"" help:"Change planner privacy."`
		Delete  cli.PlannerDeleteCmd  `cmd:"" help:"Delete a planner."`
		List    cli.PlannerListCmd    `cmd:"" help:"List personal or public planners."`
		Show    cli.PlannerShowCmd    `cmd:"" help:"Show one planner."`
	} `cmd:"" help:"Manage planners."`

	Template struct {
		Create cli.TemplateCreateCmd       `cmd:"" help:"Create a template (admin)."`
		Rename cli.TemplateRenamePromptCmd `cmd:"" help:"Rename a prompt (admin)."`
		Add    cli.TemplateAddPromptCmd    `cmd:"" help:"Add a prompt (admin)."`
		Remove cli.TemplateRemovePromptCmd `cmd:"" help:"Remove a prompt (admin)."`
		Delete cli.TemplateDeleteCmd       `cmd:"" help:"Delete a template (admin)."`
		List   cli.TemplateListCmd         `cmd:"" help:"List templates."`
	} `cmd:"" help:"Manage templates."`

	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a snapshot backup."`
		List    cli.BackupListCmd    `cmd:"" help:"List backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore a backup."`
	} `cmd:"" help:"Manage backups."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("plannerhub"),
		kong.Description("Personal planner manager: accounts, planners, templates"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	log := logger.Setup(CLI.LogLevel)

	identity := store.NewIdentityStore()
	planners := store.NewPlannerStore()
	templates := store.NewTemplateStore()

	var provider storage.Provider
	if strings.HasSuffix(CLI.Data, ".db") {
		provider = storage.NewSQLiteProvider(CLI.Data, identity, planners, templates)
	} else {
		provider = storage.NewJSONProvider(CLI.Data, identity, planners, templates)
	}

	appCtx := &cli.Context{
		Provider:  provider,
		Access:    access.NewController(identity, planners, templates),
		Identity:  identity,
		Planners:  planners,
		Templates: templates,
		Log:       log,
	}

	// Every command except init and doctor operates on loaded stores; a
	// failed load degrades to empty stores, never a crash.
	switch kctx.Command() {
	case "init", "doctor":
	default:
		appCtx.LoadAll()
	}

	err := kctx.Run(appCtx)
	if closeErr := provider.Close(); closeErr != nil {
		log.Warn("failed to close storage", "error", closeErr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
