// Command orderflowctl inspects the status graph and runs maintenance tasks
// against the order workflow database.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"orderflow/cmd"
	postgresadapter "orderflow/internal/adapters/out/postgres"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/role"
	"orderflow/internal/core/domain/model/workflow"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type CLI struct {
	StatusConfig string `name:"status-config" env:"STATUS_CONFIG_PATH" help:"Status graph YAML file. Defaults to the built-in graph."`

	Statuses           StatusesCmd           `cmd:"" help:"List the statuses of the workflow."`
	Next               NextCmd               `cmd:"" help:"Show the statuses a role may move an order to."`
	Migrate            MigrateCmd            `cmd:"" help:"Create or update the database tables."`
	TrimActions        TrimActionsCmd        `cmd:"" name:"trim-actions" help:"Delete audit actions older than the retention."`
	PurgeNotifications PurgeNotificationsCmd `cmd:"" name:"purge-notifications" help:"Delete stored notifications older than the retention."`
	Users              UsersCmd              `cmd:"" help:"Manage notification recipients."`
}

// appContext carries what the subcommands share. The database is opened on
// first use so registry commands work offline.
type appContext struct {
	out          io.Writer
	statusConfig string
	logger       *slog.Logger

	app *cmd.CompositionRoot
	db  *gorm.DB
}

func (r *appContext) registry() (*workflow.Registry, error) {
	if r.statusConfig == "" {
		return workflow.LoadDefaultRegistry()
	}
	return workflow.LoadRegistryFile(r.statusConfig)
}

func (r *appContext) database() (*gorm.DB, cmd.Config, error) {
	configs, err := cmd.ConfigFromEnv(os.Getenv)
	if err != nil {
		return nil, cmd.Config{}, err
	}
	if r.db == nil {
		r.db, err = gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{TranslateError: true})
		if err != nil {
			return nil, cmd.Config{}, err
		}
	}
	return r.db, configs, nil
}

func (r *appContext) root() (*cmd.CompositionRoot, error) {
	if r.app != nil {
		return r.app, nil
	}
	db, configs, err := r.database()
	if err != nil {
		return nil, err
	}
	configs.StatusConfigPath = r.statusConfig
	r.app, err = cmd.NewCompositionRoot(configs, db, r.logger)
	return r.app, err
}

type StatusesCmd struct{}

func (c *StatusesCmd) Run(r *appContext) error {
	registry, err := r.registry()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STATUS\tLABEL\tNEXT\tALLOWED ROLES\tNOTIFY")
	for _, status := range registry.Statuses() {
		def, _ := registry.StatusInfo(status)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			def.Key(), def.Label(), joinStatuses(def.NextStatuses()), joinRoles(def.AllowedRoles()), joinRoles(def.NotifyRoles()))
	}
	return w.Flush()
}

type NextCmd struct {
	Status string `arg:"" help:"Current status."`
	Role   string `arg:"" help:"Actor role; aliases such as accountant are accepted."`
}

func (c *NextCmd) Run(r *appContext) error {
	registry, err := r.registry()
	if err != nil {
		return err
	}
	status, err := order.ParseStatus(c.Status)
	if err != nil {
		return err
	}
	actorRole, err := role.Parse(c.Role)
	if err != nil {
		return err
	}

	next := registry.NextPossibleStatuses(status, actorRole)
	if len(next) == 0 {
		fmt.Fprintf(r.out, "%s cannot move an order out of %s\n", actorRole, status)
		return nil
	}
	fmt.Fprintln(r.out, joinStatuses(next))
	return nil
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(r *appContext) error {
	db, _, err := r.database()
	if err != nil {
		return err
	}
	if err = postgresadapter.Migrate(db); err != nil {
		return err
	}
	fmt.Fprintln(r.out, "tables up to date:", strings.Join(postgresadapter.Tables, ", "))
	return nil
}

type TrimActionsCmd struct {
	Retention time.Duration `required:"" help:"Keep actions newer than this, e.g. 8760h."`
}

func (c *TrimActionsCmd) Run(ctx context.Context, r *appContext) error {
	app, err := r.root()
	if err != nil {
		return err
	}
	command, err := commands.NewTrimActionsCommand(c.Retention)
	if err != nil {
		return err
	}
	handler := app.CreateTrimActionsCommandHandler()
	deleted, err := handler.Handle(ctx, command)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "deleted %d actions\n", deleted)
	return nil
}

type PurgeNotificationsCmd struct {
	Retention time.Duration `required:"" help:"Keep notifications newer than this, e.g. 720h."`
}

func (c *PurgeNotificationsCmd) Run(ctx context.Context, r *appContext) error {
	app, err := r.root()
	if err != nil {
		return err
	}
	command, err := commands.NewPurgeNotificationsCommand(c.Retention)
	if err != nil {
		return err
	}
	handler := app.CreatePurgeNotificationsCommandHandler()
	deleted, err := handler.Handle(ctx, command)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "deleted %d notifications\n", deleted)
	return nil
}

type UsersCmd struct {
	Add UsersAddCmd `cmd:"" help:"Register a user as a recipient of role notifications."`
}

type UsersAddCmd struct {
	ID   string `help:"User id. A new id is generated when empty."`
	Name string `required:"" help:"Display name."`
	Role string `required:"" help:"Role; aliases such as comptoir are accepted."`
}

func (c *UsersAddCmd) Run(ctx context.Context, r *appContext) error {
	id := kernel.NewUUID()
	if c.ID != "" {
		parsed, err := kernel.UUIDFromString(c.ID)
		if err != nil {
			return err
		}
		id = parsed
	}
	userRole, err := role.Parse(c.Role)
	if err != nil {
		return err
	}

	app, err := r.root()
	if err != nil {
		return err
	}
	command, err := commands.NewRegisterUserCommand(id, c.Name, userRole)
	if err != nil {
		return err
	}
	if err = app.CreateRegisterUserCommandHandler().Handle(ctx, command); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "registered %s as %s\n", id, userRole)
	return nil
}

func joinStatuses(statuses []order.Status) string {
	if len(statuses) == 0 {
		return "-"
	}
	parts := make([]string, len(statuses))
	for i, s := range statuses {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}

func joinRoles(roles []role.Role) string {
	if len(roles) == 0 {
		return "-"
	}
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "loading .env:", err)
		os.Exit(1)
	}

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("orderflowctl"),
		kong.Description("Order workflow administration."),
		kong.UsageOnError(),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	r := &appContext{
		out:          os.Stdout,
		statusConfig: cli.StatusConfig,
		logger:       slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}
	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.FatalIfErrorf(kctx.Run(r))
}
