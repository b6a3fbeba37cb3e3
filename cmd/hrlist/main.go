// Command hrlist serves the paged employee and expense lists and browses
// them from a terminal.
//
//	hrlist serve
//	hrlist seed -employees 250 -expenses 4
//	hrlist browse -list employees -session alice
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nrfta/listview-go/controller"
	"github.com/nrfta/listview-go/internal/browse"
	"github.com/nrfta/listview-go/internal/config"
	"github.com/nrfta/listview-go/internal/hr"
	"github.com/nrfta/listview-go/internal/httpapi"
	"github.com/nrfta/listview-go/internal/logger"
	"github.com/nrfta/listview-go/internal/storage"
	"github.com/nrfta/listview-go/urlstate"
	"github.com/nrfta/listview-go/urlstate/redisstore"
)

const usage = `usage: hrlist <command> [flags]

commands:
  serve    run the HTTP API
  seed     insert generated employees and expenses
  browse   page through a list interactively
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		fmt.Fprintf(stderr, "failed to build logger: %v\n", err)
		return 1
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch args[0] {
	case "serve":
		err = serve(ctx, cfg, log)
	case "seed":
		err = seed(ctx, cfg, log, args[1:])
	case "browse":
		err = browseList(ctx, cfg, log, args[1:], stdin, stdout)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("command failed", zap.String("command", args[0]), zap.Error(err))
		return 1
	}
	return 0
}

func openDB(ctx context.Context, cfg *config.Config, log *zap.Logger) (*storage.DB, error) {
	db, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	log.Info("database connected", zap.String("driver", db.Driver))

	if cfg.Database.Migrate {
		if err := storage.Migrate(ctx, db.DB); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	db, err := openDB(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.SeedRows > 0 {
		repo := hr.NewRepository(db, db.Dialect)
		count, err := repo.Employees().Count(ctx, db)
		if err != nil {
			return err
		}
		if count == 0 {
			if err := seedRows(ctx, db, log, cfg.Database.SeedRows, 3); err != nil {
				return err
			}
		}
	}

	server := httpapi.New(httpapi.Config{
		Mode:       cfg.HTTPServer.Mode,
		Logger:     log,
		Repository: hr.NewRepository(db, db.Dialect),
		PageConfig: cfg.Paging.PageConfig(),
		Radius:     cfg.Paging.WindowRadius,
		DB:         db,
	})

	return server.Run(ctx, cfg.HTTPServer.Addr())
}

func seed(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	employees := fs.Int("employees", 100, "number of employees to insert")
	expenses := fs.Int("expenses", 3, "expenses per employee")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := openDB(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	return seedRows(ctx, db, log, *employees, *expenses)
}

func seedRows(ctx context.Context, db *storage.DB, log *zap.Logger, employees, expensesPer int) error {
	seeder := hr.NewSeeder(db, db.Dialect)

	ids, err := seeder.Employees(ctx, employees)
	if err != nil {
		return err
	}
	if expensesPer > 0 && len(ids) > 0 {
		if _, err := seeder.Expenses(ctx, ids, expensesPer); err != nil {
			return err
		}
	}

	log.Info("database seeded", zap.Int("employees", employees), zap.Int("expenses_per_employee", expensesPer))
	return nil
}

func browseList(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	list := fs.String("list", "employees", "list to browse: employees or expenses")
	session := fs.String("session", "", "persist the view in Redis under this session ID")
	state := fs.String("state", "", "initial query string, e.g. page=2&department=engineering")
	sortKey := fs.String("sort", "", "server-side sort key")
	desc := fs.Bool("desc", false, "sort descending")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *session != "" {
		*session += ":" + *list
	}
	store, closeStore, err := openStore(cfg, log, *session, *state)
	if err != nil {
		return err
	}
	defer closeStore()

	pageConfig := cfg.Paging.PageConfig()
	endpoint := listEndpoint(cfg.Browse.URL, *list)
	clientOpts := []browse.ClientOption{browse.WithSort(*sortKey, *desc)}
	ctrlOpts := []controller.Option{
		controller.WithName(*list),
		controller.WithLogger(log),
		controller.WithRadius(cfg.Paging.WindowRadius),
		controller.WithFetchTimeout(cfg.Browse.FetchTimeout),
	}

	switch *list {
	case "employees":
		codec := hr.EmployeeCodec(pageConfig)
		client, err := browse.NewClient[httpapi.EmployeeDTO](endpoint, codec, clientOpts...)
		if err != nil {
			return err
		}
		ctrl := controller.New[httpapi.EmployeeDTO](client, store, append(ctrlOpts, controller.WithCodec(codec))...)
		defer ctrl.Close()

		return browse.NewSession(ctrl, *list, stdin, stdout, func(e httpapi.EmployeeDTO) string {
			return fmt.Sprintf("%-24s %-12s %-10s %s", e.Name, e.Department, e.Status, e.Email)
		}).Run(ctx)
	case "expenses":
		codec := hr.ExpenseCodec(pageConfig)
		client, err := browse.NewClient[httpapi.ExpenseDTO](endpoint, codec, clientOpts...)
		if err != nil {
			return err
		}
		ctrl := controller.New[httpapi.ExpenseDTO](client, store, append(ctrlOpts, controller.WithCodec(codec))...)
		defer ctrl.Close()

		return browse.NewSession(ctrl, *list, stdin, stdout, func(e httpapi.ExpenseDTO) string {
			return fmt.Sprintf("%s %-10s %-9s %8.2f  %s", e.SubmittedOn, e.Category, e.Status, float64(e.AmountCents)/100, e.Description)
		}).Run(ctx)
	default:
		return fmt.Errorf("unknown list %q", *list)
	}
}

// openStore keeps the view in Redis when a session is given and Redis is
// configured, and in a local URL otherwise.
func openStore(cfg *config.Config, log *zap.Logger, session, state string) (urlstate.Store, func(), error) {
	if session != "" && cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store, err := redisstore.New(client, session, redisstore.WithTTL(cfg.Redis.StateTTL))
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		log.Info("list state persisted in redis", zap.String("key", store.Key()))
		return store, func() { client.Close() }, nil
	}

	u, err := url.Parse("hrlist:///?" + strings.TrimPrefix(state, "?"))
	if err != nil {
		return nil, nil, fmt.Errorf("parse state %q: %w", state, err)
	}
	return urlstate.NewURLStore(u), func() {}, nil
}

// listEndpoint points the configured API URL at the requested list.
func listEndpoint(base, list string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	dir := u.Path[:strings.LastIndex(u.Path, "/")+1]
	u.Path = dir + list
	return u.String()
}
