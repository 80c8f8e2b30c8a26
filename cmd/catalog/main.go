package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"syscall"
	"time"

	"catalog-services/api"
	"catalog-services/catlog"
	"catalog-services/db"
	"catalog-services/seed"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/microcosm-cc/bluemonday"
	"github.com/ninja-software/log_helpers"
	"github.com/ninja-software/terror/v2"
	"github.com/oklog/run"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// Variable passed in at compile time using `-ldflags`
var (
	Version   string // -X main.Version=$(git describe --tags --abbrev=0)
	GitHash   string // -X main.GitHash=$(git rev-parse HEAD)
	GitBranch string // -X main.GitBranch=$(git rev-parse --abbrev-ref HEAD)
	BuildDate string // -X main.BuildDate=$(date -u +%Y%m%d%H%M%S)
)

const envPrefix = "CATALOG"

func main() {
	app := &cli.App{
		Compiled: time.Now(),
		Usage:    "Run the product catalog API server or database administration commands",
		Commands: []*cli.Command{
			{
				Name: "version",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "full", Usage: "Prints full version and build info", Value: false},
				},
				Action: func(c *cli.Context) error {
					if c.Bool("full") {
						fmt.Printf("Version=%s\n", Version)
						fmt.Printf("Commit=%s\n", GitHash)
						fmt.Printf("Branch=%s\n", GitBranch)
						fmt.Printf("BuildDate=%s\n", BuildDate)
						return nil
					}
					fmt.Printf("%s\n", Version)
					return nil
				},
			},
			{
				Name:    "serve",
				Aliases: []string{"s"},
				Usage:   "run server",
				Flags: append(dbFlags(),
					&cli.StringFlag{Name: "api_addr", Value: ":8080", EnvVars: []string{envPrefix + "_API_ADDR", "API_ADDR"}, Usage: "host:port to run the API"},
					&cli.StringFlag{Name: "frontend_host_url", Value: "http://localhost:3000", EnvVars: []string{envPrefix + "_HOST_URL_FRONTEND"}, Usage: "The public site URL used for CORS"},
					&cli.StringFlag{Name: "environment", Value: "development", DefaultText: "development", EnvVars: []string{envPrefix + "_ENVIRONMENT", "ENVIRONMENT"}, Usage: "This program environment (development, testing, training, staging, production), it sets the log levels"},
					&cli.StringFlag{Name: "log_level", Value: "InfoLevel", EnvVars: []string{envPrefix + "_LOG_LEVEL"}, Usage: "Set the log level for zerolog (Options: PanicLevel, FatalLevel, ErrorLevel, WarnLevel, InfoLevel, DebugLevel, TraceLevel"},
				),
				Action: func(c *cli.Context) error {
					ctx, cancel := context.WithCancel(c.Context)
					defer cancel()

					environment := c.String("environment")
					level := c.String("log_level")
					log := log_helpers.LoggerInitZero(environment, level)
					if environment == "production" || environment == "staging" {
						logPtr := zerolog.New(os.Stdout)
						log = &logPtr
					}
					catlog.New(environment, level)
					log.Info().Msg("zerolog initialised")

					pool, err := pgxpool.Connect(ctx, connString(c))
					if err != nil {
						return terror.Error(err, "connect to database")
					}
					defer pool.Close()

					a := api.NewAPI(
						log,
						pool,
						&db.ProductStore{Conn: pool},
						&db.BlobStore{Conn: pool},
						c.String("api_addr"),
						c.String("frontend_host_url"),
						bluemonday.UGCPolicy(),
					)

					g := &run.Group{}
					g.Add(func() error {
						return a.Run(ctx)
					}, func(err error) {
						cancel()
					})
					g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))

					err = g.Run()
					var sigErr run.SignalError
					if errors.As(err, &sigErr) {
						log.Info().Msgf("received %s, shutting down", sigErr.Signal)
						return nil
					}
					return err
				},
			},
			{
				Name:  "db",
				Usage: "run database migrations and seeding",
				Flags: append(dbFlags(),
					&cli.BoolFlag{Name: "migrate", Value: true, Usage: "bring the schema up to date"},
					&cli.BoolFlag{Name: "seed", Value: false, Usage: "seed sample products"},
					&cli.StringFlag{Name: "environment", Value: "development", EnvVars: []string{envPrefix + "_ENVIRONMENT", "ENVIRONMENT"}},
					&cli.StringFlag{Name: "log_level", Value: "InfoLevel", EnvVars: []string{envPrefix + "_LOG_LEVEL"}},
				),
				Action: func(c *cli.Context) error {
					catlog.New(c.String("environment"), c.String("log_level"))

					if c.Bool("migrate") {
						err := db.Migrate(connString(c))
						if err != nil {
							return terror.Error(err)
						}
						catlog.L.Info().Msg("migrations complete")
					}

					if c.Bool("seed") {
						pool, err := pgxpool.Connect(c.Context, connString(c))
						if err != nil {
							return terror.Error(err, "connect to database")
						}
						defer pool.Close()

						seeder := seed.New(pool)
						err = seeder.Run(c.Context)
						if err != nil {
							return terror.Error(err)
						}
						catlog.L.Info().Msg("seeding complete")
					}

					return nil
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		terror.Echo(err)
		os.Exit(1)
	}
}

func dbFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "database_user", Value: "catalog", EnvVars: []string{envPrefix + "_DATABASE_USER", "DATABASE_USER"}, Usage: "The database user"},
		&cli.StringFlag{Name: "database_pass", Value: "dev", EnvVars: []string{envPrefix + "_DATABASE_PASS", "DATABASE_PASS"}, Usage: "The database pass"},
		&cli.StringFlag{Name: "database_host", Value: "localhost", EnvVars: []string{envPrefix + "_DATABASE_HOST", "DATABASE_HOST"}, Usage: "The database host"},
		&cli.StringFlag{Name: "database_port", Value: "5432", EnvVars: []string{envPrefix + "_DATABASE_PORT", "DATABASE_PORT"}, Usage: "The database port"},
		&cli.StringFlag{Name: "database_name", Value: "catalog", EnvVars: []string{envPrefix + "_DATABASE_NAME", "DATABASE_NAME"}, Usage: "The database name"},
		&cli.StringFlag{Name: "database_sslmode", Value: "disable", EnvVars: []string{envPrefix + "_DATABASE_SSLMODE", "DATABASE_SSLMODE"}, Usage: "The database sslmode"},
		&cli.StringFlag{Name: "database_application_name", Value: "catalog-api", EnvVars: []string{envPrefix + "_DATABASE_APPLICATION_NAME"}, Usage: "Postgres application name"},
	}
}

func connString(c *cli.Context) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=%s",
		url.QueryEscape(c.String("database_user")),
		url.QueryEscape(c.String("database_pass")),
		c.String("database_host"),
		c.String("database_port"),
		url.QueryEscape(c.String("database_name")),
		c.String("database_sslmode"),
		url.QueryEscape(c.String("database_application_name")),
	)
}
