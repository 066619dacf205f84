package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"tradejournal/src/auth"
	"tradejournal/src/connectors"
	"tradejournal/src/database"
	"tradejournal/src/repository"
	"tradejournal/src/server"
	"tradejournal/src/service"
)

var Version string

func SetupLogger() {
	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))

	level, err := logger.ParseLevel(levelStr)
	if err != nil {
		level = logger.InfoLevel
	}

	logger.SetLevel(level)
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logger.SetFormatter(&logger.JSONFormatter{})
	} else {
		logger.SetFormatter(&logger.TextFormatter{
			FullTimestamp: true,
		})
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using process environment")
	}
	SetupLogger()

	app := cli.NewApp()
	app.Name = "tradejournal"
	app.Usage = "The trade journal command line interface"
	app.Version = Version

	app.Commands = []cli.Command{
		serveCMD,
		migrateCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	serveCMD = cli.Command{
		Name:        "serve",
		Usage:       "run the journal API server",
		Action:      serveAction,
		Description: `Connect to the store, run migrations, and serve the HTTP API`,
	}
	migrateCMD = cli.Command{
		Name:        "migrate",
		Usage:       "run schema migrations and exit",
		Action:      migrateAction,
		Description: `Apply the journal schema to the configured database`,
	}
)

func serveAction(_ *cli.Context) error {
	db, err := database.Connect(database.GetConfig())
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.WithError(err).Fatal("Failed to migrate database")
	}

	authConfig := auth.GetConfig()
	users := repository.NewUserRepository(db)
	if _, err := users.EnsureOwner(context.Background(), authConfig.OwnerUserID, authConfig.OwnerEmail); err != nil {
		logger.WithError(err).Fatal("Failed to seed owner user")
	}

	var symbols service.SymbolValidator
	connectorConfig := connectors.GetConfig()
	if connectorConfig.SymbolValidationEnabled {
		symbols = connectors.NewYahooSymbolValidator(connectorConfig)
	}

	trades := service.NewTradeService(repository.NewTradeRepository(db), symbols)
	router := server.NewRouter(trades, authConfig)

	server.StartServer(server.GetConfig().Port, router)
	return nil
}

func migrateAction(_ *cli.Context) error {
	db, err := database.Connect(database.GetConfig())
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	logger.Info("migrations applied")
	return nil
}
