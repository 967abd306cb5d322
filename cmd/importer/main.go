package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/healthdash/internal/config"
	"github.com/2beens/healthdash/internal/db"
	"github.com/2beens/healthdash/internal/docstore"
	"github.com/2beens/healthdash/internal/logging"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// importer loads a JSON export of the document store into Postgres.
func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	envFile := flag.String("envfile", ".env", "optional dotenv file with secrets")
	inputPath := flag.String("input", "", "path of the JSON export")
	flag.Parse()

	_ = godotenv.Load(*envFile)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}
	logging.Setup(logging.LoggerSetupParams{
		LogToStdout: true,
		LogLevel:    cfg.LogLevel,
	})

	if *inputPath == "" {
		log.Fatalln("input not set, use -input")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	inputFile, err := os.Open(*inputPath)
	if err != nil {
		log.Fatalf("open input: %s", err)
	}
	defer inputFile.Close()

	collections, err := parseExport(inputFile)
	if err != nil {
		log.Fatalf("parse input: %s", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("location: %s", err)
	}
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBPassword: os.Getenv("POSTGRES_PASS"),
		Location:   loc,
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	if err := db.EnsureSchema(ctx, dbPool); err != nil {
		log.Fatalf("ensure schema: %s", err)
	}

	imported, err := importAll(ctx, docstore.NewPsqlStore(dbPool), collections)
	if err != nil {
		log.Fatalf("import stopped after %d documents: %s", imported, err)
	}
	log.Infof("imported %d documents into %d collections", imported, len(collections))
}

type documentPutter interface {
	Put(ctx context.Context, collection string, doc docstore.Document) (*docstore.Document, error)
}

func importAll(ctx context.Context, store documentPutter, collections []collectionDocs) (int, error) {
	imported := 0
	for _, c := range collections {
		for _, doc := range c.Docs {
			if err := ctx.Err(); err != nil {
				return imported, err
			}
			if _, err := store.Put(ctx, c.Collection, doc); err != nil {
				return imported, err
			}
			imported++
		}
		log.Debugf("collection [%s]: %d documents", c.Collection, len(c.Docs))
	}
	return imported, nil
}
