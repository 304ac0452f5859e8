package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"agricare/app/advisor"
	"agricare/app/config"
	"agricare/app/repositories"
	mongostore "agricare/app/repositories/mongo"
	"agricare/app/routes"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("agricare version %s\n", cliVersion)
	case "serve":
		serve()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: agricare <command>
Commands:
  help       Display this help message.
  version    Show version information.
  serve      Run the AgriCare web service.

Configuration is read from the environment (or a .env file):
  ADDR         Listen address (default :8080)
  STORAGE      badger or mongo (default badger)
  DB_PATH      Badger data directory (default agricare.db)
  MONGO_URI    MongoDB connection string (required when STORAGE=mongo)
  DB_NAME      MongoDB database name (default agricare)
  JWT_SECRET   Token signing secret (required)
  ADVISOR_URL  Farm-advisor service base URL (default http://127.0.0.1:5000)
`
	fmt.Println(helpText)
}

func serve() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	router := routes.SetupRoutes(routes.Deps{
		Store:     store,
		JWTSecret: []byte(cfg.JWTSecret),
		Advisor:   advisor.NewClient(cfg.AdvisorURL),
	})

	if err := routes.StartServer(cfg.Addr, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func openStore(cfg *config.Config) (repositories.Store, error) {
	switch cfg.Storage {
	case config.StorageMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Printf("Connecting to MongoDB database %q", cfg.DBName)
		return mongostore.Open(ctx, cfg.MongoURI, cfg.DBName)
	default:
		log.Printf("Opening Badger DB at %s", cfg.DBPath)
		return repositories.OpenBadger(cfg.DBPath)
	}
}
