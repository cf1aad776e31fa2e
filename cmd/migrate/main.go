package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shopline/backend/internal/domain/cart"
	"github.com/shopline/backend/internal/domain/catalog"
	"github.com/shopline/backend/internal/domain/identity"
	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/domain/review"
	"github.com/shopline/backend/internal/infrastructure/config"
	"github.com/shopline/backend/internal/infrastructure/logger"
	"github.com/shopline/backend/internal/infrastructure/persistence"
)

// models lists every persisted aggregate, in dependency order
func models() []any {
	return []any{
		&identity.User{},
		&identity.Session{},
		&identity.Address{},
		&identity.PasswordReset{},
		&catalog.Category{},
		&catalog.Brand{},
		&catalog.Product{},
		&catalog.Banner{},
		&cart.Cart{},
		&cart.CartItem{},
		&order.Order{},
		&order.OrderItem{},
		&order.Payment{},
		&review.Review{},
	}
}

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(logLevel))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	switch command {
	case "up":
		log.Info("Applying schema migrations", zap.Int("models", len(models())))
		if err := db.DB.AutoMigrate(models()...); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		log.Info("Schema is up to date")

	case "status":
		migrator := db.DB.Migrator()
		for _, model := range models() {
			stmt := &gorm.Statement{DB: db.DB}
			if err := stmt.Parse(model); err != nil {
				log.Fatal("Failed to parse model", zap.Error(err))
			}
			state := "missing"
			if migrator.HasTable(model) {
				state = "present"
			}
			log.Info("Table status",
				zap.String("table", stmt.Schema.Table),
				zap.String("state", state),
			)
		}

	case "drop":
		confirm := false
		for _, arg := range args[1:] {
			if arg == "-confirm" || arg == "--confirm" {
				confirm = true
				break
			}
		}
		if !confirm {
			log.Fatal("Drop cancelled. Use 'migrate drop -confirm' to confirm.")
		}
		log.Warn("Dropping all application tables")
		migrator := db.DB.Migrator()
		// Reverse order so dependent tables go first
		ms := models()
		for i := len(ms) - 1; i >= 0; i-- {
			if err := migrator.DropTable(ms[i]); err != nil {
				log.Fatal("Drop failed", zap.Error(err))
			}
		}
		log.Info("All tables dropped")

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Shop Database Migration Tool

Usage:
  migrate [flags] <command>

Commands:
  up              Create or update all application tables
  status          Show which tables exist
  drop -confirm   Drop all application tables (DANGEROUS)

Flags:
  -log-level string   Log level: debug, info, warn, error (default: info)

Configuration comes from config.toml and SHOP_-prefixed environment
variables, the same sources the server uses.

Examples:
  # Bring the schema up to date
  migrate up

  # Inspect the current state
  migrate status`)
}
