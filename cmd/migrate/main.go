// Command migrate runs schema operations for the Tech News database.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"technews/internal/config"
	"technews/internal/database"

	"gorm.io/gorm/schema"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <auto|status>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: false})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "auto":
		if err := database.Sync(db); err != nil {
			return fmt.Errorf("schema sync failed: %w", err)
		}
		log.Println("Schema is up to date")
		return nil
	case "status":
		for _, model := range database.PersistentModels() {
			name := "?"
			if tabler, ok := model.(schema.Tabler); ok {
				name = tabler.TableName()
			}
			state := "missing"
			if db.Migrator().HasTable(model) {
				state = "present"
			}
			log.Printf("table %-8s %s", name, state)
		}
		return nil
	default:
		return usage()
	}
}
