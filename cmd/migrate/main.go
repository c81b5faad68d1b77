package main

import (
	"flag" // Command-line flags

	"cryptomarket/internal/config" // Custom import path (Config)
	"cryptomarket/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	seed := flag.Bool("seed", false, "insert the starter users after migrating")
	flag.Parse()

	cfg := config.LoadConfig() // Load configuration

	db.Migrate(cfg.DSN())
	if *seed {
		db.Seed(cfg.DSN())
	}
}
