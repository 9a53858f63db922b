package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/cache"
	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/config"
	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/database"
	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/server"
	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/pkg/logger"
)

func main() {
	var seed bool
	flag.BoolVar(&seed, "seed", false, "Seed the department register and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}

	if seed {
		if err := database.SeedDepartments(db); err != nil {
			log.Fatal("Failed to seed departments", "error", err)
		}
		log.Info("Department register seeded successfully")
		return
	}

	if !cfg.MailConfigured() {
		log.Warn("SMTP credentials not configured; email delivery is disabled")
	}

	lookupCache := cache.New(cfg.CacheTTL)

	srv := server.New(cfg, db, lookupCache, log)

	log.Info("Starting Jansunwayi Portal backend",
		"host", cfg.Host,
		"port", cfg.Port,
		"notify_await", cfg.NotifyAwait,
	)

	if err := srv.Run(); err != nil {
		log.Fatal("Server failed to start", "error", err)
	}
}
