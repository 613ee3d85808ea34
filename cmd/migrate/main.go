// migrate aplica o revierte el esquema SQL (categories, products).
//
// Uso: go run ./cmd/migrate [-path dir] up|down|steps N|version|force N
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/catalog-admin-api/internal/infrastructure/migration"
	"github.com/jhoicas/catalog-admin-api/pkg/config"
	"github.com/jhoicas/catalog-admin-api/pkg/logger"
)

func main() {
	var migrationsPath string
	flag.StringVar(&migrationsPath, "path", "", "directorio de migraciones (por defecto DB_MIGRATIONS_PATH)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if migrationsPath == "" {
		migrationsPath = cfg.DB.MigrationsPath
	}

	m, err := migration.New(cfg.DB.ConnectionString(), migrationsPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migrator")
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar migrator")
		}
	}()

	switch args[0] {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		n, convErr := intArg(args)
		if convErr != nil {
			log.Fatal().Err(convErr).Msg("steps requiere N")
		}
		err = m.Steps(n)
	case "force":
		n, convErr := intArg(args)
		if convErr != nil {
			log.Fatal().Err(convErr).Msg("force requiere N")
		}
		err = m.Force(n)
	case "version":
		var version uint
		var dirty bool
		version, dirty, err = m.Version()
		if err == nil {
			fmt.Printf("version=%d dirty=%t\n", version, dirty)
		}
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Error().Err(err).Str("command", args[0]).Msg("migración fallida")
		os.Exit(1)
	}
}

func intArg(args []string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("falta argumento")
	}
	return strconv.Atoi(args[1])
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "uso: migrate [-path dir] up|down|steps N|version|force N")
}
