package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/bauxite/backend/internal/infrastructure/config"
	"github.com/bauxite/backend/internal/infrastructure/logger"
	"github.com/bauxite/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
)

const usage = `Usage: migrate <command> [arguments]

Commands:
  up                  apply all pending migrations
  down                roll back all migrations
  steps <n>           apply n migrations (negative rolls back)
  goto <version>      migrate to a specific version
  version             print the current migration version
  force <version>     set the version without running migrations
  drop                drop everything in the database
  create <name>       scaffold a new migration file pair

Flags:
  -path               migrations directory (default "migrations")
`

func main() {
	path := flag.String("path", "migrations", "migrations directory")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	command := args[0]

	// create only touches the filesystem, no database needed
	if command == "create" {
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "create requires a migration name")
			os.Exit(2)
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		mf, err := migration.CreateMigration(*path, args[1], description)
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created",
			zap.String("up", mf.UpPath),
			zap.String("down", mf.DownPath))
		return
	}

	migrator, err := migration.NewFromURL(cfg.Database.DSN(), *path, log)
	if err != nil {
		log.Fatal("Failed to initialize migrator", zap.Error(err))
	}
	defer migrator.Close()

	switch command {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	case "steps":
		n, convErr := intArg(args, 1, "steps requires a step count")
		if convErr != nil {
			log.Fatal("Invalid argument", zap.Error(convErr))
		}
		err = migrator.Steps(n)
	case "goto":
		v, convErr := intArg(args, 1, "goto requires a target version")
		if convErr != nil {
			log.Fatal("Invalid argument", zap.Error(convErr))
		}
		err = migrator.GoTo(uint(v))
	case "version":
		version, dirty, verErr := migrator.Version()
		if verErr != nil {
			log.Fatal("Failed to read version", zap.Error(verErr))
		}
		log.Info("Current version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	case "force":
		v, convErr := intArg(args, 1, "force requires a version")
		if convErr != nil {
			log.Fatal("Invalid argument", zap.Error(convErr))
		}
		err = migrator.Force(v)
	case "drop":
		err = migrator.Drop()
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal("Migration failed", zap.String("command", command), zap.Error(err))
	}
}

func intArg(args []string, index int, missing string) (int, error) {
	if len(args) <= index {
		return 0, fmt.Errorf("%s", missing)
	}
	n, err := strconv.Atoi(args[index])
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", args[index])
	}
	return n, nil
}
