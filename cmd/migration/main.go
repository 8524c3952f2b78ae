// Command migration applies the SQL files under db/migrations to DB_URL.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/riskibarqy/odds-pipeline/internal/config"
	"github.com/riskibarqy/odds-pipeline/internal/platform/logging"
)

var logger = logging.NewJSON(logging.LevelInfo).Named("migration")

var errUsage = errors.New("usage")

type command func(m *migrate.Migrate, args []string) error

var commands = map[string]command{
	"up": func(m *migrate.Migrate, _ []string) error {
		return ignoreNoChange(m.Up())
	},
	"down": func(m *migrate.Migrate, args []string) error {
		steps, err := parseSteps(args)
		if err != nil {
			return err
		}
		return ignoreNoChange(m.Steps(-steps))
	},
	"version": func(m *migrate.Migrate, _ []string) error {
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("version: none\ndirty: false")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Printf("version: %d\ndirty: %t\n", version, dirty)
		return nil
	},
	"force": func(m *migrate.Migrate, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("%w: force <version>", errUsage)
		}
		version, err := parseVersion(args[0])
		if err != nil {
			return err
		}
		return m.Force(version)
	},
	"goto": func(m *migrate.Migrate, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("%w: goto <version>", errUsage)
		}
		target, err := parseTarget(args[0])
		if err != nil {
			return err
		}
		return ignoreNoChange(m.Migrate(target))
	},
}

func main() {
	err := run(os.Args[1:])
	if errors.Is(err, errUsage) {
		printUsage(err)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("migration failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	name := strings.ToLower(strings.TrimSpace(args[0]))
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if strings.TrimSpace(cfg.DBURL) == "" {
		return errors.New("DB_URL is required")
	}
	dir, err := migrationsDir()
	if err != nil {
		return err
	}

	source := "file://" + filepath.ToSlash(dir)
	m, err := migrate.New(source, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			logger.Warn("close migrator", "error", err)
		}
	}()

	if err := cmd(m, args[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	logger.Info("migration command finished", "command", name, "source", source)
	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, errors.New("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if v < 0 {
		return 0, errors.New("version must be >= 0")
	}
	return v, nil
}

func parseTarget(raw string) (uint, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(v), nil
}

// migrationsDir picks MIGRATIONS_DIR, then ./db/migrations, then the path
// used inside the container image.
func migrationsDir() (string, error) {
	for _, candidate := range []string{os.Getenv("MIGRATIONS_DIR"), "./db/migrations", "/app/db/migrations"} {
		if candidate = strings.TrimSpace(candidate); candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", errors.New("migration directory not found (checked MIGRATIONS_DIR, ./db/migrations, /app/db/migrations)")
}

func printUsage(err error) {
	name := filepath.Base(os.Args[0])
	if msg := strings.TrimPrefix(err.Error(), errUsage.Error()); msg != "" {
		fmt.Fprintln(os.Stderr, strings.TrimPrefix(msg, ": "))
	}
	fmt.Fprintf(os.Stderr, "usage: %s <up|down [n]|version|force <v>|goto <v>>\n", name)
}
