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

	"github.com/riskibarqy/film-grading/internal/platform/dburl"
	"github.com/riskibarqy/film-grading/internal/platform/logging"
)

var errUsage = errors.New("usage")

func main() {
	logger := logging.NewJSON(logging.ParseLevel(os.Getenv("APP_LOG_LEVEL")), "film-grading-migration")
	defer func() { _ = logger.Sync() }()

	if err := run(os.Args[1:], logger); err != nil {
		if errors.Is(err, errUsage) {
			printUsage()
			os.Exit(2)
		}
		logger.Error("migration failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(args []string, logger *logging.Logger) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, err := parseCommand(args)
	if err != nil {
		return err
	}

	raw := strings.TrimSpace(os.Getenv("DB_URL"))
	if raw == "" {
		return fmt.Errorf("DB_URL is required")
	}
	disableBinary, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv("DB_DISABLE_PREPARED_BINARY_RESULT")))

	dir, err := resolveMigrationsDir()
	if err != nil {
		return fmt.Errorf("resolve migrations dir: %w", err)
	}
	sourceURL := "file://" + filepath.ToSlash(dir)

	m, err := migrate.New(sourceURL, dburl.Normalize(raw, disableBinary))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer closeMigrator(m, logger)

	return cmd.apply(m, logger.With("source", sourceURL, "db_name", dburl.Name(raw)))
}

// command is one parsed invocation of the migration tool.
type command struct {
	name   string
	steps  int
	target uint
	force  int
}

func parseCommand(args []string) (command, error) {
	cmd := command{name: strings.ToLower(strings.TrimSpace(args[0]))}
	rest := args[1:]

	switch cmd.name {
	case "up", "version":
		return cmd, nil
	case "down":
		cmd.steps = 1
		if len(rest) > 0 {
			steps, err := strconv.Atoi(strings.TrimSpace(rest[0]))
			if err != nil {
				return command{}, fmt.Errorf("invalid down steps %q: %w", rest[0], err)
			}
			if steps <= 0 {
				return command{}, fmt.Errorf("down steps must be > 0")
			}
			cmd.steps = steps
		}
		return cmd, nil
	case "force":
		if len(rest) == 0 {
			return command{}, fmt.Errorf("force requires a version argument")
		}
		v, err := strconv.Atoi(strings.TrimSpace(rest[0]))
		if err != nil || v < -1 {
			return command{}, fmt.Errorf("invalid force version %q", rest[0])
		}
		cmd.force = v
		return cmd, nil
	case "goto", "migrate":
		if len(rest) == 0 {
			return command{}, fmt.Errorf("goto requires a target version argument")
		}
		v, err := strconv.ParseUint(strings.TrimSpace(rest[0]), 10, 64)
		if err != nil {
			return command{}, fmt.Errorf("invalid target version %q: %w", rest[0], err)
		}
		cmd.name = "goto"
		cmd.target = uint(v)
		return cmd, nil
	default:
		return command{}, errUsage
	}
}

func (c command) apply(m *migrate.Migrate, logger *logging.Logger) error {
	switch c.name {
	case "up":
		return noChangeOK(m.Up(), logger, "migrations applied")
	case "down":
		return noChangeOK(m.Steps(-c.steps), logger, "migrations rolled back", "steps", c.steps)
	case "goto":
		return noChangeOK(m.Migrate(c.target), logger, "migrated", "target", c.target)
	case "force":
		if err := m.Force(c.force); err != nil {
			return fmt.Errorf("force version %d: %w", c.force, err)
		}
		logger.Info("forced migration version", "version", c.force)
		return nil
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			fmt.Println("dirty: false")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Printf("version: %d\ndirty: %t\n", version, dirty)
		return nil
	}
	return errUsage
}

func noChangeOK(err error, logger *logging.Logger, msg string, args ...any) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info(msg, args...)
	return nil
}

func closeMigrator(m *migrate.Migrate, logger *logging.Logger) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("close migration source", "error", srcErr)
	}
	if dbErr != nil {
		logger.Warn("close migration db", "error", dbErr)
	}
}

func resolveMigrationsDir() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		"./db/migrations",
		"/app/db/migrations",
	}
	for _, candidate := range candidates {
		if candidate == "" {
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
	return "", fmt.Errorf("no migrations directory (checked MIGRATIONS_DIR, ./db/migrations, /app/db/migrations)")
}

func printUsage() {
	bin := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down [n]|version|force <v>|goto <v>>\n", bin)
}
