package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"congestion-pricing-backend-go/internal/config"
	"congestion-pricing-backend-go/internal/db"
	"congestion-pricing-backend-go/internal/migrations"
	"congestion-pricing-backend-go/internal/services"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
)

const usage = `usage: congestiondb <command> [args]

commands:
  migrate              create or update the schema
  seed <fixture.yaml>  load users, cameras, settings, detections and congestion
  show <table> <id>    print one record (user, camera, detection, current, future, congestion)
  check                report overlapping settings, missing setting references
                       and out-of-range congestion
`

func main() {
	os.Exit(realMain())
}

func realMain() int {
	_ = godotenv.Load()
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}
	cfg := config.Load()

	logFile, err := openLog(cfg.LogDir, cfg.LogRetentionDays, time.Now())
	if err != nil {
		log.Printf("log file: %v", err)
	} else {
		defer logFile.Close()
	}

	database, err := db.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Printf("db: %v", err)
		return 1
	}
	defer database.Close()
	if err := migrations.Apply(database); err != nil {
		log.Printf("migrations: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := run(ctx, database, cfg, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		log.Printf("%s: %v", os.Args[1], err)
		return 1
	}
	return 0
}

func run(ctx context.Context, database *sqlx.DB, cfg config.Config, cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "migrate":
		names, err := migrations.Applied(database)
		if err != nil {
			return err
		}
		log.Printf("schema up to date (%s)", strings.Join(names, ", "))
		return nil
	case "seed":
		if len(args) != 1 {
			return fmt.Errorf("seed takes one fixture path")
		}
		fixture, err := services.LoadFixture(args[0])
		if err != nil {
			return err
		}
		started := time.Now()
		report, err := services.Seed(ctx, database, fixture, services.SeedOptions{
			ImageStoragePath: cfg.ImageStoragePath,
			Workers:          cfg.SeedWorkers,
		})
		log.Printf("seeded %d users, %d cameras, %d current and %d future settings, %d detections, %d congestion rows in %s",
			report.Users, report.Cameras, report.CurrentSettings, report.FutureSettings,
			report.Detections, report.Congestion, time.Since(started).Round(time.Millisecond))
		return err
	case "show":
		if len(args) != 2 {
			return fmt.Errorf("show takes a table and an id")
		}
		record, err := lookup(ctx, database, args[0], args[1])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, record)
		return err
	case "check":
		warnings, err := services.Check(ctx, database)
		if err != nil {
			return err
		}
		for _, warning := range warnings {
			fmt.Fprintln(out, warning)
		}
		log.Printf("check found %d issue(s)", len(warnings))
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

func lookup(ctx context.Context, database *sqlx.DB, table, rawID string) (fmt.Stringer, error) {
	if table == "camera" {
		return services.GetCamera(ctx, database, rawID)
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q", rawID)
	}
	switch table {
	case "user":
		return services.GetUser(ctx, database, id)
	case "detection":
		return services.GetDetection(ctx, database, id)
	case "current":
		return services.GetCurrentSetting(ctx, database, id)
	case "future":
		return services.GetFutureSetting(ctx, database, id)
	case "congestion":
		return services.GetCongestion(ctx, database, id)
	default:
		return nil, fmt.Errorf("unknown table %q", table)
	}
}

// openLog appends log output to dir/app-<date>.log as well as stderr and
// drops log files older than keepDays, counting today.
func openLog(dir string, keepDays int, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	name := filepath.Join(dir, "app-"+now.Format(time.DateOnly)+".log")
	file, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(io.MultiWriter(os.Stderr, file))
	pruneLogs(dir, keepDays, now)
	return file, nil
}

func pruneLogs(dir string, keepDays int, now time.Time) {
	if keepDays <= 0 {
		return
	}
	matches, err := filepath.Glob(filepath.Join(dir, "app-*.log"))
	if err != nil {
		return
	}
	oldest := now.AddDate(0, 0, -(keepDays - 1)).Format(time.DateOnly)
	for _, match := range matches {
		date := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(match), "app-"), ".log")
		if _, err := time.Parse(time.DateOnly, date); err != nil {
			continue
		}
		// ISO dates order lexically
		if date < oldest {
			_ = os.Remove(match)
		}
	}
}
