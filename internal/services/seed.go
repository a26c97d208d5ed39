package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"

	"congestion-pricing-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Fixture is a YAML document of records to load into an empty database.
type Fixture struct {
	Users           []models.User           `yaml:"users"`
	Cameras         []models.Camera         `yaml:"cameras"`
	CurrentSettings []models.CurrentSetting `yaml:"currentSettings"`
	FutureSettings  []models.FutureSetting  `yaml:"futureSettings"`
	Detections      []DetectionFixture      `yaml:"detections"`
	Congestion      []models.Congestion     `yaml:"congestion"`

	// BaseDir resolves relative imageFile paths.
	BaseDir string `yaml:"-"`
}

// DetectionFixture is a detection whose image may come from a local file
// copied into image storage at seed time.
type DetectionFixture struct {
	models.DetectedLicensePlate `yaml:",inline"`

	ImageFile string `yaml:"imageFile"`
}

func LoadFixture(path string) (Fixture, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, err
	}
	var fixture Fixture
	if err := yaml.Unmarshal(content, &fixture); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	fixture.BaseDir = filepath.Dir(path)
	return fixture, nil
}

type SeedOptions struct {
	ImageStoragePath string
	Workers          int
	// CheckSettingRefs rejects detections whose setting row does not exist.
	CheckSettingRefs bool
}

type SeedReport struct {
	Users           int
	Cameras         int
	CurrentSettings int
	FutureSettings  int
	Detections      int
	Congestion      int
	Warnings        []string
}

// Seed inserts the fixture. Users, cameras and settings go in first and in
// order, since detections reference them; detections and congestion rows
// are then written concurrently by up to opts.Workers goroutines. Plaintext
// fixture passwords are hashed before storage.
func Seed(ctx context.Context, db *sqlx.DB, fixture Fixture, opts SeedOptions) (SeedReport, error) {
	report := SeedReport{}
	for i := range fixture.Users {
		u := fixture.Users[i]
		if u.Password != "" && !IsPasswordHash(u.Password) {
			hashed, err := HashPassword(u.Password)
			if err != nil {
				return report, WrapError(err, "hash password for "+u.Username)
			}
			u.Password = hashed
		}
		if err := CreateUser(ctx, db, &u); err != nil {
			return report, fmt.Errorf("user %d: %w", i, err)
		}
		report.Users++
	}
	for i, c := range fixture.Cameras {
		if err := CreateCamera(ctx, db, c); err != nil {
			return report, fmt.Errorf("camera %d: %w", i, err)
		}
		report.Cameras++
	}
	for i := range fixture.CurrentSettings {
		if err := CreateCurrentSetting(ctx, db, &fixture.CurrentSettings[i]); err != nil {
			return report, fmt.Errorf("current setting %d: %w", i, err)
		}
		report.CurrentSettings++
	}
	for i := range fixture.FutureSettings {
		if err := CreateFutureSetting(ctx, db, &fixture.FutureSettings[i]); err != nil {
			return report, fmt.Errorf("future setting %d: %w", i, err)
		}
		report.FutureSettings++
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	var detections, congestion atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range fixture.Detections {
		i := i
		item := fixture.Detections[i]
		g.Go(func() error {
			d := item.DetectedLicensePlate
			if item.ImageFile != "" {
				src := item.ImageFile
				if !filepath.IsAbs(src) {
					src = filepath.Join(fixture.BaseDir, src)
				}
				ref, err := ImportImageFile(opts.ImageStoragePath, src)
				if err != nil {
					return fmt.Errorf("detection %d image: %w", i, err)
				}
				d.Image = ref
			}
			create := CreateDetection
			if opts.CheckSettingRefs {
				create = CreateDetectionChecked
			}
			if err := create(gctx, db, &d); err != nil {
				return fmt.Errorf("detection %d: %w", i, err)
			}
			detections.Add(1)
			return nil
		})
	}
	for i := range fixture.Congestion {
		i := i
		c := fixture.Congestion[i]
		g.Go(func() error {
			if err := RecordCongestion(gctx, db, &c); err != nil {
				return fmt.Errorf("congestion %d: %w", i, err)
			}
			congestion.Add(1)
			return nil
		})
	}
	err := g.Wait()
	report.Detections = int(detections.Load())
	report.Congestion = int(congestion.Load())
	if err != nil {
		return report, err
	}

	if err := ResetSequences(ctx, db); err != nil {
		return report, err
	}
	report.Warnings, err = Check(ctx, db)
	for _, warning := range report.Warnings {
		log.Printf("seed: %s", warning)
	}
	return report, err
}

// Check describes data the schema accepts but the domain does not
// intend: overlapping current settings, detections pointing at missing
// settings and congestion ratios outside [0, 1].
func Check(ctx context.Context, db *sqlx.DB) ([]string, error) {
	warnings := []string{}
	overlaps, err := FindOverlappingSettings(ctx, db)
	if err != nil {
		return nil, err
	}
	for _, o := range overlaps {
		warnings = append(warnings, fmt.Sprintf("current settings %d and %d overlap on %s", o.First.ID, o.Second.ID, o.First.Day))
	}
	dangling, err := DanglingSettingRefs(ctx, db)
	if err != nil {
		return nil, err
	}
	for _, d := range dangling {
		warnings = append(warnings, fmt.Sprintf("detection %d references missing setting %s", d.ID, d.SettingRef))
	}
	outOfRange, err := CongestionOutOfRange(ctx, db)
	if err != nil {
		return nil, err
	}
	for _, c := range outOfRange {
		warnings = append(warnings, fmt.Sprintf("congestion %d at %s has ratio %g outside [0, 1]", c.ID, c.Location, c.Congestion))
	}
	return warnings, nil
}
