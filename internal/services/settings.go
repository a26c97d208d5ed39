package services

import (
	"context"

	"congestion-pricing-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

const ruleColumns = `"hourFrom", "hourTo", "day", "detectCar", "detectMotorcycle", "detectBus", "detectTruck",
  "carPrice", "motorcyclePrice", "busPrice", "truckPrice"`

const ruleAssignments = `"hourFrom" = ?, "hourTo" = ?, "day" = ?, "detectCar" = ?, "detectMotorcycle" = ?,
  "detectBus" = ?, "detectTruck" = ?, "carPrice" = ?, "motorcyclePrice" = ?, "busPrice" = ?, "truckPrice" = ?`

func ruleArgs(r models.Rules) []interface{} {
	return []interface{}{r.HourFrom, r.HourTo, r.Day, r.DetectCar, r.DetectMotorcycle, r.DetectBus, r.DetectTruck,
		r.CarPrice, r.MotorcyclePrice, r.BusPrice, r.TruckPrice}
}

// CreateCurrentSetting inserts s, honoring a non-zero s.ID, and writes the
// stored id back.
func CreateCurrentSetting(ctx context.Context, db *sqlx.DB, s *models.CurrentSetting) error {
	if err := s.Validate(); err != nil {
		return errValidation(err)
	}
	args := ruleArgs(s.Rules)
	query := `INSERT INTO "current_setting" (` + ruleColumns + `) VALUES (?,?,?,?,?,?,?,?,?,?,?) RETURNING "id"`
	if s.ID != 0 {
		query = `INSERT INTO "current_setting" ("id", ` + ruleColumns + `) VALUES (?,?,?,?,?,?,?,?,?,?,?,?) RETURNING "id"`
		args = append([]interface{}{s.ID}, args...)
	}
	return classify(db.GetContext(ctx, &s.ID, db.Rebind(query), args...), "create current setting")
}

func GetCurrentSetting(ctx context.Context, db *sqlx.DB, id int64) (models.CurrentSetting, error) {
	var s models.CurrentSetting
	err := db.GetContext(ctx, &s, db.Rebind(`SELECT "id", `+ruleColumns+` FROM "current_setting" WHERE "id" = ?`), id)
	return s, classify(err, "get current setting")
}

func UpdateCurrentSetting(ctx context.Context, db *sqlx.DB, s models.CurrentSetting) error {
	if err := s.Validate(); err != nil {
		return errValidation(err)
	}
	args := append(ruleArgs(s.Rules), s.ID)
	res, err := db.ExecContext(ctx, db.Rebind(`UPDATE "current_setting" SET `+ruleAssignments+` WHERE "id" = ?`), args...)
	return affectedOne(res, err, "update current setting")
}

// DeleteCurrentSetting does not touch detections priced under the setting;
// their settingId is a soft reference.
func DeleteCurrentSetting(ctx context.Context, db *sqlx.DB, id int64) error {
	res, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM "current_setting" WHERE "id" = ?`), id)
	return affectedOne(res, err, "delete current setting")
}

func ListCurrentSettings(ctx context.Context, db *sqlx.DB) ([]models.CurrentSetting, error) {
	settings := []models.CurrentSetting{}
	err := db.SelectContext(ctx, &settings, `SELECT "id", `+ruleColumns+` FROM "current_setting" ORDER BY "id"`)
	return settings, classify(err, "list current settings")
}

func CreateFutureSetting(ctx context.Context, db *sqlx.DB, s *models.FutureSetting) error {
	if err := s.Validate(); err != nil {
		return errValidation(err)
	}
	args := append(ruleArgs(s.Rules), s.StartDate, s.StartTime)
	query := `INSERT INTO "future_setting" (` + ruleColumns + `, "startDate", "startTime")
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?) RETURNING "id"`
	if s.ID != 0 {
		query = `INSERT INTO "future_setting" ("id", ` + ruleColumns + `, "startDate", "startTime")
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?) RETURNING "id"`
		args = append([]interface{}{s.ID}, args...)
	}
	return classify(db.GetContext(ctx, &s.ID, db.Rebind(query), args...), "create future setting")
}

func GetFutureSetting(ctx context.Context, db *sqlx.DB, id int64) (models.FutureSetting, error) {
	var s models.FutureSetting
	err := db.GetContext(ctx, &s, db.Rebind(`
SELECT "id", `+ruleColumns+`, "startDate", "startTime" FROM "future_setting" WHERE "id" = ?
`), id)
	return s, classify(err, "get future setting")
}

func UpdateFutureSetting(ctx context.Context, db *sqlx.DB, s models.FutureSetting) error {
	if err := s.Validate(); err != nil {
		return errValidation(err)
	}
	args := append(ruleArgs(s.Rules), s.StartDate, s.StartTime, s.ID)
	res, err := db.ExecContext(ctx, db.Rebind(`
UPDATE "future_setting" SET `+ruleAssignments+`, "startDate" = ?, "startTime" = ? WHERE "id" = ?
`), args...)
	return affectedOne(res, err, "update future setting")
}

func DeleteFutureSetting(ctx context.Context, db *sqlx.DB, id int64) error {
	res, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM "future_setting" WHERE "id" = ?`), id)
	return affectedOne(res, err, "delete future setting")
}

// ListFutureSettings orders settings by when they are scheduled to start.
func ListFutureSettings(ctx context.Context, db *sqlx.DB) ([]models.FutureSetting, error) {
	settings := []models.FutureSetting{}
	err := db.SelectContext(ctx, &settings, `
SELECT "id", `+ruleColumns+`, "startDate", "startTime" FROM "future_setting"
ORDER BY "startDate", "startTime", "id"
`)
	return settings, classify(err, "list future settings")
}

// ResolveSetting loads the rules a detection's settingId/settingKind
// points at.
func ResolveSetting(ctx context.Context, db queryer, ref models.SettingRef) (models.Rules, error) {
	if err := ref.Validate(); err != nil {
		return models.Rules{}, errValidation(err)
	}
	var rules models.Rules
	err := sqlx.GetContext(ctx, db, &rules, db.Rebind(`
SELECT `+ruleColumns+` FROM "`+ref.Table()+`" WHERE "id" = ?
`), ref.ID)
	return rules, classify(err, "resolve setting "+ref.String())
}

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	sqlx.QueryerContext
	Rebind(query string) string
}

// SettingOverlap is a pair of current settings whose windows intersect.
type SettingOverlap struct {
	First  models.CurrentSetting
	Second models.CurrentSetting
}

// FindOverlappingSettings reports current settings that apply to the same
// day with intersecting hours. The schema allows this; callers decide
// whether it is a problem.
func FindOverlappingSettings(ctx context.Context, db *sqlx.DB) ([]SettingOverlap, error) {
	settings, err := ListCurrentSettings(ctx, db)
	if err != nil {
		return nil, err
	}
	overlaps := []SettingOverlap{}
	for i := range settings {
		for j := i + 1; j < len(settings); j++ {
			if settings[i].Overlaps(settings[j].Rules) {
				overlaps = append(overlaps, SettingOverlap{First: settings[i], Second: settings[j]})
			}
		}
	}
	return overlaps, nil
}
