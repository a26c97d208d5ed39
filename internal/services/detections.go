package services

import (
	"context"
	"strconv"
	"strings"

	"congestion-pricing-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

const detectionColumns = `"id", "userId", "settingId", "settingKind", "location", "licenseNumber",
  "vehicleType", "price", "date", "time", "image"`

// CreateDetection stores d without looking up its setting row; see
// CreateDetectionChecked and DanglingSettingRefs. An empty setting kind is
// stored as the column default and written back to d.
func CreateDetection(ctx context.Context, db *sqlx.DB, d *models.DetectedLicensePlate) error {
	if err := d.Validate(); err != nil {
		return errValidation(err)
	}
	d.SettingRef = d.SettingRef.Normalized()
	return classify(insertDetection(ctx, db, d), "create detection")
}

// CreateDetectionChecked stores d after checking, in the same transaction,
// that its setting reference names an existing row.
func CreateDetectionChecked(ctx context.Context, db *sqlx.DB, d *models.DetectedLicensePlate) error {
	if err := d.Validate(); err != nil {
		return errValidation(err)
	}
	d.SettingRef = d.SettingRef.Normalized()
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return WrapError(err, "create detection")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := ResolveSetting(ctx, tx, d.SettingRef); err != nil {
		if IsNotFound(err) {
			return ErrConflict(CodeReference, "create detection: setting "+d.SettingRef.String()+" does not exist", nil)
		}
		return err
	}
	if err := insertDetection(ctx, tx, d); err != nil {
		return classify(err, "create detection")
	}
	return WrapError(tx.Commit(), "create detection")
}

func insertDetection(ctx context.Context, q queryer, d *models.DetectedLicensePlate) error {
	args := []interface{}{d.UserID, d.SettingRef.ID, d.SettingRef.Kind, d.Location, d.LicenseNumber,
		d.VehicleType, d.Price, d.Date, d.Time, d.Image}
	query := `
INSERT INTO "detected_license_plate" ("userId", "settingId", "settingKind", "location", "licenseNumber",
  "vehicleType", "price", "date", "time", "image")
VALUES (?,?,?,?,?,?,?,?,?,?)
RETURNING "id"`
	if d.ID != 0 {
		query = `
INSERT INTO "detected_license_plate" (` + detectionColumns + `)
VALUES (?,?,?,?,?,?,?,?,?,?,?)
RETURNING "id"`
		args = append([]interface{}{d.ID}, args...)
	}
	return sqlx.GetContext(ctx, q, &d.ID, q.Rebind(query), args...)
}

func GetDetection(ctx context.Context, db *sqlx.DB, id int64) (models.DetectedLicensePlate, error) {
	var d models.DetectedLicensePlate
	err := db.GetContext(ctx, &d, db.Rebind(`
SELECT `+detectionColumns+` FROM "detected_license_plate" WHERE "id" = ?
`), id)
	return d, classify(err, "get detection")
}

func DeleteDetection(ctx context.Context, db *sqlx.DB, id int64) error {
	res, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM "detected_license_plate" WHERE "id" = ?`), id)
	return affectedOne(res, err, "delete detection")
}

// DetectionFilter narrows ListDetections. Zero fields do not filter; the
// date range is inclusive.
type DetectionFilter struct {
	UserID        int64
	Location      string
	LicenseNumber string
	From          models.Date
	To            models.Date
	Limit         int
}

func ListDetections(ctx context.Context, db *sqlx.DB, f DetectionFilter) ([]models.DetectedLicensePlate, error) {
	where := []string{}
	args := []interface{}{}
	if f.UserID != 0 {
		where = append(where, `"userId" = ?`)
		args = append(args, f.UserID)
	}
	if f.Location != "" {
		where = append(where, `"location" = ?`)
		args = append(args, f.Location)
	}
	if f.LicenseNumber != "" {
		where = append(where, `"licenseNumber" = ?`)
		args = append(args, f.LicenseNumber)
	}
	where, args = dateRange(where, args, f.From, f.To)
	query := `SELECT ` + detectionColumns + ` FROM "detected_license_plate"` + whereClause(where) +
		` ORDER BY "date", "time", "id"` + limitClause(f.Limit)
	detections := []models.DetectedLicensePlate{}
	err := db.SelectContext(ctx, &detections, db.Rebind(query), args...)
	return detections, classify(err, "list detections")
}

// DetectionsForCamera lists detections recorded at the camera's location.
func DetectionsForCamera(ctx context.Context, db *sqlx.DB, cameraID string) ([]models.DetectedLicensePlate, error) {
	camera, err := GetCamera(ctx, db, cameraID)
	if err != nil {
		return nil, err
	}
	return ListDetections(ctx, db, DetectionFilter{Location: camera.Location})
}

// DanglingSettingRefs lists detections whose setting reference names no
// existing row.
func DanglingSettingRefs(ctx context.Context, db *sqlx.DB) ([]models.DetectedLicensePlate, error) {
	detections := []models.DetectedLicensePlate{}
	err := db.SelectContext(ctx, &detections, `
SELECT `+detectionColumns+` FROM "detected_license_plate" d
WHERE NOT (
  (d."settingKind" = 'current' AND EXISTS (SELECT 1 FROM "current_setting" s WHERE s."id" = d."settingId"))
  OR (d."settingKind" = 'future' AND EXISTS (SELECT 1 FROM "future_setting" f WHERE f."id" = d."settingId"))
)
ORDER BY d."id"
`)
	return detections, classify(err, "dangling setting refs")
}

func dateRange(where []string, args []interface{}, from, to models.Date) ([]string, []interface{}) {
	if !from.IsZero() {
		where = append(where, `"date" >= ?`)
		args = append(args, from)
	}
	if !to.IsZero() {
		where = append(where, `"date" <= ?`)
		args = append(args, to)
	}
	return where, args
}

func whereClause(where []string) string {
	if len(where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(where, " AND ")
}

func limitClause(limit int) string {
	if limit <= 0 {
		return ""
	}
	if limit > 1000 {
		limit = 1000
	}
	return " LIMIT " + strconv.Itoa(limit)
}
