package services

import (
	"context"

	"congestion-pricing-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

const cameraColumns = `"id", "name", "location", "originCoords", "destCoords"`

func CreateCamera(ctx context.Context, db *sqlx.DB, c models.Camera) error {
	if err := c.Validate(); err != nil {
		return errValidation(err)
	}
	_, err := db.ExecContext(ctx, db.Rebind(`
INSERT INTO "camera" (`+cameraColumns+`)
VALUES (?,?,?,?,?)
`), c.ID, c.Name, c.Location, c.OriginCoords, c.DestCoords)
	return classify(err, "create camera")
}

func GetCamera(ctx context.Context, db *sqlx.DB, id string) (models.Camera, error) {
	var c models.Camera
	err := db.GetContext(ctx, &c, db.Rebind(`SELECT `+cameraColumns+` FROM "camera" WHERE "id" = ?`), id)
	return c, classify(err, "get camera")
}

func UpdateCamera(ctx context.Context, db *sqlx.DB, c models.Camera) error {
	if err := c.Validate(); err != nil {
		return errValidation(err)
	}
	res, err := db.ExecContext(ctx, db.Rebind(`
UPDATE "camera"
SET "name" = ?, "location" = ?, "originCoords" = ?, "destCoords" = ?
WHERE "id" = ?
`), c.Name, c.Location, c.OriginCoords, c.DestCoords, c.ID)
	return affectedOne(res, err, "update camera")
}

func DeleteCamera(ctx context.Context, db *sqlx.DB, id string) error {
	res, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM "camera" WHERE "id" = ?`), id)
	return affectedOne(res, err, "delete camera")
}

func ListCameras(ctx context.Context, db *sqlx.DB) ([]models.Camera, error) {
	cameras := []models.Camera{}
	err := db.SelectContext(ctx, &cameras, `SELECT `+cameraColumns+` FROM "camera" ORDER BY "id"`)
	return cameras, classify(err, "list cameras")
}

// CamerasAtLocation returns the cameras whose location label equals location.
func CamerasAtLocation(ctx context.Context, db *sqlx.DB, location string) ([]models.Camera, error) {
	cameras := []models.Camera{}
	err := db.SelectContext(ctx, &cameras, db.Rebind(`
SELECT `+cameraColumns+` FROM "camera" WHERE "location" = ? ORDER BY "id"
`), location)
	return cameras, classify(err, "cameras at location")
}
