package services

import (
	"context"

	"congestion-pricing-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

const userColumns = `"id", "email", "username", "firstName", "lastName", "isAdmin",
  "canChangeDetect", "canChangePrice", "canEditHours", "canDownload", "password"`

// CreateUser inserts u. A zero u.ID lets the database assign one; the
// assigned id is written back to u. The password is stored as given.
func CreateUser(ctx context.Context, db *sqlx.DB, u *models.User) error {
	if err := u.Validate(); err != nil {
		return errValidation(err)
	}
	args := []interface{}{u.Email, u.Username, u.FirstName, u.LastName, u.IsAdmin,
		u.CanChangeDetect, u.CanChangePrice, u.CanEditHours, u.CanDownload, u.Password}
	query := `
INSERT INTO "user" ("email", "username", "firstName", "lastName", "isAdmin",
  "canChangeDetect", "canChangePrice", "canEditHours", "canDownload", "password")
VALUES (?,?,?,?,?,?,?,?,?,?)
RETURNING "id"`
	if u.ID != 0 {
		query = `
INSERT INTO "user" (` + userColumns + `)
VALUES (?,?,?,?,?,?,?,?,?,?,?)
RETURNING "id"`
		args = append([]interface{}{u.ID}, args...)
	}
	return classify(db.GetContext(ctx, &u.ID, db.Rebind(query), args...), "create user")
}

func GetUser(ctx context.Context, db *sqlx.DB, id int64) (models.User, error) {
	var u models.User
	err := db.GetContext(ctx, &u, db.Rebind(`SELECT `+userColumns+` FROM "user" WHERE "id" = ?`), id)
	return u, classify(err, "get user")
}

func UpdateUser(ctx context.Context, db *sqlx.DB, u models.User) error {
	if err := u.Validate(); err != nil {
		return errValidation(err)
	}
	res, err := db.ExecContext(ctx, db.Rebind(`
UPDATE "user"
SET "email" = ?, "username" = ?, "firstName" = ?, "lastName" = ?, "isAdmin" = ?,
  "canChangeDetect" = ?, "canChangePrice" = ?, "canEditHours" = ?, "canDownload" = ?, "password" = ?
WHERE "id" = ?
`), u.Email, u.Username, u.FirstName, u.LastName, u.IsAdmin,
		u.CanChangeDetect, u.CanChangePrice, u.CanEditHours, u.CanDownload, u.Password, u.ID)
	return affectedOne(res, err, "update user")
}

// DeleteUser fails with a reference error while detections point at the user.
func DeleteUser(ctx context.Context, db *sqlx.DB, id int64) error {
	res, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM "user" WHERE "id" = ?`), id)
	return affectedOne(res, err, "delete user")
}

func ListUsers(ctx context.Context, db *sqlx.DB) ([]models.User, error) {
	users := []models.User{}
	err := db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM "user" ORDER BY "id"`)
	return users, classify(err, "list users")
}
