package services

import (
	"context"

	"congestion-pricing-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

const congestionColumns = `"id", "location", "congestion", "date", "time"`

// RecordCongestion stores a measurement. The ratio is not range checked;
// see CongestionOutOfRange.
func RecordCongestion(ctx context.Context, db *sqlx.DB, c *models.Congestion) error {
	if err := c.Validate(); err != nil {
		return errValidation(err)
	}
	args := []interface{}{c.Location, c.Congestion, c.Date, c.Time}
	query := `INSERT INTO "congestion" ("location", "congestion", "date", "time") VALUES (?,?,?,?) RETURNING "id"`
	if c.ID != 0 {
		query = `INSERT INTO "congestion" (` + congestionColumns + `) VALUES (?,?,?,?,?) RETURNING "id"`
		args = append([]interface{}{c.ID}, args...)
	}
	return classify(db.GetContext(ctx, &c.ID, db.Rebind(query), args...), "record congestion")
}

func GetCongestion(ctx context.Context, db *sqlx.DB, id int64) (models.Congestion, error) {
	var c models.Congestion
	err := db.GetContext(ctx, &c, db.Rebind(`SELECT `+congestionColumns+` FROM "congestion" WHERE "id" = ?`), id)
	return c, classify(err, "get congestion")
}

func DeleteCongestion(ctx context.Context, db *sqlx.DB, id int64) error {
	res, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM "congestion" WHERE "id" = ?`), id)
	return affectedOne(res, err, "delete congestion")
}

type CongestionFilter struct {
	Location string
	From     models.Date
	To       models.Date
	Limit    int
}

func ListCongestion(ctx context.Context, db *sqlx.DB, f CongestionFilter) ([]models.Congestion, error) {
	where := []string{}
	args := []interface{}{}
	if f.Location != "" {
		where = append(where, `"location" = ?`)
		args = append(args, f.Location)
	}
	where, args = dateRange(where, args, f.From, f.To)
	query := `SELECT ` + congestionColumns + ` FROM "congestion"` + whereClause(where) +
		` ORDER BY "date", "time", "id"` + limitClause(f.Limit)
	rows := []models.Congestion{}
	err := db.SelectContext(ctx, &rows, db.Rebind(query), args...)
	return rows, classify(err, "list congestion")
}

// LatestCongestion returns the most recent measurement for location: the
// latest date, then the latest time of day in UTC, then the highest id.
func LatestCongestion(ctx context.Context, db *sqlx.DB, location string) (models.Congestion, error) {
	rows := []models.Congestion{}
	err := db.SelectContext(ctx, &rows, db.Rebind(`
SELECT `+congestionColumns+` FROM "congestion"
WHERE "location" = ?
  AND "date" = (SELECT MAX("date") FROM "congestion" WHERE "location" = ?)
`), location, location)
	if err != nil {
		return models.Congestion{}, classify(err, "latest congestion")
	}
	if len(rows) == 0 {
		return models.Congestion{}, ErrNotFound("latest congestion: not found")
	}
	latest := rows[0]
	for _, c := range rows[1:] {
		cs, ls := c.Time.SecondsUTC(), latest.Time.SecondsUTC()
		if cs > ls || (cs == ls && c.ID > latest.ID) {
			latest = c
		}
	}
	return latest, nil
}

// CongestionOutOfRange lists measurements whose ratio lies outside [0, 1].
func CongestionOutOfRange(ctx context.Context, db *sqlx.DB) ([]models.Congestion, error) {
	rows := []models.Congestion{}
	err := db.SelectContext(ctx, &rows, `
SELECT `+congestionColumns+` FROM "congestion"
WHERE "congestion" < 0 OR "congestion" > 1
ORDER BY "id"
`)
	return rows, classify(err, "congestion out of range")
}
