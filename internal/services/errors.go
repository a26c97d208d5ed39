package services

import (
	"database/sql"
	"errors"
	"fmt"

	"congestion-pricing-backend-go/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

const (
	CodeNotFound   = "not_found"
	CodeBadRequest = "bad_request"
	CodeValidation = "validation"
	CodeDuplicate  = "duplicate"
	CodeReference  = "reference"
	CodeConstraint = "constraint"
)

type ServiceError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e ServiceError) Unwrap() error {
	return e.Err
}

func ErrNotFound(msg string) error {
	return ServiceError{Status: 404, Code: CodeNotFound, Message: msg}
}

func ErrBadRequest(msg string) error {
	return ServiceError{Status: 400, Code: CodeBadRequest, Message: msg}
}

func ErrConflict(code, msg string, err error) error {
	return ServiceError{Status: 409, Code: code, Message: msg, Err: err}
}

func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func errValidation(err error) error {
	return ServiceError{Status: 400, Code: CodeValidation, Message: "invalid record", Err: err}
}

// classify maps driver errors from PostgreSQL (pgx or lib/pq) and SQLite
// onto ServiceError codes. Unknown errors are wrapped with msg.
func classify(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ServiceError{Status: 404, Code: CodeNotFound, Message: msg + ": not found"}
	}
	var svcErr ServiceError
	if errors.As(err, &svcErr) {
		return err
	}
	switch sqlState(err) {
	case "23505":
		return ErrConflict(CodeDuplicate, msg+": duplicate key", err)
	case "23503":
		return ErrConflict(CodeReference, msg+": referenced row missing", err)
	case "22001", "23514", "23502":
		return ServiceError{Status: 400, Code: CodeConstraint, Message: msg + ": constraint violated", Err: err}
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique:
			return ErrConflict(CodeDuplicate, msg+": duplicate key", err)
		case sqlite3.ErrConstraintForeignKey:
			return ErrConflict(CodeReference, msg+": referenced row missing", err)
		case sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintNotNull:
			return ServiceError{Status: 400, Code: CodeConstraint, Message: msg + ": constraint violated", Err: err}
		}
	}
	return WrapError(err, msg)
}

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func hasCode(err error, code string) bool {
	var svcErr ServiceError
	return errors.As(err, &svcErr) && svcErr.Code == code
}

func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

func IsDuplicate(err error) bool {
	return hasCode(err, CodeDuplicate)
}

func IsReference(err error) bool {
	return hasCode(err, CodeReference)
}

// IsValidation reports errors raised before the record reached storage.
func IsValidation(err error) bool {
	var fieldErr *models.FieldError
	return hasCode(err, CodeValidation) && errors.As(err, &fieldErr)
}

// IsConstraint reports width, CHECK and NOT NULL violations, whether
// caught by validation or by the storage engine.
func IsConstraint(err error) bool {
	return hasCode(err, CodeConstraint) || IsValidation(err)
}

func affectedOne(res sql.Result, err error, msg string) error {
	if err != nil {
		return classify(err, msg)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return WrapError(err, msg)
	}
	if n == 0 {
		return ErrNotFound(msg + ": not found")
	}
	return nil
}
