// file: internals/helpers/errs/errs.go
package errs

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

/* =========================
   Kind
========================= */

type Kind int

const (
	// KindValidation: caller's fault (bad cardinality, malformed day/time),
	// never retried automatically.
	KindValidation Kind = iota + 1
	// KindNotFound: absent OR outside tenant scope; the two are deliberately
	// indistinguishable so cross-tenant existence never leaks.
	KindNotFound
	// KindConflict: destructive operation blocked; carries an impact count so
	// the caller can decide to force or abort.
	KindConflict
	// KindTransient: connection/transaction failure; the whole call is safe to
	// retry since each call's writes are transactional.
	KindTransient
)

/* =========================
   Error
========================= */

type Error struct {
	Kind    Kind
	Message string
	Impact  int // only meaningful for KindConflict
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

/* =========================
   Constructors
========================= */

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflictf(impact int, format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...), Impact: impact}
}

func Transient(err error) *Error {
	return &Error{Kind: KindTransient, Message: "storage failure", Err: err}
}

/* =========================
   Inspectors
========================= */

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsValidation(err error) bool { return kindOf(err) == KindValidation }
func IsNotFound(err error) bool   { return kindOf(err) == KindNotFound }
func IsConflict(err error) bool   { return kindOf(err) == KindConflict }
func IsTransient(err error) bool  { return kindOf(err) == KindTransient }

// ImpactOf returns the conflict impact count (0 when not a conflict).
func ImpactOf(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindConflict {
		return e.Impact
	}
	return 0
}

/* =========================
   Mapping
========================= */

// HTTPStatus maps the taxonomy onto HTTP codes for the route layer.
func HTTPStatus(err error) int {
	switch kindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// pgSQLErr is satisfied by pgconn.PgError without importing the driver here.
type pgSQLErr interface {
	SQLState() string
	Error() string
}

// FromStorage wraps a raw GORM/driver error into the taxonomy.
// 23505 = unique_violation, 23503 = foreign_key_violation.
func FromStorage(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("data tidak ditemukan")
	}
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		switch pgErr.SQLState() {
		case "23505":
			return Conflictf(0, "data duplikat (unique violation)")
		case "23503":
			return Validationf("referensi tidak ditemukan (FK violation)")
		}
	}
	return Transient(err)
}

// IsUniqueViolation reports a storage-level duplicate key error. The session
// generator treats this as "already exists, skip".
func IsUniqueViolation(err error) bool {
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
