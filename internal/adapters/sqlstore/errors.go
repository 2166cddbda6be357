// Package sqlstore contains database/sql implementations of the repository
// interfaces. Every query is written with ? placeholders and rebound for the
// handle's dialect, so the same code serves SQLite and Postgres.
package sqlstore

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/example/ballot/internal/ports/secondary"
)

// failure is a driver-independent reading of a store error.
type failure int

const (
	failOther failure = iota
	failUnique
	failForeignKey
	failConstraint
	failTransient
)

// classify inspects driver error codes. It never looks at message text.
func classify(err error) failure {
	if err == nil {
		return failOther
	}
	if errors.Is(err, driver.ErrBadConn) {
		return failTransient
	}

	var se sqlite3.Error
	if errors.As(err, &se) {
		switch se.ExtendedCode {
		case sqlite3.ErrConstraintUnique:
			return failUnique
		case sqlite3.ErrConstraintForeignKey:
			return failForeignKey
		}
		switch se.Code {
		case sqlite3.ErrConstraint:
			return failConstraint
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return failTransient
		}
		return failOther
	}

	var pe *pq.Error
	if errors.As(err, &pe) {
		switch pe.Code {
		case "23505":
			if pe.Constraint == "ballots_pkey" {
				return failConstraint
			}
			return failUnique
		case "23503":
			return failForeignKey
		}
		switch pe.Code.Class() {
		case "23":
			return failConstraint
		case "40", "08", "53":
			return failTransient
		}
	}

	return failOther
}

// referenced reports whether err is the store refusing to delete a row that
// ballots still point at. SQLite enforces ON DELETE RESTRICT through an
// internal trigger, so it reports the trigger code rather than the foreign
// key code; the ballot immutability triggers never fire on these deletes.
func referenced(err error) bool {
	if classify(err) == failForeignKey {
		return true
	}
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintTrigger
}

// wrap annotates err with op and, when it is transient, with secondary.ErrTransient.
func wrap(op string, err error) error {
	if classify(err) == failTransient {
		return fmt.Errorf("failed to %s: %w: %w", op, secondary.ErrTransient, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
