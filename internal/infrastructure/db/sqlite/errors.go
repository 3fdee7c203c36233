package sqlite

import (
	"errors"
	"strings"

	driver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

func isUniqueViolation(err error) bool {
	var se *driver.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

// isDuplicateColumn matches on the message because SQLite reports a
// duplicate ALTER TABLE column as a plain SQLITE_ERROR.
func isDuplicateColumn(err error) bool {
	var se *driver.Error
	if !errors.As(err, &se) || se.Code()&0xff != sqlite3.SQLITE_ERROR {
		return false
	}
	return strings.Contains(se.Error(), "duplicate column name")
}
