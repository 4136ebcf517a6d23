package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN("app", "secret", "db.internal", "3306", "cinemalog")
	assert.Equal(t, "app:secret@tcp(db.internal:3306)/cinemalog?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true", dsn)
}

func TestBuildDSNEmptyPassword(t *testing.T) {
	dsn := buildDSN("app", "", "localhost", "3306", "cinemalog")
	assert.Equal(t, "app@tcp(localhost:3306)/cinemalog?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true", dsn)
}

// RowsAffected must report matched rows, not changed rows: the record
// and friendship repositories map zero affected rows to not-found, and
// an owner resubmitting an edit with unchanged values must not trip
// that mapping.
func TestBuildDSNReportsMatchedRows(t *testing.T) {
	assert.Contains(t, buildDSN("app", "", "localhost", "3306", "cinemalog"), "clientFoundRows=true")
}
