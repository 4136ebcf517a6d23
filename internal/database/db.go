package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to the MySQL store and verifies the connection before
// returning it. All repositories share the returned handle; database/sql
// manages pooling, so no session state lives in this package.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	db, err := sql.Open("mysql", buildDSN(user, pass, host, port, name))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// buildDSN assembles the driver DSN. parseTime=true maps DATE/DATETIME
// columns to time.Time; loc=UTC keeps watched_at and the timestamp
// columns consistent across hosts. clientFoundRows=true makes
// RowsAffected report matched rows instead of changed rows, so an
// owner's UPDATE with unchanged values still counts as found — the
// repositories rely on that to tell "no such row" apart from "nothing
// to change".
func buildDSN(user, pass, host, port, name string) string {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
		auth, host, port, name)
}
