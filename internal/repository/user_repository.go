package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/ayatok/cinemalog/internal/model"
)

// UserRepo persists rows of the `users` table. User IDs are opaque
// strings generated at signup (or taken from the OAuth subject), so the
// repository never deals with auto-increment IDs.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// Create inserts a new user row. Email is normalized to lower case.
// A duplicate email maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, display_name, avatar_url, password_hash) VALUES (?,?,?,?,?)",
		u.ID, u.Email, u.DisplayName, u.AvatarURL, u.PasswordHash)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrEmailExists
		}
		return err
	}
	return r.scanByID(ctx, u.ID, u)
}

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (error 1062), the unique-index violation raised on a taken email.
func isDuplicateKey(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}

// Upsert creates the user's profile row keyed by the auth subject, or
// refreshes email/display_name/avatar_url on the existing row. Used once
// per OAuth callback, mirroring the profile upsert after a code exchange.
func (r *UserRepo) Upsert(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (id, email, display_name, avatar_url, password_hash)
		 VALUES (?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE email=VALUES(email), display_name=VALUES(display_name),
		                         avatar_url=VALUES(avatar_url)`,
		u.ID, u.Email, u.DisplayName, u.AvatarURL, u.PasswordHash)
	if err != nil {
		return err
	}
	return r.scanByID(ctx, u.ID, u)
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.scanRow(r.DB.QueryRowContext(ctx,
		"SELECT id,email,display_name,avatar_url,password_hash,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email), &u)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := r.scanByID(ctx, id, &u)
	return u, err
}

func (r *UserRepo) scanByID(ctx context.Context, id string, u *model.User) error {
	return r.scanRow(r.DB.QueryRowContext(ctx,
		"SELECT id,email,display_name,avatar_url,password_hash,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id), u)
}

func (r *UserRepo) scanRow(row *sql.Row, u *model.User) error {
	var (
		displayName sql.NullString
		avatarURL   sql.NullString
		createdAt   time.Time
		updatedAt   time.Time
	)
	err := row.Scan(&u.ID, &u.Email, &displayName, &avatarURL, &u.PasswordHash, &createdAt, &updatedAt)
	if err != nil {
		return err
	}
	u.DisplayName, u.AvatarURL = nil, nil
	if displayName.Valid {
		v := displayName.String
		u.DisplayName = &v
	}
	if avatarURL.Valid {
		v := avatarURL.String
		u.AvatarURL = &v
	}
	u.CreatedAt = createdAt
	u.UpdatedAt = updatedAt
	return nil
}
