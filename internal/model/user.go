package model

import "time"

// User represents a row in the `users` table. The primary key is an
// opaque string equal to the authentication subject carried in access
// tokens, so a row can be created either locally (password signup) or
// upserted after an OAuth code exchange.
//
// Fields:
//  ID           – primary key, opaque string (xid / auth subject).
//  Email        – unique email address.
//  DisplayName  – optional profile name shown instead of the email.
//  AvatarURL    – optional profile picture URL.
//  PasswordHash – bcrypt hash; empty for OAuth-only accounts.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           string
	Email        string
	DisplayName  *string
	AvatarURL    *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserInfo is the subset of user columns joined onto records and
// comments for display (owner and comment author lines).
type UserInfo struct {
	DisplayName *string `json:"display_name"`
	Email       string  `json:"email"`
}
