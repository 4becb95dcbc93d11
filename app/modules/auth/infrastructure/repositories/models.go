package authdb

import (
	"time"

	"github.com/uptrace/bun"
)

// Admin is an account allowed into the dashboard.
type Admin struct {
	bun.BaseModel `bun:"table:admins,alias:a"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
