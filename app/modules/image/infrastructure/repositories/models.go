package imagedb

import (
	"time"

	"github.com/uptrace/bun"
)

// driveViewURL is the public view link for a Google Drive file id.
const driveViewURL = "https://drive.google.com/uc?export=view&id="

// Image maps a stable label used by the site ("hero", "sponsor-acme") to a Drive file.
type Image struct {
	bun.BaseModel `bun:"table:images,alias:img"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Label     string    `bun:"label,notnull,unique" json:"label"`
	FileID    string    `bun:"file_id,notnull" json:"fileId"`
	Alt       string    `bun:"alt,notnull,default:''" json:"alt"`
	Type      string    `bun:"type,notnull,default:''" json:"type"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`

	URL string `bun:"-" json:"url"`
}

// ViewURL returns the direct view link for the image's file.
func (i *Image) ViewURL() string {
	return driveViewURL + i.FileID
}
