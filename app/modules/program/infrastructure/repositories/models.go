package programdb

import (
	"time"

	"github.com/uptrace/bun"
)

// Program is one entry of the evening's schedule. Sequence is the manual display order.
type Program struct {
	bun.BaseModel `bun:"table:programs,alias:p"`

	ID              int64      `bun:"id,pk,autoincrement" json:"id"`
	Title           string     `bun:"title,notnull" json:"title"`
	Description     string     `bun:"description,notnull,default:''" json:"description"`
	Type            string     `bun:"type,notnull,default:''" json:"type"`
	StartTime       *time.Time `bun:"start_time" json:"startTime"`
	EndTime         *time.Time `bun:"end_time" json:"endTime"`
	Location        *string    `bun:"location" json:"location"`
	SpeakerName     *string    `bun:"speaker_name" json:"speakerName"`
	SpeakerTitle    *string    `bun:"speaker_title" json:"speakerTitle"`
	SpeakerImageURL *string    `bun:"speaker_image_url" json:"speakerImageUrl"`
	ExternalLink    *string    `bun:"external_link" json:"externalLink"`
	Sequence        int        `bun:"sequence,notnull,default:0" json:"sequence"`
	CreatedAt       time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt       time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}
