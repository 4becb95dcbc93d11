package programservice

import (
	"context"

	programdb "github.com/Black-And-White-Club/gala-night/app/modules/program/infrastructure/repositories"
)

// Service defines the program schedule service interface.
type Service interface {
	ListPrograms(ctx context.Context) ([]programdb.Program, error)
	GetProgram(ctx context.Context, id int64) (*programdb.Program, error)

	// CreateProgram appends the entry after the current last sequence.
	CreateProgram(ctx context.Context, in ProgramInput) (*programdb.Program, error)
	UpdateProgram(ctx context.Context, id int64, in ProgramInput) (*programdb.Program, error)
	DeleteProgram(ctx context.Context, id int64) error

	// Reorder applies every sequence change or none of them.
	Reorder(ctx context.Context, updates []SequenceUpdate) ([]programdb.Program, error)
}

// ProgramInput is an admin create or full update. Times are RFC3339 or natural
// language in the event timezone.
type ProgramInput struct {
	Title           string
	Description     string
	Type            string
	StartTime       *string
	EndTime         *string
	Location        *string
	SpeakerName     *string
	SpeakerTitle    *string
	SpeakerImageURL *string
	ExternalLink    *string
}

// SequenceUpdate moves one program to a new position.
type SequenceUpdate struct {
	ID       int64
	Sequence int
}
