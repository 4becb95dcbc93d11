package programhandlers

import (
	"context"

	programservice "github.com/Black-And-White-Club/gala-night/app/modules/program/application"
	programdb "github.com/Black-And-White-Club/gala-night/app/modules/program/infrastructure/repositories"
)

type FakeService struct {
	ListProgramsFunc  func(ctx context.Context) ([]programdb.Program, error)
	GetProgramFunc    func(ctx context.Context, id int64) (*programdb.Program, error)
	CreateProgramFunc func(ctx context.Context, in programservice.ProgramInput) (*programdb.Program, error)
	UpdateProgramFunc func(ctx context.Context, id int64, in programservice.ProgramInput) (*programdb.Program, error)
	DeleteProgramFunc func(ctx context.Context, id int64) error
	ReorderFunc       func(ctx context.Context, updates []programservice.SequenceUpdate) ([]programdb.Program, error)
}

func (f *FakeService) ListPrograms(ctx context.Context) ([]programdb.Program, error) {
	if f.ListProgramsFunc != nil {
		return f.ListProgramsFunc(ctx)
	}
	return []programdb.Program{}, nil
}

func (f *FakeService) GetProgram(ctx context.Context, id int64) (*programdb.Program, error) {
	if f.GetProgramFunc != nil {
		return f.GetProgramFunc(ctx, id)
	}
	return &programdb.Program{ID: id}, nil
}

func (f *FakeService) CreateProgram(ctx context.Context, in programservice.ProgramInput) (*programdb.Program, error) {
	if f.CreateProgramFunc != nil {
		return f.CreateProgramFunc(ctx, in)
	}
	return &programdb.Program{ID: 1, Title: in.Title, Sequence: 1}, nil
}

func (f *FakeService) UpdateProgram(ctx context.Context, id int64, in programservice.ProgramInput) (*programdb.Program, error) {
	if f.UpdateProgramFunc != nil {
		return f.UpdateProgramFunc(ctx, id, in)
	}
	return &programdb.Program{ID: id, Title: in.Title}, nil
}

func (f *FakeService) DeleteProgram(ctx context.Context, id int64) error {
	if f.DeleteProgramFunc != nil {
		return f.DeleteProgramFunc(ctx, id)
	}
	return nil
}

func (f *FakeService) Reorder(ctx context.Context, updates []programservice.SequenceUpdate) ([]programdb.Program, error) {
	if f.ReorderFunc != nil {
		return f.ReorderFunc(ctx, updates)
	}
	return []programdb.Program{}, nil
}
