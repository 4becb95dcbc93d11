package validator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name   string   `json:"name" validate:"notblank,max=20"`
	Email  string   `json:"email" validate:"omitempty,email"`
	Label  string   `json:"label" validate:"omitempty,label"`
	Amount float64  `json:"amount" validate:"gte=0"`
	Seat   *int     `json:"seat" validate:"omitempty,gte=1"`
	Tags   []string `json:"-"`
}

func TestValidate(t *testing.T) {
	zero := 0
	tests := []struct {
		name    string
		in      sample
		wantMsg string
	}{
		{name: "valid", in: sample{Name: "Ada", Email: "ada@example.org", Label: "hero-banner", Amount: 10}},
		{name: "blank name", in: sample{Name: "   "}, wantMsg: ErrFieldRequired + ": name"},
		{name: "bad email", in: sample{Name: "Ada", Email: "nope"}, wantMsg: ErrInvalidEmail + ": email"},
		{name: "bad label", in: sample{Name: "Ada", Label: "Hero Banner"}, wantMsg: ErrInvalidFormat + ": label"},
		{name: "negative amount", in: sample{Name: "Ada", Amount: -1}, wantMsg: ErrFieldBelowMinVal + ": amount"},
		{name: "seat zero", in: sample{Name: "Ada", Seat: &zero}, wantMsg: ErrFieldBelowMinVal + ": seat"},
		{name: "too long", in: sample{Name: "abcdefghijklmnopqrstuvwxyz"}, wantMsg: ErrFieldExceedsMaxLen + ": name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(context.Background(), tt.in)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}
