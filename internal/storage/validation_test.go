package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/app-strategy/internal/model"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		str     string
		wantErr bool
	}{
		{name: "valid string", str: "abc"},
		{name: "empty", str: "", wantErr: true},
		{name: "whitespace only", str: " \t\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, "param")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrEmptyString) {
				t.Errorf("validateString() error = %v, want ErrEmptyString", err)
			}
		})
	}
}

func TestValidateRawTable(t *testing.T) {
	tests := []struct {
		want error
		name string
		raw  model.RawTable
	}{
		{
			name: "valid",
			raw:  model.RawTable{Headers: []string{"a", "b"}, Rows: [][]string{{"1", "2"}, {"3"}}},
		},
		{
			name: "no headers",
			raw:  model.RawTable{Rows: [][]string{{"1"}}},
			want: ErrEmptySlice,
		},
		{
			name: "no rows",
			raw:  model.RawTable{Headers: []string{"a"}},
			want: ErrEmptySlice,
		},
		{
			name: "row wider than headers",
			raw:  model.RawTable{Headers: []string{"a"}, Rows: [][]string{{"1", "2"}}},
			want: ErrInvalidRawData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRawTable(tt.raw)
			if tt.want == nil {
				if err != nil {
					t.Errorf("validateRawTable() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("validateRawTable() error = %v, want %v", err, tt.want)
			}
		})
	}
}
