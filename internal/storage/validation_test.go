package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Veraticus/fintrack/internal/common"
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
		name      string
		str       string
		paramName string
		wantErr   bool
	}{
		{
			name:      "valid string",
			str:       "test",
			paramName: "param",
			wantErr:   false,
		},
		{
			name:      "empty string",
			str:       "",
			paramName: "param",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			str:       "   ",
			paramName: "param",
			wantErr:   true,
		},
		{
			name:      "string with spaces",
			str:       "  test  ",
			paramName: "param",
			wantErr:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, tt.paramName)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.paramName) {
				t.Errorf("validateString() error should contain param name %s, got %v", tt.paramName, err)
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	err := notFound("expense", 42)

	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("notFound() should wrap common.ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "expense 42") {
		t.Errorf("notFound() should name the entity and id, got %v", err)
	}
}

func TestErrCategoryNotFound_IsValidation(t *testing.T) {
	if !errors.Is(ErrCategoryNotFound, common.ErrValidation) {
		t.Error("ErrCategoryNotFound should wrap common.ErrValidation")
	}
	if errors.Is(ErrCategoryNotFound, common.ErrNotFound) {
		t.Error("ErrCategoryNotFound should not be a not-found error")
	}
}
