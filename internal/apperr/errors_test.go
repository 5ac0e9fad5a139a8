package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"service-tracking/internal/apperr"
)

func TestCode(t *testing.T) {
	t.Parallel()

	outOfRange := apperr.NewKind("out of delivery range", "out_of_range", apperr.ErrInvalid)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "invalid", err: fmt.Errorf("wrap: %w", apperr.ErrInvalid), want: apperr.CodeInvalid},
		{name: "unauthorized", err: apperr.ErrUnauthorized, want: apperr.CodeUnauthorized},
		{name: "not found", err: apperr.ErrNotFound, want: apperr.CodeNotFound},
		{name: "conflict", err: apperr.ErrConflict, want: apperr.CodeConflict},
		{name: "transient", err: apperr.ErrTransient, want: apperr.CodeUnavailable},
		{name: "unknown", err: errors.New("boom"), want: apperr.CodeInternal},
		{name: "kind wins over base", err: fmt.Errorf("quote: %w", outOfRange), want: "out_of_range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, apperr.Code(tt.err))
		})
	}
}

func TestKind_UnwrapsToBase(t *testing.T) {
	t.Parallel()

	k := apperr.NewKind("invalid transition", "invalid_transition", apperr.ErrConflict)
	require.ErrorIs(t, fmt.Errorf("apply: %w", k), apperr.ErrConflict)
	require.ErrorIs(t, fmt.Errorf("apply: %w", k), k)
	require.Equal(t, "invalid transition", k.Error())
}
