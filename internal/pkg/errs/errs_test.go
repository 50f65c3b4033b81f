package errs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "object not found",
			err:  errs.NewObjectNotFoundError("store", "6ba7b810"),
			want: "object not found: 6ba7b810",
		},
		{
			name: "object not found with cause",
			err:  errs.NewObjectNotFoundErrorWithCause("session", "6ba7b810", cause),
			want: "object not found: param is: session, ID is: 6ba7b810 (cause: connection refused)",
		},
		{
			name: "object not found collapses whitespace in the id",
			err:  errs.NewObjectNotFoundError("session", "abc\n\t def"),
			want: "object not found: abc def",
		},
		{
			name: "value is invalid",
			err:  errs.NewValueIsInvalidError("deliveryMethod"),
			want: "value is invalid: deliveryMethod",
		},
		{
			name: "value is invalid with cause",
			err:  errs.NewValueIsInvalidErrorWithCause("money", errors.New("amount must not be negative")),
			want: "value is invalid: money (cause: amount must not be negative)",
		},
		{
			name: "value is required",
			err:  errs.NewValueIsRequiredError("customerName"),
			want: "value is required: customerName",
		},
		{
			name: "value is out of range",
			err:  errs.NewValueIsOutOfRangeError("limit", 1000, 1, 100),
			want: "value is invalid: 1000 is limit, min value is 1, max value is 100",
		},
		{
			name: "value is out of range with cause",
			err:  errs.NewValueIsOutOfRangeErrorWithCause("quantity", 0, 1, 99, cause),
			want: "value is invalid: 0 is quantity, min value is 1, max value is 99 (cause: connection refused)",
		},
		{
			name: "service unavailable",
			err:  errs.NewServiceUnavailableError("geo"),
			want: "service is unavailable: geo",
		},
		{
			name: "service unavailable with cause",
			err:  errs.NewServiceUnavailableErrorWithCause("geo", cause),
			want: "service is unavailable: geo (cause: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"object not found", errs.NewObjectNotFoundError("store", "1"), errs.ErrObjectNotFound},
		{"value is invalid", errs.NewValueIsInvalidError("zone"), errs.ErrValueIsInvalid},
		{"value is required", errs.NewValueIsRequiredError("address"), errs.ErrValueIsRequired},
		{"value is out of range", errs.NewValueIsOutOfRangeError("offset", -1, 0, 10), errs.ErrValueIsOutOfRange},
		{"service unavailable", errs.NewServiceUnavailableError("redis"), errs.ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("quote delivery: %w", tt.err)

			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.ErrorIs(t, wrapped, tt.sentinel)
		})
	}

	t.Run("out of range is not reported as invalid", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("limit", 1000, 1, 100)

		assert.NotErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestServiceUnavailableError(t *testing.T) {
	t.Run("keeps the service name through wrapping", func(t *testing.T) {
		// Given
		err := fmt.Errorf("price delivery: %w", errs.NewServiceUnavailableErrorWithCause("geo", context.DeadlineExceeded))

		// When
		var target *errs.ServiceUnavailableError
		ok := errors.As(err, &target)

		// Then
		require.True(t, ok)
		assert.Equal(t, "geo", target.ServiceName)
		assert.Equal(t, context.DeadlineExceeded, target.Cause)
	})

	t.Run("does not expose its cause to errors.Is", func(t *testing.T) {
		err := errs.NewServiceUnavailableErrorWithCause("geo", context.Canceled)

		assert.NotErrorIs(t, err, context.Canceled)
	})
}

func TestObjectNotFoundError_ID(t *testing.T) {
	err := errs.NewObjectNotFoundError("order", 42)

	assert.Equal(t, "order", err.ParamName)
	assert.Equal(t, 42, err.ID)
	require.NoError(t, err.Cause)
	assert.Equal(t, "object not found: %!s(int=42)", err.Error())
}
