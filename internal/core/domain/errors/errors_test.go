package errors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorageErrorUnwrapsCause(t *testing.T) {
	err := NewStorageError("create password reset token", context.DeadlineExceeded)

	var storageErr *StorageError
	require.True(t, errors.As(err, &storageErr))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Contains(t, err.Error(), "create password reset token")
}

func TestDeliveryErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDeliveryError("a@x.com", cause)

	var deliveryErr *DeliveryError
	require.True(t, errors.As(err, &deliveryErr))
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "a@x.com")
}

func TestNilArgumentError(t *testing.T) {
	require.Equal(t, "argument 'log' must not be nil", NewNilArgumentError("log").Error())
}
