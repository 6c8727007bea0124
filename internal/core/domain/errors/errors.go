package errors

import "fmt"

type InvalidStateError struct {
	msg string
}

func NewInvalidStateError(msg string) *InvalidStateError {
	return &InvalidStateError{msg: msg}
}

func (e *InvalidStateError) Error() string {
	return e.msg
}

type NilArgumentError struct {
	argument string
}

func NewNilArgumentError(argument string) *NilArgumentError {
	return &NilArgumentError{argument: argument}
}

func (e *NilArgumentError) Error() string {
	return fmt.Sprintf("argument '%s' must not be nil", e.argument)
}

// StorageError is returned when a backing store operation fails
// and the calling operation can not proceed without it.
type StorageError struct {
	op  string
	err error
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{op: op, err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s): %v", e.op, e.err)
}

func (e *StorageError) Unwrap() error {
	return e.err
}

type DeliveryError struct {
	to  string
	err error
}

func NewDeliveryError(to string, err error) *DeliveryError {
	return &DeliveryError{to: to, err: err}
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("could not deliver email to %s: %v", e.to, e.err)
}

func (e *DeliveryError) Unwrap() error {
	return e.err
}
