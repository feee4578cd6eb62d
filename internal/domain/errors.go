package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports malformed or missing request fields. It is
// returned before any side effect takes place.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// AddressResolutionError reports that the delivery address could not be
// resolved to coordinates. No order is created.
type AddressResolutionError struct {
	Address string
	Err     error
}

func (e *AddressResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolve address %q: %v", e.Address, e.Err)
	}
	return fmt.Sprintf("address %q could not be resolved to coordinates", e.Address)
}

func (e *AddressResolutionError) Unwrap() error {
	return e.Err
}

// NoStoresAvailableError reports that no active store lies within the
// delivery radius of the resolved coordinates.
type NoStoresAvailableError struct {
	Lat float64
	Lng float64
}

func (e *NoStoresAvailableError) Error() string {
	return fmt.Sprintf("no stores deliver to (%f, %f)", e.Lat, e.Lng)
}

// ItemsUnavailableError reports cart items no candidate store can supply.
// Names carries the affected product names for the client to remove or
// substitute.
type ItemsUnavailableError struct {
	Names []string
}

func (e *ItemsUnavailableError) Error() string {
	return fmt.Sprintf("items unavailable: %s", strings.Join(e.Names, ", "))
}

// ProductNotAvailableError reports the consistency gap where an item passed
// allocation but its store inventory row vanished before line-item insertion.
type ProductNotAvailableError struct {
	Name    string
	StoreID string
}

func (e *ProductNotAvailableError) Error() string {
	return fmt.Sprintf("product %q no longer available at store %s", e.Name, e.StoreID)
}

// SequenceGenerationError reports a failure to mint an order code.
type SequenceGenerationError struct {
	Prefix string
	Err    error
}

func (e *SequenceGenerationError) Error() string {
	return fmt.Sprintf("generate order code for %s: %v", e.Prefix, e.Err)
}

func (e *SequenceGenerationError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a datastore write failure while the order graph
// was being written. The enclosing transaction is rolled back.
type PersistenceError struct {
	Step string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist order (%s): %v", e.Step, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
