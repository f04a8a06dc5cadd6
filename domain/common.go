package domain

import (
	"encoding/json"
	"errors"
)

const (
	// HeaderUserID carries the opaque owner identifier supplied by the
	// identity gateway. The backend performs no authentication itself.
	HeaderUserID = "X-User-Id"
)

var (
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedUserID         = "missing or invalid user id"

	ErrParseUUID     = errors.New("failed to parse UUID")
	ErrInvalidUserID = errors.New("missing or invalid user id")
)

// Optional is a patch-request field that keeps "absent", "null", and
// "value" distinguishable. Set reports whether the field appeared in the
// body at all; Valid is false when it appeared as an explicit null, which
// clears the field instead of leaving it untouched.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func NewOptional[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: value}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// StorageLocation is a closed enumeration of the places an item can be
// kept. Unrecognized input collapses to LocationUnknown so the expiry
// predictor can fall back to its conservative window.
type StorageLocation string

const (
	LocationFridge  StorageLocation = "fridge"
	LocationFreezer StorageLocation = "freezer"
	LocationPantry  StorageLocation = "pantry"
	LocationUnknown StorageLocation = "unknown"
)

func ParseStorageLocation(s string) StorageLocation {
	switch StorageLocation(s) {
	case LocationFridge, LocationFreezer, LocationPantry:
		return StorageLocation(s)
	default:
		return LocationUnknown
	}
}
