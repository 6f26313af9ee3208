package model

import "errors"

// Error kinds. Call sites wrap these with context; use errors.Is to classify.
var (
	// ErrConfiguration covers bad alias tables, a missing default list and
	// malformed column tokens.
	ErrConfiguration = errors.New("configuration error")

	// ErrDataIntegrity is returned when the number of records received does
	// not match the row count announced by the server.
	ErrDataIntegrity = errors.New("data integrity error")

	// ErrProtocol is returned for records the server should never send, such
	// as an unknown approval type.
	ErrProtocol = errors.New("protocol error")

	// ErrMissingField is returned when a column needs a field the record
	// does not carry.
	ErrMissingField = errors.New("missing field")
)
