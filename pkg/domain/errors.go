package domain

import "errors"

// ErrInvalidCASFormat is returned when a CAS number does not match the
// "2-7 digits, 2 digits, 1 check digit" hyphenated pattern.
var ErrInvalidCASFormat = errors.New("invalid CAS format")

// ErrMalformedCAS is returned when a CAS digit group cannot be parsed as an integer.
var ErrMalformedCAS = errors.New("malformed CAS digits")

// ErrChecksumMismatch is returned when the computed CAS checksum does not match
// the check digit.
var ErrChecksumMismatch = errors.New("CAS checksum mismatch")

// ErrInvalidCompound is returned when a compound record is rejected at construction.
var ErrInvalidCompound = errors.New("invalid compound record")

// ErrInvalidSplitCount is returned when quantization is requested with fewer
// than two split points.
var ErrInvalidSplitCount = errors.New("split count must be at least 2")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrCompoundNotFound is returned by resolvers when a CAS number or CID has no
// matching compound in the upstream registry.
var ErrCompoundNotFound = errors.New("compound not found")

// ErrBoilingPointNotFound is returned when no boiling point is known for a compound name.
var ErrBoilingPointNotFound = errors.New("boiling point not found")
