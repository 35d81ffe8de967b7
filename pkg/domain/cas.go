package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var casPattern = regexp.MustCompile(`^[0-9]{2,7}-[0-9]{2}-[0-9]$`)

// SanitizeCAS validates a CAS Registry Number and returns it unchanged.
//
// Validation runs in three stages: the hyphenated format check, integer
// parsing of both digit groups, and the registry checksum. The checksum is
// computed over the digits of both groups weighted right-to-left starting
// at 1, modulo 10. The weighting direction matters: reversing it accepts a
// different set of numbers for almost every real CAS entry.
//
// Failures are reported as ErrInvalidCASFormat, ErrMalformedCAS or
// ErrChecksumMismatch, matchable with errors.Is.
func SanitizeCAS(cas string) (string, error) {
	if !casPattern.MatchString(cas) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCASFormat, cas)
	}

	parts := strings.Split(cas, "-")
	if _, err := strconv.Atoi(parts[0]); err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedCAS, cas)
	}
	if _, err := strconv.Atoi(parts[1]); err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedCAS, cas)
	}
	check, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedCAS, cas)
	}

	digits := parts[0] + parts[1]
	sum := 0
	for i := 0; i < len(digits); i++ {
		// Position 1 is the rightmost digit before the check digit.
		sum += (i + 1) * int(digits[len(digits)-1-i]-'0')
	}

	if sum%10 != check {
		return "", fmt.Errorf("%w: %q", ErrChecksumMismatch, cas)
	}

	return cas, nil
}
