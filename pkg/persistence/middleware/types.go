// Package middleware provides composable wrappers around a compound store.
package middleware

import "github.com/seplab/spmeplan/pkg/ports"

// Middleware wraps a CompoundStore with additional behavior.
type Middleware func(ports.CompoundStore) ports.CompoundStore
