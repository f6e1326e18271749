//go:build integration

package repository

// IsUniqueViolation exposes isUniqueViolation to the external integration tests.
var IsUniqueViolation = isUniqueViolation
