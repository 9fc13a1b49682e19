// Package services contains stateless domain services that operate across
// aggregates without belonging to any single one.
package services
