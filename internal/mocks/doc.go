// Package mocks provides hand-written test doubles for the store and
// service interfaces. Each mock carries optional function fields to
// override behavior per test, backed by an in-memory default
// implementation.
package mocks
