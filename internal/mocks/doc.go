// Package mocks provides hand-written mock implementations of the store and
// service interfaces for testing. Each mock exposes function fields that
// tests set to customize behavior; unset fields fall back to a simple
// in-memory default.
package mocks
