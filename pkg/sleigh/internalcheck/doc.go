// Package internalcheck holds source-level policy tests for this
// repository.
//
// The tests load the module with golang.org/x/tools/go/packages and
// fail when a source file breaks a cross-package rule, currently that
// cgo and unsafe stay confined to the foreign-memory layers.
//
// # Internal Use Only
//
// This package is part of the internal implementation and should not
// be imported by applications. Use the public API provided by
// pkg/sleigh and its subpackages instead.
package internalcheck
