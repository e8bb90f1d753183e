// Package metadata extracts the title and slug header fields from a
// documentation file.
//
// A document carries its metadata as plain "key: value" lines anywhere in the
// file:
//
//	title: System Tables
//	slug: /operations/system-tables
//
// Scanning stops as soon as both fields have been seen, so large files are
// only read as far as their header.
package metadata
