// Package vm implements the reflective object model of the refobj runtime.
//
// This package contains:
//   - Object identifiers (oids) and object references
//   - Per-object recursive locking
//   - Class-info payloads and attribute sets
//   - Instance construction and slot layout
//   - The object space and the constant-object table
package vm
