// Package schema declares the typed shape of the data a query can select
// and validates a parsed selection set against it.
//
// A schema is a flat map of named object types, each with a set of fields.
// A field is either a scalar (String, Int, Float, Boolean, ID) or a
// reference to another object type, optionally a list of either. Fields
// may declare required arguments that a selection must supply.
//
// Validation mirrors the compiler's own selection-resolution pass: every
// selected field must exist on its parent type, object-typed fields must
// themselves carry a sub-selection, scalar fields must not, and every
// required argument must be present.
package schema
