package lazyrec

import "fmt"

// NotFoundError indicates that no row exists for a model's primary key.
// Finders return it for a missed lookup; on-demand loads and reloads
// return it when the underlying row was deleted after the record was
// first fetched.
type NotFoundError struct {
	Model string
	Key   any
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s record not found for key %v", e.Model, e.Key)
}

// DefinitionError indicates an invalid model definition, whether built in
// Go or loaded from a manifest.
type DefinitionError struct {
	Model  string
	Reason string
}

// Error implements the error interface
func (e *DefinitionError) Error() string {
	return fmt.Sprintf("invalid definition for model %q: %s", e.Model, e.Reason)
}

// FieldMissingError indicates a read of a field that is not present on the
// record and is not deferred, typically a field excluded by a narrow
// custom fetch. Deferred fields never produce it; they load on demand.
type FieldMissingError struct {
	Model string
	Field string
}

// Error implements the error interface
func (e *FieldMissingError) Error() string {
	return fmt.Sprintf("missing field %q on %s: not fetched and not deferred", e.Field, e.Model)
}
