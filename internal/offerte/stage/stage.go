// Package stage provides the generic controller shared by every intake stage:
// a field set, an error map made visible only by ValidateAndCommit, and a
// submitting flag.
package stage

import (
	"errors"
	"fmt"

	"offerte_backend/internal/offerte/domain"
	"offerte_backend/platform/apperr"
)

// Setter applies a raw input value to one field of T. It returns an error
// (and leaves T untouched) when the value has the wrong type or names an
// unknown enum member.
type Setter[T any] func(values *T, raw any) error

// Field declares one named, updatable field of a stage.
type Field[T any] struct {
	Name string
	Set  Setter[T]
}

// Schema describes a stage's data shape and rules.
type Schema[T any] struct {
	Stage   domain.Stage
	Default func() T
	// Fields are applied in this order by MergeFields.
	Fields   []Field[T]
	Validate func(T) domain.ErrorMap
	Dirty    func(T) bool
	HasData  func(T) bool
	// Clone deep-copies T for snapshots. Optional for flat shapes.
	Clone func(T) T
}

// Controller owns one stage's values and visible errors. It is not safe for
// concurrent use; callers serialize access (one logical caller per flow).
type Controller[T any] struct {
	schema     Schema[T]
	index      map[string]int
	values     T
	errors     domain.ErrorMap
	submitting bool
}

// New creates a controller at the schema's default value.
func New[T any](schema Schema[T]) *Controller[T] {
	index := make(map[string]int, len(schema.Fields))
	for i, f := range schema.Fields {
		index[f.Name] = i
	}
	return &Controller[T]{
		schema: schema,
		index:  index,
		values: schema.Default(),
		errors: domain.ErrorMap{},
	}
}

// Stage returns the stage this controller serves.
func (c *Controller[T]) Stage() domain.Stage { return c.schema.Stage }

// Values returns a snapshot of the current field values.
func (c *Controller[T]) Values() T {
	if c.schema.Clone != nil {
		return c.schema.Clone(c.values)
	}
	return c.values
}

// Errors returns a copy of the visible error map.
func (c *Controller[T]) Errors() domain.ErrorMap { return c.errors.Clone() }

// Submitting reports the submitting flag.
func (c *Controller[T]) Submitting() bool { return c.submitting }

// SetSubmitting sets the submitting flag.
func (c *Controller[T]) SetSubmitting(v bool) { c.submitting = v }

// HasField reports whether name is a declared field.
func (c *Controller[T]) HasField(name string) bool {
	_, ok := c.index[name]
	return ok
}

// UpdateField replaces one field's value and clears any error recorded for
// it. Errors are never recomputed here.
func (c *Controller[T]) UpdateField(name string, raw any) error {
	i, ok := c.index[name]
	if !ok {
		return unknownField(c.schema.Stage, name)
	}
	if err := c.schema.Fields[i].Set(&c.values, raw); err != nil {
		return err
	}
	delete(c.errors, name)
	return nil
}

// MergeFields applies a partial record in schema field order without touching
// the error map. Fields that fail to apply are skipped and reported together.
func (c *Controller[T]) MergeFields(partial map[string]any) error {
	var errs []error
	for name := range partial {
		if !c.HasField(name) {
			errs = append(errs, unknownField(c.schema.Stage, name))
		}
	}
	for _, f := range c.schema.Fields {
		raw, ok := partial[f.Name]
		if !ok {
			continue
		}
		if err := f.Set(&c.values, raw); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Apply mutates the values directly. It is meant for stage-specific
// operations built on top of the generic controller.
func (c *Controller[T]) Apply(fn func(values *T)) {
	fn(&c.values)
}

// Validate computes the error map for the current values without changing
// any controller state.
func (c *Controller[T]) Validate() domain.ErrorMap {
	errs := c.schema.Validate(c.values)
	if errs == nil {
		errs = domain.ErrorMap{}
	}
	return errs
}

// ValidateAndCommit stores the freshly computed errors as the visible error
// state and reports whether the stage is valid.
func (c *Controller[T]) ValidateAndCommit() bool {
	c.errors = c.Validate()
	return c.errors.Valid()
}

// SetError records a visible error outside of ValidateAndCommit, for
// rejected operations such as an out-of-set selection.
func (c *Controller[T]) SetError(field, message string) {
	c.errors[field] = message
}

// ClearError removes a visible error.
func (c *Controller[T]) ClearError(field string) {
	delete(c.errors, field)
}

// Reset restores the default values and clears errors and the submitting flag.
func (c *Controller[T]) Reset() {
	c.values = c.schema.Default()
	c.errors = domain.ErrorMap{}
	c.submitting = false
}

// IsDirty reports whether any field differs from its default.
func (c *Controller[T]) IsDirty() bool {
	return c.schema.Dirty(c.values)
}

// HasFormData reports whether the visitor entered anything worth keeping.
func (c *Controller[T]) HasFormData() bool {
	return c.schema.HasData(c.values)
}

func unknownField(st domain.Stage, name string) error {
	return apperr.Validation(fmt.Sprintf("unknown field %q", name)).
		WithOp(string(st) + ".UpdateField").
		WithDetails(map[string]string{"field": name})
}
