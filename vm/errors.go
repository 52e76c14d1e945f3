package vm

import (
	"errors"
	"fmt"
)

// Errors returned by instance construction and introspection.
var (
	ErrClassWithoutPayload    = errors.New("class has no class-info payload")
	ErrClassWithoutAttributes = errors.New("class has no attribute set")
	ErrUnknownAttribute       = errors.New("attribute unknown to class")
	ErrRenderNotImplemented   = errors.New("instance rendering is not specified yet")
)

// ClassError reports a failure tied to a class and, for attribute
// failures, the offending attribute.
type ClassError struct {
	Op    string
	Class Ref
	Attr  Ref // empty unless an attribute is at fault
	Err   error
}

func (e *ClassError) Error() string {
	if !e.Attr.IsEmpty() {
		return fmt.Sprintf("%s: class %s: %v %s", e.Op, e.Class, e.Err, e.Attr)
	}
	return fmt.Sprintf("%s: class %s: %v", e.Op, e.Class, e.Err)
}

func (e *ClassError) Unwrap() error { return e.Err }

// OversizeError is the panic value raised when an instance would need more
// slots than the builder allows. It signals a broken system limit, not bad
// input, and is not meant to be recovered in normal operation.
type OversizeError struct {
	Class Ref
	Size  int
	Max   int
}

func (e *OversizeError) Error() string {
	return fmt.Sprintf("instance of class %s too big: physical size %d exceeds maximum %d", e.Class, e.Size, e.Max)
}
