package clix

import (
	"errors"
	"fmt"
	"strings"
)

// RootExistsError is raised when a builder sees a second root node.
type RootExistsError struct {
	Existing string
	New      string
}

func (e *RootExistsError) Error() string {
	return fmt.Sprintf("root node %q already registered, cannot register %q", e.Existing, e.New)
}

// NoRootError is raised when a parent or child entry is applied before
// any root node exists in the tree.
type NoRootError struct {
	Node string
}

func (e *NoRootError) Error() string {
	if e.Node == "" {
		return "no root node registered"
	}
	return fmt.Sprintf("cannot attach %q: no root node registered", e.Node)
}

// NoParentError is raised when a child entry is applied before any
// parent node has been attached to the root.
type NoParentError struct {
	Child string
}

func (e *NoParentError) Error() string {
	return fmt.Sprintf("cannot attach child %q: no parent node registered", e.Child)
}

// ParentExistsError is raised when two parent nodes resolve to the same
// normalized name under one root.
type ParentExistsError struct {
	Name string
}

func (e *ParentExistsError) Error() string {
	return fmt.Sprintf("parent node %q already registered", e.Name)
}

// DuplicateNameError is raised when a tag name collides with a parent
// name (or vice versa) in the root's shared namespace.
type DuplicateNameError struct {
	Name     string
	PrevKind string
	NewKind  string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("name %q used by both %s and %s", e.Name, e.PrevKind, e.NewKind)
}

// UnhandledTypeError is raised when a child implements no handler that
// applies to the dispatched value. It lists the handlers the child does
// implement so a wiring gap is easy to diagnose.
type UnhandledTypeError struct {
	Child       string
	ValueKind   Kind
	Implemented []string
}

func (e *UnhandledTypeError) Error() string {
	implemented := "none"
	if len(e.Implemented) > 0 {
		implemented = strings.Join(e.Implemented, ", ")
	}
	msg := fmt.Sprintf("child %q has no handler for %s values (implemented: %s)",
		e.Child, e.ValueKind, implemented)
	if e.ValueKind == KindString && hasNumericHandler(e.Implemented) {
		msg += "\nTip: set Type(clix.Int) (or clix.Float) on the option/argument so the raw string is converted before dispatch."
	}
	return msg
}

func hasNumericHandler(implemented []string) bool {
	for _, name := range implemented {
		switch name {
		case "Int", "Float", "Numeric":
			return true
		}
	}
	return false
}

// ProcessError is raised when a value fails a handler's declared
// contract (wrong element kinds, wrong tuple shape). The optional Tip
// carries actionable remediation text.
type ProcessError struct {
	Message string
	Tip     string
}

func (e *ProcessError) Error() string {
	if e.Tip != "" {
		return e.Message + "\nTip: " + e.Tip
	}
	return e.Message
}

// InvalidHandlerError is raised when a handler violates a structural
// contract, such as a tag handler returning a transformed value.
type InvalidHandlerError struct {
	Message string
	Tip     string
}

func (e *InvalidHandlerError) Error() string {
	if e.Tip != "" {
		return e.Message + "\nTip: " + e.Tip
	}
	return e.Message
}

// ValidationError is the error type built-in validators raise for
// domain failures ("must be positive"). It travels through the same
// fail-fast channel as the core's own errors.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UsageError is raised when the composition API is used incorrectly,
// for example passing something that is neither a parent nor a child
// to New.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

// ParameterError wraps a failure with the parent/child pair that was
// executing when it occurred, so the CLI boundary can attribute the
// error to a specific input.
type ParameterError struct {
	Parent string
	Child  string
	Err    error
}

func (e *ParameterError) Error() string {
	if e.Child != "" {
		return fmt.Sprintf("parameter %q (child %q): %v", e.Parent, e.Child, e.Err)
	}
	return fmt.Sprintf("parameter %q: %v", e.Parent, e.Err)
}

func (e *ParameterError) Unwrap() error { return e.Err }

// ExitError carries a process exit code across the CLI boundary.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// ExitCode maps an error to the conventional process exit code:
// 2 for parameter/usage errors, 1 for anything else, 0 for nil.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if isUsage(err) {
		return 2
	}
	return 1
}

func isUsage(err error) bool {
	var (
		processErr   *ProcessError
		unhandledErr *UnhandledTypeError
		handlerErr   *InvalidHandlerError
		validateErr  *ValidationError
		usageErr     *UsageError
		paramErr     *ParameterError
	)
	switch {
	case errors.As(err, &processErr),
		errors.As(err, &unhandledErr),
		errors.As(err, &handlerErr),
		errors.As(err, &validateErr),
		errors.As(err, &usageErr):
		return true
	case errors.As(err, &paramErr):
		return true
	}
	return false
}
