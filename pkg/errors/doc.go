// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Validation failures carry one of the validation codes together with the
// offending field in Context:
//
//	err := errors.NewWithContext(
//	    errors.ErrCodeOutOfRange,
//	    "Field 'age' is out of valid range: 25 is not between 0 and 19.",
//	    map[string]any{
//	        "field": "age",
//	        "value": 25,
//	    },
//	)
//
// CodeOf and IsValidation inspect a wrapped chain without a type assertion
// at the call site.
package errors
