// Package errors derives stable tag values from errors for metric and
// log labelling.
package errors

import (
	goerrors "errors"
	"reflect"
	"strings"

	apperrors "github.com/camixfedex/saludo-app/internal/errors"
)

// Classify returns a tag value for err. Errors carrying an application
// code anywhere in their chain report that code (auth_failure, timeout,
// transport, ...); anything else falls back to the innermost concrete
// type name, lowercased with the package qualifier flattened.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	var appErr *apperrors.AppError
	if goerrors.As(err, &appErr) {
		return string(appErr.Code)
	}

	for {
		unwrapped := goerrors.Unwrap(err)
		if unwrapped == nil {
			break
		}
		err = unwrapped
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}

	name := strings.ToLower(strings.ReplaceAll(t.String(), "*", ""))
	name = strings.ReplaceAll(name, ".", "_")
	if name == "" {
		return "unknown"
	}
	return name
}
