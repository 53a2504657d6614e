// Package errors defines the error kinds surfaced to callers of the merge service.
//
// Sentinel errors allow programmatic checks with errors.Is, while the typed errors
// carry context (the offending field, the source name) for logs and API responses.
//
// # Kinds
//
//   - ErrInvalidInput: malformed datasets, bad delimiters, unparseable source references.
//   - ErrNotFound: a requested merge run or object does not exist.
//   - ErrSourceUnavailable: a dataset could not be loaded or saved.
//
// # Usage
//
//	if errors.Is(err, apperrors.ErrInvalidInput) {
//	    return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
//	}
package errors
