package errors

// Error codes for shapegen diagnostics.
//
// Error code ranges:
// E0100-E0199: Input grammar errors
// E0300-E0399: Resource errors
// E0900-E0999: Internal errors

const (
	// E0100: the input does not match the declaration grammar
	ErrorMalformedInput = "E0100"

	// E0101: an enum discriminant is not an integer literal or does not fit
	ErrorUnsupportedDiscriminant = "E0101"

	// E0102: two variants resolve to the same value
	ErrorDuplicateDiscriminant = "E0102"

	// E0103: derive or macro name is not registered
	ErrorUnknownMacro = "E0103"

	// E0300: a path named by a macro cannot be read
	ErrorMissingResource = "E0300"

	// E0900: expansion panicked
	ErrorInternal = "E0900"
)

// Codes lists every diagnostic code in ascending order.
func Codes() []string {
	return []string{
		ErrorMalformedInput,
		ErrorUnsupportedDiscriminant,
		ErrorDuplicateDiscriminant,
		ErrorUnknownMacro,
		ErrorMissingResource,
		ErrorInternal,
	}
}

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorMalformedInput:
		return "Input does not match the expected declaration grammar"
	case ErrorUnsupportedDiscriminant:
		return "Enum discriminant must be an integer literal that fits in 64 bits"
	case ErrorDuplicateDiscriminant:
		return "Two enum variants resolve to the same discriminant"
	case ErrorUnknownMacro:
		return "Derive or macro name is not known"
	case ErrorMissingResource:
		return "A file named by a macro invocation could not be read"
	case ErrorInternal:
		return "Macro expansion failed unexpectedly"
	default:
		return "Unknown error code"
	}
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0100" && code < "E0200":
		return "Input"
	case code >= "E0300" && code < "E0400":
		return "Resource"
	case code >= "E0900" && code < "E1000":
		return "Internal"
	default:
		return "Unknown"
	}
}
