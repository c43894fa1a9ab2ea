package domain

import "fmt"

// CardNotMarkedError indicates an attempt to clear a color annotation from a
// card that has none. Marking is lenient but unmarking is strict: asking to
// clear an annotation that does not exist is a user mistake worth surfacing.
type CardNotMarkedError struct {
	Card string
}

// Error implements the error interface.
func (e *CardNotMarkedError) Error() string {
	return fmt.Sprintf("card %q is not marked", e.Card)
}
