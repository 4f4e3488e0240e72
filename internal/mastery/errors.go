package mastery

import "fmt"

// InvalidStateError reports a history the model cannot have produced:
// empty input where attempts were expected, records for the wrong topic,
// or field values outside their documented ranges. It indicates a logic
// defect upstream; the documented recovery is to treat mastery as zero
// and rebuild from the full attempt log.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid mastery state: %s", e.Reason)
}
