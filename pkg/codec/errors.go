package codec

// Error is a codec failure kind. Detail is added by wrapping with
// fmt.Errorf and the kind is matched with errors.Is.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrMalformedStream     = &Error{"malformed stream"}
	ErrUnresolvedReference = &Error{"unresolved reference"}
	ErrAnomalousValue      = &Error{"anomalous value"}
	ErrIO                  = &Error{"i/o failure"}
	ErrUnencodable         = &Error{"value cannot be encoded"}
)
