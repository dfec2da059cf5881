package web

// Error is a request-scoped error with the HTTP status it should be
// reported with. Fields carries field-level validation detail.
type Error struct {
	Err    error
	Status int
	Fields map[string]string
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}
