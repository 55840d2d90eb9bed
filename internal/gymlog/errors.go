package gymlog

// InputError is a client error: the request is rejected before anything is
// written to the spreadsheet
type InputError struct {
	msg string
}

func (e *InputError) Error() string {
	return e.msg
}

var (
	ErrMissingCommand       = &InputError{msg: "Missing command"}
	ErrMissingSessionNumber = &InputError{msg: "Missing sessionNumber"}
	ErrMissingWeight        = &InputError{msg: "Missing weight"}
	ErrMissingEffort        = &InputError{msg: "Missing effort"}
	ErrNoSetsParsed         = &InputError{msg: "No sets parsed"}
	ErrInvalidRequestBody   = &InputError{msg: "invalid request body"}
)

// StoreError is returned when the spreadsheet append failed. The message is
// the one reported by the store.
type StoreError struct {
	Sheet   string
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
