package types

// Status classifies the result of applying a Request.
type Status int

// Outcome statuses.
const (
	// StatusOK means the statement executed and was committed.
	StatusOK Status = iota
	// StatusFailed means the driver rejected the statement, or the editor
	// refused to render it. Nothing was committed.
	StatusFailed
	// StatusUnsupported means the engine lacks the capability the action
	// needs. No SQL was issued.
	StatusUnsupported
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailed:
		return "failed"
	case StatusUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Outcome is the recoverable result of one edit. Failures here are reported
// to the user but do not change the process exit status.
type Outcome struct {
	Status  Status
	Message string

	// RowsAffected is the driver-reported count for update actions.
	// Zero matched rows is still StatusOK.
	RowsAffected int64

	// Err is the underlying driver error for StatusFailed.
	Err error
}

// OK reports whether the edit was applied.
func (o Outcome) OK() bool {
	return o.Status == StatusOK
}

// Succeeded builds a StatusOK outcome.
func Succeeded(msg string, rows int64) Outcome {
	return Outcome{Status: StatusOK, Message: msg, RowsAffected: rows}
}

// Failed builds a StatusFailed outcome carrying the driver's message.
func Failed(err error) Outcome {
	return Outcome{Status: StatusFailed, Message: "An error occurred: " + err.Error(), Err: err}
}

// Unsupported builds a StatusUnsupported outcome.
func Unsupported(msg string) Outcome {
	return Outcome{Status: StatusUnsupported, Message: msg}
}
