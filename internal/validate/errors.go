package validate

// Errors collects field-level validation messages keyed by field name.
// It satisfies error so services can return it through the normal error
// path while handlers unpack it into an inline field→message response.
type Errors map[string]string

func (e Errors) Error() string {
	return "validation failed"
}

// Add records a message for a field when the message is non-empty.
func (e Errors) Add(field, message string) {
	if message != "" {
		e[field] = message
	}
}

// OrNil returns the collected errors, or nil when every field passed.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
