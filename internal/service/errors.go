package service

import "fmt"

// RuleError is a business-rule violation: the request was well formed but the
// operation is not allowed in the current state. Handlers surface it as a 400
// with the message as-is.
type RuleError struct {
	Message string
}

func (e RuleError) Error() string {
	return e.Message
}

func ruleErrorf(format string, args ...interface{}) error {
	return RuleError{Message: fmt.Sprintf(format, args...)}
}
