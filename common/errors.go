package common

// ConstError is an error type for immutable error constants that can be
// checked for using errors.Is.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}
