package cli

// usageError marks bad invocations (unknown flags, missing required
// settings) so Execute can map them to the usage exit code.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }
