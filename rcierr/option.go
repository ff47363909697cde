package rcierr

// Option is an Error option function
type Option func(*Error)

func WithDesc(desc string) Option { return func(e *Error) { e.Desc = desc } }
func WithHint(hint string) Option { return func(e *Error) { e.Hint = hint } }
