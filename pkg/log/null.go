package log

// null discards everything; the default when no Logger option is supplied.
type null struct{}

// Null returns a Logger that does nothing.
func Null() Logger { return null{} }

func (null) Debugf(format string, args ...interface{}) {}
func (null) Infof(format string, args ...interface{})  {}
func (null) Warnf(format string, args ...interface{})  {}
func (null) Errorf(format string, args ...interface{}) {}
