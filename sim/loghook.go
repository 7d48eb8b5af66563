package sim

import (
	"io"
	"log"
)

// A LogHook is a hook that prints what happens in a component.
type LogHook interface {
	Hook
}

// LogHookBase provides the logger shared by LogHooks.
type LogHookBase struct {
	*log.Logger
}

// NewLogHookBase creates a LogHookBase that writes to w. Lines carry the
// prefix and no timestamp.
func NewLogHookBase(w io.Writer, prefix string) LogHookBase {
	return LogHookBase{Logger: log.New(w, prefix, 0)}
}
