package board

import "log"

// Console emits status lines through a standard logger.
type Console struct {
	logger *log.Logger
}

// NewConsole wraps l, or the default logger when l is nil.
func NewConsole(l *log.Logger) *Console {
	if l == nil {
		l = log.Default()
	}
	return &Console{logger: l}
}

func (c *Console) Emit(text string) {
	c.logger.Print(text)
}
