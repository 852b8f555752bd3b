package shunt

// Logger is the ambient diagnostic hook: an interface satisfied
// directly by *log.Logger, so a host can pass its existing logger in
// without an adapter. It is silent by default and never consulted for
// control flow, only for optional step-by-step tracing (Evaluator.Trace).
type Logger interface {
	Printf(format string, args ...any)
}

var activeLogger Logger

// SetLogger installs the logger consulted by traced evaluations.
// Passing nil disables tracing output again.
func SetLogger(l Logger) { activeLogger = l }

func logTrace(tok rpnToken, stack []Value) {
	if activeLogger == nil {
		return
	}
	top := "<empty>"
	if len(stack) > 0 {
		top = Format(stack[len(stack)-1])
	}
	switch tok.kind {
	case rpnLiteral:
		activeLogger.Printf("push literal %s -> top=%s", Format(tok.lit), top)
	case rpnVar:
		activeLogger.Printf("push var %q -> top=%s", tok.name, top)
	default:
		activeLogger.Printf("apply %q -> top=%s", tok.op, top)
	}
}
