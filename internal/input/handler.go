// Package input implements the stack of key handlers that decide, for
// each decoded key, whether to consume it, pass it through to the PTY,
// or push/pop a handler.
package input

// Code is a handler's verdict on one decoded key.
type Code int

const (
	Consume Code = iota
	Passthrough
	Push
	Pop
)

// Result is what a handler returns for one key. Next is only read when
// Code is Push, and holds the handler to install on top of the stack.
type Result struct {
	Code Code
	Next Handler
}

func consume() Result           { return Result{Code: Consume} }
func passthrough() Result       { return Result{Code: Passthrough} }
func push(h Handler) Result     { return Result{Code: Push, Next: h} }
func pop() Result               { return Result{Code: Pop} }

// Handler processes one decoded Key and returns what the stack should
// do next.
type Handler interface {
	HandleKey(k Key) Result
}

// Stack is the handler stack driving dispatch: the top handler gets
// each key first.
type Stack struct {
	handlers []Handler
}

// NewStack creates a stack with base as its bottom (and only) handler.
func NewStack(base Handler) *Stack {
	return &Stack{handlers: []Handler{base}}
}

// Dispatch feeds k to the top handler and applies its verdict. It
// returns Passthrough if the key should be written to the PTY master
// unchanged.
func (s *Stack) Dispatch(k Key) Code {
	if len(s.handlers) == 0 {
		return Passthrough
	}
	top := s.handlers[len(s.handlers)-1]
	res := top.HandleKey(k)
	switch res.Code {
	case Push:
		s.handlers = append(s.handlers, res.Next)
		return Consume
	case Pop:
		if len(s.handlers) > 1 {
			s.handlers = s.handlers[:len(s.handlers)-1]
		}
		return Consume
	default:
		return res.Code
	}
}

// Top returns the handler currently receiving keys.
func (s *Stack) Top() Handler {
	return s.handlers[len(s.handlers)-1]
}

// Depth reports how many handlers are on the stack.
func (s *Stack) Depth() int {
	return len(s.handlers)
}
