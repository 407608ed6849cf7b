package render

// ModeStack tracks the structural environments currently open in the output
// stream. The stack mirrors the emitted markers exactly: every push calls
// open, every pop calls close, and pops happen in LIFO order.
type ModeStack struct {
	stack []string
	open  func(mode string)
	close func(mode string)
}

func NewModeStack(open, close func(mode string)) *ModeStack {
	return &ModeStack{open: open, close: close}
}

// Need makes mode the top of the stack: a no-op when it already is, by
// closing inner modes when mode is open further down, or by opening a
// fresh one when it is absent.
func (s *ModeStack) Need(mode string) {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if s.stack[i] != mode {
			continue
		}
		for len(s.stack)-1 > i {
			s.pop()
		}
		return
	}
	s.stack = append(s.stack, mode)
	s.open(mode)
}

// PopTo closes modes until mode is on top, or the stack is empty.
func (s *ModeStack) PopTo(mode string) {
	for len(s.stack) > 0 && s.stack[len(s.stack)-1] != mode {
		s.pop()
	}
}

// Unwind closes every open mode. A render pass ends with this so opens and
// closes balance.
func (s *ModeStack) Unwind() {
	for len(s.stack) > 0 {
		s.pop()
	}
}

func (s *ModeStack) Depth() int { return len(s.stack) }

func (s *ModeStack) pop() {
	mode := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.close(mode)
}
