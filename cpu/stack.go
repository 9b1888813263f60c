package cpu

const (
	STACK_LIMIT = 16 // Maximum stack depth
)

// Stack is the return address stack. Sp is the number of live entries.
type Stack struct {
	Data [STACK_LIMIT]uint16
	Sp   int
}

// Push a return address, failing if the stack is full.
func (s *Stack) Push(value uint16) (ok bool) {
	if s.Full() {
		return
	}

	s.Data[s.Sp] = value
	s.Sp++
	ok = true
	return
}

func (s *Stack) Pop() (value uint16, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Sp--
	}
	return
}

func (s *Stack) Empty() bool {
	return s.Sp <= 0
}

func (s *Stack) Full() bool {
	return s.Sp >= STACK_LIMIT
}

func (s *Stack) Peek() (value uint16, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[s.Sp-1], true
}

// Set overwrites a slot, live or not.
func (s *Stack) Set(index int, value uint16) (err error) {
	if index < 0 || index >= STACK_LIMIT {
		err = ErrStackIndex
		return
	}

	s.Data[index] = value
	return
}

// SetSp moves the stack pointer.
func (s *Stack) SetSp(sp int) (err error) {
	if sp < 0 || sp > STACK_LIMIT {
		err = ErrStackIndex
		return
	}

	s.Sp = sp
	return
}

func (s *Stack) Reset() {
	clear(s.Data[:])
	s.Sp = 0
}
