package boardview

// RenderState is the current transform and paint style applied to
// primitives as they are compiled.
type RenderState struct {
	Matrix      Matrix3
	Fill        Color
	Stroke      Color
	StrokeWidth float64
}

// StateStack maintains the render state stack for a Renderer.
//
// The stack always holds at least one entry; Push copies the top and Pop
// restores the previous one. Popping the initial entry is a programmer
// error and panics.
type StateStack struct {
	stack []RenderState
}

// NewStateStack creates a stack holding a single identity state.
func NewStateStack() *StateStack {
	return &StateStack{
		stack: []RenderState{{Matrix: Identity()}},
	}
}

// Top returns a pointer to the current state. Mutations through the
// pointer affect subsequent draws until the next Pop.
func (s *StateStack) Top() *RenderState {
	return &s.stack[len(s.stack)-1]
}

// Push saves the current state by copying it onto the stack.
func (s *StateStack) Push() {
	s.stack = append(s.stack, *s.Top())
}

// Pop restores the previously saved state.
func (s *StateStack) Pop() {
	if len(s.stack) == 1 {
		panic("boardview: render state stack underflow")
	}
	s.stack = s.stack[:len(s.stack)-1]
}

// Depth returns the number of entries on the stack.
func (s *StateStack) Depth() int {
	return len(s.stack)
}
