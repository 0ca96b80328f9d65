package boardview

import "testing"

func TestStateStackPushPop(t *testing.T) {
	s := NewStateStack()
	if s.Depth() != 1 {
		t.Fatalf("initial depth = %d, want 1", s.Depth())
	}
	if !s.Top().Matrix.IsIdentity() {
		t.Error("initial matrix is not identity")
	}

	s.Top().Fill = RGB(1, 0, 0)
	s.Push()
	s.Top().Fill = RGB(0, 1, 0)
	s.Top().StrokeWidth = 3

	if s.Depth() != 2 {
		t.Fatalf("depth after push = %d", s.Depth())
	}

	s.Pop()
	if got := s.Top().Fill; got != RGB(1, 0, 0) {
		t.Errorf("fill after pop = %+v, want red", got)
	}
	if s.Top().StrokeWidth != 0 {
		t.Error("stroke width leaked across pop")
	}
}

func TestStateStackPushCopies(t *testing.T) {
	s := NewStateStack()
	s.Top().Stroke = White
	s.Push()
	if got := s.Top().Stroke; got != White {
		t.Errorf("push did not copy top: %+v", got)
	}
}

func TestStateStackUnderflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("popping the initial entry did not panic")
		}
	}()
	NewStateStack().Pop()
}
