package matcher

import "testing"

func typeAll(m *Matcher, s string) {
	for _, r := range s {
		m.TypeRune(r)
	}
}

func TestTypeRuneClassifiesCharacters(t *testing.T) {
	m := New([]rune("hello"))
	typeAll(m, "hbllo")

	want := []Status{StatusCorrect, StatusIncorrect, StatusCorrect, StatusCorrect, StatusCorrect}
	for i, status := range want {
		if m.StatusAt(i) != status {
			t.Fatalf("position %d: expected status %d, got %d", i, status, m.StatusAt(i))
		}
	}
	if m.CorrectCount() != 4 {
		t.Fatalf("expected 4 correct, got %d", m.CorrectCount())
	}
	if m.Cursor() != 5 {
		t.Fatalf("expected cursor 5, got %d", m.Cursor())
	}
}

func TestTypeRunePastEndIsNoOp(t *testing.T) {
	m := New([]rune("ab"))
	typeAll(m, "ab")
	if !m.Done() {
		t.Fatalf("expected matcher to be done")
	}
	if m.TypeRune('c') {
		t.Fatalf("expected typing past the end to be rejected")
	}
	if m.Cursor() != 2 {
		t.Fatalf("expected cursor to stay at 2, got %d", m.Cursor())
	}
}

func TestCursorEqualsAcceptedKeystrokes(t *testing.T) {
	m := New([]rune("abc"))
	accepted := 0
	for _, r := range "abcdef" {
		if m.TypeRune(r) {
			accepted++
		}
	}
	if accepted != 3 {
		t.Fatalf("expected 3 accepted keystrokes, got %d", accepted)
	}
	if m.Cursor() != accepted {
		t.Fatalf("cursor %d does not match accepted count %d", m.Cursor(), accepted)
	}
}

func TestDeleteRuneAtStartIsNoOp(t *testing.T) {
	m := New([]rune("abc"))
	m.DeleteRune()
	if m.Cursor() != 0 {
		t.Fatalf("expected cursor 0, got %d", m.Cursor())
	}
	if m.StatusAt(0) != StatusUntyped {
		t.Fatalf("expected untyped status at 0")
	}
}

func TestDeleteRuneClearsStatus(t *testing.T) {
	m := New([]rune("ab"))
	typeAll(m, "ax")
	m.DeleteRune()
	if m.Cursor() != 1 {
		t.Fatalf("expected cursor 1, got %d", m.Cursor())
	}
	if m.StatusAt(1) != StatusUntyped {
		t.Fatalf("expected cleared status at 1")
	}
	if m.TypedAt(1) != 0 {
		t.Fatalf("expected cleared typed rune at 1")
	}
}

func TestDeleteWordStopsAtWordStart(t *testing.T) {
	m := New([]rune("the cat sat"))
	typeAll(m, "the ca")
	m.DeleteWord()
	if m.Cursor() != 4 {
		t.Fatalf("expected cursor at start of current word (4), got %d", m.Cursor())
	}
	for i := 4; i < 6; i++ {
		if m.StatusAt(i) != StatusUntyped {
			t.Fatalf("expected cleared status at %d", i)
		}
	}
}

func TestDeleteWordAfterWhitespaceRemovesPreviousWord(t *testing.T) {
	m := New([]rune("the cat sat"))
	typeAll(m, "the ")
	m.DeleteWord()
	if m.Cursor() != 0 {
		t.Fatalf("expected cursor 0, got %d", m.Cursor())
	}
}

func TestDeleteWordAtStartIsNoOp(t *testing.T) {
	m := New([]rune("the cat"))
	m.DeleteWord()
	if m.Cursor() != 0 {
		t.Fatalf("expected cursor 0, got %d", m.Cursor())
	}
}

func TestDeleteWordThenRetypeReproducesStatuses(t *testing.T) {
	expected := []rune("the cat sat")
	typed := "the cxt"

	direct := New(expected)
	typeAll(direct, typed)

	redone := New(expected)
	typeAll(redone, typed)
	redone.DeleteWord()
	typeAll(redone, "cxt")

	if direct.Cursor() != redone.Cursor() {
		t.Fatalf("cursor mismatch: %d vs %d", direct.Cursor(), redone.Cursor())
	}
	for i := 0; i < direct.Cursor(); i++ {
		if direct.StatusAt(i) != redone.StatusAt(i) {
			t.Fatalf("status mismatch at %d: %d vs %d", i, direct.StatusAt(i), redone.StatusAt(i))
		}
	}
}

func TestStatusAtOutOfRange(t *testing.T) {
	m := New([]rune("ab"))
	if m.StatusAt(-1) != StatusUntyped {
		t.Fatalf("expected untyped for negative index")
	}
	if m.StatusAt(5) != StatusUntyped {
		t.Fatalf("expected untyped past the end")
	}
}
