package token

import "testing"

func TestLineCol(t *testing.T) {
	d := NewPosDoc([]byte("ab\ncde\n\nf"))
	tests := []struct{ off, line, col int }{
		{0, 0, 0},
		{1, 0, 1},
		{3, 1, 0},
		{5, 1, 2},
		{7, 2, 0},
		{8, 3, 0},
	}
	for _, tc := range tests {
		l, c := d.LineCol(tc.off)
		if l != tc.line || c != tc.col {
			t.Errorf("offset %d: got %d:%d want %d:%d", tc.off, l, c, tc.line, tc.col)
		}
		if off := d.Offset(tc.line, tc.col); off != tc.off {
			t.Errorf("Offset(%d, %d) = %d want %d", tc.line, tc.col, off, tc.off)
		}
	}
	if off := d.Offset(0, 99); off != 2 {
		t.Errorf("clamp: got %d", off)
	}
}
