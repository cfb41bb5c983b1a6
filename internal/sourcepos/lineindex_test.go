package sourcepos

import (
	"fmt"
	"testing"
)

func TestLineIndexEmpty(t *testing.T) {
	idx := NewLineIndex("")
	if idx.LineCount() != 1 {
		t.Errorf("Empty source LineCount() = %d, want 1", idx.LineCount())
	}

	line, col := idx.ByteOffsetToLineColumn(0)
	if line != 0 || col != 0 {
		t.Errorf("Empty source offset 0: got (%d, %d), want (0, 0)", line, col)
	}
}

func TestLineIndexSingleLine(t *testing.T) {
	source := "auto r = f();"
	idx := NewLineIndex(source)

	if idx.LineCount() != 1 {
		t.Errorf("Single line LineCount() = %d, want 1", idx.LineCount())
	}

	tests := []struct {
		offset int
		line   int
		col    int
	}{
		{0, 0, 0},
		{5, 0, 5},
		{12, 0, 12},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("offset_%d", tt.offset), func(t *testing.T) {
			line, col := idx.ByteOffsetToLineColumn(tt.offset)
			if line != tt.line || col != tt.col {
				t.Errorf("offset %d: got (%d, %d), want (%d, %d)",
					tt.offset, line, col, tt.line, tt.col)
			}
		})
	}
}

func TestLineIndexMultiLine(t *testing.T) {
	source := "auto r = f();\nr.discard();\nreturn r;"
	idx := NewLineIndex(source)

	if idx.LineCount() != 3 {
		t.Errorf("LineCount() = %d, want 3", idx.LineCount())
	}

	tests := []struct {
		offset int
		line   int
		col    int
	}{
		{0, 0, 0},
		{12, 0, 12},
		{14, 1, 0},
		{20, 1, 6},
		{27, 2, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("offset_%d", tt.offset), func(t *testing.T) {
			line, col := idx.ByteOffsetToLineColumn(tt.offset)
			if line != tt.line || col != tt.col {
				t.Errorf("offset %d: got (%d, %d), want (%d, %d)",
					tt.offset, line, col, tt.line, tt.col)
			}
		})
	}
}

func TestLineIndexNewlineStyles(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		lineCount int
	}{
		{"unix_lf", "a\nb\nc", 3},
		{"windows_crlf", "a\r\nb\r\nc", 3},
		{"old_mac_cr", "a\rb\rc", 3},
		{"trailing_lf", "a\nb\n", 2},
		{"trailing_crlf", "a\r\nb\r\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := NewLineIndex(tt.source)
			if idx.LineCount() != tt.lineCount {
				t.Errorf("LineCount() = %d, want %d", idx.LineCount(), tt.lineCount)
			}
		})
	}
}

func TestLineIndexClamping(t *testing.T) {
	idx := NewLineIndex("ab\ncd")

	line, col := idx.ByteOffsetToLineColumn(-5)
	if line != 0 || col != 0 {
		t.Errorf("negative offset: got (%d, %d), want (0, 0)", line, col)
	}

	line, _ = idx.ByteOffsetToLineColumn(999)
	if line != 1 {
		t.Errorf("past-end offset line = %d, want 1", line)
	}
}

func TestLineColumnToByteOffset(t *testing.T) {
	source := "ab\ncd\nef"
	idx := NewLineIndex(source)

	tests := []struct {
		line, col int
		want      int
	}{
		{0, 0, 0},
		{0, 1, 1},
		{1, 0, 3},
		{2, 1, 7},
		{-1, 0, 0},
		{99, 0, 6},
	}

	for _, tt := range tests {
		if got := idx.LineColumnToByteOffset(tt.line, tt.col); got != tt.want {
			t.Errorf("LineColumnToByteOffset(%d, %d) = %d, want %d",
				tt.line, tt.col, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	source := "first line\nsecond line\nthird"
	idx := NewLineIndex(source)

	for offset := 0; offset < len(source); offset++ {
		line, col := idx.ByteOffsetToLineColumn(offset)
		back := idx.LineColumnToByteOffset(line, col)
		if back != offset {
			t.Errorf("round trip offset %d -> (%d, %d) -> %d", offset, line, col, back)
		}
	}
}
