package hoot

import "testing"

func TestAppendChunkSizeLine(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "1\r\n"},
		{5, "5\r\n"},
		{15, "f\r\n"},
		{16, "10\r\n"},
		{255, "ff\r\n"},
		{4096, "1000\r\n"},
	}

	for _, tt := range tests {
		got := string(appendChunkSizeLine(nil, tt.n))
		if got != tt.want {
			t.Errorf("appendChunkSizeLine(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestChunkHeaderLen(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{1, 3},
		{15, 3},
		{16, 4},
		{255, 4},
		{256, 5},
	}

	for _, tt := range tests {
		got := chunkHeaderLen(tt.n)
		if got != tt.want {
			t.Errorf("chunkHeaderLen(%d) = %d, want %d", tt.n, got, tt.want)
		}
		gotLine := len(appendChunkSizeLine(nil, tt.n))
		if gotLine != tt.want {
			t.Errorf("len(appendChunkSizeLine(%d)) = %d, want %d (chunkHeaderLen must match actual output)", tt.n, gotLine, tt.want)
		}
	}
}
