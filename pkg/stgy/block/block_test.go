package block

import (
	"bytes"
	"testing"
)

func TestSignatures(t *testing.T) {
	tests := []struct {
		kind  Kind
		count int
		want  []byte
	}{
		{Type, 3, []byte{0x02, 0x00}},
		{Layer, 3, []byte{0x04, 0x00, 0x01, 0x00, 0x03, 0x00}},
		{Coord, 19, []byte{0x05, 0x00, 0x03, 0x00, 0x13, 0x00}},
		{Angle, 1, []byte{0x06, 0x00, 0x01, 0x00, 0x01, 0x00}},
		{Size, 2, []byte{0x07, 0x00, 0x00, 0x00, 0x02, 0x00}},
		{Trans, 300, []byte{0x08, 0x00, 0x02, 0x00, 0x2C, 0x01}},
		{ParamA, 1, []byte{0x0A, 0x00, 0x01, 0x00, 0x01, 0x00}},
		{ParamB, 1, []byte{0x0B, 0x00, 0x01, 0x00, 0x01, 0x00}},
		{ParamC, 1, []byte{0x0C, 0x00, 0x01, 0x00, 0x01, 0x00}},
		{Footer, 5, []byte{0x03, 0x00, 0x01, 0x00, 0x01, 0x00, 0x01, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.Signature(tt.count); !bytes.Equal(got, tt.want) {
				t.Errorf("Signature(%d) = % x, want % x", tt.count, got, tt.want)
			}
		})
	}
}

func TestDataLen(t *testing.T) {
	tests := []struct {
		kind  Kind
		count int
		want  int
	}{
		{Layer, 3, 6},
		{Coord, 3, 12},
		{Angle, 3, 6},
		{Size, 3, 4},
		{Size, 4, 4},
		{Size, 1, 2},
		{Trans, 2, 8},
		{ParamC, 5, 10},
		{Footer, 5, 0},
	}

	for _, tt := range tests {
		if got := tt.kind.DataLen(tt.count); got != tt.want {
			t.Errorf("%s.DataLen(%d) = %d, want %d", tt.kind, tt.count, got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if k, err := ParseKind("coord"); err != nil || k != Coord {
		t.Errorf("ParseKind is case sensitive: %v, %v", k, err)
	}
	if _, err := ParseKind("nope"); err == nil {
		t.Error("ParseKind(nope) should fail")
	}
	if Kind(99).String() != "Kind(99)" {
		t.Errorf("unexpected name for unknown kind: %s", Kind(99))
	}
}

func TestHeaderCount(t *testing.T) {
	buf := []byte{0xFF, 0x07, 0x00, 0x00, 0x00, 0x03, 0x00}
	n, ok := HeaderCount(buf, 1)
	if !ok || n != 3 {
		t.Errorf("HeaderCount = %d,%v, want 3,true", n, ok)
	}
	if _, ok := HeaderCount(buf, 2); ok {
		t.Error("HeaderCount past the end should fail")
	}
}
