package frame

import "testing"

func TestRoundTrip(t *testing.T) {
	h := Header{PayloadLen: 1234, ECTag: 1, ECParam: 4, EncTag: 1, HashTag: 1}
	data := h.Bytes()
	if len(data) != Size {
		t.Fatalf("Bytes() len = %d, want %d", len(data), Size)
	}

	got, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if *got != h {
		t.Fatalf("Parse(Bytes()) = %+v, want %+v", *got, h)
	}
}

func TestParseRejectsBadMagic(t *testing.T) {
	h := Header{PayloadLen: 2}
	data := h.Bytes()
	data[0] = 'X'
	if _, err := Parse(data); err == nil {
		t.Fatal("expected CorruptFrame error for bad magic")
	}
}

func TestParseRejectsShortInput(t *testing.T) {
	if _, err := Parse(make([]byte, Size-1)); err == nil {
		t.Fatal("expected Truncated error for short input")
	}
}

func TestReservedIsZeroOnWrite(t *testing.T) {
	h := Header{PayloadLen: 1}
	data := h.Bytes()
	for i := 12; i < Size; i++ {
		if data[i] != 0 {
			t.Fatalf("reserved byte %d = %d, want 0", i, data[i])
		}
	}
}
