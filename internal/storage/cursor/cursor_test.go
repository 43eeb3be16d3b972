package cursor

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := NewForward(42, "container-1")

	token, err := Encode(c)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Seq != 42 {
		t.Fatalf("seq = %d, want 42", decoded.Seq)
	}
	if decoded.Dir != DirectionForward {
		t.Fatalf("dir = %s, want %s", decoded.Dir, DirectionForward)
	}
	if err := ValidateAggregate(decoded, "container-1"); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestDecodeRejectsMalformedTokens(t *testing.T) {
	if _, err := Decode(""); err == nil {
		t.Fatal("empty token should fail")
	}
	if _, err := Decode("not base64!!!"); err == nil {
		t.Fatal("bad base64 should fail")
	}

	token, err := Encode(Cursor{Seq: 1, Dir: "sideways"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := Decode(token); err == nil {
		t.Fatal("unknown direction should fail")
	}
}

func TestValidateAggregateRejectsForeignJournal(t *testing.T) {
	c := NewBackward(7, "container-1")
	if err := ValidateAggregate(c, "container-2"); err == nil {
		t.Fatal("token minted for another journal should fail validation")
	}
}
