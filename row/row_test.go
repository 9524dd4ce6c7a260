package row

import (
	"strings"
	"testing"

	"github.com/NebulousLabs/fastrand"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	r := Row{ID: 7, Username: "alice", Email: "alice@example.com"}
	buf := make([]byte, Size)
	if err := Serialize(r, buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := Deserialize(buf)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if got != r {
		t.Fatalf("round trip = %+v, want %+v", got, r)
	}
}

func TestSerializeDeserializeRandomPayloads(t *testing.T) {
	for i := 0; i < 50; i++ {
		username := string(fastrand.Bytes(fastrand.Intn(UsernameSize + 1)))
		email := string(fastrand.Bytes(fastrand.Intn(EmailSize + 1)))
		// fastrand.Bytes can produce NUL bytes, which would truncate on
		// deserialize; replace them so the round trip is meaningful.
		username = strings.ReplaceAll(username, "\x00", "x")
		email = strings.ReplaceAll(email, "\x00", "x")

		r := Row{ID: uint32(i), Username: username, Email: email}
		buf := make([]byte, Size)
		if err := Serialize(r, buf); err != nil {
			t.Fatalf("Serialize(%d): %v", i, err)
		}
		got, err := Deserialize(buf)
		if err != nil {
			t.Fatalf("Deserialize(%d): %v", i, err)
		}
		if got != r {
			t.Fatalf("round trip %d = %+v, want %+v", i, got, r)
		}
	}
}

func TestFieldCapBoundary(t *testing.T) {
	okUsername := strings.Repeat("u", UsernameSize)
	if _, err := New(1, okUsername, "e"); err != nil {
		t.Fatalf("32-byte username should be accepted: %v", err)
	}
	tooLongUsername := strings.Repeat("u", UsernameSize+1)
	if _, err := New(1, tooLongUsername, "e"); err == nil {
		t.Fatalf("33-byte username should be rejected")
	}

	okEmail := strings.Repeat("e", EmailSize)
	if _, err := New(1, "u", okEmail); err != nil {
		t.Fatalf("255-byte email should be accepted: %v", err)
	}
	tooLongEmail := strings.Repeat("e", EmailSize+1)
	if _, err := New(1, "u", tooLongEmail); err == nil {
		t.Fatalf("256-byte email should be rejected")
	}
}

func TestSerializeWrongDstSize(t *testing.T) {
	r := Row{ID: 1, Username: "a", Email: "b"}
	if err := Serialize(r, make([]byte, Size-1)); err == nil {
		t.Fatalf("expected error for undersized dst")
	}
}
