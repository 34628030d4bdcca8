package hasher

import (
	"errors"
	"testing"
)

func TestHash_NotPlaintext(t *testing.T) {
	t.Parallel()

	digest, err := Hash("pw123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if digest == "pw123" {
		t.Fatalf("digest equals plaintext")
	}
}

func TestHash_Randomized(t *testing.T) {
	t.Parallel()

	d1, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	d2, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if d1 == d2 {
		t.Fatalf("two digests of the same plaintext are identical")
	}
}

func TestVerify_Match(t *testing.T) {
	t.Parallel()

	digest, err := Hash("pw123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := Verify("pw123", digest)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatalf("expected match")
	}
}

func TestVerify_Mismatch(t *testing.T) {
	t.Parallel()

	digest, err := Hash("pw123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := Verify("other", digest)
	if err != nil {
		t.Fatalf("Verify returned error on mismatch: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch")
	}
}

func TestVerify_CorruptDigest(t *testing.T) {
	t.Parallel()

	_, err := Verify("pw123", "not-a-bcrypt-digest")
	if !errors.Is(err, ErrCorruptDigest) {
		t.Fatalf("expected ErrCorruptDigest, got %v", err)
	}
}
