package auth_test

import (
	"testing"

	"github.com/vaxcare/vaxcare-backend/internal/auth"
)

// Cost 4 (bcrypt minimum) keeps the test fast; the verify contract is
// independent of cost.
func testHasher() *auth.Hasher { return auth.NewHasher(4) }

func TestHasher_RoundTrip(t *testing.T) {
	h := testHasher()
	digest, err := h.Hash("Abcdef1!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "Abcdef1!" {
		t.Fatal("digest must not equal plaintext")
	}
	if !h.Verify("Abcdef1!", digest) {
		t.Error("Verify(p, Hash(p)) = false, want true")
	}
}

func TestHasher_WrongPassword(t *testing.T) {
	h := testHasher()
	digest, err := h.Hash("Abcdef1!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h.Verify("Abcdef2!", digest) {
		t.Error("Verify with wrong password = true, want false")
	}
}

func TestHasher_SaltedDigestsDiffer(t *testing.T) {
	h := testHasher()
	d1, err := h.Hash("Abcdef1!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	d2, err := h.Hash("Abcdef1!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if d1 == d2 {
		t.Error("two hashes of the same password are identical; salt missing")
	}
}

func TestHasher_GarbageDigest(t *testing.T) {
	if testHasher().Verify("Abcdef1!", "not-a-bcrypt-digest") {
		t.Error("Verify against garbage digest = true, want false")
	}
}

func TestNewHasher_OutOfRangeCostFallsBack(t *testing.T) {
	// An out-of-range cost must still produce a working hasher.
	h := auth.NewHasher(99)
	digest, err := h.Hash("Abcdef1!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !h.Verify("Abcdef1!", digest) {
		t.Error("fallback-cost hasher failed round trip")
	}
}
