package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("secret-password", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := HashPassword("secret-password", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if first == second {
		t.Fatal("two hashes of the same password must differ")
	}
	if err := ComparePassword(first, "secret-password"); err != nil {
		t.Fatalf("first digest did not verify: %v", err)
	}
	if err := ComparePassword(second, "secret-password"); err != nil {
		t.Fatalf("second digest did not verify: %v", err)
	}
}

func TestComparePasswordWrong(t *testing.T) {
	hash, err := HashPassword("secret-password", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if err := ComparePassword(hash, "not-the-password"); err == nil {
		t.Fatal("wrong password verified")
	}
}
