package services

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	const password = "hunter2!"

	hashed, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hashed == password {
		t.Fatal("hash equals plaintext")
	}

	t.Run("correct password verifies", func(t *testing.T) {
		match, err := VerifyPassword(hashed, password)
		if err != nil {
			t.Fatalf("VerifyPassword: %v", err)
		}
		if !match {
			t.Error("correct password did not verify")
		}
	})

	t.Run("wrong password fails", func(t *testing.T) {
		match, err := VerifyPassword(hashed, "hunter3!")
		if err != nil {
			t.Fatalf("VerifyPassword: %v", err)
		}
		if match {
			t.Error("wrong password verified")
		}
	})

	t.Run("same password hashes differently", func(t *testing.T) {
		again, err := HashPassword(password)
		if err != nil {
			t.Fatalf("HashPassword: %v", err)
		}
		if again == hashed {
			t.Error("two hashes of the same password are identical; salt not applied")
		}
	})

	t.Run("malformed stored hash", func(t *testing.T) {
		if _, err := VerifyPassword("not-a-valid-hash", password); err == nil {
			t.Error("expected error for malformed stored hash")
		}
	})
}

func TestHashPasswordRejectsWeakPasswords(t *testing.T) {
	weak := []string{
		"",
		"short",
		"longenoughbutplain",
		"numbers123",
		"special!only",
	}
	for _, password := range weak {
		if _, err := HashPassword(password); err == nil {
			t.Errorf("HashPassword(%q) accepted a weak password", password)
		}
	}
}

func TestComparePasswords(t *testing.T) {
	hashed, err := HashPassword("hunter2!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !ComparePasswords(hashed, "hunter2!") {
		t.Error("correct password rejected")
	}
	if ComparePasswords(hashed, "wrong") {
		t.Error("wrong password accepted")
	}
	if ComparePasswords("garbage", "hunter2!") {
		t.Error("malformed hash accepted")
	}
}
