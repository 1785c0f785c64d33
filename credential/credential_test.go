package credential

import "testing"

func TestHashPasswordRoundTrip(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("qwerty uiop12")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if digest == "qwerty uiop12" {
		t.Fatal("digest must not equal the plaintext")
	}
	if !CheckPassword("qwerty uiop12", digest) {
		t.Fatal("CheckPassword should accept the original password")
	}
	if CheckPassword("qwerty uiop13", digest) {
		t.Fatal("CheckPassword should reject a mutated password")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("password1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := HashPassword("password1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password should differ")
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"domain lowercased", "A@B.COM", "A@b.com"},
		{"local part preserved", "Don.Joe@EXAMPLE.COM", "Don.Joe@example.com"},
		{"already normalized", "don.joe@example.com", "don.joe@example.com"},
		{"no at sign", "not-an-email", "not-an-email"},
		{"empty", "", ""},
		{"surrounding whitespace", "  a@B.com ", "a@b.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeEmail(tt.email); got != tt.want {
				t.Fatalf("NormalizeEmail(%q) = %q, want %q", tt.email, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmailIdempotent(t *testing.T) {
	t.Parallel()

	once := NormalizeEmail("A@B.COM")
	if twice := NormalizeEmail(once); twice != once {
		t.Fatalf("normalization is not idempotent: %q -> %q", once, twice)
	}
}
