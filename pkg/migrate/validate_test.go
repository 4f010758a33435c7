package migrate

import "testing"

func TestValidateDir(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("expected bundled migrations to validate, got %v", err)
	}
}

func TestValidateDirMissing(t *testing.T) {
	if err := ValidateDir("does-not-exist"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
