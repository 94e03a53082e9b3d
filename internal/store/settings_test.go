package store

import (
	"context"
	"testing"

	"github.com/erazemk/inventory/internal/db"
)

func TestGetTokenSecret_GeneratesAndPersists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// First call should generate a secret.
	secret1, err := GetTokenSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	// Second call should return the same secret.
	secret2, err := GetTokenSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}
}

func TestPassphraseHash(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	hash, err := GetPassphraseHash(ctx, database)
	if err != nil {
		t.Fatalf("GetPassphraseHash: %v", err)
	}
	if hash != "" {
		t.Errorf("expected no hash on a fresh database, got %q", hash)
	}

	if err := SetPassphraseHash(ctx, database, "first"); err != nil {
		t.Fatalf("SetPassphraseHash: %v", err)
	}
	if err := SetPassphraseHash(ctx, database, "second"); err != nil {
		t.Fatalf("SetPassphraseHash overwrite: %v", err)
	}

	hash, err = GetPassphraseHash(ctx, database)
	if err != nil {
		t.Fatalf("GetPassphraseHash: %v", err)
	}
	if hash != "second" {
		t.Errorf("expected 'second', got %q", hash)
	}
}
