package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
)

const (
	settingTokenSecret    = "token_secret"
	settingPassphraseHash = "passphrase_hash"
)

// GetTokenSecret retrieves the API token signing secret from the database.
// If no secret exists, it generates one, stores it, and returns it.
// Uses INSERT OR IGNORE + re-SELECT so concurrent starts agree on one value.
func GetTokenSecret(ctx context.Context, db *sql.DB) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating token secret: %w", err)
	}

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`,
		settingTokenSecret, hex.EncodeToString(buf),
	)
	if err != nil {
		return "", fmt.Errorf("storing token secret: %w", err)
	}

	secret, err := getSetting(ctx, db, settingTokenSecret)
	if err != nil {
		return "", err
	}
	return secret, nil
}

// GetPassphraseHash returns the stored bcrypt hash of the API passphrase,
// or "" if none has been set.
func GetPassphraseHash(ctx context.Context, db *sql.DB) (string, error) {
	hash, err := getSetting(ctx, db, settingPassphraseHash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return hash, err
}

// SetPassphraseHash stores the bcrypt hash of the API passphrase.
func SetPassphraseHash(ctx context.Context, db *sql.DB, hash string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		settingPassphraseHash, hash,
	)
	if err != nil {
		return fmt.Errorf("storing passphrase hash: %w", err)
	}
	return nil
}

func getSetting(ctx context.Context, db *sql.DB, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", err
	}
	if err != nil {
		return "", fmt.Errorf("querying setting %s: %w", key, err)
	}
	return value, nil
}
