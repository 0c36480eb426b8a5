package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// loadSession reads the session id stored at path. A missing or unreadable file
// yields uuid.Nil so the caller asks the server for a fresh id.
func loadSession(path string) uuid.UUID {
	raw, err := os.ReadFile(path)
	if err != nil {
		return uuid.Nil
	}
	id, err := uuid.Parse(strings.TrimSpace(string(raw)))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func saveSession(path string, id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New("refusing to store an empty session id")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(id.String()+"\n"), 0o600)
}

func defaultSessionFile() string {
	if path := os.Getenv("STOREFRONT_SESSION_FILE"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront_session"
	}
	return filepath.Join(home, ".storefront_session")
}
