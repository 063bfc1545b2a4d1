package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/diego1198/inventory-frontend/internal/domain/entity"
	"github.com/diego1198/inventory-frontend/internal/domain/repository"
)

var _ repository.SessionStore = (*FileStore)(nil)

// FileStore persiste la sesión en un archivo JSON legible solo por el usuario (0600).
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore crea el store sobre path. El directorio se crea al guardar.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path ruta del archivo.
func (f *FileStore) Path() string { return f.path }

// Set escribe el archivo de forma atómica (temporal + rename).
func (f *FileStore) Set(s entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("session: serializar: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("session: crear directorio: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("session: escribir: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("session: reemplazar: %w", err)
	}
	return nil
}

// Get lee el archivo. Un archivo ausente, corrupto o sin token equivale a sin sesión.
func (f *FileStore) Get() (*entity.Session, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil, false
	}
	var s entity.Session
	if err := json.Unmarshal(raw, &s); err != nil || s.Token == "" {
		return nil, false
	}
	return &s, true
}

// Clear elimina el archivo. Idempotente.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: eliminar: %w", err)
	}
	return nil
}
