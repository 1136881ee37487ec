package iokv

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/schema"
)

// dbFileName is the default SQLite database file.
const dbFileName = "casemap.db"

// ManagerImpl hands out the configured KV store.
type ManagerImpl struct {
	store contract.KVStore
}

var _ contract.StoreManager = &ManagerImpl{} // Compile-time check

var (
	managerInstance *ManagerImpl
	managerMu       sync.Mutex
)

// InitStore initializes the global store manager with validated config.
// Calling it again replaces the previous store.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	managerMu.Lock()
	defer managerMu.Unlock()

	if managerInstance != nil {
		_ = managerInstance.store.Close()
		managerInstance = nil
	}
	store, err := NewKVStore(backend, connStr)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	managerInstance = &ManagerImpl{store: store}
	return nil
}

// GetManager returns the global store manager. InitStore must have
// succeeded first.
func GetManager() contract.StoreManager {
	managerMu.Lock()
	defer managerMu.Unlock()
	return managerInstance
}

// CloseStore closes the global store if one is open.
func CloseStore() {
	managerMu.Lock()
	defer managerMu.Unlock()
	if managerInstance != nil {
		_ = managerInstance.store.Close()
		managerInstance = nil
	}
}

// GetStore returns the managed KV store.
func (m *ManagerImpl) GetStore() contract.KVStore {
	return m.store
}

// GetDBFilePath returns the default SQLite database path under the
// user's home directory, falling back to the working directory.
func GetDBFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dbFileName
	}
	dir := filepath.Join(home, ".casemap")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return dbFileName
	}
	return filepath.Join(dir, dbFileName)
}
