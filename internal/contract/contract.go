// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/casemap/schema"
)

// KVStore defines the key-value persistence substrate. Values are
// JSON-encoded blobs; keys are stable strings owned by the repository.
type KVStore interface {
	// Load returns the value for key. The boolean reports presence, so
	// an absent key is not an error.
	Load(key string) ([]byte, bool, error)

	// Save writes the value for key, replacing any previous value.
	Save(key string, value []byte) error

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Clear removes all keys.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}

// StoreManager hands out the configured KV store.
type StoreManager interface {
	GetStore() KVStore
}

// Repository owns the folder, use-case, company and business-process
// collections plus the active-folder and active-company pointers. All
// cross-folder operations are filtered by folder id.
type Repository interface {
	// --- Folders ---

	ListFolders() ([]schema.Folder, error)
	GetFolder(id string) (*schema.Folder, error)
	SaveFolder(folder *schema.Folder) error

	// DeleteFolder removes a folder and cascades to its use cases.
	// Deleting the last remaining folder fails with ErrLastFolder.
	DeleteFolder(id string) error

	ActiveFolderID() (string, error)
	SetActiveFolderID(id string) error

	// --- Use cases ---

	ListCases(folderID string) ([]schema.UseCase, error)
	GetCase(id string) (*schema.UseCase, error)
	SaveCase(uc *schema.UseCase) error
	DeleteCase(id string) error

	// --- Companies ---

	ListCompanies() ([]schema.Company, error)
	GetCompany(id string) (*schema.Company, error)
	SaveCompany(company *schema.Company) error
	DeleteCompany(id string) error

	ActiveCompanyID() (string, error)
	SetActiveCompanyID(id string) error

	// --- Business processes (lookup only) ---

	ListProcesses() ([]schema.BusinessProcess, error)
	SaveProcess(process *schema.BusinessProcess) error
}

// Generator defines the external generation service. Returned per-axis
// ratings use axis names matching the folder's matrix config; unmatched
// names are silently dropped by the scoring engine.
type Generator interface {
	// GenerateList proposes candidate use-case names for the free-text input.
	GenerateList(ctx context.Context, freeText string, company *schema.Company) ([]string, error)

	// GenerateDetail fills in the full use-case fields for one candidate,
	// including integer 1-5 ratings for every configured axis.
	GenerateDetail(ctx context.Context, name, freeText string, cfg *schema.MatrixConfig, company *schema.Company) (*schema.UseCase, error)
}
