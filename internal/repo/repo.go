// Package repo implements the folder, use-case and company repository
// on top of the key-value store. It is the single authoritative state
// container: folder-scoped isolation, cascade deletes and the
// active-folder and active-company pointers all live here.
package repo

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/schema"
)

// Persistence keys for the collections and the app state.
const (
	keyFolders   = "casemap:folders"
	keyCases     = "casemap:cases"
	keyCompanies = "casemap:companies"
	keyProcesses = "casemap:processes"
	keyState     = "casemap:state"
)

// Sentinel errors for repository operations.
var (
	// ErrNotFound is returned when an id does not resolve to an entity.
	ErrNotFound = errors.New("not found")

	// ErrLastFolder is returned when deleting the only remaining folder.
	ErrLastFolder = errors.New("cannot delete the last remaining folder")
)

// appState holds the active-entity pointers.
type appState struct {
	ActiveFolderID  string `json:"activeFolderId"`
	ActiveCompanyID string `json:"activeCompanyId"`
}

// Repo is the KV-backed repository. A single mutex serializes all
// writes: concurrent entity adds from generation workers and config
// updates on the same folder are not commutative.
type Repo struct {
	mu    sync.Mutex
	store contract.KVStore
}

var _ contract.Repository = &Repo{} // Compile-time check

// New creates a repository over the given KV store. A default folder
// is seeded on first use so at least one folder always exists.
func New(store contract.KVStore) (*Repo, error) {
	r := &Repo{store: store}
	if err := r.ensureDefaultFolder(); err != nil {
		return nil, err
	}
	return r, nil
}

// ensureDefaultFolder seeds the initial folder and makes it active.
func (r *Repo) ensureDefaultFolder() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	folders, err := loadSlice[schema.Folder](r.store, keyFolders)
	if err != nil {
		return err
	}
	if len(folders) > 0 {
		return nil
	}
	seed := schema.Folder{
		ID:           uuid.NewString(),
		Name:         "Default",
		Description:  "Initial workspace",
		MatrixConfig: schema.DefaultMatrixConfig(),
		CreatedAt:    time.Now().UTC(),
	}
	if err := saveSlice(r.store, keyFolders, []schema.Folder{seed}); err != nil {
		return err
	}
	state, err := r.loadState()
	if err != nil {
		return err
	}
	state.ActiveFolderID = seed.ID
	return r.saveState(state)
}

// --- Folders ---

// ListFolders returns all folders.
func (r *Repo) ListFolders() ([]schema.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return loadSlice[schema.Folder](r.store, keyFolders)
}

// GetFolder returns one folder by id.
func (r *Repo) GetFolder(id string) (*schema.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getFolderLocked(id)
}

func (r *Repo) getFolderLocked(id string) (*schema.Folder, error) {
	folders, err := loadSlice[schema.Folder](r.store, keyFolders)
	if err != nil {
		return nil, err
	}
	for i := range folders {
		if folders[i].ID == id {
			return &folders[i], nil
		}
	}
	return nil, fmt.Errorf("folder %q: %w", id, ErrNotFound)
}

// SaveFolder inserts or replaces a folder. New folders without a
// config receive the default snapshot, and new folders without an id
// receive one.
func (r *Repo) SaveFolder(folder *schema.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if folder.ID == "" {
		folder.ID = uuid.NewString()
	}
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = time.Now().UTC()
	}
	if len(folder.MatrixConfig.ValueThresholds) == 0 {
		folder.MatrixConfig = schema.DefaultMatrixConfig()
	}

	folders, err := loadSlice[schema.Folder](r.store, keyFolders)
	if err != nil {
		return err
	}
	replaced := false
	for i := range folders {
		if folders[i].ID == folder.ID {
			folders[i] = *folder
			replaced = true
			break
		}
	}
	if !replaced {
		folders = append(folders, *folder)
	}
	return saveSlice(r.store, keyFolders, folders)
}

// DeleteFolder removes a folder and every use case it owns. The last
// remaining folder cannot be deleted. If the deleted folder was
// active, the pointer moves to a remaining folder.
func (r *Repo) DeleteFolder(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	folders, err := loadSlice[schema.Folder](r.store, keyFolders)
	if err != nil {
		return err
	}
	idx := -1
	for i := range folders {
		if folders[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("folder %q: %w", id, ErrNotFound)
	}
	if len(folders) == 1 {
		return ErrLastFolder
	}

	folders = append(folders[:idx], folders[idx+1:]...)
	if err := saveSlice(r.store, keyFolders, folders); err != nil {
		return err
	}

	// Cascade: remove owned use cases, and only those.
	cases, err := loadSlice[schema.UseCase](r.store, keyCases)
	if err != nil {
		return err
	}
	kept := cases[:0]
	for _, uc := range cases {
		if uc.FolderID != id {
			kept = append(kept, uc)
		}
	}
	if err := saveSlice(r.store, keyCases, kept); err != nil {
		return err
	}

	state, err := r.loadState()
	if err != nil {
		return err
	}
	if state.ActiveFolderID == id {
		state.ActiveFolderID = folders[0].ID
		return r.saveState(state)
	}
	return nil
}

// ActiveFolderID returns the active folder pointer.
func (r *Repo) ActiveFolderID() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, err := r.loadState()
	if err != nil {
		return "", err
	}
	return state.ActiveFolderID, nil
}

// SetActiveFolderID points the active folder at an existing folder.
func (r *Repo) SetActiveFolderID(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.getFolderLocked(id); err != nil {
		return err
	}
	state, err := r.loadState()
	if err != nil {
		return err
	}
	state.ActiveFolderID = id
	return r.saveState(state)
}

// --- Use cases ---

// ListCases returns the use cases owned by one folder.
func (r *Repo) ListCases(folderID string) ([]schema.UseCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cases, err := loadSlice[schema.UseCase](r.store, keyCases)
	if err != nil {
		return nil, err
	}
	out := make([]schema.UseCase, 0, len(cases))
	for _, uc := range cases {
		if uc.FolderID == folderID {
			out = append(out, uc)
		}
	}
	return out, nil
}

// GetCase returns one use case by id.
func (r *Repo) GetCase(id string) (*schema.UseCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cases, err := loadSlice[schema.UseCase](r.store, keyCases)
	if err != nil {
		return nil, err
	}
	for i := range cases {
		if cases[i].ID == id {
			return &cases[i], nil
		}
	}
	return nil, fmt.Errorf("use case %q: %w", id, ErrNotFound)
}

// SaveCase inserts or replaces a use case. Membership in an existing
// folder is required.
func (r *Repo) SaveCase(uc *schema.UseCase) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.getFolderLocked(uc.FolderID); err != nil {
		return err
	}
	if uc.ID == "" {
		uc.ID = uuid.NewString()
	}
	if uc.CreatedAt.IsZero() {
		uc.CreatedAt = time.Now().UTC()
	}

	cases, err := loadSlice[schema.UseCase](r.store, keyCases)
	if err != nil {
		return err
	}
	replaced := false
	for i := range cases {
		if cases[i].ID == uc.ID {
			cases[i] = *uc
			replaced = true
			break
		}
	}
	if !replaced {
		cases = append(cases, *uc)
	}
	return saveSlice(r.store, keyCases, cases)
}

// DeleteCase removes one use case by id.
func (r *Repo) DeleteCase(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cases, err := loadSlice[schema.UseCase](r.store, keyCases)
	if err != nil {
		return err
	}
	for i := range cases {
		if cases[i].ID == id {
			cases = append(cases[:i], cases[i+1:]...)
			return saveSlice(r.store, keyCases, cases)
		}
	}
	return fmt.Errorf("use case %q: %w", id, ErrNotFound)
}

// --- Companies ---

// ListCompanies returns all companies.
func (r *Repo) ListCompanies() ([]schema.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return loadSlice[schema.Company](r.store, keyCompanies)
}

// GetCompany returns one company by id.
func (r *Repo) GetCompany(id string) (*schema.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	companies, err := loadSlice[schema.Company](r.store, keyCompanies)
	if err != nil {
		return nil, err
	}
	for i := range companies {
		if companies[i].ID == id {
			return &companies[i], nil
		}
	}
	return nil, fmt.Errorf("company %q: %w", id, ErrNotFound)
}

// SaveCompany inserts or replaces a company.
func (r *Repo) SaveCompany(company *schema.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	if company.CreatedAt.IsZero() {
		company.CreatedAt = time.Now().UTC()
	}

	companies, err := loadSlice[schema.Company](r.store, keyCompanies)
	if err != nil {
		return err
	}
	replaced := false
	for i := range companies {
		if companies[i].ID == company.ID {
			companies[i] = *company
			replaced = true
			break
		}
	}
	if !replaced {
		companies = append(companies, *company)
	}
	return saveSlice(r.store, keyCompanies, companies)
}

// DeleteCompany removes a company. Folders and use cases referencing
// it are left alone; only the active pointer is cleared when it
// pointed at the deleted company.
func (r *Repo) DeleteCompany(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	companies, err := loadSlice[schema.Company](r.store, keyCompanies)
	if err != nil {
		return err
	}
	idx := -1
	for i := range companies {
		if companies[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("company %q: %w", id, ErrNotFound)
	}
	companies = append(companies[:idx], companies[idx+1:]...)
	if err := saveSlice(r.store, keyCompanies, companies); err != nil {
		return err
	}

	state, err := r.loadState()
	if err != nil {
		return err
	}
	if state.ActiveCompanyID == id {
		state.ActiveCompanyID = ""
		return r.saveState(state)
	}
	return nil
}

// ActiveCompanyID returns the active company pointer, which may be empty.
func (r *Repo) ActiveCompanyID() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, err := r.loadState()
	if err != nil {
		return "", err
	}
	return state.ActiveCompanyID, nil
}

// SetActiveCompanyID points the active company at an existing company,
// or clears the pointer when id is empty.
func (r *Repo) SetActiveCompanyID(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id != "" {
		companies, err := loadSlice[schema.Company](r.store, keyCompanies)
		if err != nil {
			return err
		}
		found := false
		for i := range companies {
			if companies[i].ID == id {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("company %q: %w", id, ErrNotFound)
		}
	}
	state, err := r.loadState()
	if err != nil {
		return err
	}
	state.ActiveCompanyID = id
	return r.saveState(state)
}

// --- Business processes ---

// ListProcesses returns all business processes.
func (r *Repo) ListProcesses() ([]schema.BusinessProcess, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return loadSlice[schema.BusinessProcess](r.store, keyProcesses)
}

// SaveProcess inserts or replaces a business process.
func (r *Repo) SaveProcess(process *schema.BusinessProcess) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if process.ID == "" {
		process.ID = uuid.NewString()
	}
	processes, err := loadSlice[schema.BusinessProcess](r.store, keyProcesses)
	if err != nil {
		return err
	}
	replaced := false
	for i := range processes {
		if processes[i].ID == process.ID {
			processes[i] = *process
			replaced = true
			break
		}
	}
	if !replaced {
		processes = append(processes, *process)
	}
	return saveSlice(r.store, keyProcesses, processes)
}

// --- State and serialization helpers ---

func (r *Repo) loadState() (*appState, error) {
	data, found, err := r.store.Load(keyState)
	if err != nil {
		return nil, fmt.Errorf("load app state: %w", err)
	}
	state := &appState{}
	if !found {
		return state, nil
	}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("decode app state: %w", err)
	}
	return state, nil
}

func (r *Repo) saveState(state *appState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode app state: %w", err)
	}
	return r.store.Save(keyState, data)
}

// loadSlice decodes a JSON-encoded collection from the store. Absent
// keys decode to an empty collection.
func loadSlice[T any](store contract.KVStore, key string) ([]T, error) {
	data, found, err := store.Load(key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !found {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

// saveSlice encodes and persists a collection.
func saveSlice[T any](store contract.KVStore, key string, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Save(key, data)
}
