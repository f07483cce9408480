package store

import (
	"sync"

	"github.com/nathanyu/accounts-service/internal/domain"
)

// AccountStore owns every account, keyed by id. Insertion and lookup are safe
// under concurrent transfers; contention here is low because balance mutation
// is serialized on the per-account locks, not on this map.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// NewAccountStore creates an empty store.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[string]*domain.Account),
	}
}

// Create inserts the account if its id is free. A taken id fails with
// DuplicateAccountError and leaves the store unchanged.
func (s *AccountStore) Create(account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.ID()]; exists {
		return &domain.DuplicateAccountError{ID: account.ID()}
	}

	s.accounts[account.ID()] = account
	return nil
}

// Get returns the account for id. Absence is a normal outcome reported via
// the bool, not an error; transfer validation treats it as a violation.
func (s *AccountStore) Get(id string) (*domain.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	return account, ok
}

// Len returns the number of accounts.
func (s *AccountStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// Snapshots returns a consistent copy of every account, each snapshot taken
// under its own account lock.
func (s *AccountStore) Snapshots() []domain.AccountSnapshot {
	s.mu.RLock()
	accounts := make([]*domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		accounts = append(accounts, a)
	}
	s.mu.RUnlock()

	snapshots := make([]domain.AccountSnapshot, len(accounts))
	for i, a := range accounts {
		snapshots[i] = a.Snapshot()
	}
	return snapshots
}

// Clear empties the store. Test support only.
func (s *AccountStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = make(map[string]*domain.Account)
}
