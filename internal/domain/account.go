package domain

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Account is the unit of mutual exclusion: the balance may only be read or
// written while the account's own lock is held. The transfer coordinator
// acquires two of these locks in a global order; everyone else should go
// through Snapshot for a consistent single-account read.
type Account struct {
	mu      sync.Mutex
	id      string
	balance decimal.Decimal
}

// NewAccount creates an account with an initial balance.
func NewAccount(id string, balance decimal.Decimal) *Account {
	return &Account{id: id, balance: balance}
}

// ID returns the immutable account identifier.
func (a *Account) ID() string { return a.id }

// Lock acquires the account's lock.
func (a *Account) Lock() { a.mu.Lock() }

// Unlock releases the account's lock.
func (a *Account) Unlock() { a.mu.Unlock() }

// Balance returns the current balance. The caller must hold the account's
// lock; an unlocked read may race with an in-flight transfer.
func (a *Account) Balance() decimal.Decimal { return a.balance }

// SetBalance replaces the balance. The caller must hold the account's lock.
func (a *Account) SetBalance(balance decimal.Decimal) { a.balance = balance }

// Snapshot takes the account's lock and returns a consistent copy of id and
// balance. Safe to call concurrently with transfers.
func (a *Account) Snapshot() AccountSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return AccountSnapshot{ID: a.id, Balance: a.balance}
}

// SnapshotLocked is Snapshot without locking, for callers already inside the
// coordinator's critical section.
func (a *Account) SnapshotLocked() AccountSnapshot {
	return AccountSnapshot{ID: a.id, Balance: a.balance}
}

// AccountSnapshot is an immutable view of an account at a point in time.
type AccountSnapshot struct {
	ID      string          `json:"account_id"`
	Balance decimal.Decimal `json:"balance"`
}

func (s AccountSnapshot) String() string {
	return fmt.Sprintf("Account(id=%s, balance=%s)", s.ID, s.Balance)
}
