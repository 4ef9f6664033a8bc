package swiftbatch

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// accessControl is the owner-or-allowlist authorization policy.
type accessControl struct {
	mu        sync.RWMutex
	owner     common.Address
	executors map[common.Address]struct{}
}

func newAccessControl(owner common.Address) *accessControl {
	return &accessControl{
		owner:     owner,
		executors: make(map[common.Address]struct{}),
	}
}

func (a *accessControl) Owner() common.Address {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.owner
}

// IsExecutor reports whether account may trigger batch execution. The owner always may.
func (a *accessControl) IsExecutor(account common.Address) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if account == a.owner {
		return true
	}
	_, ok := a.executors[account]

	return ok
}

func (a *accessControl) requireOwner(caller common.Address) error {
	if caller != a.Owner() {
		return NewAuthorizationError(caller, ErrNotOwner)
	}

	return nil
}

func (a *accessControl) requireExecutor(caller common.Address) error {
	if !a.IsExecutor(caller) {
		return NewAuthorizationError(caller, ErrNotExecutor)
	}

	return nil
}

func (a *accessControl) authorize(account common.Address) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.executors[account] = struct{}{}
}

func (a *accessControl) revoke(account common.Address) {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.executors, account)
}

func (a *accessControl) transferOwnership(newOwner common.Address) common.Address {
	a.mu.Lock()
	defer a.mu.Unlock()

	previous := a.owner
	a.owner = newOwner

	return previous
}
