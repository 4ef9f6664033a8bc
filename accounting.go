package swiftbatch

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// savingsLedger accumulates the lifetime gas saved per batch creator.
type savingsLedger struct {
	mu    sync.RWMutex
	saved map[common.Address]uint64
}

func newSavingsLedger() *savingsLedger {
	return &savingsLedger{saved: make(map[common.Address]uint64)}
}

func (s *savingsLedger) credit(account common.Address, amount uint64) {
	if amount == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	total := s.saved[account] + amount
	if total < amount {
		total = ^uint64(0)
	}
	s.saved[account] = total
}

func (s *savingsLedger) total(account common.Address) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.saved[account]
}

// gasSaved is the unspent share of the estimated gas, floored at zero.
func gasSaved(estimated, used uint64) uint64 {
	if used >= estimated {
		return 0
	}

	return estimated - used
}
