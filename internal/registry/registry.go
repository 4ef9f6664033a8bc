// Package registry implements the owned store of batch records.
//
// Batches live in an arena indexed by a dense identifier starting at 1. Callers only ever hold
// identifiers and deep copies; the records themselves never leave the registry.
package registry

import (
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/SwiftBridge/swift-batch-transactions-contract/types"
)

var ErrNotFound = errors.New("batch not found")

// Registry stores batches and the per-creator index of batch identifiers.
type Registry struct {
	mu        sync.RWMutex
	batches   []types.Batch
	byCreator map[common.Address][]uint64
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byCreator: make(map[common.Address][]uint64),
	}
}

// Insert allocates the next identifier, stores a copy of b under it and appends the identifier to
// the creator's list. Any ID already set on b is ignored.
func (r *Registry) Insert(b types.Batch) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	b = b.Clone()
	b.ID = uint64(len(r.batches)) + 1
	r.batches = append(r.batches, b)
	r.byCreator[b.Creator] = append(r.byCreator[b.Creator], b.ID)

	return b.ID
}

// Get returns a copy of the batch with the given identifier.
func (r *Registry) Get(id uint64) (types.Batch, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.lookup(id)
	if !ok {
		return types.Batch{}, false
	}

	return b.Clone(), true
}

// Update applies fn to a copy of the batch and stores the copy only if fn succeeds, so a failed
// update leaves the record untouched. The identifier and creator cannot be changed.
func (r *Registry) Update(id uint64, fn func(b *types.Batch) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.lookup(id)
	if !ok {
		return ErrNotFound
	}

	b := stored.Clone()
	if err := fn(&b); err != nil {
		return err
	}
	b.ID = stored.ID
	b.Creator = stored.Creator
	r.batches[id-1] = b

	return nil
}

// Count returns the number of identifiers ever allocated.
func (r *Registry) Count() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return uint64(len(r.batches))
}

// CreatorCount returns how many batches creator has created.
func (r *Registry) CreatorCount(creator common.Address) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return uint64(len(r.byCreator[creator]))
}

// CreatorBatches returns up to limit identifiers created by creator, starting at offset, in
// creation order. It returns an empty slice when offset is at or past the creator's count.
func (r *Registry) CreatorBatches(creator common.Address, offset, limit uint64) []uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byCreator[creator]
	total := uint64(len(ids))
	if offset >= total {
		return []uint64{}
	}

	end := total
	if limit < total-offset {
		end = offset + limit
	}

	out := make([]uint64, end-offset)
	copy(out, ids[offset:end])

	return out
}

func (r *Registry) lookup(id uint64) (types.Batch, bool) {
	if id == 0 || id > uint64(len(r.batches)) {
		return types.Batch{}, false
	}

	return r.batches[id-1], true
}
