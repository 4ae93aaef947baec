package checklist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"vistonomade/internal/utils"
	"vistonomade/pkg/types"
)

// ToggleField names the boolean a Toggle call flips. The Needs* requirement
// flags are fixed at creation and are not toggleable.
type ToggleField string

const (
	FieldCompleted  ToggleField = "is_completed"
	FieldTranslated ToggleField = "is_translated"
	FieldApostilled ToggleField = "is_apostilled"
)

var (
	ErrUnknownField    = errors.New("unknown toggle field")
	ErrPersonalItemCap = errors.New("personal item limit reached")
	ErrSystemItem      = errors.New("system items cannot be deleted")
)

// Saver persists a snapshot of the board locally after every mutation. The
// local copy stays authoritative for the session.
type Saver interface {
	SaveChecklist(items []types.ChecklistItem) error
}

// RemoteStore is the best-effort external copy, keyed by the user's email.
type RemoteStore interface {
	UpsertChecklist(ctx context.Context, email string, items []types.ChecklistItem) error
}

// Tasker runs a named background task without blocking the caller.
type Tasker interface {
	Go(name string, fn func(ctx context.Context) error)
}

// Board holds one user's checklist items and derives the completion metric.
// Every mutation snapshots to the local saver and queues a fire-and-forget
// sync to the remote store once an email is known. Sync failures are logged
// by the task runner, never retried, and never surfaced to the user.
type Board struct {
	mu    sync.Mutex
	items []types.ChecklistItem
	email string
	tier  types.MemberTier

	saver  Saver
	remote RemoteStore
	tasks  Tasker
}

// NewBoard seeds a board with the system catalog.
func NewBoard(tier types.MemberTier, saver Saver, remote RemoteStore, tasks Tasker) *Board {
	return &Board{
		items:  NewSystemItems(),
		tier:   tier,
		saver:  saver,
		remote: remote,
		tasks:  tasks,
	}
}

// Restore replaces the board contents with a previously persisted item list.
func (b *Board) Restore(items []types.ChecklistItem) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = make([]types.ChecklistItem, len(items))
	copy(b.items, items)
}

// SetEmail records the identifier used to key remote syncs.
func (b *Board) SetEmail(email string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.email = email
}

// SetTier updates the membership tier the personal-item cap is read from.
func (b *Board) SetTier(tier types.MemberTier) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tier = tier
}

// Items returns a copy of the current item list.
func (b *Board) Items() []types.ChecklistItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]types.ChecklistItem, len(b.items))
	copy(out, b.items)
	return out
}

// Toggle flips the named completion flag on the item with the given id. An
// unknown id is a no-op, not a fault.
func (b *Board) Toggle(itemID string, field ToggleField) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := -1
	for i := range b.items {
		if b.items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	switch field {
	case FieldCompleted:
		b.items[idx].IsCompleted = !b.items[idx].IsCompleted
	case FieldTranslated:
		b.items[idx].IsTranslated = !b.items[idx].IsTranslated
	case FieldApostilled:
		b.items[idx].IsApostilled = !b.items[idx].IsApostilled
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	b.persistLocked()
	return nil
}

// AddPersonalItem creates a user-defined item with no sub-requirements.
// Free-tier boards are capped; premium boards are not.
func (b *Board) AddPersonalItem(title, description string, category types.ChecklistCategory) (*types.ChecklistItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cap := b.tier.PersonalItemCap(); cap >= 0 {
		personal := 0
		for i := range b.items {
			if b.items[i].IsPersonal {
				personal++
			}
		}
		if personal >= cap {
			return nil, fmt.Errorf("%w: %d items on tier %s", ErrPersonalItemCap, cap, b.tier)
		}
	}

	item := types.ChecklistItem{
		ID:          utils.NanoIDSize(12),
		Title:       title,
		Category:    category,
		Description: description,
		IsPersonal:  true,
	}
	b.items = append(b.items, item)

	b.persistLocked()
	return &item, nil
}

// DeleteItem removes a personal item. Deleting a system item is rejected
// explicitly and leaves the list unchanged; an unknown id is a no-op.
func (b *Board) DeleteItem(itemID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.items {
		if b.items[i].ID != itemID {
			continue
		}
		if !b.items[i].IsPersonal {
			return ErrSystemItem
		}
		b.items = append(b.items[:i], b.items[i+1:]...)
		b.persistLocked()
		return nil
	}

	return nil
}

// OverallProgress is the finalized share of the board, 0–100. Derived on
// every call, never stored. An empty board reports 0.
func (b *Board) OverallProgress() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return progress(b.items)
}

func progress(items []types.ChecklistItem) int {
	if len(items) == 0 {
		return 0
	}
	finalized := 0
	for i := range items {
		if items[i].Finalized() {
			finalized++
		}
	}
	return finalized * 100 / len(items)
}

// persistLocked snapshots locally and queues the remote sync. Caller holds
// the lock; the snapshot is taken before the task runs so the sync writes a
// consistent copy.
func (b *Board) persistLocked() {
	snapshot := make([]types.ChecklistItem, len(b.items))
	copy(snapshot, b.items)
	email := b.email

	if b.saver != nil {
		// Local save failures degrade durability only; the in-memory list
		// stays authoritative for the session.
		_ = b.saver.SaveChecklist(snapshot)
	}

	if b.remote == nil || b.tasks == nil || email == "" {
		return
	}

	b.tasks.Go("checklist.sync", func(ctx context.Context) error {
		return b.remote.UpsertChecklist(ctx, email, snapshot)
	})
}
