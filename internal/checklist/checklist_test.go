package checklist

import (
	"context"
	"errors"
	"testing"

	"vistonomade/pkg/types"
)

type inlineTasker struct{}

func (inlineTasker) Go(name string, fn func(ctx context.Context) error) {
	_ = fn(context.Background())
}

type fakeSaver struct {
	snapshots [][]types.ChecklistItem
}

func (f *fakeSaver) SaveChecklist(items []types.ChecklistItem) error {
	f.snapshots = append(f.snapshots, items)
	return nil
}

type fakeRemote struct {
	fail    bool
	upserts int
	email   string
}

func (f *fakeRemote) UpsertChecklist(_ context.Context, email string, _ []types.ChecklistItem) error {
	if f.fail {
		return errors.New("network down")
	}
	f.upserts++
	f.email = email
	return nil
}

func newTestBoard(tier types.MemberTier) (*Board, *fakeSaver, *fakeRemote) {
	saver := &fakeSaver{}
	remote := &fakeRemote{}
	board := NewBoard(tier, saver, remote, inlineTasker{})
	board.SetEmail("ana@example.com")
	return board, saver, remote
}

func TestOverallProgress_EmptyBoard(t *testing.T) {
	board := NewBoard(types.TierFree, nil, nil, nil)
	board.Restore(nil)

	if got := board.OverallProgress(); got != 0 {
		t.Errorf("OverallProgress() = %d, want 0 for empty board", got)
	}
}

func TestFinalized_RequiresSubSteps(t *testing.T) {
	tests := []struct {
		name string
		item types.ChecklistItem
		want bool
	}{
		{
			"completed without required translation",
			types.ChecklistItem{IsCompleted: true, NeedsTranslation: true},
			false,
		},
		{
			"completed with translation done",
			types.ChecklistItem{IsCompleted: true, NeedsTranslation: true, IsTranslated: true},
			true,
		},
		{
			"completed with apostille pending",
			types.ChecklistItem{IsCompleted: true, NeedsApostille: true},
			false,
		},
		{
			"not completed even with sub-steps done",
			types.ChecklistItem{NeedsTranslation: true, IsTranslated: true},
			false,
		},
		{
			"no sub-requirements",
			types.ChecklistItem{IsCompleted: true},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.Finalized(); got != tt.want {
				t.Errorf("Finalized() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToggle_FinalizesAfterTranslation(t *testing.T) {
	board, _, _ := newTestBoard(types.TierFree)
	board.Restore([]types.ChecklistItem{
		{ID: "doc", Title: "Certidão", NeedsTranslation: true, IsCompleted: true},
	})

	if got := board.OverallProgress(); got != 0 {
		t.Fatalf("progress before translation = %d, want 0", got)
	}

	if err := board.Toggle("doc", FieldTranslated); err != nil {
		t.Fatal(err)
	}

	if got := board.OverallProgress(); got != 100 {
		t.Errorf("progress after translation = %d, want 100", got)
	}
}

func TestToggle_UnknownIDIsNoOp(t *testing.T) {
	board, saver, _ := newTestBoard(types.TierFree)
	before := board.Items()

	if err := board.Toggle("nope", FieldCompleted); err != nil {
		t.Fatal(err)
	}

	after := board.Items()
	if len(before) != len(after) {
		t.Fatal("item list changed on unknown id")
	}
	if len(saver.snapshots) != 0 {
		t.Errorf("unknown id caused %d persist calls, want 0", len(saver.snapshots))
	}
}

func TestToggle_UnknownField(t *testing.T) {
	board, _, _ := newTestBoard(types.TierFree)

	err := board.Toggle(SystemCatalog[0].ID, ToggleField("needs_translation"))
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("err = %v, want ErrUnknownField", err)
	}
}

func TestDeleteItem_SystemItemUnchanged(t *testing.T) {
	board, _, _ := newTestBoard(types.TierFree)
	before := len(board.Items())

	err := board.DeleteItem(SystemCatalog[0].ID)
	if !errors.Is(err, ErrSystemItem) {
		t.Fatalf("err = %v, want ErrSystemItem", err)
	}

	if got := len(board.Items()); got != before {
		t.Errorf("list length = %d, want %d (unchanged)", got, before)
	}
}

func TestDeleteItem_Personal(t *testing.T) {
	board, _, _ := newTestBoard(types.TierFree)

	item, err := board.AddPersonalItem("Reservar voo", "", types.CategoryPessoal)
	if err != nil {
		t.Fatal(err)
	}

	if err := board.DeleteItem(item.ID); err != nil {
		t.Fatal(err)
	}

	for _, it := range board.Items() {
		if it.ID == item.ID {
			t.Error("personal item still present after delete")
		}
	}
}

func TestAddPersonalItem_FreeTierCap(t *testing.T) {
	board, _, _ := newTestBoard(types.TierFree)

	for i := 0; i < 10; i++ {
		if _, err := board.AddPersonalItem("Item", "", types.CategoryPessoal); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	_, err := board.AddPersonalItem("Um a mais", "", types.CategoryPessoal)
	if !errors.Is(err, ErrPersonalItemCap) {
		t.Errorf("err = %v, want ErrPersonalItemCap", err)
	}
}

func TestSetTier_LiftsAndRestoresCap(t *testing.T) {
	board, _, _ := newTestBoard(types.TierFree)

	for i := 0; i < 10; i++ {
		if _, err := board.AddPersonalItem("Item", "", types.CategoryPessoal); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	if _, err := board.AddPersonalItem("Bloqueado", "", types.CategoryPessoal); !errors.Is(err, ErrPersonalItemCap) {
		t.Fatalf("err = %v, want ErrPersonalItemCap", err)
	}

	board.SetTier(types.TierPremium)
	if _, err := board.AddPersonalItem("Liberado", "", types.CategoryPessoal); err != nil {
		t.Fatalf("add after upgrade: %v", err)
	}

	board.SetTier(types.TierFree)
	if _, err := board.AddPersonalItem("Bloqueado de novo", "", types.CategoryPessoal); !errors.Is(err, ErrPersonalItemCap) {
		t.Errorf("err = %v, want ErrPersonalItemCap after downgrade", err)
	}
}

func TestAddPersonalItem_PremiumUncapped(t *testing.T) {
	board, _, _ := newTestBoard(types.TierPremium)

	for i := 0; i < 25; i++ {
		if _, err := board.AddPersonalItem("Item", "", types.CategoryPessoal); err != nil {
			t.Fatalf("add %d on premium: %v", i, err)
		}
	}
}

func TestMutationsPersistAndSync(t *testing.T) {
	board, saver, remote := newTestBoard(types.TierFree)

	if err := board.Toggle(SystemCatalog[0].ID, FieldCompleted); err != nil {
		t.Fatal(err)
	}

	if len(saver.snapshots) != 1 {
		t.Errorf("local snapshots = %d, want 1", len(saver.snapshots))
	}
	if remote.upserts != 1 {
		t.Errorf("remote upserts = %d, want 1", remote.upserts)
	}
	if remote.email != "ana@example.com" {
		t.Errorf("remote keyed by %q, want ana@example.com", remote.email)
	}
}

func TestSyncFailureKeepsLocalAuthoritative(t *testing.T) {
	saver := &fakeSaver{}
	remote := &fakeRemote{fail: true}
	board := NewBoard(types.TierFree, saver, remote, inlineTasker{})
	board.SetEmail("ana@example.com")

	if err := board.Toggle(SystemCatalog[0].ID, FieldCompleted); err != nil {
		t.Fatalf("toggle must not surface sync failures, got %v", err)
	}

	for _, it := range board.Items() {
		if it.ID == SystemCatalog[0].ID && !it.IsCompleted {
			t.Error("local state lost after sync failure")
		}
	}
}

func TestNoRemoteSyncWithoutEmail(t *testing.T) {
	saver := &fakeSaver{}
	remote := &fakeRemote{}
	board := NewBoard(types.TierFree, saver, remote, inlineTasker{})

	if err := board.Toggle(SystemCatalog[0].ID, FieldCompleted); err != nil {
		t.Fatal(err)
	}

	if remote.upserts != 0 {
		t.Errorf("remote upserts = %d, want 0 before an identifier is known", remote.upserts)
	}
	if len(saver.snapshots) != 1 {
		t.Errorf("local snapshots = %d, want 1", len(saver.snapshots))
	}
}

func TestProgress_MixedBoard(t *testing.T) {
	board, _, _ := newTestBoard(types.TierFree)
	board.Restore([]types.ChecklistItem{
		{ID: "a", IsCompleted: true},
		{ID: "b", IsCompleted: true, NeedsApostille: true, IsApostilled: true},
		{ID: "c"},
		{ID: "d", IsCompleted: true, NeedsTranslation: true},
	})

	// 2 finalized out of 4.
	if got := board.OverallProgress(); got != 50 {
		t.Errorf("OverallProgress() = %d, want 50", got)
	}
}
