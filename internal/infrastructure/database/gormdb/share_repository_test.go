package gormdb

import (
	"context"
	"errors"
	"testing"

	"shopping-list-api/internal/domain/share"
	"shopping-list-api/pkg/pagination"
)

func TestShareRepositoryGrants(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	lists := NewShoppingListRepository(db)
	repo := NewShareRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, users, "alice")
	bob := createTestUser(t, users, "bob")
	carol := createTestUser(t, users, "carol")
	list := createTestList(t, lists, alice.ID, "groceries")

	if err := repo.Create(ctx, &share.Grant{ListID: list.ID, OwnerID: alice.ID, FriendID: bob.ID}); err != nil {
		t.Fatalf("expected share to succeed, got %v", err)
	}
	reversed := &share.Grant{ListID: list.ID, OwnerID: bob.ID, FriendID: alice.ID}
	if err := repo.Create(ctx, reversed); !errors.Is(err, share.ErrGrantExists) {
		t.Fatalf("expected pair index to reject reversed grant, got %v", err)
	}

	exists, err := repo.ExistsBetween(ctx, list.ID, bob.ID, alice.ID)
	if err != nil || !exists {
		t.Fatalf("expected grant to exist in either orientation, got %v (%v)", exists, err)
	}

	if ok, _ := repo.IsParticipant(ctx, list.ID, alice.ID); !ok {
		t.Fatal("expected the owner to participate")
	}
	if ok, _ := repo.IsParticipant(ctx, list.ID, bob.ID); !ok {
		t.Fatal("expected bob to participate")
	}
	if ok, _ := repo.IsParticipant(ctx, list.ID, carol.ID); ok {
		t.Fatal("expected carol not to participate")
	}

	deleted, err := repo.DeleteBetween(ctx, list.ID, carol.ID, alice.ID)
	if err != nil || deleted != 0 {
		t.Fatalf("expected nothing deleted for carol, got %d (%v)", deleted, err)
	}
	deleted, err = repo.DeleteBetween(ctx, list.ID, bob.ID, alice.ID)
	if err != nil || deleted != 1 {
		t.Fatalf("expected one grant deleted, got %d (%v)", deleted, err)
	}
}

func TestShareRepositoryDeleteAllForParticipant(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	lists := NewShoppingListRepository(db)
	repo := NewShareRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, users, "alice")
	bob := createTestUser(t, users, "bob")
	carol := createTestUser(t, users, "carol")
	list := createTestList(t, lists, alice.ID, "groceries")
	other := createTestList(t, lists, alice.ID, "party")

	for _, g := range []*share.Grant{
		{ListID: list.ID, OwnerID: alice.ID, FriendID: bob.ID},
		{ListID: list.ID, OwnerID: alice.ID, FriendID: carol.ID},
		{ListID: other.ID, OwnerID: alice.ID, FriendID: bob.ID},
	} {
		if err := repo.Create(ctx, g); err != nil {
			t.Fatalf("failed sharing: %v", err)
		}
	}

	deleted, err := repo.DeleteAllForParticipant(ctx, list.ID, alice.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected both grants on the list removed, got %d", deleted)
	}
	if ok, _ := repo.IsParticipant(ctx, other.ID, bob.ID); !ok {
		t.Fatal("expected grants on other lists to survive")
	}
}

func TestShareRepositoryListSharedWith(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	lists := NewShoppingListRepository(db)
	repo := NewShareRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, users, "alice")
	bob := createTestUser(t, users, "bob")

	groceries := createTestList(t, lists, alice.ID, "groceries")
	bbq := createTestList(t, lists, alice.ID, "bbq")
	createTestList(t, lists, alice.ID, "private")
	tools := createTestList(t, lists, bob.ID, "tools")

	for _, g := range []*share.Grant{
		{ListID: groceries.ID, OwnerID: alice.ID, FriendID: bob.ID},
		{ListID: bbq.ID, OwnerID: alice.ID, FriendID: bob.ID},
		{ListID: tools.ID, OwnerID: bob.ID, FriendID: alice.ID},
	} {
		if err := repo.Create(ctx, g); err != nil {
			t.Fatalf("failed sharing: %v", err)
		}
	}

	shared, total, err := repo.ListSharedWith(ctx, bob.ID, pagination.Params{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(shared) != 2 {
		t.Fatalf("expected 2 lists shared with bob, got %d (total %d)", len(shared), total)
	}
	if shared[0].Name != "bbq" || shared[1].Name != "groceries" {
		t.Fatalf("expected lists ordered by name, got %s, %s", shared[0].Name, shared[1].Name)
	}

	searched, _, err := repo.ListSharedWith(ctx, bob.ID, pagination.Params{Page: 1, Limit: 10, Query: "GROC"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(searched) != 1 || searched[0].ID != groceries.ID {
		t.Fatalf("expected only groceries, got %+v", searched)
	}

	aliceShared, _, err := repo.ListSharedWith(ctx, alice.ID, pagination.Params{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(aliceShared) != 1 || aliceShared[0].ID != tools.ID {
		t.Fatalf("expected alice to see only bob's list, got %+v", aliceShared)
	}
}
