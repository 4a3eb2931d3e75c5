package gormdb

import (
	"context"
	"testing"

	"shopping-list-api/internal/domain/shoppinglist"
	"shopping-list-api/internal/domain/user"

	"github.com/google/uuid"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := db.Migrate(); err != nil {
		t.Fatalf("failed migrating test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, repo user.Repository, username string) *user.User {
	t.Helper()

	u := &user.User{
		Username:       username,
		Email:          username + "@example.com",
		PasswordHashed: "hash",
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("failed creating user %s: %v", username, err)
	}
	return u
}

func createTestList(t *testing.T, repo shoppinglist.ListRepository, ownerID uuid.UUID, name string) *shoppinglist.ShoppingList {
	t.Helper()

	list := &shoppinglist.ShoppingList{OwnerID: ownerID, Name: name, Description: name + " things"}
	if err := repo.Create(context.Background(), list); err != nil {
		t.Fatalf("failed creating list %s: %v", name, err)
	}
	return list
}

func createTestItem(t *testing.T, repo shoppinglist.ItemRepository, listID uuid.UUID, name string) *shoppinglist.Item {
	t.Helper()

	item := &shoppinglist.Item{ListID: listID, Name: name, Quantity: 2, UnitPrice: 1.5}
	if err := repo.Create(context.Background(), item); err != nil {
		t.Fatalf("failed creating item %s: %v", name, err)
	}
	return item
}
