package db

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"wordnest/internal/models"
)

func TestUpsertUser_Create(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := &models.User{
		Sub:     "test-sub-123",
		Email:   "test@example.com",
		Name:    "Test User",
		Picture: "https://example.com/avatar.png",
	}

	err := db.UpsertUser(ctx, user)
	if err != nil {
		t.Fatalf("UpsertUser() error = %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("UpsertUser() did not set ID")
	}
}

func TestUpsertUser_Update(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := &models.User{
		Sub:   "update-sub-123",
		Email: "original@example.com",
		Name:  "Original Name",
	}
	if err := db.UpsertUser(ctx, user); err != nil {
		t.Fatalf("UpsertUser() create error = %v", err)
	}
	originalID := user.ID

	user.Email = "updated@example.com"
	user.Name = "Updated Name"
	if err := db.UpsertUser(ctx, user); err != nil {
		t.Fatalf("UpsertUser() update error = %v", err)
	}

	// ID should be the same
	if user.ID != originalID {
		t.Errorf("UpsertUser() changed ID from %v to %v", originalID, user.ID)
	}

	fetched, err := db.GetUserBySub(ctx, "update-sub-123")
	if err != nil {
		t.Fatalf("GetUserBySub() error = %v", err)
	}
	if fetched.Email != "updated@example.com" {
		t.Errorf("UpsertUser() email = %q, want %q", fetched.Email, "updated@example.com")
	}
	if fetched.Name != "Updated Name" {
		t.Errorf("UpsertUser() name = %q, want %q", fetched.Name, "Updated Name")
	}
}

func TestGetUserBySub(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := createTestUser(t, db, "get-sub-123")

	found, err := db.GetUserBySub(ctx, "get-sub-123")
	if err != nil {
		t.Fatalf("GetUserBySub() error = %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("GetUserBySub() id = %v, want %v", found.ID, user.ID)
	}

	// Not found
	_, err = db.GetUserBySub(ctx, "non-existent")
	if err != ErrUserNotFound {
		t.Errorf("GetUserBySub() error = %v, want ErrUserNotFound", err)
	}
}

func TestGetUserByID(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := createTestUser(t, db, "id-sub-123")

	found, err := db.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if found.Sub != "id-sub-123" {
		t.Errorf("GetUserByID() sub = %q, want %q", found.Sub, "id-sub-123")
	}

	// Not found
	_, err = db.GetUserByID(ctx, uuid.New())
	if err != ErrUserNotFound {
		t.Errorf("GetUserByID() error = %v, want ErrUserNotFound", err)
	}
}

func TestListUsers(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	self := createTestUser(t, db, "list-self")
	other1 := createTestUser(t, db, "list-other-a")
	other2 := createTestUser(t, db, "list-other-b")

	users, err := db.ListUsers(ctx, self.ID)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("ListUsers() returned %d users, want 2", len(users))
	}

	for _, u := range users {
		if u.ID == self.ID {
			t.Error("ListUsers() included the excluded user")
		}
		if u.ID != other1.ID && u.ID != other2.ID {
			t.Errorf("ListUsers() returned unexpected user %v", u.ID)
		}
	}
}
