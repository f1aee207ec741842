package sqlstore

import (
	"context"
	"testing"

	"github.com/XZCh722aris/localchat/internal/models"
)

func TestCreateAndListPosts(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()
	ctx := context.Background()

	alice := mustRegister(t, "alice")
	bob := mustRegister(t, "bob")

	if _, err := testStore.CreatePost(ctx, alice, "first post", nil); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	ref := &models.Media{Path: "posts/images/pic.png", Kind: models.MediaImage}
	if _, err := testStore.CreatePost(ctx, bob, "with media", ref); err != nil {
		t.Fatalf("CreatePost with media failed: %v", err)
	}

	posts, err := testStore.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("Expected 2 posts, got %d", len(posts))
	}

	// Newest first.
	if posts[0].Username != "bob" || posts[0].Media == nil {
		t.Errorf("Expected bob's media post first, got %+v", posts[0])
	}
	if posts[1].Username != "alice" || posts[1].Content != "first post" {
		t.Errorf("Expected alice's post second, got %+v", posts[1])
	}
}

func TestCreatePostRequiresContentOrMedia(t *testing.T) {
	SetupTestDB(t)
	defer TeardownTestDB()

	alice := mustRegister(t, "alice")
	if _, err := testStore.CreatePost(context.Background(), alice, "", nil); err == nil {
		t.Error("Expected error for empty post, got nil")
	}
}
