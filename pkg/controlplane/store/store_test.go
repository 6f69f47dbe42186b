//go:build integration

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/filehaven/filehaven/pkg/controlplane/models"
)

// createTestStore creates an in-memory SQLite store for testing.
func createTestStore(t *testing.T) *GORMStore {
	t.Helper()
	store, err := New(&Config{
		Type: DatabaseTypeSQLite,
		SQLite: SQLiteConfig{
			Path: ":memory:",
		},
	})
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return store
}

func createTestUser(t *testing.T, store *GORMStore, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		PasswordHash: "hashed-password",
		Enabled:      true,
		Role:         "user",
	}
	if _, err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func TestNew(t *testing.T) {
	t.Run("default config uses sqlite", func(t *testing.T) {
		config := &Config{}
		config.ApplyDefaults()

		if config.Type != DatabaseTypeSQLite {
			t.Errorf("expected SQLite, got %s", config.Type)
		}
	})

	t.Run("invalid config returns error", func(t *testing.T) {
		config := &Config{
			Type: "invalid",
		}
		_, err := New(config)
		if err == nil {
			t.Error("expected error for invalid config")
		}
	})

	t.Run("creates in-memory store", func(t *testing.T) {
		store := createTestStore(t)
		defer store.Close()

		if err := store.Healthcheck(context.Background()); err != nil {
			t.Errorf("healthcheck failed: %v", err)
		}
	})
}

func TestUserOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	t.Run("create user", func(t *testing.T) {
		user := &models.User{
			Username:     "testuser",
			PasswordHash: "hashed-password",
			Role:         "user",
		}

		id, err := store.CreateUser(ctx, user)
		if err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
		if id == "" {
			t.Error("expected non-empty user ID")
		}
	})

	t.Run("duplicate user fails", func(t *testing.T) {
		user := &models.User{
			Username:     "testuser",
			PasswordHash: "other-hash",
		}
		_, err := store.CreateUser(ctx, user)
		if !errors.Is(err, models.ErrDuplicateUser) {
			t.Errorf("expected ErrDuplicateUser, got %v", err)
		}
	})

	t.Run("get user", func(t *testing.T) {
		user, err := store.GetUser(ctx, "testuser")
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}
		if user.Username != "testuser" {
			t.Errorf("expected testuser, got %s", user.Username)
		}
	})

	t.Run("get missing user", func(t *testing.T) {
		_, err := store.GetUser(ctx, "nobody")
		if !errors.Is(err, models.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("update password", func(t *testing.T) {
		if err := store.UpdatePassword(ctx, "testuser", "new-hash"); err != nil {
			t.Fatalf("failed to update password: %v", err)
		}
		user, err := store.GetUser(ctx, "testuser")
		if err != nil {
			t.Fatal(err)
		}
		if user.PasswordHash != "new-hash" {
			t.Errorf("password hash not updated")
		}
	})

	t.Run("delete user cascades", func(t *testing.T) {
		owner := createTestUser(t, store, "cascade-owner")

		volID, err := store.CreateVolume(ctx, &models.UserVolume{
			UserID:     owner.ID,
			Label:      "media",
			AccessMode: "readwrite",
			RootPath:   "/mnt/media",
		})
		if err != nil {
			t.Fatal(err)
		}

		shareID, err := store.CreateShare(ctx, &models.Share{
			OwnerID:     owner.ID,
			Source:      "volume",
			SourcePath:  "/projects",
			IsDirectory: true,
			SharingType: "anyone",
			AccessMode:  "readonly",
		})
		if err != nil {
			t.Fatal(err)
		}

		if err := store.DeleteUser(ctx, "cascade-owner"); err != nil {
			t.Fatalf("failed to delete user: %v", err)
		}

		if _, err := store.GetVolume(ctx, volID); !errors.Is(err, models.ErrVolumeNotFound) {
			t.Errorf("expected volume to be deleted, got %v", err)
		}
		if _, err := store.GetShareByID(ctx, shareID); !errors.Is(err, models.ErrShareNotFound) {
			t.Errorf("expected share to be deleted, got %v", err)
		}
	})
}

func TestValidateCredentials(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	hash, err := models.HashPassword("valid-password")
	if err != nil {
		t.Fatal(err)
	}

	user := &models.User{
		Username:     "alice",
		PasswordHash: hash,
		Enabled:      true,
	}
	if _, err := store.CreateUser(ctx, user); err != nil {
		t.Fatal(err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		got, err := store.ValidateCredentials(ctx, "alice", "valid-password")
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if got.Username != "alice" {
			t.Errorf("unexpected user %s", got.Username)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := store.ValidateCredentials(ctx, "alice", "wrong")
		if !errors.Is(err, models.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := store.ValidateCredentials(ctx, "mallory", "whatever")
		if !errors.Is(err, models.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("disabled user", func(t *testing.T) {
		user.Enabled = false
		if err := store.DB().Model(user).Update("enabled", false).Error; err != nil {
			t.Fatal(err)
		}
		_, err := store.ValidateCredentials(ctx, "alice", "valid-password")
		if !errors.Is(err, models.ErrUserDisabled) {
			t.Errorf("expected ErrUserDisabled, got %v", err)
		}
	})
}

func TestRuleOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	mkRule := func(path, perm string) string {
		t.Helper()
		id, err := store.CreateRule(ctx, &models.PathRule{
			Path:        path,
			Recursive:   true,
			Permissions: perm,
		})
		if err != nil {
			t.Fatalf("failed to create rule %s: %v", path, err)
		}
		return id
	}

	first := mkRule("/projects/secret", "hidden")
	second := mkRule("/projects", "ro")
	third := mkRule("/", "rw")

	t.Run("list preserves creation order", func(t *testing.T) {
		rules, err := store.ListRules(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(rules) != 3 {
			t.Fatalf("expected 3 rules, got %d", len(rules))
		}
		if rules[0].ID != first || rules[1].ID != second || rules[2].ID != third {
			t.Errorf("rules out of order: %s %s %s", rules[0].Path, rules[1].Path, rules[2].Path)
		}
	})

	t.Run("reorder rules", func(t *testing.T) {
		if err := store.ReorderRules(ctx, []string{third, first}); err != nil {
			t.Fatal(err)
		}
		rules, err := store.ListRules(ctx)
		if err != nil {
			t.Fatal(err)
		}
		want := []string{third, first, second}
		for i, id := range want {
			if rules[i].ID != id {
				t.Errorf("position %d: expected %s, got %s", i, id, rules[i].ID)
			}
		}
	})

	t.Run("reorder with unknown id fails", func(t *testing.T) {
		err := store.ReorderRules(ctx, []string{"no-such-rule"})
		if !errors.Is(err, models.ErrRuleNotFound) {
			t.Errorf("expected ErrRuleNotFound, got %v", err)
		}
	})

	t.Run("update rule", func(t *testing.T) {
		if err := store.UpdateRule(ctx, &models.PathRule{
			ID:          second,
			Path:        "/projects",
			Recursive:   false,
			Permissions: "rw",
		}); err != nil {
			t.Fatal(err)
		}
		rule, err := store.GetRule(ctx, second)
		if err != nil {
			t.Fatal(err)
		}
		if rule.Permissions != "rw" || rule.Recursive {
			t.Errorf("rule not updated: %+v", rule)
		}
	})

	t.Run("delete rule", func(t *testing.T) {
		if err := store.DeleteRule(ctx, third); err != nil {
			t.Fatal(err)
		}
		if err := store.DeleteRule(ctx, third); !errors.Is(err, models.ErrRuleNotFound) {
			t.Errorf("expected ErrRuleNotFound, got %v", err)
		}
	})
}

func TestVolumeOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	owner := createTestUser(t, store, "volume-owner")
	other := createTestUser(t, store, "other-user")

	t.Run("create and get by label", func(t *testing.T) {
		id, err := store.CreateVolume(ctx, &models.UserVolume{
			UserID:     owner.ID,
			Label:      "media",
			AccessMode: "readonly",
			RootPath:   "/mnt/media",
		})
		if err != nil {
			t.Fatal(err)
		}

		vol, err := store.GetVolumeByLabel(ctx, owner.ID, "media")
		if err != nil {
			t.Fatal(err)
		}
		if vol.ID != id {
			t.Errorf("expected %s, got %s", id, vol.ID)
		}
	})

	t.Run("duplicate label for same owner fails", func(t *testing.T) {
		_, err := store.CreateVolume(ctx, &models.UserVolume{
			UserID:     owner.ID,
			Label:      "media",
			AccessMode: "readwrite",
			RootPath:   "/mnt/other",
		})
		if !errors.Is(err, models.ErrDuplicateVolume) {
			t.Errorf("expected ErrDuplicateVolume, got %v", err)
		}
	})

	t.Run("same label for different owner is fine", func(t *testing.T) {
		_, err := store.CreateVolume(ctx, &models.UserVolume{
			UserID:     other.ID,
			Label:      "media",
			AccessMode: "readwrite",
			RootPath:   "/mnt/other",
		})
		if err != nil {
			t.Errorf("expected success, got %v", err)
		}
	})

	t.Run("label lookup is scoped to owner", func(t *testing.T) {
		vol, err := store.GetVolumeByLabel(ctx, other.ID, "media")
		if err != nil {
			t.Fatal(err)
		}
		if vol.UserID != other.ID {
			t.Errorf("expected volume owned by %s, got %s", other.ID, vol.UserID)
		}
	})

	t.Run("delete volume cascades to its shares", func(t *testing.T) {
		vol, err := store.GetVolumeByLabel(ctx, owner.ID, "media")
		if err != nil {
			t.Fatal(err)
		}

		shareID, err := store.CreateShare(ctx, &models.Share{
			OwnerID:     owner.ID,
			Source:      "user_volume",
			VolumeID:    vol.ID,
			SourcePath:  "/media/photos",
			IsDirectory: true,
			SharingType: "anyone",
			AccessMode:  "readonly",
		})
		if err != nil {
			t.Fatal(err)
		}

		if err := store.DeleteVolume(ctx, vol.ID); err != nil {
			t.Fatal(err)
		}
		if _, err := store.GetShareByID(ctx, shareID); !errors.Is(err, models.ErrShareNotFound) {
			t.Errorf("expected share to be deleted, got %v", err)
		}
	})
}

func TestShareOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	owner := createTestUser(t, store, "share-owner")
	grantee := createTestUser(t, store, "grantee")

	share := &models.Share{
		OwnerID:     owner.ID,
		Source:      "volume",
		SourcePath:  "/projects/report.pdf",
		SharingType: "anyone",
		AccessMode:  "readonly",
	}

	t.Run("create generates token", func(t *testing.T) {
		if _, err := store.CreateShare(ctx, share); err != nil {
			t.Fatal(err)
		}
		if share.Token == "" {
			t.Error("expected generated token")
		}
	})

	t.Run("get by token", func(t *testing.T) {
		got, err := store.GetShareByToken(ctx, share.Token)
		if err != nil {
			t.Fatal(err)
		}
		if got.ID != share.ID {
			t.Errorf("expected %s, got %s", share.ID, got.ID)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := store.GetShareByToken(ctx, "no-such-token")
		if !errors.Is(err, models.ErrShareNotFound) {
			t.Errorf("expected ErrShareNotFound, got %v", err)
		}
	})

	t.Run("set share users", func(t *testing.T) {
		if err := store.SetShareUsers(ctx, share.ID, []string{grantee.ID}); err != nil {
			t.Fatal(err)
		}
		got, err := store.GetShareByID(ctx, share.ID)
		if err != nil {
			t.Fatal(err)
		}
		if !got.GrantsUser(grantee.ID) {
			t.Error("expected grant for grantee")
		}
		if got.GrantsUser(owner.ID) {
			t.Error("unexpected grant for owner")
		}
	})

	t.Run("update share", func(t *testing.T) {
		expiry := time.Now().Add(time.Hour)
		share.SharingType = "users"
		share.AccessMode = "readwrite"
		share.ExpiresAt = &expiry
		if err := store.UpdateShare(ctx, share); err != nil {
			t.Fatal(err)
		}

		got, err := store.GetShareByID(ctx, share.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.SharingType != "users" || got.AccessMode != "readwrite" || got.ExpiresAt == nil {
			t.Errorf("share not updated: %+v", got)
		}
	})

	t.Run("delete expired shares", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		expired := &models.Share{
			OwnerID:     owner.ID,
			Source:      "volume",
			SourcePath:  "/projects/old.pdf",
			SharingType: "anyone",
			AccessMode:  "readonly",
			ExpiresAt:   &past,
		}
		if _, err := store.CreateShare(ctx, expired); err != nil {
			t.Fatal(err)
		}

		removed, err := store.DeleteExpiredShares(ctx, time.Now())
		if err != nil {
			t.Fatal(err)
		}
		if removed != 1 {
			t.Errorf("expected 1 removed share, got %d", removed)
		}
		if _, err := store.GetShareByID(ctx, expired.ID); !errors.Is(err, models.ErrShareNotFound) {
			t.Errorf("expected expired share gone, got %v", err)
		}
		if _, err := store.GetShareByID(ctx, share.ID); err != nil {
			t.Errorf("unexpired share should survive, got %v", err)
		}
	})
}

func TestSettingOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	t.Run("unset key returns empty", func(t *testing.T) {
		val, err := store.GetSetting(ctx, models.SettingUserVolumesEnabled)
		if err != nil {
			t.Fatal(err)
		}
		if val != "" {
			t.Errorf("expected empty value, got %q", val)
		}
	})

	t.Run("set and get", func(t *testing.T) {
		if err := store.SetSetting(ctx, models.SettingUserVolumesEnabled, "true"); err != nil {
			t.Fatal(err)
		}
		val, err := store.GetSetting(ctx, models.SettingUserVolumesEnabled)
		if err != nil {
			t.Fatal(err)
		}
		if val != "true" {
			t.Errorf("expected true, got %q", val)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		if err := store.SetSetting(ctx, models.SettingUserVolumesEnabled, "false"); err != nil {
			t.Fatal(err)
		}
		val, err := store.GetSetting(ctx, models.SettingUserVolumesEnabled)
		if err != nil {
			t.Fatal(err)
		}
		if val != "false" {
			t.Errorf("expected false, got %q", val)
		}
	})

	t.Run("delete missing key is not an error", func(t *testing.T) {
		if err := store.DeleteSetting(ctx, "no.such.key"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})
}

func TestEnsureAdminUser(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	password, err := store.EnsureAdminUser(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if password == "" {
		t.Error("expected generated password on first call")
	}

	initialized, err := store.IsAdminInitialized(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !initialized {
		t.Error("expected admin to be initialized")
	}

	// Second call is a no-op
	password, err = store.EnsureAdminUser(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if password != "" {
		t.Error("expected empty password when admin already exists")
	}
}
