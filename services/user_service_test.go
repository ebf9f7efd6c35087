package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/openbracket/tournament-api/models"
	"github.com/openbracket/tournament-api/storage"
)

type fakeUploader struct {
	uploaded map[string]string // key -> content type
	deleted  []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploaded: make(map[string]string)}
}

func (u *fakeUploader) Upload(_ context.Context, key, contentType string, _ io.Reader) (*storage.UploadResult, error) {
	u.uploaded[key] = contentType
	return &storage.UploadResult{Key: key, Location: "https://cdn.example.com/" + key}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, displayName string) *models.User {
	t.Helper()
	user := &models.User{Email: email, DisplayName: displayName, PasswordHash: "irrelevant"}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return user
}

func TestUpdateProfilePartialPatch(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, nil)
	ctx := context.Background()

	user := seedUser(t, userRepo, "a@example.com", "alice")

	bio := "hello"
	updated, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileInput{Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.Bio == nil || *updated.Bio != "hello" {
		t.Fatalf("got bio %v, want %q", updated.Bio, "hello")
	}
	if updated.DisplayName != "alice" {
		t.Fatalf("untouched display name changed: got %q", updated.DisplayName)
	}
	if updated.PasswordHash != "" {
		t.Fatal("UpdateProfile leaked the password hash")
	}

	blank := "   "
	if _, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileInput{DisplayName: &blank}); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("blank display name: got %v, want ErrValidationFailed", err)
	}
}

func TestUpdateProfileDisplayNameConflict(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, nil)
	ctx := context.Background()

	seedUser(t, userRepo, "a@example.com", "alice")
	bob := seedUser(t, userRepo, "b@example.com", "bob")

	taken := "alice"
	if _, err := svc.UpdateProfile(ctx, bob.ID, UpdateProfileInput{DisplayName: &taken}); !errors.Is(err, ErrUserDisplayNameConflict) {
		t.Fatalf("taken display name: got %v, want ErrUserDisplayNameConflict", err)
	}
}

func TestUploadAvatar(t *testing.T) {
	userRepo := newFakeUserRepo()
	uploader := newFakeUploader()
	svc := NewUserService(userRepo, uploader)
	ctx := context.Background()

	user := seedUser(t, userRepo, "a@example.com", "alice")

	updated, err := svc.UploadAvatar(ctx, user.ID, "image/png", strings.NewReader("fake image bytes"))
	if err != nil {
		t.Fatalf("UploadAvatar returned error: %v", err)
	}
	if updated.AvatarURL == nil || !strings.HasSuffix(*updated.AvatarURL, ".png") {
		t.Fatalf("got avatar URL %v, want a .png URL", updated.AvatarURL)
	}
	if len(uploader.uploaded) != 1 {
		t.Fatalf("got %d uploads, want 1", len(uploader.uploaded))
	}

	// Switching format replaces the stored object.
	if _, err := svc.UploadAvatar(ctx, user.ID, "image/jpeg", strings.NewReader("fake image bytes")); err != nil {
		t.Fatalf("second UploadAvatar returned error: %v", err)
	}
	if len(uploader.deleted) != 1 || !strings.HasSuffix(uploader.deleted[0], ".png") {
		t.Fatalf("old avatar not removed, deleted=%v", uploader.deleted)
	}

	if _, err := svc.UploadAvatar(ctx, user.ID, "text/plain", strings.NewReader("nope")); !errors.Is(err, ErrAvatarUnsupportedContentType) {
		t.Fatalf("unsupported content type: got %v, want ErrAvatarUnsupportedContentType", err)
	}
}

func TestUploadAvatarWithoutStorage(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, nil)

	user := seedUser(t, userRepo, "a@example.com", "alice")

	if _, err := svc.UploadAvatar(context.Background(), user.ID, "image/png", strings.NewReader("x")); !errors.Is(err, ErrAvatarStorageNotConfigured) {
		t.Fatalf("uploader disabled: got %v, want ErrAvatarStorageNotConfigured", err)
	}
}

func TestStatsCounts(t *testing.T) {
	userRepo := newFakeUserRepo()
	tournamentRepo := newFakeTournamentRepo()
	matchRepo := newFakeMatchRepo()
	svc := NewStatsService(userRepo, tournamentRepo, matchRepo)
	ctx := context.Background()

	seedUser(t, userRepo, "a@example.com", "alice")
	seedUser(t, userRepo, "b@example.com", "bob")
	seedTournament(t, tournamentRepo, 1, 16, models.StatusOpen)
	seedTournament(t, tournamentRepo, 1, 16, models.StatusDraft)

	stats, err := svc.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats returned error: %v", err)
	}
	if stats.UsersTotal != 2 {
		t.Fatalf("got %d users, want 2", stats.UsersTotal)
	}
	if stats.TournamentsTotal != 2 {
		t.Fatalf("got %d tournaments, want 2", stats.TournamentsTotal)
	}
	if stats.OpenTournaments != 1 {
		t.Fatalf("got %d open tournaments, want 1", stats.OpenTournaments)
	}
	if stats.MatchesTotal != 0 {
		t.Fatalf("got %d matches, want 0", stats.MatchesTotal)
	}
}
