package store

import (
	"context"
	"errors"
	"testing"

	"github.com/oyaguma3/glasses-session-broker/pkg/model"
)

func TestAppCatalogGetApp(t *testing.T) {
	mr, vc := newTestClient(t)
	mr.HSet("app:photo.app",
		"package_name", "photo.app",
		"name", "Photo",
		"app_type", "standard",
		"webhook_url", "http://photo.example.com/webhook",
		"hashed_api_key", "abc")

	c := NewAppCatalog(vc)
	app, err := c.GetApp(context.Background(), "photo.app")
	if err != nil {
		t.Fatalf("GetApp failed: %v", err)
	}
	if app.Name != "Photo" || app.WebhookURL != "http://photo.example.com/webhook" || app.HashedAPIKey != "abc" {
		t.Errorf("GetApp = %+v", app)
	}
}

func TestAppCatalogGetAppNotFound(t *testing.T) {
	_, vc := newTestClient(t)

	_, err := NewAppCatalog(vc).GetApp(context.Background(), "missing.app")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got: %v", err)
	}
}

func TestAppCatalogInstalledApps(t *testing.T) {
	mr, vc := newTestClient(t)
	mr.HSet("app:notes.app", "name", "Notes")
	mr.HSet("app:tracker.app", "name", "Tracker", "app_type", "background")
	mr.SAdd("idx:user:apps:u1@example.com", "tracker.app", "notes.app", "deleted.app")

	apps, err := NewAppCatalog(vc).InstalledApps(context.Background(), "u1@example.com")
	if err != nil {
		t.Fatalf("InstalledApps failed: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("len(apps) = %d, want 2", len(apps))
	}
	if apps[0].PackageName != "notes.app" || apps[0].AppType != model.AppTypeStandard {
		t.Errorf("apps[0] = %+v", apps[0])
	}
	if apps[1].PackageName != "tracker.app" || !apps[1].IsBackground() {
		t.Errorf("apps[1] = %+v", apps[1])
	}
}

func TestAppCatalogValkeyError(t *testing.T) {
	mr, vc := newTestClient(t)
	mr.Close()

	_, err := NewAppCatalog(vc).InstalledApps(context.Background(), "u1@example.com")
	if !errors.Is(err, ErrValkeyUnavailable) {
		t.Errorf("expected ErrValkeyUnavailable, got: %v", err)
	}
}
