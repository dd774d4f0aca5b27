//go:build integration

package mongoaudit

import (
	"context"
	"os"
	"testing"

	"github.com/openpra/pdag/pkg/pdagerr"
)

func TestAuditStore_Integration(t *testing.T) {
	uri := os.Getenv("PDAG_MONGO_URI")
	if uri == "" {
		t.Skip("PDAG_MONGO_URI not set, skipping integration test")
	}

	ctx := context.Background()
	store, err := NewAuditStore(ctx, Config{URI: uri, Database: "pdagtest"})
	if err != nil {
		t.Fatalf("NewAuditStore() error: %v", err)
	}
	defer store.Close(ctx)

	buildErr := pdagerr.New(pdagerr.ErrCodeValidation, "cyclic gate reference at key %q", "A")
	if err := store.Record(ctx, "modelhash1", buildErr); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	records, err := store.RecentFailures(ctx, "modelhash1", 10)
	if err != nil {
		t.Fatalf("RecentFailures() error: %v", err)
	}
	if len(records) == 0 {
		t.Fatalf("expected at least one recorded failure")
	}
	if records[0].Code != string(pdagerr.ErrCodeValidation) {
		t.Errorf("Code = %q, want %q", records[0].Code, pdagerr.ErrCodeValidation)
	}
}
