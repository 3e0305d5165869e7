package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"rfx-retrieval-be/internal/dto"
	"rfx-retrieval-be/pkg/research"
)

func newResearchFixture(t *testing.T, backends map[string]research.Backend) (*researchService, *fakeUnitOfWork, *time.Time) {
	t.Helper()
	uow := newFakeUnitOfWork()
	svc := NewResearchService(&fakeFactory{uow: uow}, backends, 24*time.Hour, 10, nopLogger{}).(*researchService)

	// Pin the clock so expiry is driven by the test, not wall time.
	clock := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }
	return svc, uow, &clock
}

func TestGetOrFetchFetchesOncePerTTL(t *testing.T) {
	backend := &fakeResearchBackend{
		name:    "web",
		records: []research.Record{{Source: "web", Title: "Result", URL: "https://example.com"}},
	}
	svc, _, clock := newResearchFixture(t, map[string]research.Backend{CategoryWeb: backend})
	ctx := context.Background()

	first, err := svc.GetOrFetch(ctx, &dto.ResearchRequest{Query: "Cloud Migration"})
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Error("first call must miss the cache")
	}
	if backend.callCount() != 1 {
		t.Fatalf("backend calls = %d, want 1", backend.callCount())
	}

	// Same query, different surface form: one backend call total.
	second, err := svc.GetOrFetch(ctx, &dto.ResearchRequest{Query: "  cloud migration "})
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Error("second call must hit the cache")
	}
	if backend.callCount() != 1 {
		t.Errorf("backend calls = %d, want 1", backend.callCount())
	}

	// Past expiry the entry is dead and the backend is consulted again.
	*clock = clock.Add(25 * time.Hour)
	third, err := svc.GetOrFetch(ctx, &dto.ResearchRequest{Query: "cloud migration"})
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached {
		t.Error("expired entry must not be served")
	}
	if backend.callCount() != 2 {
		t.Errorf("backend calls = %d, want 2", backend.callCount())
	}
}

func TestGetOrFetchErrorsAreNotCached(t *testing.T) {
	backend := &fakeResearchBackend{name: "web", err: errors.New("rate limited")}
	svc, uow, _ := newResearchFixture(t, map[string]research.Backend{CategoryWeb: backend})
	ctx := context.Background()

	if _, err := svc.GetOrFetch(ctx, &dto.ResearchRequest{Query: "query"}); err == nil {
		t.Fatal("backend failure must surface as an error")
	}
	if count, _ := uow.cache.Count(ctx); count != 0 {
		t.Errorf("cache rows = %d, want 0 (failures are never cached)", count)
	}

	// Backend recovers: next call fetches and caches.
	backend.err = nil
	backend.records = []research.Record{{Source: "web", Title: "OK"}}
	res, err := svc.GetOrFetch(ctx, &dto.ResearchRequest{Query: "query"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached {
		t.Error("recovered call must be a fresh fetch")
	}
	if count, _ := uow.cache.Count(ctx); count != 1 {
		t.Errorf("cache rows = %d, want 1", count)
	}
}

func TestGetOrFetchForceRefresh(t *testing.T) {
	backend := &fakeResearchBackend{name: "web", records: []research.Record{{Title: "R"}}}
	svc, _, _ := newResearchFixture(t, map[string]research.Backend{CategoryWeb: backend})
	ctx := context.Background()

	if _, err := svc.GetOrFetch(ctx, &dto.ResearchRequest{Query: "q"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetOrFetch(ctx, &dto.ResearchRequest{Query: "q", ForceRefresh: true}); err != nil {
		t.Fatal(err)
	}
	if backend.callCount() != 2 {
		t.Errorf("backend calls = %d, want 2 (force refresh bypasses cache)", backend.callCount())
	}
}

func TestGetOrFetchUnknownCategory(t *testing.T) {
	svc, _, _ := newResearchFixture(t, map[string]research.Backend{})
	if _, err := svc.GetOrFetch(context.Background(), &dto.ResearchRequest{Query: "q", Category: "stocks"}); err == nil {
		t.Error("unknown category must error")
	}
}

func TestDeepResearchSkipsFailingBackend(t *testing.T) {
	web := &fakeResearchBackend{name: "web", records: []research.Record{{Title: "W"}}}
	sam := &fakeResearchBackend{name: "sam.gov", records: []research.Record{{Title: "S"}}}
	spend := &fakeResearchBackend{name: "usaspending.gov", err: errors.New("down")}

	svc, _, _ := newResearchFixture(t, map[string]research.Backend{
		CategoryWeb:           web,
		CategoryOpportunities: sam,
		CategorySpending:      spend,
	})

	res, err := svc.DeepResearch(context.Background(), &dto.DeepResearchRequest{Topic: "cloud"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Sections) != 2 {
		t.Fatalf("sections = %d, want 2 (failing backend dropped)", len(res.Sections))
	}
	for _, section := range res.Sections {
		if section.Category == CategorySpending {
			t.Error("failed section must not appear")
		}
	}
}

func TestPurgeExpired(t *testing.T) {
	backend := &fakeResearchBackend{name: "web", records: []research.Record{{Title: "R"}}}
	svc, uow, clock := newResearchFixture(t, map[string]research.Backend{CategoryWeb: backend})
	ctx := context.Background()

	if _, err := svc.GetOrFetch(ctx, &dto.ResearchRequest{Query: "old"}); err != nil {
		t.Fatal(err)
	}

	*clock = clock.Add(25 * time.Hour)
	if _, err := svc.GetOrFetch(ctx, &dto.ResearchRequest{Query: "fresh"}); err != nil {
		t.Fatal(err)
	}

	deleted, err := svc.PurgeExpired(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
	if count, _ := uow.cache.Count(ctx); count != 1 {
		t.Errorf("remaining rows = %d, want 1", count)
	}
}

func TestCachedForProposal(t *testing.T) {
	backend := &fakeResearchBackend{name: "web", records: []research.Record{{Title: "R"}}}
	svc, _, _ := newResearchFixture(t, map[string]research.Backend{CategoryWeb: backend})
	ctx := context.Background()

	proposalId := uuid.New()
	if _, err := svc.GetOrFetch(ctx, &dto.ResearchRequest{Query: "scoped", ProposalId: &proposalId}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetOrFetch(ctx, &dto.ResearchRequest{Query: "unscoped"}); err != nil {
		t.Fatal(err)
	}

	entries, err := svc.CachedForProposal(ctx, proposalId)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("entries = %d, want 1", len(entries))
	}
}
