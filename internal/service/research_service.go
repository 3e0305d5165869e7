package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"rfx-retrieval-be/internal/dto"
	"rfx-retrieval-be/internal/entity"
	"rfx-retrieval-be/internal/pkg/logger"
	"rfx-retrieval-be/internal/repository/specification"
	"rfx-retrieval-be/internal/repository/unitofwork"
	"rfx-retrieval-be/pkg/contenthash"
	"rfx-retrieval-be/pkg/research"
)

const (
	CategoryWeb           = "web"
	CategoryOpportunities = "opportunities"
	CategorySpending      = "spending"
)

type IResearchService interface {
	GetOrFetch(ctx context.Context, req *dto.ResearchRequest) (*dto.ResearchResponse, error)
	DeepResearch(ctx context.Context, req *dto.DeepResearchRequest) (*dto.DeepResearchResponse, error)
	CachedForProposal(ctx context.Context, proposalId uuid.UUID) ([]*dto.ResearchResponse, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type researchService struct {
	uowFactory unitofwork.RepositoryFactory
	backends   map[string]research.Backend
	hot        *gocache.Cache
	ttl        time.Duration
	maxResults int
	log        logger.ILogger
	now        func() time.Time // injectable for expiry tests
}

func NewResearchService(
	uowFactory unitofwork.RepositoryFactory,
	backends map[string]research.Backend,
	ttl time.Duration,
	maxResults int,
	log logger.ILogger,
) IResearchService {
	return &researchService{
		uowFactory: uowFactory,
		backends:   backends,
		hot:        gocache.New(ttl, 10*time.Minute),
		ttl:        ttl,
		maxResults: maxResults,
		log:        log,
		now:        time.Now,
	}
}

// GetOrFetch serves a research query through two cache layers (process
// memory, then the database) before touching the external backend.
// Backend failures are returned to the caller and never cached.
func (s *researchService) GetOrFetch(ctx context.Context, req *dto.ResearchRequest) (*dto.ResearchResponse, error) {
	category := req.Category
	if category == "" {
		category = CategoryWeb
	}
	key := contenthash.QueryKey(category, req.Query)
	now := s.now()

	if !req.ForceRefresh {
		if cached, ok := s.hot.Get(key); ok {
			entry := cached.(*entity.ResearchCacheEntry)
			if entry.Live(now) {
				return s.toResponse(entry, true), nil
			}
			s.hot.Delete(key)
		}

		uow := s.uowFactory.NewUnitOfWork(ctx)
		entry, err := uow.ResearchCacheRepository().FindOne(ctx,
			specification.ByQueryKey{QueryKey: key},
			specification.NotExpiredAt{Now: now},
		)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			s.hot.Set(key, entry, entry.ExpiresAt.Sub(now))
			return s.toResponse(entry, true), nil
		}
	}

	backend, ok := s.backends[category]
	if !ok {
		return nil, fmt.Errorf("research: unknown category %q", category)
	}

	records, err := backend.Search(ctx, req.Query, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("research backend %s: %w", backend.Name(), err)
	}
	for i := range records {
		records[i].Category = category
	}

	entry := &entity.ResearchCacheEntry{
		Id:          uuid.New(),
		ProposalId:  req.ProposalId,
		Query:       req.Query,
		QueryKey:    key,
		Category:    category,
		Results:     records,
		SourceCount: len(records),
		ExpiresAt:   now.Add(s.ttl),
		CreatedAt:   now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ResearchCacheRepository().Replace(ctx, entry); err != nil {
		return nil, err
	}
	s.hot.Set(key, entry, s.ttl)

	s.log.Info("research", "Fetched and cached research results", map[string]interface{}{
		"category": category,
		"query":    req.Query,
		"results":  len(records),
	})

	return s.toResponse(entry, false), nil
}

// DeepResearch fans one topic out across every configured backend. A
// failing backend drops its section rather than failing the whole
// report.
func (s *researchService) DeepResearch(ctx context.Context, req *dto.DeepResearchRequest) (*dto.DeepResearchResponse, error) {
	categories := []string{CategoryWeb, CategoryOpportunities, CategorySpending}

	res := &dto.DeepResearchResponse{Topic: req.Topic}
	for _, category := range categories {
		backend, ok := s.backends[category]
		if !ok {
			continue
		}
		section, err := s.GetOrFetch(ctx, &dto.ResearchRequest{
			Query:      req.Topic,
			Category:   category,
			ProposalId: req.ProposalId,
		})
		if err != nil {
			s.log.Warn("research", "Deep research section failed, skipping", map[string]interface{}{
				"category": category,
				"topic":    req.Topic,
				"error":    err.Error(),
			})
			continue
		}
		res.Sections = append(res.Sections, dto.DeepResearchSection{
			Category: category,
			Source:   backend.Name(),
			Cached:   section.Cached,
			Results:  section.Results,
		})
	}
	return res, nil
}

func (s *researchService) CachedForProposal(ctx context.Context, proposalId uuid.UUID) ([]*dto.ResearchResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.ResearchCacheRepository().FindAll(ctx,
		specification.Filter("proposal_id", proposalId),
		specification.NotExpiredAt{Now: s.now()},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ResearchResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, s.toResponse(entry, true))
	}
	return out, nil
}

func (s *researchService) PurgeExpired(ctx context.Context) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	deleted, err := uow.ResearchCacheRepository().DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	s.hot.DeleteExpired()
	return deleted, nil
}

func (s *researchService) toResponse(entry *entity.ResearchCacheEntry, cached bool) *dto.ResearchResponse {
	return &dto.ResearchResponse{
		Query:     entry.Query,
		Category:  entry.Category,
		Cached:    cached,
		ExpiresAt: entry.ExpiresAt,
		Results:   entry.Results,
	}
}
