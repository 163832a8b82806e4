package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/persistence"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// DashboardService computes role-scoped aggregate counts. Counts are issued
// as independent parallel queries; they may reflect slightly different
// instants, which is acceptable for a dashboard.
type DashboardService struct {
	users    repository.UserRepository
	tickets  repository.TicketRepository
	cache    *persistence.Redis
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewDashboardService builds the service. The cache is optional; lookups
// degrade to direct queries when it is unavailable.
func NewDashboardService(users repository.UserRepository, tickets repository.TicketRepository, cache *persistence.Redis, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		users:    users,
		tickets:  tickets,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Overview returns counts scoped by the caller's role.
func (s *DashboardService) Overview(ctx context.Context, caller *domain.User) (map[string]int64, error) {
	key := cacheKey(caller)
	if cached := s.cache.GetString(ctx, key); cached != "" {
		var data map[string]int64
		if err := json.Unmarshal([]byte(cached), &data); err == nil {
			return data, nil
		}
	}

	var counts []namedCount
	switch caller.Role {
	case domain.RoleSuperAdmin:
		counts = []namedCount{
			{"users", func(ctx context.Context) (int64, error) { return s.users.CountByRole(ctx, domain.RoleUser) }},
			{"tickets", s.tickets.CountActive},
			{"admins", func(ctx context.Context) (int64, error) { return s.users.CountByRole(ctx, domain.RoleAdmin) }},
			{"staffs", func(ctx context.Context) (int64, error) { return s.users.CountByRole(ctx, domain.RoleStaff) }},
		}
	case domain.RoleAdmin:
		counts = []namedCount{
			{"users", func(ctx context.Context) (int64, error) { return s.users.CountByRole(ctx, domain.RoleUser) }},
			{"tickets", s.tickets.CountActive},
			{"staffs", func(ctx context.Context) (int64, error) { return s.users.CountByRole(ctx, domain.RoleStaff) }},
		}
	default:
		counts = []namedCount{
			{"tickets", func(ctx context.Context) (int64, error) { return s.tickets.CountForUser(ctx, caller.ID) }},
			{"staffs", func(ctx context.Context) (int64, error) { return s.users.CountByRole(ctx, domain.RoleStaff) }},
		}
	}

	data, err := runCounts(ctx, counts)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if encoded, err := json.Marshal(data); err == nil {
		s.cache.SetString(ctx, key, string(encoded), s.cacheTTL)
	}
	return data, nil
}

type namedCount struct {
	name  string
	query func(context.Context) (int64, error)
}

func runCounts(ctx context.Context, counts []namedCount) (map[string]int64, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	data := make(map[string]int64, len(counts))

	for _, c := range counts {
		wg.Add(1)
		go func(c namedCount) {
			defer wg.Done()
			val, err := c.query(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			data[c.name] = val
		}(c)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return data, nil
}

func cacheKey(caller *domain.User) string {
	switch caller.Role {
	case domain.RoleSuperAdmin, domain.RoleAdmin:
		return "dashboard:" + string(caller.Role)
	default:
		return "dashboard:user:" + caller.ID
	}
}
