package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/service"
)

func seedDashboardData(t *testing.T) (*memUserRepo, *memTicketRepo, map[domain.Role]*domain.User) {
	t.Helper()
	ctx := context.Background()
	profiles := newMemProfileRepo()
	users := newMemUserRepo(profiles)
	tickets := newMemTicketRepo()

	byRole := make(map[domain.Role]*domain.User)
	for _, role := range []domain.Role{domain.RoleUser, domain.RoleStaff, domain.RoleAdmin, domain.RoleSuperAdmin} {
		u := &domain.User{
			ID:       uuid.NewString(),
			Email:    uuid.NewString() + "@x.io",
			Role:     role,
			IsActive: true,
		}
		p := &domain.UserProfile{ID: uuid.NewString(), UserID: u.ID, Name: string(role)}
		require.NoError(t, users.CreateWithProfile(ctx, u, p))
		byRole[role] = u
	}

	// two tickets for the plain user, one for the staff member
	for i := 0; i < 2; i++ {
		require.NoError(t, tickets.Create(ctx, &domain.Ticket{
			ID:          uuid.NewString(),
			RequesterID: byRole[domain.RoleUser].ID,
			Category:    domain.CategoryGeneralInquiry,
			Status:      domain.TicketStatusOpen,
			Priority:    domain.TicketPriorityMedium,
			Description: "x",
		}))
	}
	require.NoError(t, tickets.Create(ctx, &domain.Ticket{
		ID:          uuid.NewString(),
		RequesterID: byRole[domain.RoleStaff].ID,
		Category:    domain.CategoryGeneralInquiry,
		Status:      domain.TicketStatusOpen,
		Priority:    domain.TicketPriorityMedium,
		Description: "y",
	}))

	return users, tickets, byRole
}

func TestOverviewSuperAdminCounts(t *testing.T) {
	users, tickets, byRole := seedDashboardData(t)
	svc := service.NewDashboardService(users, tickets, nil, time.Minute, zap.NewNop())

	data, err := svc.Overview(context.Background(), byRole[domain.RoleSuperAdmin])
	require.NoError(t, err)
	require.Equal(t, int64(1), data["users"])
	require.Equal(t, int64(3), data["tickets"])
	require.Equal(t, int64(1), data["admins"])
	require.Equal(t, int64(1), data["staffs"])
}

func TestOverviewAdminCounts(t *testing.T) {
	users, tickets, byRole := seedDashboardData(t)
	svc := service.NewDashboardService(users, tickets, nil, time.Minute, zap.NewNop())

	data, err := svc.Overview(context.Background(), byRole[domain.RoleAdmin])
	require.NoError(t, err)
	require.Equal(t, int64(1), data["users"])
	require.Equal(t, int64(3), data["tickets"])
	require.Equal(t, int64(1), data["staffs"])
	require.NotContains(t, data, "admins")
}

func TestOverviewUserCountsOwnTickets(t *testing.T) {
	users, tickets, byRole := seedDashboardData(t)
	svc := service.NewDashboardService(users, tickets, nil, time.Minute, zap.NewNop())

	data, err := svc.Overview(context.Background(), byRole[domain.RoleUser])
	require.NoError(t, err)
	require.Equal(t, int64(2), data["tickets"])
	require.Equal(t, int64(1), data["staffs"])
	require.NotContains(t, data, "users")
}
