package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/service"
)

type ticketFixture struct {
	tickets    *memTicketRepo
	users      *memUserRepo
	svc        *service.TicketService
	dispatcher *recordingDispatcher
}

func newTicketFixture() *ticketFixture {
	profiles := newMemProfileRepo()
	users := newMemUserRepo(profiles)
	tickets := newMemTicketRepo()
	dispatcher := &recordingDispatcher{}
	return &ticketFixture{
		tickets:    tickets,
		users:      users,
		dispatcher: dispatcher,
		svc: service.NewTicketService(service.TicketDependencies{
			TicketRepo: tickets,
			UserRepo:   users,
			Dispatcher: dispatcher,
		}),
	}
}

func (f *ticketFixture) seedUser(t *testing.T, role domain.Role, notify bool) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:                   uuid.NewString(),
		CompanyID:            uuid.NewString(),
		Email:                uuid.NewString() + "@x.io",
		Role:                 role,
		IsActive:             true,
		IsNotificationActive: notify,
	}
	profile := &domain.UserProfile{ID: uuid.NewString(), UserID: user.ID, Name: "Seed"}
	require.NoError(t, f.users.CreateWithProfile(context.Background(), user, profile))
	return user
}

func TestCreateTicketAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	f := newTicketFixture()
	requester := f.seedUser(t, domain.RoleUser, true)

	ticket, err := f.svc.Create(ctx, requester, service.CreateTicketInput{
		Category:    domain.CategoryTechnicalSupport,
		Description: "  printer on fire  ",
	})
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusOpen, ticket.Status)
	require.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	require.Equal(t, requester.ID, ticket.RequesterID)
	require.Equal(t, "printer on fire", ticket.Description)
	require.Len(t, f.dispatcher.published(domain.EventCreateTicket), 1)
}

func TestCreateTicketRejectsUnknownCategory(t *testing.T) {
	ctx := context.Background()
	f := newTicketFixture()
	requester := f.seedUser(t, domain.RoleUser, true)

	_, err := f.svc.Create(ctx, requester, service.CreateTicketInput{
		Category:    domain.TicketCategory("Complaints"),
		Description: "nope",
	})
	require.Error(t, err)
	require.Equal(t, 400, domainStatus(t, err))
}

func TestListScopesByRole(t *testing.T) {
	ctx := context.Background()
	f := newTicketFixture()
	alice := f.seedUser(t, domain.RoleUser, true)
	bob := f.seedUser(t, domain.RoleUser, true)
	root := f.seedUser(t, domain.RoleSuperAdmin, true)

	for _, u := range []*domain.User{alice, bob} {
		_, err := f.svc.Create(ctx, u, service.CreateTicketInput{
			Category:    domain.CategoryGeneralInquiry,
			Description: "question",
		})
		require.NoError(t, err)
	}

	own, err := f.svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, alice.ID, own[0].RequesterID)

	all, err := f.svc.List(ctx, root)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestListIncludesAssignedTickets(t *testing.T) {
	ctx := context.Background()
	f := newTicketFixture()
	requester := f.seedUser(t, domain.RoleUser, true)
	staff := f.seedUser(t, domain.RoleStaff, true)
	admin := f.seedUser(t, domain.RoleAdmin, true)

	ticket, err := f.svc.Create(ctx, requester, service.CreateTicketInput{
		Category:    domain.CategoryBillingPayment,
		Description: "invoice is wrong",
	})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, admin, ticket.ID, service.UpdateTicketInput{AssigneeID: &staff.ID})
	require.NoError(t, err)

	assigned, err := f.svc.List(ctx, staff)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
}

func TestUpdateValidatesAssignee(t *testing.T) {
	ctx := context.Background()
	f := newTicketFixture()
	requester := f.seedUser(t, domain.RoleUser, true)
	admin := f.seedUser(t, domain.RoleAdmin, true)
	plainUser := f.seedUser(t, domain.RoleUser, true)

	ticket, err := f.svc.Create(ctx, requester, service.CreateTicketInput{
		Category:    domain.CategoryTechnicalSupport,
		Description: "broken",
	})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, admin, ticket.ID, service.UpdateTicketInput{AssigneeID: &plainUser.ID})
	require.Error(t, err)
	require.Equal(t, 400, domainStatus(t, err))

	missing := uuid.NewString()
	_, err = f.svc.Update(ctx, admin, ticket.ID, service.UpdateTicketInput{AssigneeID: &missing})
	require.Error(t, err)
	require.Equal(t, 400, domainStatus(t, err))
}

func TestUpdatePublishesNotificationPayload(t *testing.T) {
	ctx := context.Background()
	f := newTicketFixture()
	requester := f.seedUser(t, domain.RoleUser, true)
	admin := f.seedUser(t, domain.RoleAdmin, true)

	ticket, err := f.svc.Create(ctx, requester, service.CreateTicketInput{
		Category:    domain.CategoryFeatureRequest,
		Description: "add dark mode",
	})
	require.NoError(t, err)

	resolved := domain.TicketStatusResolved
	updated, err := f.svc.Update(ctx, admin, ticket.ID, service.UpdateTicketInput{Status: &resolved})
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusResolved, updated.Status)

	published := f.dispatcher.published(domain.EventUpdateTicket)
	require.Len(t, published, 1)
	meta, ok := published[0].Payload.(events.TicketUpdatedMeta)
	require.True(t, ok)
	require.Equal(t, ticket.ID, meta.TicketID)
	require.Equal(t, requester.Email, meta.RequesterEmail)
	require.True(t, meta.NotifyRequester)
	require.Equal(t, admin.Email, meta.UpdatedBy)
}

func TestUpdateDeletedTicketIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newTicketFixture()
	requester := f.seedUser(t, domain.RoleUser, true)
	admin := f.seedUser(t, domain.RoleAdmin, true)

	ticket, err := f.svc.Create(ctx, requester, service.CreateTicketInput{
		Category:    domain.CategoryGeneralInquiry,
		Description: "hello",
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, admin, ticket.ID))

	closed := domain.TicketStatusClosed
	_, err = f.svc.Update(ctx, admin, ticket.ID, service.UpdateTicketInput{Status: &closed})
	require.Error(t, err)
	require.Equal(t, 404, domainStatus(t, err))
}

func TestDeleteTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	f := newTicketFixture()
	requester := f.seedUser(t, domain.RoleUser, true)
	admin := f.seedUser(t, domain.RoleAdmin, true)

	ticket, err := f.svc.Create(ctx, requester, service.CreateTicketInput{
		Category:    domain.CategoryGeneralInquiry,
		Description: "hello",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, admin, ticket.ID))

	err = f.svc.Delete(ctx, admin, ticket.ID)
	require.Error(t, err)
	require.Equal(t, 409, domainStatus(t, err))

	err = f.svc.Delete(ctx, admin, uuid.NewString())
	require.Error(t, err)
	require.Equal(t, 404, domainStatus(t, err))
}
