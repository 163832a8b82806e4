package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-desk/internal/domain"
)

func TestValidRole(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleUser, domain.RoleStaff, domain.RoleAdmin, domain.RoleSuperAdmin} {
		require.True(t, domain.ValidRole(role))
	}
	require.False(t, domain.ValidRole(domain.Role("superuser")))
	require.False(t, domain.ValidRole(domain.Role("")))
}

func TestCapabilitiesForRoles(t *testing.T) {
	require.True(t, domain.CapabilitiesFor(domain.RoleSuperAdmin).ManageUsers)
	require.True(t, domain.CapabilitiesFor(domain.RoleSuperAdmin).ViewAllTickets)
	require.True(t, domain.CapabilitiesFor(domain.RoleAdmin).ManageTickets)
	require.False(t, domain.CapabilitiesFor(domain.RoleAdmin).ManageUsers)
	require.Equal(t, domain.Capabilities{}, domain.CapabilitiesFor(domain.Role("unknown")))
}

func TestTicketEnums(t *testing.T) {
	require.True(t, domain.ValidCategory(domain.CategoryBillingPayment))
	require.False(t, domain.ValidCategory(domain.TicketCategory("Gossip")))
	require.True(t, domain.ValidStatus(domain.TicketStatusInProgress))
	require.False(t, domain.ValidStatus(domain.TicketStatus("Reopened")))
	require.True(t, domain.ValidPriority(domain.TicketPriorityCritical))
	require.False(t, domain.ValidPriority(domain.TicketPriority("Urgent")))
}
