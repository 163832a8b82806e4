package handlers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/api/http/handlers"
)

func TestValidateRegisterPasswordLength(t *testing.T) {
	// six characters is the minimum; a seven-character password registers fine
	require.NoError(t, handlers.ValidateRequest(dto.RegisterRequest{
		Name:     "Alice",
		Email:    "a@x.com",
		Password: "secret1",
	}))
	require.NoError(t, handlers.ValidateRequest(dto.RegisterRequest{
		Name:     "Alice",
		Email:    "a@x.com",
		Password: "secret",
	}))
	require.Error(t, handlers.ValidateRequest(dto.RegisterRequest{
		Name:     "Alice",
		Email:    "a@x.com",
		Password: "short",
	}))
}

func TestValidateAdminPasswordLength(t *testing.T) {
	require.NoError(t, handlers.ValidateRequest(dto.AddUserRequest{
		Name:     "Bob",
		Email:    "b@x.com",
		Password: "secret1",
	}))

	ok := "secret1"
	tooShort := "12345"
	require.NoError(t, handlers.ValidateRequest(dto.UpdateProfileRequest{Password: &ok}))
	require.Error(t, handlers.ValidateRequest(dto.UpdateProfileRequest{Password: &tooShort}))
}

func TestValidateRegisterRequiredFields(t *testing.T) {
	err := handlers.ValidateRequest(dto.RegisterRequest{})
	require.Error(t, err)
}

func TestValidateTicketEnums(t *testing.T) {
	require.NoError(t, handlers.ValidateRequest(dto.CreateTicketRequest{
		Category:    "Billing & Payment",
		Description: "my invoice total looks wrong",
	}))
	require.Error(t, handlers.ValidateRequest(dto.CreateTicketRequest{
		Category:    "Gossip",
		Description: "this is long enough to pass",
	}))
}
