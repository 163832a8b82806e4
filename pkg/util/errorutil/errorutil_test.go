package util_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	util "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := util.NewConflict("already there", nil)
	mapped := util.ToDomainError(original)
	require.Equal(t, http.StatusConflict, mapped.HTTPStatus)
	require.Equal(t, "CONFLICT", mapped.Code)
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	mapped := util.ToDomainError(pgx.ErrNoRows)
	require.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorMapsUniqueViolation(t *testing.T) {
	// constraint-level duplicate (e.g. concurrent registers racing past the
	// EmailTaken check) must surface as a conflict, not a 500
	uniqueErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}
	mapped := util.ToDomainError(uniqueErr)
	require.Equal(t, http.StatusConflict, mapped.HTTPStatus)
	require.Equal(t, "CONFLICT", mapped.Code)

	wrapped := fmt.Errorf("create user: %w", uniqueErr)
	require.Equal(t, http.StatusConflict, util.ToDomainError(wrapped).HTTPStatus)

	// other SQLSTATEs stay internal
	fkErr := &pgconn.PgError{Code: "23503"}
	require.Equal(t, http.StatusInternalServerError, util.ToDomainError(fkErr).HTTPStatus)
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	mapped := util.ToDomainError(errors.New("disk on fire"))
	require.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	require.Equal(t, "INTERNAL_ERROR", mapped.Code)
}

func TestFieldValidationErrorCarriesMessages(t *testing.T) {
	err := util.NewFieldValidationError([]string{"email is required", "password is required"})
	mapped := util.ToDomainError(err)
	require.Equal(t, http.StatusBadRequest, mapped.HTTPStatus)
	require.Equal(t, []string{"email is required", "password is required"}, mapped.Details["errors"])
}

func TestNilIsNil(t *testing.T) {
	require.Nil(t, util.ToDomainError(nil))
}
