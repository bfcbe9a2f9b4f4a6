package customers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/customers"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newService() *customers.Service {
	return customers.NewService(memory.NewCustomerRepository(), nil)
}

func TestCustomersService_CreateAndGet(t *testing.T) {
	svc := newService()

	created, err := svc.Create(t.Context(), domain.Customer{
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.Get(t.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, "Jane Doe", got.FullName())
}

func TestCustomersService_CreateValidatesEmail(t *testing.T) {
	svc := newService()

	_, err := svc.Create(t.Context(), domain.Customer{FirstName: "Jane"})
	assert.ErrorIs(t, err, domain.ErrCustomerEmailRequired)

	_, err = svc.Create(t.Context(), domain.Customer{Email: "not-an-email"})
	assert.ErrorIs(t, err, domain.ErrCustomerEmailInvalid)
}

func TestCustomersService_UpdatePreservesCreatedAt(t *testing.T) {
	svc := newService()

	created, err := svc.Create(t.Context(), domain.Customer{Email: "jane@example.com"})
	require.NoError(t, err)

	created.FirstName = "Janet"
	updated, err := svc.Update(t.Context(), created)
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Janet", updated.FirstName)
}

func TestCustomersService_UpdateMissing(t *testing.T) {
	svc := newService()

	_, err := svc.Update(t.Context(), domain.Customer{ID: "missing", Email: "jane@example.com"})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCustomersService_Delete(t *testing.T) {
	svc := newService()

	created, err := svc.Create(t.Context(), domain.Customer{Email: "jane@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(t.Context(), created.ID))
	_, err = svc.Get(t.Context(), created.ID)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCustomersService_ListNewestFirst(t *testing.T) {
	svc := newService()

	first, err := svc.Create(t.Context(), domain.Customer{Email: "first@example.com"})
	require.NoError(t, err)
	second, err := svc.Create(t.Context(), domain.Customer{Email: "second@example.com"})
	require.NoError(t, err)

	got, err := svc.List(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	ids := []string{got[0].ID, got[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}
