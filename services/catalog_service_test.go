package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brenosouzaaa/sistema-pizzaria/models"
)

func strPtr(s string) *string { return &s }

func TestRegisterCustomer(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalogService(setupTestDB(t))

	c, created, err := catalog.RegisterCustomer(ctx, CustomerInput{
		Name:    "  Ana Souza ",
		Phone:   "11 99999-0000",
		Email:   strPtr("ana@example.com"),
		Address: strPtr("Rua A, 10"),
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Ana Souza", c.Name)

	got, err := catalog.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rua A, 10", *got.Address)
}

func TestRegisterCustomerRequiresNameAndPhone(t *testing.T) {
	catalog := NewCatalogService(setupTestDB(t))

	_, _, err := catalog.RegisterCustomer(context.Background(), CustomerInput{Name: "Ana"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = catalog.RegisterCustomer(context.Background(), CustomerInput{Phone: "123"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegisterCustomerReturnsExistingOnDuplicatePhoneOrEmail(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalogService(setupTestDB(t))

	first, _, err := catalog.RegisterCustomer(ctx, CustomerInput{Name: "Ana", Phone: "111", Email: strPtr("ana@example.com")})
	require.NoError(t, err)

	byPhone, created, err := catalog.RegisterCustomer(ctx, CustomerInput{Name: "Ana Maria", Phone: "111"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, byPhone.ID)

	byEmail, created, err := catalog.RegisterCustomer(ctx, CustomerInput{Name: "Other", Phone: "222", Email: strPtr("ana@example.com")})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, byEmail.ID)

	all, err := catalog.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFindCustomer(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalogService(setupTestDB(t))

	bruno, _, err := catalog.RegisterCustomer(ctx, CustomerInput{Name: "Bruno Lima", Phone: "1"})
	require.NoError(t, err)
	_, _, err = catalog.RegisterCustomer(ctx, CustomerInput{Name: "Carla Dias", Phone: "2"})
	require.NoError(t, err)

	byID, err := catalog.FindCustomer(ctx, bruno.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bruno Lima", byID.Name)

	byName, err := catalog.FindCustomer(ctx, "carla")
	require.NoError(t, err)
	assert.Equal(t, "Carla Dias", byName.Name)

	// a name containing the id does not shadow the customer with that id
	decoy, _, err := catalog.RegisterCustomer(ctx, CustomerInput{Name: "Aa " + bruno.ID, Phone: "3"})
	require.NoError(t, err)
	byID, err = catalog.FindCustomer(ctx, bruno.ID)
	require.NoError(t, err)
	assert.Equal(t, bruno.ID, byID.ID)
	assert.NotEqual(t, decoy.ID, byID.ID)

	_, err = catalog.FindCustomer(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = catalog.FindCustomer(ctx, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateCustomer(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalogService(setupTestDB(t))

	c, _, err := catalog.RegisterCustomer(ctx, CustomerInput{Name: "Ana", Phone: "111", Address: strPtr("Rua A")})
	require.NoError(t, err)

	updated, err := catalog.UpdateCustomer(ctx, c.ID, CustomerPatch{Phone: strPtr("999"), Address: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "Ana", updated.Name)
	assert.Equal(t, "999", updated.Phone)
	assert.Nil(t, updated.Address)

	_, err = catalog.UpdateCustomer(ctx, c.ID, CustomerPatch{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = catalog.UpdateCustomer(ctx, c.ID, CustomerPatch{Name: strPtr(" ")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = catalog.UpdateCustomer(ctx, "C-missing", CustomerPatch{Name: strPtr("X")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCustomer(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalogService(setupTestDB(t))

	c, _, err := catalog.RegisterCustomer(ctx, CustomerInput{Name: "Ana", Phone: "111"})
	require.NoError(t, err)

	require.NoError(t, catalog.DeleteCustomer(ctx, c.ID))
	_, err = catalog.GetCustomer(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, catalog.DeleteCustomer(ctx, c.ID), ErrNotFound)
}

func TestRegisterProductValidation(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalogService(setupTestDB(t))

	cases := []struct {
		name string
		in   ProductInput
	}{
		{"blank name", ProductInput{Category: models.CategoryPizza, Name: " ", Price: dec("10")}},
		{"unknown category", ProductInput{Category: "Dessert", Name: "Pudim", Price: dec("10")}},
		{"negative price", ProductInput{Category: models.CategoryOther, Name: "Napkin", Price: dec("-1")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := catalog.RegisterProduct(ctx, tc.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	products, err := catalog.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductLifecycle(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalogService(setupTestDB(t))

	p, err := catalog.RegisterProduct(ctx, ProductInput{
		Category: models.CategoryPizza,
		Name:     "Pizza Calabresa",
		Price:    dec("45.004"),
		Meta:     strPtr("8 slices"),
	})
	require.NoError(t, err)
	assert.Equal(t, "45.00", p.Price.StringFixed(2))

	got, err := catalog.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "8 slices", *got.Meta)
	assert.True(t, got.Price.Equal(dec("45")))

	updated, err := catalog.UpdateProduct(ctx, p.ID, ProductInput{
		Category: models.CategoryPizza,
		Name:     "Pizza Calabresa Especial",
		Price:    dec("52.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Pizza Calabresa Especial", updated.Name)
	assert.Nil(t, updated.Meta)

	_, err = catalog.UpdateProduct(ctx, p.ID, ProductInput{Category: models.CategoryPizza, Name: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = catalog.UpdateProduct(ctx, "P-missing", ProductInput{Category: models.CategoryPizza, Name: "X"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, catalog.DeleteProduct(ctx, p.ID))
	assert.ErrorIs(t, catalog.DeleteProduct(ctx, p.ID), ErrNotFound)
}

func TestSearchProductsByName(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalogService(setupTestDB(t))
	seedProduct(t, catalog, "Pizza Calabresa", "45.00", models.CategoryPizza)
	seedProduct(t, catalog, "Pizza Mussarela", "40.00", models.CategoryPizza)
	seedProduct(t, catalog, "Coca-Cola Lata", "6.00", models.CategoryBeverage)

	found, err := catalog.SearchProductsByName(ctx, "PIZZA")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Pizza Calabresa", found[0].Name)

	none, err := catalog.SearchProductsByName(ctx, "sushi")
	require.NoError(t, err)
	assert.Empty(t, none)
}
