package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/shosa/coregre-tracking/internal/errors"
)

func TestCreateType(t *testing.T) {
	svc := NewTypeService(newTestStore(t), testLogger())
	ctx := context.Background()

	created, err := svc.CreateType(ctx, "  SPEDIZIONE  ", " shipments ")
	require.NoError(t, err)
	assert.Equal(t, "SPEDIZIONE", created.Name)
	assert.Equal(t, "shipments", created.Note)
	assert.NotZero(t, created.ID)

	types, err := svc.ListTypes(ctx)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, created.ID, types[0].ID)
}

func TestCreateType_BlankName(t *testing.T) {
	svc := NewTypeService(newTestStore(t), testLogger())

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := svc.CreateType(context.Background(), name, "")
		assert.True(t, errors.Is(err, domainerrors.ErrValidation), "name %q: got %v", name, err)
	}
}

func TestListTypes_InsertionOrder(t *testing.T) {
	svc := NewTypeService(newTestStore(t), testLogger())
	ctx := context.Background()

	names := []string{"ZETA", "ALFA", "MEDIA"}
	for _, name := range names {
		_, err := svc.CreateType(ctx, name, "")
		require.NoError(t, err)
	}

	types, err := svc.ListTypes(ctx)
	require.NoError(t, err)
	require.Len(t, types, 3)
	for i, lt := range types {
		assert.Equal(t, names[i], lt.Name)
	}
}
