package dropdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleet-registry/internal/domain"
	"fleet-registry/internal/mocks"
)

func TestListGroupsByKind(t *testing.T) {
	repo := new(mocks.DropdownRepository)
	svc := NewService(repo, nil)

	repo.On("ListAll", mock.Anything).Return([]domain.DropdownOption{
		{ID: 1, Kind: domain.KindVehicleType, Name: "Pickup"},
		{ID: 2, Kind: domain.KindVehicleType, Name: "Trailer"},
		{ID: 3, Kind: domain.KindMake, Name: "Volvo"},
	}, nil)

	out, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, out[domain.KindVehicleType], 2)
	assert.Len(t, out[domain.KindMake], 1)

	// Every kind is present even with no rows, so clients can render
	// empty selects without nil checks.
	for _, kind := range domain.DropdownKinds() {
		_, ok := out[kind]
		assert.True(t, ok, "missing kind %s", kind)
	}
}
