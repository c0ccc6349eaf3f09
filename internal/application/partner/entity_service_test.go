package partner

import (
	"context"
	"testing"

	"github.com/bauxite/backend/internal/domain/partner"
	domain "github.com/bauxite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEntityService(repo *mockEntityRepo) *EntityService {
	return NewEntityService(repo, newTestCache(), testTTL(), zap.NewNop())
}

func TestEntityService_Create(t *testing.T) {
	t.Run("creates entity", func(t *testing.T) {
		repo := new(mockEntityRepo)
		svc := newEntityService(repo)

		repo.On("ExistsByCode", mock.Anything, "HALCO-CN", uuid.Nil).Return(false, nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*partner.PartnerEntity")).Return(nil)

		result := svc.Create(context.Background(), CreateEntityRequest{
			Name:       "Halco China",
			Code:       "HALCO-CN",
			EntityType: "halco_buyer",
		})

		require.True(t, result.Success)
		response := result.Data.(EntityResponse)
		assert.Equal(t, "HALCO-CN", response.Code)
		assert.Equal(t, "halco_buyer", response.EntityType)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		repo := new(mockEntityRepo)
		svc := newEntityService(repo)

		repo.On("ExistsByCode", mock.Anything, "HALCO-CN", uuid.Nil).Return(true, nil)

		result := svc.Create(context.Background(), CreateEntityRequest{
			Name:       "Halco China",
			Code:       "HALCO-CN",
			EntityType: "halco_buyer",
		})

		assert.False(t, result.Success)
		assert.Equal(t, "ALREADY_EXISTS", result.ErrorCode)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("collects every field error", func(t *testing.T) {
		repo := new(mockEntityRepo)
		svc := newEntityService(repo)

		result := svc.Create(context.Background(), CreateEntityRequest{
			Name:       "",
			Code:       "bad code!",
			EntityType: "trader",
		})

		assert.False(t, result.Success)
		assert.Equal(t, "VALIDATION_ERROR", result.ErrorCode)
		require.Len(t, result.Errors, 3)
		assert.Contains(t, result.Errors[0], "code must match")
		assert.Contains(t, result.Errors[1], "entity_type must be one of")
		assert.Equal(t, "name is required", result.Errors[2])
		repo.AssertNotCalled(t, "ExistsByCode", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEntityService_ByType(t *testing.T) {
	t.Run("returns entities of one type", func(t *testing.T) {
		repo := new(mockEntityRepo)
		svc := newEntityService(repo)

		entity, err := partner.NewPartnerEntity("CPI Offtake", "CPI", "", partner.EntityTypeOfftaker)
		require.NoError(t, err)

		repo.On("FindByType", mock.Anything, partner.EntityTypeOfftaker).
			Return([]partner.PartnerEntity{*entity}, nil).Once()

		first := svc.ByType(context.Background(), "offtaker")
		second := svc.ByType(context.Background(), "offtaker")

		require.True(t, first.Success)
		require.True(t, second.Success)
		assert.Len(t, first.Data.([]EntityResponse), 1)
		repo.AssertExpectations(t)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		repo := new(mockEntityRepo)
		svc := newEntityService(repo)

		result := svc.ByType(context.Background(), "trader")

		assert.False(t, result.Success)
		assert.Equal(t, "VALIDATION_ERROR", result.ErrorCode)
		repo.AssertNotCalled(t, "FindByType", mock.Anything, mock.Anything)
	})
}

func TestEntityService_Update(t *testing.T) {
	repo := new(mockEntityRepo)
	svc := newEntityService(repo)

	entity, err := partner.NewPartnerEntity("Halco China", "HALCO-CN", "", partner.EntityTypeHalcoBuyer)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, entity.ID).Return(entity, nil)
	repo.On("ExistsByCode", mock.Anything, "HALCO-CN2", entity.ID).Return(false, nil)
	repo.On("Update", mock.Anything, entity).Return(nil)
	repo.On("CountPartners", mock.Anything, entity.ID).Return(int64(2), nil)

	result := svc.Update(context.Background(), entity.ID, UpdateEntityRequest{
		Name:       "Halco China Ltd",
		Code:       "HALCO-CN2",
		EntityType: "halco_buyer",
	})

	require.True(t, result.Success)
	response := result.Data.(EntityResponse)
	assert.Equal(t, "Halco China Ltd", response.Name)
	assert.Equal(t, int64(2), response.PartnerCount)
	repo.AssertExpectations(t)
}

func TestEntityService_Delete(t *testing.T) {
	t.Run("surfaces integrity violation for active partners", func(t *testing.T) {
		repo := new(mockEntityRepo)
		svc := newEntityService(repo)

		id := uuid.New()
		repo.On("Delete", mock.Anything, id).
			Return(domain.NewIntegrityError("partner entity", "2 active partners still belong to it"))

		result := svc.Delete(context.Background(), id)

		assert.False(t, result.Success)
		assert.Equal(t, "INTEGRITY_VIOLATION", result.ErrorCode)
		assert.Contains(t, result.Message, "2 active partners")
	})

	t.Run("deletes entity", func(t *testing.T) {
		repo := new(mockEntityRepo)
		svc := newEntityService(repo)

		id := uuid.New()
		repo.On("Delete", mock.Anything, id).Return(nil)

		result := svc.Delete(context.Background(), id)

		assert.True(t, result.Success)
		repo.AssertExpectations(t)
	})
}

func TestEntityService_GetCaches(t *testing.T) {
	repo := new(mockEntityRepo)
	svc := newEntityService(repo)

	entity, err := partner.NewPartnerEntity("Halco China", "HALCO-CN", "", partner.EntityTypeHalcoBuyer)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, entity.ID).Return(entity, nil).Once()
	repo.On("CountPartners", mock.Anything, entity.ID).Return(int64(0), nil).Once()

	first := svc.Get(context.Background(), entity.ID)
	second := svc.Get(context.Background(), entity.ID)

	require.True(t, first.Success)
	require.True(t, second.Success)
	repo.AssertExpectations(t)
}
