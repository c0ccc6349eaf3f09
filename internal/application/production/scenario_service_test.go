package production

import (
	"context"
	"testing"
	"time"

	"github.com/bauxite/backend/internal/domain/partner"
	"github.com/bauxite/backend/internal/domain/production"
	domain "github.com/bauxite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type scenarioFixture struct {
	svc       *ScenarioService
	scenarios *mockScenarioRepo
	partners  *mockPartnerRepo
}

func newScenarioFixture() *scenarioFixture {
	scenarios := new(mockScenarioRepo)
	partners := new(mockPartnerRepo)
	return &scenarioFixture{
		svc:       NewScenarioService(scenarios, partners, newTestCache(), testTTL(), zap.NewNop()),
		scenarios: scenarios,
		partners:  partners,
	}
}

func validRequest() ScenarioRequest {
	return ScenarioRequest{
		Name:             "2026 Plan",
		ContractualYear:  2026,
		StartDate:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:           "plan",
		ProductionVolume: 500000,
	}
}

func testScenario(t *testing.T) *production.ProductionScenario {
	t.Helper()
	s, err := production.NewProductionScenario(production.ScenarioParams{
		Name:             "2026 Plan",
		ContractualYear:  2026,
		StartDate:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:           production.ScenarioStatusPlan,
		ProductionVolume: decimal.NewFromInt(500000),
	})
	require.NoError(t, err)
	return s
}

func TestScenarioService_Create(t *testing.T) {
	t.Run("creates scenario with default moisture", func(t *testing.T) {
		f := newScenarioFixture()

		f.scenarios.On("Create", mock.Anything, mock.AnythingOfType("*production.ProductionScenario")).Return(nil)

		result := f.svc.Create(context.Background(), validRequest())

		require.True(t, result.Success)
		response := result.Data.(ScenarioResponse)
		assert.Equal(t, "plan", response.Status)
		assert.True(t, decimal.NewFromFloat(3.0).Equal(response.MoisturePercentage))
		assert.True(t, decimal.NewFromInt(485000).Equal(response.DryVolume))
		f.scenarios.AssertExpectations(t)
	})

	t.Run("names missing allocation partners", func(t *testing.T) {
		f := newScenarioFixture()

		missing := uuid.New()
		f.partners.On("FindByID", mock.Anything, missing).Return(nil, domain.ErrNotFound)

		req := validRequest()
		req.PartnerAllocations = map[uuid.UUID]AllocationRequest{
			missing: {Percentage: 100, VolumeMT: 500000},
		}

		result := f.svc.Create(context.Background(), req)

		assert.False(t, result.Success)
		assert.Equal(t, "VALIDATION_ERROR", result.ErrorCode)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], missing.String())
		f.scenarios.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects second baseline for the same year", func(t *testing.T) {
		f := newScenarioFixture()

		existing := testScenario(t)
		existing.IsBaseline = true
		f.scenarios.On("FindBaseline", mock.Anything, 2026).Return(existing, nil)

		req := validRequest()
		req.IsBaseline = true

		result := f.svc.Create(context.Background(), req)

		assert.False(t, result.Success)
		assert.Equal(t, "VALIDATION_ERROR", result.ErrorCode)
		assert.Contains(t, result.Errors[0], "baseline scenario already exists for year 2026")
		f.scenarios.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects allocations that do not sum to 100", func(t *testing.T) {
		f := newScenarioFixture()

		p, err := partner.NewPartner("Chalco", "CHALCO", "", uuid.New(), nil)
		require.NoError(t, err)
		f.partners.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		req := validRequest()
		req.PartnerAllocations = map[uuid.UUID]AllocationRequest{
			p.ID: {Percentage: 60, VolumeMT: 300000},
		}

		result := f.svc.Create(context.Background(), req)

		assert.False(t, result.Success)
		assert.Equal(t, "INVALID_ALLOCATION", result.ErrorCode)
		f.scenarios.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestScenarioService_Update(t *testing.T) {
	t.Run("refuses to modify archived scenarios", func(t *testing.T) {
		f := newScenarioFixture()

		scenario := testScenario(t)
		require.NoError(t, scenario.Archive())
		f.scenarios.On("FindByID", mock.Anything, scenario.ID).Return(scenario, nil)

		result := f.svc.Update(context.Background(), scenario.ID, validRequest())

		assert.False(t, result.Success)
		assert.Equal(t, "SCENARIO_ARCHIVED", result.ErrorCode)
		f.scenarios.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("updates scenario", func(t *testing.T) {
		f := newScenarioFixture()

		scenario := testScenario(t)
		f.scenarios.On("FindByID", mock.Anything, scenario.ID).Return(scenario, nil)
		f.scenarios.On("Update", mock.Anything, scenario).Return(nil)

		req := validRequest()
		req.Name = "2026 Plan Revised"

		result := f.svc.Update(context.Background(), scenario.ID, req)

		require.True(t, result.Success)
		assert.Equal(t, "2026 Plan Revised", result.Data.(ScenarioResponse).Name)
		f.scenarios.AssertExpectations(t)
	})
}

func TestScenarioService_Archive(t *testing.T) {
	t.Run("archives scenario", func(t *testing.T) {
		f := newScenarioFixture()

		scenario := testScenario(t)
		f.scenarios.On("FindByID", mock.Anything, scenario.ID).Return(scenario, nil)
		f.scenarios.On("Update", mock.Anything, scenario).Return(nil)

		result := f.svc.Archive(context.Background(), scenario.ID)

		require.True(t, result.Success)
		assert.Equal(t, "archived", result.Data.(ScenarioResponse).Status)
		f.scenarios.AssertExpectations(t)
	})

	t.Run("rejects double archive", func(t *testing.T) {
		f := newScenarioFixture()

		scenario := testScenario(t)
		require.NoError(t, scenario.Archive())
		f.scenarios.On("FindByID", mock.Anything, scenario.ID).Return(scenario, nil)

		result := f.svc.Archive(context.Background(), scenario.ID)

		assert.False(t, result.Success)
		assert.Equal(t, "ALREADY_ARCHIVED", result.ErrorCode)
		f.scenarios.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestScenarioService_Duplicate(t *testing.T) {
	f := newScenarioFixture()

	source := testScenario(t)
	source.IsBaseline = true
	f.scenarios.On("FindByID", mock.Anything, source.ID).Return(source, nil)
	f.scenarios.On("Create", mock.Anything, mock.AnythingOfType("*production.ProductionScenario")).Return(nil)

	result := f.svc.Duplicate(context.Background(), source.ID, DuplicateScenarioRequest{})

	require.True(t, result.Success)
	variant := result.Data.(ScenarioResponse)
	assert.Equal(t, "2026 Plan (variant)", variant.Name)
	assert.Equal(t, "draft", variant.Status)
	assert.False(t, variant.IsBaseline)
	require.NotNil(t, variant.ParentScenarioID)
	assert.Equal(t, source.ID, *variant.ParentScenarioID)
	assert.NotEqual(t, source.ID, variant.ID)
	f.scenarios.AssertExpectations(t)
}

func TestScenarioService_Baseline(t *testing.T) {
	t.Run("returns baseline for year", func(t *testing.T) {
		f := newScenarioFixture()

		baseline := testScenario(t)
		baseline.IsBaseline = true
		f.scenarios.On("FindBaseline", mock.Anything, 2026).Return(baseline, nil).Once()

		first := f.svc.Baseline(context.Background(), 2026)
		second := f.svc.Baseline(context.Background(), 2026)

		require.True(t, first.Success)
		require.True(t, second.Success)
		f.scenarios.AssertExpectations(t)
	})

	t.Run("maps missing baseline to NOT_FOUND", func(t *testing.T) {
		f := newScenarioFixture()

		f.scenarios.On("FindBaseline", mock.Anything, 2031).Return(nil, domain.ErrNotFound)

		result := f.svc.Baseline(context.Background(), 2031)

		assert.False(t, result.Success)
		assert.Equal(t, "NOT_FOUND", result.ErrorCode)
		assert.Contains(t, result.Message, "2031")
	})
}

func TestScenarioService_ByStatus(t *testing.T) {
	t.Run("rejects unknown status", func(t *testing.T) {
		f := newScenarioFixture()

		result := f.svc.ByStatus(context.Background(), "pending")

		assert.False(t, result.Success)
		assert.Equal(t, "VALIDATION_ERROR", result.ErrorCode)
		f.scenarios.AssertNotCalled(t, "FindByStatus", mock.Anything, mock.Anything)
	})

	t.Run("returns scenarios in status", func(t *testing.T) {
		f := newScenarioFixture()

		scenario := testScenario(t)
		f.scenarios.On("FindByStatus", mock.Anything, production.ScenarioStatusPlan).
			Return([]production.ProductionScenario{*scenario}, nil).Once()

		first := f.svc.ByStatus(context.Background(), "plan")
		second := f.svc.ByStatus(context.Background(), "plan")

		require.True(t, first.Success)
		require.True(t, second.Success)
		assert.Len(t, first.Data.([]ScenarioResponse), 1)
		f.scenarios.AssertExpectations(t)
	})
}

func TestScenarioService_Variants(t *testing.T) {
	f := newScenarioFixture()

	source := testScenario(t)
	variant, err := source.DuplicateAsVariant("")
	require.NoError(t, err)

	f.scenarios.On("FindByID", mock.Anything, source.ID).Return(source, nil)
	f.scenarios.On("FindVariants", mock.Anything, source.ID).
		Return([]production.ProductionScenario{*variant}, nil)

	result := f.svc.Variants(context.Background(), source.ID)

	require.True(t, result.Success)
	responses := result.Data.([]ScenarioResponse)
	require.Len(t, responses, 1)
	assert.Equal(t, source.ID, *responses[0].ParentScenarioID)
}
