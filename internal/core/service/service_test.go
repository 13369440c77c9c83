package service_test

import (
	"context"
	"testing"

	"github.com/niksmo/ecoscan/internal/core/domain"
	"github.com/niksmo/ecoscan/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDecoder struct {
	mock.Mock
}

func (m *MockDecoder) Decode(image []byte) (string, error) {
	args := m.Called(image)
	return args.String(0), args.Error(1)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Product(ctx context.Context, gtin string) (domain.Product, error) {
	args := m.Called(ctx, gtin)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockCatalog) CategoryProducts(
	ctx context.Context, category string, limit int,
) ([]domain.Product, error) {
	args := m.Called(ctx, category, limit)
	return args.Get(0).([]domain.Product), args.Error(1)
}

type MockEvents struct {
	mock.Mock
}

func (m *MockEvents) ProduceScan(ctx context.Context, e domain.ScanEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) StoreScan(ctx context.Context, e domain.ScanEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

const (
	colaGTIN = "5449000000996"
	image    = "fake image bytes"
)

func newService(
	decoder *MockDecoder, catalog *MockCatalog,
) *service.Service {
	return service.New(service.Config{
		Decoder:         decoder,
		Catalog:         catalog,
		CarbonThreshold: 2.0,
		MaxAlternatives: 3,
	})
}

func colaProduct() domain.Product {
	return domain.Product{
		GTIN:       colaGTIN,
		Name:       "Coca-Cola",
		Brand:      "Coca-Cola",
		Category:   "Sodas, Beverages",
		EcoGrade:   domain.GradeE,
		NutriGrade: domain.GradeE,
		Footprint:  &domain.Footprint{Value: 5.3, Unit: "kg CO2e/kg"},
	}
}

func sodaCandidates() []domain.Product {
	return []domain.Product{
		{GTIN: "111", Name: "Spring Water", EcoGrade: domain.GradeA},
		{GTIN: "222", Name: "Iced Tea", EcoGrade: domain.GradeB},
		{GTIN: colaGTIN, Name: "Coca-Cola", EcoGrade: domain.GradeE},
	}
}

func TestScanImage(t *testing.T) {
	t.Run("NoBarcode", func(t *testing.T) {
		decoder := new(MockDecoder)
		decoder.On("Decode", []byte(image)).Return("", domain.ErrNoBarcode)

		s := newService(decoder, new(MockCatalog))
		report, err := s.ScanImage(t.Context(), []byte(image))
		require.NoError(t, err)

		assert.Equal(t, domain.StatusNotFound, report.Status)
		assert.Empty(t, report.Recommendations)
		assert.Empty(t, report.Alternatives)
		assert.Contains(t, report.Message, "barcode")
	})

	t.Run("NotInCatalog", func(t *testing.T) {
		decoder := new(MockDecoder)
		decoder.On("Decode", []byte(image)).Return(colaGTIN, nil)

		catalog := new(MockCatalog)
		catalog.On("Product", mock.Anything, colaGTIN).
			Return(domain.Product{}, domain.ErrNotFound)

		s := newService(decoder, catalog)
		report, err := s.ScanImage(t.Context(), []byte(image))
		require.NoError(t, err)

		assert.Equal(t, domain.StatusNotFound, report.Status)
		assert.Equal(t, colaGTIN, report.GTIN)
		assert.Contains(t, report.Message, colaGTIN)
	})

	t.Run("UnavailableTwiceIsError", func(t *testing.T) {
		decoder := new(MockDecoder)
		decoder.On("Decode", []byte(image)).Return(colaGTIN, nil)

		catalog := new(MockCatalog)
		catalog.On("Product", mock.Anything, colaGTIN).
			Return(domain.Product{}, domain.ErrUnavailable)

		s := newService(decoder, catalog)
		report, err := s.ScanImage(t.Context(), []byte(image))
		require.NoError(t, err)

		assert.Equal(t, domain.StatusError, report.Status)
		assert.Empty(t, report.Product.Name)
		assert.Nil(t, report.Assessment)
		catalog.AssertNumberOfCalls(t, "Product", 2)
	})

	t.Run("RetryRecoversTransientFailure", func(t *testing.T) {
		decoder := new(MockDecoder)
		decoder.On("Decode", []byte(image)).Return(colaGTIN, nil)

		catalog := new(MockCatalog)
		catalog.On("Product", mock.Anything, colaGTIN).
			Return(domain.Product{}, domain.ErrUnavailable).Once()
		catalog.On("Product", mock.Anything, colaGTIN).
			Return(colaProduct(), nil).Once()
		catalog.On("CategoryProducts", mock.Anything, "Sodas", 5).
			Return(sodaCandidates(), nil)

		s := newService(decoder, catalog)
		report, err := s.ScanImage(t.Context(), []byte(image))
		require.NoError(t, err)

		assert.Equal(t, domain.StatusSuccess, report.Status)
	})

	t.Run("HighCarbonSoda", func(t *testing.T) {
		decoder := new(MockDecoder)
		decoder.On("Decode", []byte(image)).Return(colaGTIN, nil)

		catalog := new(MockCatalog)
		catalog.On("Product", mock.Anything, colaGTIN).Return(colaProduct(), nil)
		catalog.On("CategoryProducts", mock.Anything, "Sodas", 5).
			Return(sodaCandidates(), nil)

		s := newService(decoder, catalog)
		report, err := s.ScanImage(t.Context(), []byte(image))
		require.NoError(t, err)

		assert.Equal(t, domain.StatusSuccess, report.Status)
		require.NotNil(t, report.Assessment)
		assert.True(t, report.Assessment.High)

		require.NotEmpty(t, report.Recommendations)
		assert.Equal(t, domain.PriorityHigh, report.Recommendations[0].Priority)

		require.NotEmpty(t, report.Alternatives)
		for _, alt := range report.Alternatives {
			assert.NotEqual(t, colaGTIN, alt.GTIN)
			assert.True(t, alt.EcoGrade.Better(domain.GradeE))
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		decoder := new(MockDecoder)
		decoder.On("Decode", []byte(image)).Return(colaGTIN, nil)

		catalog := new(MockCatalog)
		catalog.On("Product", mock.Anything, colaGTIN).Return(colaProduct(), nil)
		catalog.On("CategoryProducts", mock.Anything, "Sodas", 5).
			Return(sodaCandidates(), nil)

		s := newService(decoder, catalog)
		first, err := s.ScanImage(t.Context(), []byte(image))
		require.NoError(t, err)
		second, err := s.ScanImage(t.Context(), []byte(image))
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("AlternativesFailureDoesNotFailScan", func(t *testing.T) {
		decoder := new(MockDecoder)
		decoder.On("Decode", []byte(image)).Return(colaGTIN, nil)

		catalog := new(MockCatalog)
		catalog.On("Product", mock.Anything, colaGTIN).Return(colaProduct(), nil)
		catalog.On("CategoryProducts", mock.Anything, "Sodas", 5).
			Return([]domain.Product(nil), domain.ErrUnavailable)

		s := newService(decoder, catalog)
		report, err := s.ScanImage(t.Context(), []byte(image))
		require.NoError(t, err)

		assert.Equal(t, domain.StatusSuccess, report.Status)
		assert.Empty(t, report.Alternatives)
	})
}

func TestResolveGTIN(t *testing.T) {
	t.Run("GradeANoFootprint", func(t *testing.T) {
		catalog := new(MockCatalog)
		catalog.On("Product", mock.Anything, "4000417025005").Return(domain.Product{
			GTIN:     "4000417025005",
			Name:     "Oat Drink",
			Category: "Plant-based drinks",
			EcoGrade: domain.GradeA,
		}, nil)

		s := newService(new(MockDecoder), catalog)
		report, err := s.ResolveGTIN(t.Context(), "4000417025005")
		require.NoError(t, err)

		assert.Equal(t, domain.StatusSuccess, report.Status)
		assert.Nil(t, report.Assessment)

		require.Len(t, report.Recommendations, 1)
		assert.Equal(t, domain.PriorityLow, report.Recommendations[0].Priority)

		assert.Empty(t, report.Alternatives)
		catalog.AssertNotCalled(t, "CategoryProducts",
			mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("SideEffectsAreBestEffort", func(t *testing.T) {
		catalog := new(MockCatalog)
		catalog.On("Product", mock.Anything, colaGTIN).Return(colaProduct(), nil)
		catalog.On("CategoryProducts", mock.Anything, "Sodas", 5).
			Return(sodaCandidates(), nil)

		events := new(MockEvents)
		events.On("ProduceScan", mock.Anything, mock.Anything).
			Return(domain.ErrUnavailable)
		history := new(MockHistory)
		history.On("StoreScan", mock.Anything, mock.Anything).Return(nil)

		s := service.New(service.Config{
			Decoder:         new(MockDecoder),
			Catalog:         catalog,
			Events:          events,
			History:         history,
			CarbonThreshold: 2.0,
			MaxAlternatives: 3,
		})

		report, err := s.ResolveGTIN(t.Context(), colaGTIN)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusSuccess, report.Status)

		events.AssertCalled(t, "ProduceScan", mock.Anything, mock.Anything)
		history.AssertCalled(t, "StoreScan", mock.Anything, mock.Anything)
	})
}
