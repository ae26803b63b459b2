package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "pvpulse/internal/errors"
	"pvpulse/internal/services"
	"pvpulse/internal/shared/testutil"
	"pvpulse/pkg/contracts/domain"
)

// stubService implements DataServiceInterface with overridable functions.
type stubService struct {
	products     []domain.CatalogProduct
	recordsFn    func(rangeToken string) (domain.Dataset, error)
	seriesFn     func(view services.ViewState) (domain.Series, error)
	statsFn      func(view services.ViewState) (domain.PriceStats, error)
	allStatsFn   func(rangeToken string) ([]domain.PriceStats, error)
	lastUpdateFn func() (domain.CalendarDay, error)
	reloadFn     func() (int, error)
}

func (s *stubService) Products(ctx context.Context) []domain.CatalogProduct { return s.products }

func (s *stubService) Records(ctx context.Context, rangeToken string) (domain.Dataset, error) {
	return s.recordsFn(rangeToken)
}

func (s *stubService) Series(ctx context.Context, view services.ViewState) (domain.Series, error) {
	return s.seriesFn(view)
}

func (s *stubService) ProductStats(ctx context.Context, view services.ViewState) (domain.PriceStats, error) {
	return s.statsFn(view)
}

func (s *stubService) AllStats(ctx context.Context, rangeToken string) ([]domain.PriceStats, error) {
	return s.allStatsFn(rangeToken)
}

func (s *stubService) LastUpdate(ctx context.Context) (domain.CalendarDay, error) {
	return s.lastUpdateFn()
}

func (s *stubService) Reload(ctx context.Context) (int, error) { return s.reloadFn() }

type stubNotifier struct {
	updates []int
}

func (n *stubNotifier) NotifyDataUpdate(records int) { n.updates = append(n.updates, records) }

func newTestHandler(t *testing.T, svc DataServiceInterface, notifier Notifier) *DataHandler {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	return NewDataHandler(svc, notifier, logger, apperrors.NewErrorHandler(logger, false))
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestDataHandler_GetProducts(t *testing.T) {
	svc := &stubService{products: testutil.Catalog()}
	h := newTestHandler(t, svc, nil)

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	products := body["products"].([]interface{})
	require.Len(t, products, 2)
	first := products[0].(map[string]interface{})
	assert.Equal(t, "Xăng RON 95-III", first["name"])
	assert.Equal(t, "ron95", first["code"])
}

func TestDataHandler_GetRanges(t *testing.T) {
	h := newTestHandler(t, &stubService{}, nil)

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ranges", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Len(t, body["ranges"].([]interface{}), 6)
}

func TestDataHandler_GetRecords(t *testing.T) {
	svc := &stubService{
		recordsFn: func(rangeToken string) (domain.Dataset, error) {
			assert.Equal(t, "1M", rangeToken)
			return domain.Dataset{
				testutil.Record(t, "01/03/2024", "Dầu KO", 21450),
			}, nil
		},
	}
	h := newTestHandler(t, svc, nil)

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/records?range=1M", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, "1M", body["range"])
	assert.Equal(t, float64(1), body["count"])
}

func TestDataHandler_GetRecords_UnknownRangeBecomesAll(t *testing.T) {
	svc := &stubService{
		recordsFn: func(rangeToken string) (domain.Dataset, error) {
			return domain.Dataset{}, nil
		},
	}
	h := newTestHandler(t, svc, nil)

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/records?range=bogus", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALL", decodeJSON(t, rec)["range"])
}

func TestDataHandler_GetSeries(t *testing.T) {
	value := 23540.0
	svc := &stubService{
		seriesFn: func(view services.ViewState) (domain.Series, error) {
			return domain.Series{
				Labels: []string{"01/03/2024"},
				Values: map[string][]*float64{"ron95": {&value}},
			}, nil
		},
	}
	h := newTestHandler(t, svc, nil)

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/series?range=3M", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	series := body["series"].(map[string]interface{})
	assert.Equal(t, []interface{}{"01/03/2024"}, series["labels"].([]interface{}))
}

func TestDataHandler_GetSeries_SourceDown(t *testing.T) {
	svc := &stubService{
		seriesFn: func(view services.ViewState) (domain.Series, error) {
			return domain.Series{}, apperrors.NewDataUnavailableError("prices.csv", nil)
		},
	}
	h := newTestHandler(t, svc, nil)

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/series", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, apperrors.TypeDataUnavailable, decodeJSON(t, rec)["type"])
}

func TestDataHandler_GetStats_SingleProduct(t *testing.T) {
	svc := &stubService{
		statsFn: func(view services.ViewState) (domain.PriceStats, error) {
			assert.Equal(t, "ron95", view.Product)
			return domain.PriceStats{Product: "Xăng RON 95-III", Observations: 3}, nil
		},
	}
	h := newTestHandler(t, svc, nil)

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats?range=ALL&product=ron95", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeJSON(t, rec)["stats"].(map[string]interface{})
	assert.Equal(t, "Xăng RON 95-III", stats["product"])
}

func TestDataHandler_GetStats_AllProducts(t *testing.T) {
	svc := &stubService{
		allStatsFn: func(rangeToken string) ([]domain.PriceStats, error) {
			return []domain.PriceStats{
				{Product: "Xăng RON 95-III"},
				{Product: "Dầu KO"},
			}, nil
		},
	}
	h := newTestHandler(t, svc, nil)

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeJSON(t, rec)["stats"].([]interface{}), 2)
}

func TestDataHandler_GetStats_NoData(t *testing.T) {
	svc := &stubService{
		statsFn: func(view services.ViewState) (domain.PriceStats, error) {
			return domain.PriceStats{}, fmt.Errorf("%w: Dầu KO", apperrors.ErrNoData)
		},
	}
	h := newTestHandler(t, svc, nil)

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats?product=ko", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperrors.TypeNoData, decodeJSON(t, rec)["type"])
}

func TestDataHandler_GetLastUpdate(t *testing.T) {
	svc := &stubService{
		lastUpdateFn: func() (domain.CalendarDay, error) {
			return domain.ParseDay("29/03/2024"), nil
		},
	}
	h := newTestHandler(t, svc, nil)

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/last-update", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "29/03/2024", decodeJSON(t, rec)["last_update"])
}

func TestDataHandler_Reload(t *testing.T) {
	svc := &stubService{reloadFn: func() (int, error) { return 42, nil }}
	notifier := &stubNotifier{}
	h := newTestHandler(t, svc, notifier)

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reload", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, "reloaded", body["status"])
	assert.Equal(t, float64(42), body["records"])
	assert.Equal(t, []int{42}, notifier.updates)
}

func TestDataHandler_ReloadFailureSkipsNotify(t *testing.T) {
	svc := &stubService{reloadFn: func() (int, error) {
		return 0, apperrors.NewDataUnavailableError("prices.csv", nil)
	}}
	notifier := &stubNotifier{}
	h := newTestHandler(t, svc, notifier)

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reload", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Empty(t, notifier.updates)
}
