package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/buku/internal/backend"
	"github.com/MrJamesThe3rd/buku/internal/dashboard"
	"github.com/MrJamesThe3rd/buku/internal/entry"
	bukuHttp "github.com/MrJamesThe3rd/buku/internal/http"
	dashboardHandler "github.com/MrJamesThe3rd/buku/internal/http/dashboard"
	entryHandler "github.com/MrJamesThe3rd/buku/internal/http/entry"
	importHandler "github.com/MrJamesThe3rd/buku/internal/http/importcsv"
	reportHandler "github.com/MrJamesThe3rd/buku/internal/http/report"
	"github.com/MrJamesThe3rd/buku/internal/importer"
)

var now = time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func mk(kind entry.Kind, id, amt string, day int, cat string) entry.Entry {
	return entry.Entry{
		ID:         id,
		Kind:       kind,
		Amount:     decimal.RequireFromString(amt),
		OccurredOn: time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC),
		Category:   cat,
	}
}

func fixture() map[entry.Kind][]entry.Entry {
	income := mk(entry.KindIncome, "i1", "1000", 5, "daily")
	income.TaxPercent = decimal.NewFromInt(10)

	return map[entry.Kind][]entry.Entry{
		entry.KindIncome:  {income},
		entry.KindExpense: {mk(entry.KindExpense, "s1", "200", 6, "rent")},
		entry.KindAsset: {
			mk(entry.KindAsset, "a2", "300", 3, "inventory"),
			mk(entry.KindAsset, "a1", "500", 2, "kendaraan"),
		},
	}
}

func newRouter(t *testing.T, opts bukuHttp.Options) (http.Handler, *entry.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := entry.NewMockRepository(ctrl)

	data := fixture()
	for _, k := range entry.Kinds() {
		repo.EXPECT().ListEntries(gomock.Any(), k).Return(data[k], nil).AnyTimes()
	}

	var (
		entrySvc     = entry.NewService(repo)
		dashboardSvc = dashboard.NewService(entrySvc, dashboard.DefaultOptions())
	)

	opts.Now = clock

	router := bukuHttp.New(opts,
		dashboardHandler.NewHandler(dashboardSvc, clock),
		entryHandler.NewHandler(entrySvc),
		importHandler.NewHandler(importer.NewService(), entrySvc),
		reportHandler.NewHandler(dashboardSvc, clock),
	)

	return router, repo
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return out
}

func TestRouter_Dashboard(t *testing.T) {
	router, _ := newRouter(t, bukuHttp.Options{StaticToken: true})

	t.Run("cashflow", func(t *testing.T) {
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/cashflow?period=month", nil))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		body := decode(t, rec)
		assert.Equal(t, "1300.00", body["total_in"])
		assert.Equal(t, "700.00", body["total_out"])
		assert.Equal(t, "600.00", body["net"])
		assert.Equal(t, "130.00", body["average_in"])
		assert.Equal(t, false, body["aggregated"])
		assert.Len(t, body["points"], 10)
	})

	t.Run("netprofit", func(t *testing.T) {
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/netprofit?start=2024-03-01&end=2024-03-10", nil))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		body := decode(t, rec)
		assert.Equal(t, "700.00", body["total_net_profit"])
		assert.Equal(t, "100.00", body["total_tax"])
		assert.Equal(t, "70.00", body["average_net_profit"])

		bars := body["bars"].([]any)
		require.Len(t, bars, 5)
		assert.Equal(t, "6/3", bars[2].(map[string]any)["label"])
		assert.Equal(t, "700.00", bars[2].(map[string]any)["net_profit"])
	})

	t.Run("summary", func(t *testing.T) {
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		body := decode(t, rec)
		current := body["current"].(map[string]any)
		assert.Equal(t, "1000.00", current["gross_profit"])
		assert.Equal(t, "100.00", current["ebitda"])
		assert.Equal(t, "700.00", current["net_profit"])

		income := body["income"].(map[string]any)
		assert.Equal(t, "0.00", income["percent_change"])
		assert.Equal(t, "no_change", income["trend"])
	})

	t.Run("breakdown", func(t *testing.T) {
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/breakdown", nil))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		assets := decode(t, rec)["assets"].(map[string]any)
		assert.Equal(t, "800.00", assets["total"])

		slices := assets["slices"].([]any)
		require.Len(t, slices, 2)
		assert.Equal(t, "Inventori", slices[0].(map[string]any)["label"])
		assert.Equal(t, "37.50", slices[0].(map[string]any)["share"])
	})

	t.Run("bad period", func(t *testing.T) {
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/cashflow?period=decade", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("inverted range", func(t *testing.T) {
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/cashflow?start=2024-03-10&end=2024-03-01", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("range too long", func(t *testing.T) {
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/cashflow?start=1700-01-01&end=2030-12-31", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_Entries(t *testing.T) {
	router, repo := newRouter(t, bukuHttp.Options{StaticToken: true})

	t.Run("list sorted by date", func(t *testing.T) {
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/entries/asset", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var list []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		require.Len(t, list, 2)
		assert.Equal(t, "a1", list[0]["id"])
		assert.Equal(t, "500.00", list[0]["amount"])
		assert.Equal(t, "2024-03-02", list[0]["date"])
	})

	t.Run("create resolves category", func(t *testing.T) {
		repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entry.CreateParams) (*entry.Entry, error) {
				assert.Equal(t, entry.KindExpense, p.Kind)
				assert.Equal(t, "rent", p.Category)
				assert.Equal(t, "45.5", p.Amount.String())

				return &entry.Entry{ID: "s9", Kind: p.Kind, Amount: p.Amount, OccurredOn: p.OccurredOn, Category: p.Category}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/entries/expense",
			strings.NewReader(`{"amount":"45.5","date":"2024-03-07","category":"Sewa"}`))
		req.Header.Set("Content-Type", "application/json")

		rec := serve(router, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "s9", decode(t, rec)["id"])
	})

	t.Run("create rejects zero amount", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/entries/income",
			strings.NewReader(`{"amount":0,"date":"2024-03-07","category":"daily"}`))
		req.Header.Set("Content-Type", "application/json")

		assert.Equal(t, http.StatusBadRequest, serve(router, req).Code)
	})

	t.Run("create rejects malformed date", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/entries/expense",
			strings.NewReader(`{"amount":"10","date":"07/03/2024"}`))
		req.Header.Set("Content-Type", "application/json")

		rec := serve(router, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Date")
	})

	t.Run("list rejects malformed start", func(t *testing.T) {
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/entries/asset?start=02-03-2024", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list filters by window", func(t *testing.T) {
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/entries/asset?start=2024-03-03&end=2024-03-31", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var list []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		require.Len(t, list, 1)
		assert.Equal(t, "a2", list[0]["id"])
	})

	t.Run("update", func(t *testing.T) {
		repo.EXPECT().UpdateEntry(gomock.Any(), "a1", gomock.Any()).DoAndReturn(
			func(_ context.Context, id string, p entry.CreateParams) (*entry.Entry, error) {
				assert.Equal(t, entry.KindAsset, p.Kind)
				assert.Equal(t, "kendaraan", p.Category)
				assert.Equal(t, "650", p.Amount.String())

				return &entry.Entry{ID: id, Kind: p.Kind, Amount: p.Amount, OccurredOn: p.OccurredOn, Category: p.Category}, nil
			})

		req := httptest.NewRequest(http.MethodPut, "/api/v1/entries/asset/a1",
			strings.NewReader(`{"amount":"650","date":"2024-03-02","category":"kendaraan"}`))
		req.Header.Set("Content-Type", "application/json")

		rec := serve(router, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "650.00", decode(t, rec)["amount"])
	})

	t.Run("update missing", func(t *testing.T) {
		repo.EXPECT().UpdateEntry(gomock.Any(), "gone", gomock.Any()).
			Return(nil, &backend.APIError{Status: http.StatusNotFound})

		req := httptest.NewRequest(http.MethodPut, "/api/v1/entries/equity/gone",
			strings.NewReader(`{"amount":"10","date":"2024-03-02","category":"initial"}`))
		req.Header.Set("Content-Type", "application/json")

		assert.Equal(t, http.StatusNotFound, serve(router, req).Code)
	})

	t.Run("delete missing", func(t *testing.T) {
		repo.EXPECT().DeleteEntry(gomock.Any(), entry.KindIncome, "gone").
			Return(&backend.APIError{Status: http.StatusNotFound})

		rec := serve(router, httptest.NewRequest(http.MethodDelete, "/api/v1/entries/income/gone", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown kind", func(t *testing.T) {
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/entries/gift", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func multipartCSV(t *testing.T, csv string, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", "entries.csv")
	require.NoError(t, err)

	_, err = fw.Write([]byte(csv))
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func TestRouter_Import(t *testing.T) {
	router, repo := newRouter(t, bukuHttp.Options{StaticToken: true})

	const csv = "Tarikh,Jenis,Kategori,Jumlah\n08/03/2024,Pendapatan,Harian,\"1.250,50\"\n"

	t.Run("dry run", func(t *testing.T) {
		rec := serve(router, multipartCSV(t, csv, map[string]string{"dry_run": "true"}))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		body := decode(t, rec)
		assert.EqualValues(t, 1, body["parsed"])

		first := body["entries"].([]any)[0].(map[string]any)
		assert.Equal(t, "1250.50", first["amount"])
		assert.Equal(t, "daily", first["category"])
	})

	t.Run("create", func(t *testing.T) {
		repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).Return(&entry.Entry{ID: "i7"}, nil)

		rec := serve(router, multipartCSV(t, csv, nil))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		body := decode(t, rec)
		assert.EqualValues(t, 1, body["imported"])
		assert.Equal(t, []any{"i7"}, body["ids"])
	})

	t.Run("no layout", func(t *testing.T) {
		rec := serve(router, multipartCSV(t, "foo,bar\n1,2\n", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_Reports(t *testing.T) {
	router, _ := newRouter(t, bukuHttp.Options{StaticToken: true})

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/reports/cashflow.csv?start=2024-03-05&end=2024-03-06", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "cashflow_20240305_20240306.csv")
	assert.Equal(t, "label,cash_in,cash_out,net\n5/3,1000.00,0.00,1000.00\n6/3,0.00,200.00,-200.00\n", rec.Body.String())

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/reports/summary.txt?period=month", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cash flow 2024-03-01..2024-03-10 (10 days)")
}

func TestRouter_Auth(t *testing.T) {
	router, _ := newRouter(t, bukuHttp.Options{})

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/breakdown", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/breakdown", nil)
	req.Header.Set("Authorization", "Bearer opaque-token")
	assert.Equal(t, http.StatusOK, serve(router, req).Code)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	router, _ := newRouter(t, bukuHttp.Options{StaticToken: true, RateLimit: 0.001, RateBurst: 1})

	assert.Equal(t, http.StatusNoContent, serve(router, httptest.NewRequest(http.MethodGet, "/healthz", nil)).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, httptest.NewRequest(http.MethodGet, "/healthz", nil)).Code)
}
