package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/holdings-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/services"
	"github.com/custodia-labs/holdings-cli/internal/parsers"
	"github.com/custodia-labs/holdings-cli/internal/parsers/splitter"
)

const submission = `<SEC-HEADER>
ACCESSION NUMBER:		0001364742-24-000010
CONFORMED SUBMISSION TYPE:	13F-HR
CONFORMED PERIOD OF REPORT:	20231231
COMPANY CONFORMED NAME:		BlackRock Inc.
</SEC-HEADER>
<DOCUMENT>
<TYPE>INFORMATION TABLE
<infoTable>
<nameOfIssuer>APPLE INC</nameOfIssuer>
<titleOfClass>COM</titleOfClass>
<cusip>037833100</cusip>
<value>1000</value>
</infoTable>
<infoTable>
<nameOfIssuer>NO CUSIP CORP</nameOfIssuer>
<titleOfClass>COM</titleOfClass>
</infoTable>
</DOCUMENT>
`

func newTestServer(t *testing.T, withCatalog bool) (*Server, *memory.FilingStore) {
	t.Helper()

	ports := &Ports{
		Titles:     services.NewTitleService(),
		Conversion: services.NewConversionService(splitter.New(), parsers.DefaultRegistry(), nil, nil, nil, nil, nil),
	}

	store := memory.NewFilingStore()
	if withCatalog {
		ports.Catalog = services.NewCatalogService(store)
	}

	s, err := NewServer(ports)
	require.NoError(t, err)
	return s, store
}

func seed(t *testing.T, store *memory.FilingStore) {
	t.Helper()
	err := store.SaveFiling(context.Background(), &domain.StoredFiling{
		AccessionNumber: "0001364742-24-000010",
		Period:          "20231231",
		FilerName:       "BlackRock Inc.",
	}, []domain.HoldingRecord{
		{IssuerName: "APPLE INC", ClassTitle: "COM", CUSIP: "037833100", Value: 1000},
	})
	require.NoError(t, err)
}

func do(s http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestNewServer_RequiresTitles(t *testing.T) {
	_, err := NewServer(&Ports{})
	assert.ErrorIs(t, err, ErrMissingTitleService)
	_, err = NewServer(nil)
	assert.ErrorIs(t, err, ErrMissingTitleService)
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, false)
	rec := do(s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestConvert(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := do(s, http.MethodPost, "/v1/convert", submission)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ConvertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "0001364742-24-000010", resp.AccessionNumber)

	require.Len(t, resp.RecordSets, 3)
	assert.Equal(t, domain.RecordSetHoldings, resp.RecordSets[0].Name)
	assert.Len(t, resp.RecordSets[0].Rows, 1)
	assert.Equal(t, domain.RecordSetHeader, resp.RecordSets[1].Name)
	assert.Len(t, resp.RecordSets[1].Rows, 1)

	require.Len(t, resp.Diagnostics, 1)
	assert.Equal(t, 2, resp.Diagnostics[0].Position)
}

func TestConvert_Malformed(t *testing.T) {
	s, _ := newTestServer(t, false)
	rec := do(s, http.MethodPost, "/v1/convert", "   ")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "malformed document")
}

func TestNormalizeTitles(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := do(s, http.MethodGet, "/v1/titles/normalize?title=*W+EXP+04/15/2030&title=COM&category=true", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var out []TitleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "Warrant (expires 2030-04-15)", out[0].Normalized)
	assert.Equal(t, "Warrant", out[0].Category)
	assert.Equal(t, "COM", out[1].Normalized)
	assert.Equal(t, "COM", out[1].Category)
}

func TestNormalizeTitles_None(t *testing.T) {
	s, _ := newTestServer(t, false)
	rec := do(s, http.MethodGet, "/v1/titles/normalize", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestFilings(t *testing.T) {
	s, store := newTestServer(t, true)

	rec := do(s, http.MethodGet, "/v1/filings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	seed(t, store)

	rec = do(s, http.MethodGet, "/v1/filings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var filings []domain.StoredFiling
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &filings))
	require.Len(t, filings, 1)
	assert.Equal(t, "BlackRock Inc.", filings[0].FilerName)

	rec = do(s, http.MethodGet, "/v1/filings/0001364742-24-000010", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"period":"20231231"`)

	rec = do(s, http.MethodGet, "/v1/filings/0001364742-24-000010/holdings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cusip":"037833100"`)

	rec = do(s, http.MethodGet, "/v1/holdings?cusip=037833100", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var matches []domain.HoldingMatch
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "0001364742-24-000010", matches[0].Filing.AccessionNumber)

	rec = do(s, http.MethodDelete, "/v1/filings/0001364742-24-000010", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(s, http.MethodGet, "/v1/filings/0001364742-24-000010", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFindHoldings_MissingCUSIP(t *testing.T) {
	s, _ := newTestServer(t, true)
	rec := do(s, http.MethodGet, "/v1/holdings", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogUnavailable(t *testing.T) {
	s, _ := newTestServer(t, false)
	for _, target := range []string{"/v1/filings", "/v1/filings/x", "/v1/filings/x/holdings", "/v1/holdings?cusip=x"} {
		rec := do(s, http.MethodGet, target, "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
	}
}

func TestMount(t *testing.T) {
	s, _ := newTestServer(t, false)
	s.Mount("/mcp", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := do(s, http.MethodPost, "/mcp", "")
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(domain.ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.ErrInvalidInput))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(domain.ErrMalformedDocument))
	assert.Equal(t, http.StatusUnsupportedMediaType, statusFor(domain.ErrUnsupportedType))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(errServiceUnavailable))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
