package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpdelivery "github.com/Xausdorf/swiss-qr-bill/internal/delivery/http"
	"github.com/Xausdorf/swiss-qr-bill/internal/domain/bill"
	"github.com/Xausdorf/swiss-qr-bill/internal/infrastructure/inmemory"
	"github.com/Xausdorf/swiss-qr-bill/internal/infrastructure/qrgenerator"
	"github.com/Xausdorf/swiss-qr-bill/internal/usecase/generateqr"
	"github.com/Xausdorf/swiss-qr-bill/internal/usecase/sharelink"
)

const hansMuster = `{"currency":"CHF","creditor":{"name":"Hans Muster","address":"Bahnhofstrasse 1","zip":"8001","city":"Zürich","account":"CH9300762011623852957","country":"CH"},"amount":100}`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	generateQRUC := generateqr.NewUseCase(qrgenerator.NewGenerator(256, 0))
	shareLinkUC := sharelink.NewUseCase(inmemory.NewUnitOfWork(inmemory.NewStore()))
	handler := httpdelivery.NewHandler(generateQRUC, shareLinkUC, "https://monkeypay.ch/", 800)

	srv := httptest.NewServer(httpdelivery.NewRouter(handler))
	t.Cleanup(srv.Close)
	return srv
}

func tokenFor(t *testing.T, raw string) string {
	t.Helper()
	var d bill.PaymentData
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	token, err := bill.Encode(d)
	require.NoError(t, err)
	return token
}

func noRedirect(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

func TestHandleImage(t *testing.T) {
	srv := newServer(t)
	token := tokenFor(t, hansMuster)

	tests := []struct {
		name        string
		path        string
		status      int
		contentType string
	}{
		{"svg", "/api/qr/" + token + ".svg", http.StatusOK, "image/svg+xml"},
		{"png", "/api/qr/" + token + ".png?size=300", http.StatusOK, "image/png"},
		{"png default size", "/api/qr/" + token + ".png", http.StatusOK, "image/png"},
		{"png bad size", "/api/qr/" + token + ".png?size=0", http.StatusBadRequest, "application/json"},
		{"png huge size", "/api/qr/" + token + ".png?size=100000", http.StatusBadRequest, "application/json"},
		{"unknown extension", "/api/qr/" + token + ".gif", http.StatusNotFound, ""},
		{"garbage token", "/api/qr/!!!.svg", http.StatusNotFound, "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.contentType != "" {
				assert.Equal(t, tt.contentType, resp.Header.Get("Content-Type"))
			}
		})
	}
}

func TestHandleImage_ValidationError(t *testing.T) {
	srv := newServer(t)
	token := tokenFor(t, strings.Replace(hansMuster, "CH9300762011623852957", "CH9300762011623852958", 1))

	resp, err := http.Get(srv.URL + "/api/qr/" + token + ".svg")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var body httpdelivery.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "account", body.Field)
}

func TestHandlePayload(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/api/qr/" + tokenFor(t, hansMuster) + "/payload")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	lines := strings.Split(string(body), "\n")
	assert.Equal(t, "SPC", lines[0])
	assert.Equal(t, "100.00", lines[18])
	assert.Equal(t, "EPD", lines[len(lines)-1])
}

func TestHandleMeta(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/api/qr/" + tokenFor(t, hansMuster) + "/meta")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var meta httpdelivery.MetaResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&meta))
	assert.Equal(t, "QR bill for Hans Muster for CHF 100.00.", meta.Title)
	assert.Equal(t, "CHF 100.00", meta.Amount)
	assert.Equal(t, "byte", strings.ToLower(meta.Mode))
	assert.Contains(t, []string{"M", "Q", "H"}, meta.Level)
}

func TestHandleShare(t *testing.T) {
	srv := newServer(t)
	client := &http.Client{CheckRedirect: noRedirect}

	post := func(key, body string) *http.Response {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/bills", strings.NewReader(body))
		require.NoError(t, err)
		if key != "" {
			req.Header.Set("X-Idempotency-Key", key)
		}
		resp, err := client.Do(req)
		require.NoError(t, err)
		return resp
	}

	resp := post("", hansMuster)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = post("k1", "{")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = post("k1", hansMuster)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created httpdelivery.ShareResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Equal(t, "https://monkeypay.ch/b/"+created.ID, created.URL)
	assert.Equal(t, "https://monkeypay.ch/qr/"+created.Token, created.QRURL)

	resp = post("k1", hansMuster)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var replayed httpdelivery.ShareResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&replayed))
	resp.Body.Close()
	assert.Equal(t, created.ID, replayed.ID)
	assert.True(t, replayed.Replayed)

	resp = post("k1", strings.Replace(hansMuster, "Hans", "Fritz", 1))
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = post("k2", strings.Replace(hansMuster, `"name":"Hans Muster"`, `"name":""`, 1))
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, err := client.Get(srv.URL + "/b/" + created.ID)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, created.QRURL, resp.Header.Get("Location"))
}

func TestHandleShortLink_NotFound(t *testing.T) {
	srv := newServer(t)

	for _, id := range []string{"not-a-uuid", "0b6f3c1e-7a55-4b9c-9d6e-2f1d2a3b4c5d"} {
		resp, err := http.Get(srv.URL + "/b/" + id)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, id)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
