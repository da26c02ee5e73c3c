package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/payqr/internal/middleware"
	"github.com/cristianadrielbraun/payqr/internal/session"
)

const btcAddr = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"

func setupRouter(t *testing.T, opts session.Options) *gin.Engine {
	t.Helper()
	store := session.NewStore(time.Minute, opts)
	t.Cleanup(store.Close)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	h := New(store, 64<<10)
	h.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }
	h.Register(router)
	return router
}

func do(router http.Handler, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	router.ServeHTTP(w, req)
	return w
}

func doJSON(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	return do(router, method, path, r, "application/json")
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func TestCurrencies(t *testing.T) {
	router := setupRouter(t, session.Options{})
	w := doJSON(router, http.MethodGet, "/api/currencies", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list []currencyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 7)
	assert.Equal(t, "custom", list[0].ID)
	assert.Equal(t, "UNITS", list[0].Ticker)
	assert.Equal(t, "XMR", list[1].Ticker)
	assert.True(t, list[1].SupportsLabel)
}

func TestClassify(t *testing.T) {
	router := setupRouter(t, session.Options{})
	w := doJSON(router, http.MethodPost, "/api/classify", `{"text":"  `+btcAddr+` "}`)
	require.Equal(t, http.StatusOK, w.Code)

	m := decode(t, w)
	assert.Equal(t, "bitcoin", m["currency"])
	assert.Equal(t, btcAddr, m["text"])
	assert.Equal(t, true, m["matched"])
	assert.Equal(t, "Bitcoin (BTC)", m["label"])
}

func TestVerify(t *testing.T) {
	router := setupRouter(t, session.Options{})

	t.Run("match", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/verify", `{"text":"`+btcAddr+`","currency":"bitcoin"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]any{"valid": true}, decode(t, w))
	})

	t.Run("mismatch warns", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/verify", `{"text":"`+btcAddr+`","currency":"monero"}`)
		require.Equal(t, http.StatusOK, w.Code)
		m := decode(t, w)
		assert.Equal(t, false, m["valid"])
		assert.Contains(t, m["warning"], "Monero (XMR)")
	})

	t.Run("unknown currency", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/verify", `{"text":"x","currency":"dogecoin"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing currency", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/verify", `{"text":"x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBuildURI(t *testing.T) {
	router := setupRouter(t, session.Options{})

	w := doJSON(router, http.MethodPost, "/api/uri", `{"content":"`+btcAddr+`","amount":"0.1","message":"coffee"}`)
	require.Equal(t, http.StatusOK, w.Code)
	m := decode(t, w)
	assert.Equal(t, "bitcoin:"+btcAddr+"?amount=0.1&message=coffee", m["uri"])
	assert.Equal(t, "bitcoin", m["currency"])

	w = doJSON(router, http.MethodPost, "/api/uri", `{"content":""}`)
	assert.Equal(t, "https://slowbeardigger.dev", decode(t, w)["uri"])

	w = doJSON(router, http.MethodPost, "/api/uri", `{"currency":"dogecoin","content":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPresets(t *testing.T) {
	router := setupRouter(t, session.Options{})
	w := doJSON(router, http.MethodGet, "/api/presets", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Cypherpunk"`)
}

func TestConfirm(t *testing.T) {
	router := setupRouter(t, session.Options{})
	w := doJSON(router, http.MethodPost, "/api/confirm", `{"generated":"`+btcAddr+`","retyped":" `+btcAddr+`\n"}`)
	require.Equal(t, http.StatusOK, w.Code)
	m := decode(t, w)
	assert.Equal(t, true, m["match"])
	assert.Equal(t, "1A1zP1eP5Q...Lmv7DivfNa", m["preview"])
}

func TestSnippet(t *testing.T) {
	router := setupRouter(t, session.Options{})
	w := doJSON(router, http.MethodPost, "/api/snippet", `{"text":"hello","style":{"dotColor":"#112233","logoDataUri":"data:image/png;base64,AAAA"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	snippet := decode(t, w)["snippet"].(string)
	assert.Contains(t, snippet, `"data": "hello"`)
	assert.Contains(t, snippet, `"color": "#112233"`)
	assert.Contains(t, snippet, "BASE64_IMAGE")
	assert.Contains(t, snippet, "new QRCodeStyling(options)")
}

func TestQRCodeHandler(t *testing.T) {
	router := setupRouter(t, session.Options{})

	t.Run("png by default", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/qr?content="+btcAddr, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
		img, err := png.Decode(w.Body)
		require.NoError(t, err)
		assert.Equal(t, 300, img.Bounds().Dx())
	})

	t.Run("svg with preset and download", func(t *testing.T) {
		q := url.Values{
			"content":  {btcAddr},
			"amount":   {"0.5"},
			"preset":   {"cyberpunk"},
			"format":   {"svg"},
			"download": {"true"},
		}
		w := doJSON(router, http.MethodGet, "/api/qr?"+q.Encode(), "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="qr-code.svg"`)
		assert.Contains(t, w.Body.String(), "<linearGradient")
	})

	t.Run("size is clamped", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/qr?content=x&size=50", "")
		require.Equal(t, http.StatusOK, w.Code)
		img, err := png.Decode(w.Body)
		require.NoError(t, err)
		assert.Equal(t, 100, img.Bounds().Dx())
	})

	t.Run("invoice size", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/qr?content=x&invoice=true&size=900", "")
		require.Equal(t, http.StatusOK, w.Code)
		img, err := png.Decode(w.Body)
		require.NoError(t, err)
		assert.Equal(t, 200, img.Bounds().Dx())
	})

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"bad format", "content=x&format=gif", http.StatusBadRequest},
		{"bad color", "content=x&dotColor=orange", http.StatusBadRequest},
		{"bad shape", "content=x&dotShape=star", http.StatusBadRequest},
		{"bad size", "content=x&size=big", http.StatusBadRequest},
		{"unknown currency", "content=x&currency=dogecoin", http.StatusBadRequest},
		{"unknown preset", "content=x&preset=vaporwave", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodGet, "/api/qr?"+tt.query, "")
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestInvoicePDF(t *testing.T) {
	router := setupRouter(t, session.Options{})

	body := `{"businessName":"Acme","number":"0042","items":[{"label":"Widget","value":"2"}],` +
		`"amount":"1.50","text":"` + btcAddr + `","label":"Acme"}`
	w := doJSON(router, http.MethodPost, "/api/invoice/pdf", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="Invoice-0042.pdf"`)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w = doJSON(router, http.MethodPost, "/api/invoice/pdf", `{"amount":"-3"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/api/invoice/pdf", `{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenericToast(t *testing.T) {
	router := setupRouter(t, session.Options{})
	form := url.Values{"title": {"Saved"}, "description": {"Done"}, "variant": {"destructive"}, "dismissible": {"on"}}
	w := do(router, http.MethodPost, "/api/htmx/toast", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Saved")
	assert.Contains(t, w.Body.String(), `data-variant="error"`)
	assert.Contains(t, w.Body.String(), `aria-label="Close"`)
}

func TestVerifyToast(t *testing.T) {
	router := setupRouter(t, session.Options{})
	post := func(text, id string) string {
		form := url.Values{"text": {text}, "currency": {id}}
		w := do(router, http.MethodPost, "/api/htmx/verify", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
		require.Equal(t, http.StatusOK, w.Code)
		return w.Body.String()
	}

	assert.Contains(t, post(btcAddr, "bitcoin"), `data-variant="success"`)
	assert.Contains(t, post(btcAddr, "monero"), `data-variant="warning"`)
	assert.Contains(t, post("anything", "custom"), `data-variant="info"`)
}

func TestSitemapAndHome(t *testing.T) {
	router := setupRouter(t, session.Options{})

	w := doJSON(router, http.MethodGet, "/sitemap.xml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<urlset")
	assert.NotContains(t, w.Body.String(), "/privacy")

	w = doJSON(router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `hx-patch="/api/sessions/`)
	assert.Contains(t, w.Body.String(), `hx-trigger="qr-changed from:body"`)
}

func TestEditorForm(t *testing.T) {
	router := setupRouter(t, session.Options{Debounce: time.Hour})
	id := createSession(t, router)
	base := "/api/sessions/" + id

	// Field order mirrors the editor: the ticked checkbox comes before
	// its hidden fallback.
	form := url.Values{
		"currency":        {"bitcoin"},
		"text":            {btcAddr},
		"amount":          {"0.1"},
		"label":           {""},
		"message":         {""},
		"dotColor":        {"#112233"},
		"backgroundColor": {"#ffffff"},
		"useGradient":     {"true", "false"},
		"gradientColor":   {"#445566"},
		"dotShape":        {"rounded"},
		"cornerShape":     {"dot"},
		"invoice":         {"false"},
	}
	w := do(router, http.MethodPatch, base+"/input", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	assert.Equal(t, "qr-changed", w.Header().Get("HX-Trigger"))

	w = doJSON(router, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, w.Code)
	var v session.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.Equal(t, "bitcoin:"+btcAddr+"?amount=0.1", v.Request.Data)
	assert.Equal(t, "#112233", v.Snapshot.Style.DotColor)
	assert.True(t, v.Snapshot.Style.UseGradient)
	assert.Equal(t, "rounded", string(v.Snapshot.Style.DotShape))

	form.Set("useGradient", "false")
	form.Set("dotColor", "red")
	w = do(router, http.MethodPatch, base+"/input", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	t.Run("preview", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, base+"/preview", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), `<img id="qr"`)
		assert.Contains(t, w.Body.String(), base+"/qr?format=png&amp;v=")
	})

	t.Run("preset swaps editor", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, base+"/presets/cypherpunk", nil)
		req.Header.Set("HX-Request", "true")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		html := w.Body.String()
		assert.Contains(t, html, `id="editor"`)
		assert.Contains(t, html, `value="`+btcAddr+`"`)
		assert.NotContains(t, html, "<!doctype html>")
	})

	t.Run("randomize swaps editor", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, base+"/randomize", nil)
		req.Header.Set("HX-Request", "true")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `id="editor"`)
	})

	w = doJSON(router, http.MethodGet, "/api/sessions/missing/preview", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func createSession(t *testing.T, router http.Handler) string {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)
	id, _ := decode(t, w)["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestSessionLifecycle(t *testing.T) {
	router := setupRouter(t, session.Options{Debounce: time.Hour})
	id := createSession(t, router)
	base := "/api/sessions/" + id

	w := doJSON(router, http.MethodPatch, base+"/input", `{"text":"`+btcAddr+`","amount":"0.25","dotShape":"dots"}`)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	w = doJSON(router, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, w.Code)
	var v session.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.Equal(t, "bitcoin:"+btcAddr+"?amount=0.25", v.Request.Data)
	assert.Equal(t, "Enter Bitcoin address", v.Placeholder)
	assert.Equal(t, "dots", string(v.Snapshot.Style.DotShape))

	w = doJSON(router, http.MethodPatch, base+"/input", `{"dotColor":"red"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, base+"/presets/cypherpunk", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cypherpunk", decode(t, w)["activePreset"])

	w = doJSON(router, http.MethodPost, base+"/presets/vaporwave", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodPost, base+"/randomize", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, base+"/qr?format=jpg", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))

	w = doJSON(router, http.MethodGet, base+"/snippet", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w)["snippet"], "bitcoin:"+btcAddr)

	w = doJSON(router, http.MethodGet, base+"/bundle", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))

	w = doJSON(router, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(router, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(router, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionDisposable(t *testing.T) {
	router := setupRouter(t, session.Options{TickInterval: 10 * time.Millisecond})
	base := "/api/sessions/" + createSession(t, router)

	w := doJSON(router, http.MethodPut, base+"/disposable", `{"enabled":true,"timeoutSeconds":5}`)
	require.Equal(t, http.StatusOK, w.Code)
	m := decode(t, w)
	assert.Equal(t, "armed", m["state"])
	assert.EqualValues(t, 5, m["timeoutSeconds"])

	assert.Eventually(t, func() bool {
		return doJSON(router, http.MethodGet, base+"/qr", "").Code == http.StatusGone
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, http.StatusGone, doJSON(router, http.MethodGet, base+"/bundle", "").Code)

	w = doJSON(router, http.MethodPut, base+"/disposable", `{"enabled":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "idle", decode(t, w)["state"])
	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodGet, base+"/qr", "").Code)

	w = doJSON(router, http.MethodPut, base+"/disposable", `{"enabled":true,"timeoutSeconds":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func multipartLogo(t *testing.T, name string, data []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("logo", name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadLogo(t *testing.T) {
	router := setupRouter(t, session.Options{})
	base := "/api/sessions/" + createSession(t, router)

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(8, 8, color.RGBA{255, 0, 0, 255})
	var raw bytes.Buffer
	require.NoError(t, png.Encode(&raw, img))

	body, ct := multipartLogo(t, "logo.png", raw.Bytes())
	w := do(router, http.MethodPost, base+"/logo", body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var v session.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.True(t, strings.HasPrefix(v.Snapshot.Style.LogoDataURI, "data:image/png;base64,"))

	body, ct = multipartLogo(t, "notes.txt", []byte("just some text"))
	w = do(router, http.MethodPost, base+"/logo", body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.Empty(t, v.Snapshot.Style.LogoDataURI, "a rejected file clears the previous logo")

	body, ct = multipartLogo(t, "huge.png", bytes.Repeat([]byte{0}, 128<<10))
	w = do(router, http.MethodPost, base+"/logo", body, ct)
	assert.Contains(t, []int{http.StatusBadRequest, http.StatusRequestEntityTooLarge}, w.Code)

	w = do(router, http.MethodPost, "/api/sessions/missing/logo", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
