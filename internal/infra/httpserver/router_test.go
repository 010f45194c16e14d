package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	appreview "github.com/bryanwahyu/ai-code-reviewer/internal/application/review"
	"github.com/bryanwahyu/ai-code-reviewer/internal/domain/review"
	"github.com/bryanwahyu/ai-code-reviewer/internal/domain/review/mocks"
	"github.com/bryanwahyu/ai-code-reviewer/internal/middleware"
)

type echoGenerator struct{}

func (echoGenerator) Name() string { return "echo" }

func (echoGenerator) Generate(_ context.Context, _, userText string) (string, error) {
	return "ECHO:" + userText, nil
}

func newHandler(t *testing.T, gen review.Generator) http.Handler {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	svc := appreview.NewService(gen, "system", log, nil)
	return NewRouter(svc, log, Options{
		HealthCheckers: map[string]middleware.HealthChecker{
			"generator": &middleware.GeneratorHealthChecker{Generator: gen},
		},
	})
}

func postReview(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/ai/get-review", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGetReview_MissingCode(t *testing.T) {
	bodies := map[string]string{
		"empty string": `{"code":""}`,
		"absent field": `{}`,
		"null":         `{"code":null}`,
		"empty body":   ``,
		"not json":     `code=1`,
		"wrong type":   `{"code":42}`,
		"array":        `["x"]`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			gen := mocks.NewMockGenerator(ctrl)
			gen.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			rec := postReview(newHandler(t, gen), body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Code is required", strings.TrimSpace(rec.Body.String()))
		})
	}
}

func TestGetReview_Echo(t *testing.T) {
	rec := postReview(newHandler(t, echoGenerator{}), `{"code":"function add(a,b){return a+b}"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ECHO:function add(a,b){return a+b}", rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestGetReview_WhitespaceIsForwarded(t *testing.T) {
	rec := postReview(newHandler(t, echoGenerator{}), `{"code":"  \n"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ECHO:  \n", rec.Body.String())
}

func TestGetReview_Refusal(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mocks.NewMockGenerator(ctrl)
	gen.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	rec := postReview(newHandler(t, gen), `{"code":"hello, can you help me?"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, review.RefusalMessage, rec.Body.String())
}

func TestGetReview_GenerationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mocks.NewMockGenerator(ctrl)
	gen.EXPECT().Name().Return("mock").AnyTimes()
	gen.EXPECT().Generate(gomock.Any(), "system", "x := 1").
		Return("", errors.New("googleapi: 403 API key sk-leaked not valid"))

	rec := postReview(newHandler(t, gen), `{"code":"x := 1"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to generate code review", strings.TrimSpace(rec.Body.String()))
	assert.NotContains(t, rec.Body.String(), "sk-leaked")
}

func TestGetReview_EmptyProviderOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mocks.NewMockGenerator(ctrl)
	gen.EXPECT().Name().Return("mock").AnyTimes()
	gen.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return("", nil)

	rec := postReview(newHandler(t, gen), `{"code":"x := 1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestGetReview_BodyTooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mocks.NewMockGenerator(ctrl)
	gen.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	body := `{"code":"` + strings.Repeat("a", maxBodyBytes+1) + `"}`
	rec := postReview(newHandler(t, gen), body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestGetReview_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(t, echoGenerator{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ai/get-review", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRoot(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(t, echoGenerator{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"AI Code Reviewer API is running!"}`, rec.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	h := newHandler(t, echoGenerator{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"generator"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "reviews_total")
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/ai/get-review", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()

	newHandler(t, echoGenerator{}).ServeHTTP(rec, req)

	require.Less(t, rec.Code, 300)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRestrictedOrigin(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	svc := appreview.NewService(echoGenerator{}, "system", log, nil)
	h := NewRouter(svc, log, Options{AllowedOrigins: []string{"http://app.test"}})

	req := httptest.NewRequest(http.MethodPost, "/ai/get-review", strings.NewReader(`{"code":"x"}`))
	req.Header.Set("Origin", "http://evil.test")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
