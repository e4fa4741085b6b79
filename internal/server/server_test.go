package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/apply-assistant/internal/fetch"
	"github.com/jonathan/apply-assistant/internal/server/ratelimit"
	"github.com/jonathan/apply-assistant/internal/store"
	"github.com/jonathan/apply-assistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var longDescription = strings.Repeat("You will design reliable services for our payments platform. ", 5)

type testServer struct {
	*Server
	handler  http.Handler
	profiles *store.Profiles
}

func newTestServer(t *testing.T, opts ...func(*Config)) *testServer {
	t.Helper()
	profiles := store.NewProfiles(store.NewMemoryStore(nil))
	cfg := Config{
		Profiles:  profiles,
		RateLimit: ratelimit.NewConfig(0, 0),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return &testServer{Server: s, handler: s.Handler(), profiles: profiles}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestNew_RequiresProfiles(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodOptions, "/classify", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestClassify_HTML(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/classify", types.ClassifyRequest{HTML: `<form>
		<label for="fn">First name</label><input id="fn">
		<input type="email" name="contact">
		<textarea name="cover_letter"></textarea>
	</form>`})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[types.ClassifyResponse](t, w)
	assert.Equal(t, 3, resp.Fields)
	assert.Equal(t, []types.FieldRole{types.RoleFirstName, types.RoleEmail, types.RoleCoverLetter}, resp.Assignments.Roles())

	d, ok := resp.Assignments.Get(types.RoleFirstName)
	require.True(t, ok)
	assert.Equal(t, "input#fn@0", d.ControlRef)
}

func TestClassify_Descriptors(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/classify", types.ClassifyRequest{Descriptors: []types.FieldDescriptor{
		{ControlRef: "a", Kind: types.KindTel, Signature: "mobile"},
	}})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[types.ClassifyResponse](t, w)
	assert.True(t, resp.Assignments.Has(types.RolePhone))
}

const fillForm = `<form>
	<input name="full_name">
	<input type="email" name="contact">
	<textarea name="cover_letter"></textarea>
</form>`

func TestClassify_Fill(t *testing.T) {
	tests := []struct {
		name        string
		req         types.ClassifyRequest
		stored      *types.PersonalInfo
		wantFills   []types.Fill
		wantHistory int
	}{
		{
			name: "assignments only",
			req:  types.ClassifyRequest{HTML: fillForm},
			stored: &types.PersonalInfo{
				FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
			},
		},
		{
			name: "stored profile",
			req:  types.ClassifyRequest{HTML: fillForm, Fill: true},
			stored: &types.PersonalInfo{
				FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Summary: "Engine analyst.",
			},
			wantFills: []types.Fill{
				{Role: types.RoleFullName, ControlRef: "input[name=full_name]@0", Value: "Ada Lovelace"},
				{Role: types.RoleEmail, ControlRef: "input[name=contact]@1", Value: "ada@example.com"},
				{Role: types.RoleCoverLetter, ControlRef: "textarea[name=cover_letter]@2", Value: "Engine analyst."},
			},
		},
		{
			name: "inline profile without summary",
			req: types.ClassifyRequest{HTML: fillForm, Profile: &types.Profile{
				PersonalInfo: types.PersonalInfo{FirstName: "Grace", Email: "grace@example.com"},
			}},
			wantFills: []types.Fill{
				{Role: types.RoleFullName, ControlRef: "input[name=full_name]@0", Value: "Grace"},
				{Role: types.RoleEmail, ControlRef: "input[name=contact]@1", Value: "grace@example.com"},
			},
		},
		{
			name: "record auto fill",
			req: types.ClassifyRequest{
				HTML:     fillForm,
				Record:   true,
				URL:      "https://jobs.example.com/42",
				JobTitle: "Backend Engineer",
			},
			stored: &types.PersonalInfo{Email: "ada@example.com"},
			wantFills: []types.Fill{
				{Role: types.RoleEmail, ControlRef: "input[name=contact]@1", Value: "ada@example.com"},
			},
			wantHistory: 1,
		},
		{
			name: "nothing to record",
			req:  types.ClassifyRequest{HTML: fillForm, Record: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ctx := context.Background()
			if tt.stored != nil {
				_, err := ts.profiles.UpdatePersonalInfo(ctx, *tt.stored)
				require.NoError(t, err)
			}

			w := ts.do(t, http.MethodPost, "/classify", tt.req)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			resp := decode[types.ClassifyResponse](t, w)

			assert.Equal(t, 3, resp.Fields)
			assert.Equal(t, tt.wantFills, resp.Fills)
			assert.Equal(t, len(tt.wantFills), resp.Filled)

			stored, err := ts.profiles.Get(ctx)
			require.NoError(t, err)
			require.Len(t, stored.ApplicationHistory, tt.wantHistory)
			if tt.wantHistory == 0 {
				assert.Nil(t, resp.Application)
				return
			}
			rec := stored.ApplicationHistory[0]
			assert.Equal(t, types.SourceAutoFilled, rec.Source)
			assert.Equal(t, types.StatusFilled, rec.Status)
			assert.Equal(t, tt.req.URL, rec.URL)
			assert.Equal(t, tt.req.JobTitle, rec.JobTitle)
			require.NotNil(t, resp.Application)
			assert.Equal(t, rec.ID, resp.Application.ID)
		})
	}
}

func TestClassify_BadRequests(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body any
	}{
		{"malformed json", "{"},
		{"empty request", types.ClassifyRequest{}},
		{"invalid descriptor", types.ClassifyRequest{Descriptors: []types.FieldDescriptor{{Kind: "checkbox"}}}},
		{"invalid record url", types.ClassifyRequest{HTML: fillForm, Record: true, URL: "jobs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/classify", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decode[map[string]string](t, w)["error"])
		})
	}
}

func TestExtract_Blocks(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/extract", types.ExtractRequest{Blocks: []types.TextBlock{
		{Text: "Short nav", ClassName: "nav"},
		{Text: longDescription, Selectors: []string{".jobDescriptionText"}},
	}})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[ExtractResponse](t, w)
	assert.Equal(t, "indeed", resp.Family)
	assert.Equal(t, ".jobDescriptionText", resp.SourceSelector)
	assert.Equal(t, strings.TrimSpace(longDescription), resp.Text)
	assert.Nil(t, resp.Posting)
}

func TestExtract_HTML(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/extract", types.ExtractRequest{
		HTML: `<html><body><div class="posting"><p>` + longDescription + `</p></div></body></html>`,
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[ExtractResponse](t, w)
	assert.Empty(t, resp.Family, "largest-block fallback")
	assert.Equal(t, strings.TrimSpace(longDescription), resp.Text)
}

func TestExtract_NothingQualifies(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/extract", types.ExtractRequest{Blocks: []types.TextBlock{{Text: "tiny"}}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"text":""}`, w.Body.String())
}

func TestExtract_URLWithoutLoader(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/extract", types.ExtractRequest{URL: "https://jobs.example.com/1"})

	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestExtract_URL(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>SRE | Acme</title></head><body>
			<div id="job-description">` + longDescription + `</div></body></html>`))
	}))
	defer page.Close()

	loader, err := fetch.NewLoader(fetch.LoaderConfig{})
	require.NoError(t, err)
	defer loader.Close()

	ts := newTestServer(t, func(c *Config) { c.Loader = loader })
	w := ts.do(t, http.MethodPost, "/extract", types.ExtractRequest{URL: page.URL})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[ExtractResponse](t, w)
	assert.Equal(t, "generic", resp.Family)
	assert.Equal(t, "#job-description", resp.SourceSelector)
	require.NotNil(t, resp.Posting)
	assert.Equal(t, "SRE", resp.Posting.JobTitle)
}

func TestExtract_URLFetchFailure(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer page.Close()

	loader, err := fetch.NewLoader(fetch.LoaderConfig{})
	require.NoError(t, err)
	defer loader.Close()

	ts := newTestServer(t, func(c *Config) { c.Loader = loader })
	w := ts.do(t, http.MethodPost, "/extract", types.ExtractRequest{URL: page.URL})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestSuggestions_StoredProfile(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	_, err := ts.profiles.UpdatePersonalInfo(ctx, types.PersonalInfo{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)
	require.NoError(t, ts.profiles.UpdateSkills(ctx, []string{"Python", "SQL"}))

	w := ts.do(t, http.MethodPost, "/suggestions", types.SuggestRequest{FieldType: types.TargetSkills})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[types.SuggestResponse](t, w)
	assert.Equal(t, types.TargetSkills, resp.FieldType)
	require.NotEmpty(t, resp.Suggestions)
	assert.Equal(t, "Python, SQL", resp.Suggestions[0].Text)
}

func TestSuggestions_InlineProfile(t *testing.T) {
	ts := newTestServer(t)

	require.NoError(t, ts.profiles.UpdateSkills(context.Background(), []string{"Python"}))

	w := ts.do(t, http.MethodPost, "/suggestions", types.SuggestRequest{
		FieldType: types.TargetSkills,
		Profile:   &types.Profile{Skills: []string{"Go", "Kubernetes"}},
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[types.SuggestResponse](t, w)
	require.NotEmpty(t, resp.Suggestions)
	assert.Equal(t, "Go, Kubernetes", resp.Suggestions[0].Text)
}

func TestSuggestions_UnknownField(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/suggestions", map[string]string{"field_type": "motto"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, func(c *Config) {
		c.RateLimit = &ratelimit.Config{Enabled: true, DefaultLimit: 2, DefaultWindow: time.Hour}
	})

	for i := 0; i < 2; i++ {
		w := ts.do(t, http.MethodPost, "/classify", types.ClassifyRequest{HTML: "<input>"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := ts.do(t, http.MethodPost, "/classify", types.ClassifyRequest{HTML: "<input>"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, w)["error"])

	// Health checks are never limited
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/health", nil).Code)
}

func TestExtractClientID(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "203.0.113.9:5555"
	assert.Equal(t, "203.0.113.9", ts.extractClientID(req))

	req.RemoteAddr = "unix"
	assert.Equal(t, "unix", ts.extractClientID(req))
}
