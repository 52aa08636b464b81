package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/forgelab/promptforge/pkg/controller/http"
	"github.com/forgelab/promptforge/pkg/repository/memory"
	"github.com/forgelab/promptforge/pkg/service/authsvc"
	"github.com/forgelab/promptforge/pkg/service/llm"
	"github.com/forgelab/promptforge/pkg/usecase"
)

// newProviderServer fakes the chat completions endpoint. Behavior is
// switched per request body so one server covers all cases.
func newProviderServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&req)).Required()
		gt.Array(t, req.Messages).Length(2)

		if bytes.Contains([]byte(req.Messages[1].Content), []byte("make it fail")) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("provider overloaded")) //nolint:errcheck
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{
				"message": map[string]any{
					"content": `{"thinking":"analysis text","prompt":"optimized prompt"}`,
				},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newAuthProvider(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email string `json:"email"`
		}
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id": "u-1", "email": body.Email,
			"identities": []any{map[string]any{"id": "i-1", "provider": "email"}},
		})
	})
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		if body.Password != "correct" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "jwt",
			"user":         map[string]any{"id": "u-1", "email": body.Email},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T) *httpctrl.Server {
	t.Helper()

	repo := memory.New()

	provider := newProviderServer(t)
	client := llm.New("test-key", llm.WithEndpoint(provider.URL))

	authProvider := newAuthProvider(t)
	svcClient, err := authsvc.New(authProvider.URL, "anon-key")
	gt.NoError(t, err).Required()
	authUC := usecase.NewAuthUseCase(repo, svcClient)

	uc := usecase.New(repo,
		usecase.WithCompletionClient(client),
		usecase.WithAuth(authUC),
	)

	return httpctrl.New(uc)
}

func postJSON(t *testing.T, srv *httpctrl.Server, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	gt.NoError(t, err).Required()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusOK)
}

func TestLevelsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/levels", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var resp struct {
		Levels []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"levels"`
	}
	gt.NoError(t, json.NewDecoder(rec.Body).Decode(&resp)).Required()
	gt.Array(t, resp.Levels).Length(4)
	gt.Value(t, resp.Levels[0].ID).Equal("Beginner")
}

func TestGenerateEndpoint(t *testing.T) {
	srv := newTestServer(t)

	t.Run("valid request", func(t *testing.T) {
		rec := postJSON(t, srv, "/api/generate", map[string]string{
			"profile": "Data Scientist",
			"goal":    "Clean a dataset",
			"level":   "Intermediate",
		}, nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Thinking string `json:"thinking"`
			Prompt   string `json:"prompt"`
		}
		gt.NoError(t, json.NewDecoder(rec.Body).Decode(&resp)).Required()
		gt.Value(t, resp.Thinking).Equal("analysis text")
		gt.Value(t, resp.Prompt).Equal("optimized prompt")
	})

	t.Run("missing required field", func(t *testing.T) {
		rec := postJSON(t, srv, "/api/generate", map[string]string{
			"profile": "Data Scientist",
			"level":   "Intermediate",
		}, nil)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("upstream failure surfaces as 502 with provider detail", func(t *testing.T) {
		rec := postJSON(t, srv, "/api/generate", map[string]string{
			"profile": "Data Scientist",
			"goal":    "make it fail",
			"level":   "Intermediate",
		}, nil)
		gt.Value(t, rec.Code).Equal(http.StatusBadGateway)

		var resp struct {
			Error   string `json:"error"`
			Status  int    `json:"status"`
			Details string `json:"details"`
		}
		gt.NoError(t, json.NewDecoder(rec.Body).Decode(&resp)).Required()
		gt.Value(t, resp.Status).Equal(http.StatusServiceUnavailable)
		gt.Value(t, resp.Details).Equal("provider overloaded")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestGenerateWithoutCredential(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo, usecase.WithCompletionClient(llm.New("")))
	srv := httpctrl.New(uc)

	rec := postJSON(t, srv, "/api/generate", map[string]string{
		"profile": "Data Scientist",
		"goal":    "Clean a dataset",
		"level":   "Intermediate",
	}, nil)
	gt.Value(t, rec.Code).Equal(http.StatusInternalServerError)
}

func TestAuthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	t.Run("sign up", func(t *testing.T) {
		rec := postJSON(t, srv, "/api/auth/signup", map[string]string{
			"email": "new@example.com", "password": "secret123",
		}, nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
	})

	t.Run("sign up without password", func(t *testing.T) {
		rec := postJSON(t, srv, "/api/auth/signup", map[string]string{
			"email": "new@example.com",
		}, nil)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("login sets session cookies", func(t *testing.T) {
		rec := postJSON(t, srv, "/api/auth/login", map[string]string{
			"email": "user@example.com", "password": "correct",
		}, nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		cookies := rec.Result().Cookies()
		names := map[string]bool{}
		for _, c := range cookies {
			names[c.Name] = true
			gt.Bool(t, c.HttpOnly).True()
		}
		gt.Bool(t, names["token_id"]).True()
		gt.Bool(t, names["token_secret"]).True()
	})

	t.Run("login failure keeps provider message", func(t *testing.T) {
		rec := postJSON(t, srv, "/api/auth/login", map[string]string{
			"email": "user@example.com", "password": "wrong",
		}, nil)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

		var resp struct {
			Error string `json:"error"`
		}
		gt.NoError(t, json.NewDecoder(rec.Body).Decode(&resp)).Required()
		gt.Value(t, resp.Error).Equal("Invalid login credentials")
	})

	t.Run("me requires session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})
}

func TestHistoryEndpoints(t *testing.T) {
	srv := newTestServer(t)

	login := postJSON(t, srv, "/api/auth/login", map[string]string{
		"email": "user@example.com", "password": "correct",
	}, nil)
	gt.Value(t, login.Code).Equal(http.StatusOK)
	cookies := login.Result().Cookies()

	t.Run("rejected without session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("save returns refreshed list", func(t *testing.T) {
		rec := postJSON(t, srv, "/api/history", map[string]string{
			"profile":  "Data Scientist",
			"goal":     "Clean a dataset",
			"level":    "Intermediate",
			"prompt":   "optimized prompt",
			"thinking": "analysis text",
		}, cookies)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Entries []struct {
				ID     string `json:"id"`
				Prompt string `json:"prompt"`
			} `json:"entries"`
		}
		gt.NoError(t, json.NewDecoder(rec.Body).Decode(&resp)).Required()
		gt.Array(t, resp.Entries).Length(1)
		gt.Value(t, resp.Entries[0].Prompt).Equal("optimized prompt")
		gt.Value(t, resp.Entries[0].ID).NotEqual("")
	})

	t.Run("save without prompt is rejected", func(t *testing.T) {
		rec := postJSON(t, srv, "/api/history", map[string]string{
			"profile": "Data Scientist",
		}, cookies)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("list after save", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Entries []struct {
				Goal string `json:"goal"`
			} `json:"entries"`
		}
		gt.NoError(t, json.NewDecoder(rec.Body).Decode(&resp)).Required()
		gt.Array(t, resp.Entries).Length(1)
	})

	t.Run("logout clears cookies", func(t *testing.T) {
		rec := postJSON(t, srv, "/api/auth/logout", nil, cookies)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		for _, c := range rec.Result().Cookies() {
			gt.Value(t, c.Value).Equal("")
		}
	})
}
