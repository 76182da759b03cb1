package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-whatsapp-backoffice/internal/config"
	"github.com/tbourn/go-whatsapp-backoffice/internal/store"
)

const testPassword = "router-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New(t.TempDir())
	if err := st.Seed(); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	cfg := config.Config{
		Port:          "3000",
		AdminPassword: testPassword,
		DataDir:       st.Dir(),
		StaticDir:     t.TempDir(),
		RateRPS:       1000,
		RateBurst:     1000,
		OTEL:          config.OTELConfig{ServiceName: "backoffice-test"},
	}

	r := gin.New()
	RegisterRoutes(r, st, cfg)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string, auth bool) *httptest.ResponseRecorder {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+testPassword)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth_Public(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/health", "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "OK" {
		t.Fatalf("status field = %v, want OK", body["status"])
	}
}

func TestAPI_RequiresToken(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/produtos", "", false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(w.Body.String(), "Não autorizado") {
		t.Fatalf("body = %q, want unauthorized message", w.Body.String())
	}
}

func TestLogin_IssuesToken(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/login", `{"password":"`+testPassword+`"}`, false)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["token"] != testPassword {
		t.Fatalf("token = %q, want the shared static token", body["token"])
	}

	bad := do(t, r, http.MethodPost, "/api/login", `{"password":"wrong"}`, false)
	if bad.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want %d", bad.Code, http.StatusUnauthorized)
	}
}

func TestProductLifecycle(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/produtos",
		`{"nome":"Tela","quantidade":3,"valor":99.9}`, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	var prod map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &prod); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if prod["id"] != float64(1) || prod["nome"] != "Tela" {
		t.Fatalf("created product = %v", prod)
	}

	w = do(t, r, http.MethodGet, "/api/produtos/1", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	w = do(t, r, http.MethodPut, "/api/produtos/1", `{"quantidade":0}`, true)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodDelete, "/api/produtos/1", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Produto removido com sucesso") {
		t.Fatalf("delete body = %q", w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/produtos/1", "", true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Produto não encontrado") {
		t.Fatalf("get after delete body = %q", w.Body.String())
	}
}

func TestUserAutoCreateAndHistory(t *testing.T) {
	r := newTestRouter(t)
	const number = "5511999999999"

	w := do(t, r, http.MethodGet, "/api/usuarios/"+number+"?nome=Maria", "", true)
	if w.Code != http.StatusCreated {
		t.Fatalf("first lookup status = %d, want 201", w.Code)
	}
	var user map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if user["numero"] != number || user["nome"] != "Maria" {
		t.Fatalf("created user = %v", user)
	}

	w = do(t, r, http.MethodGet, "/api/usuarios/"+number, "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("second lookup status = %d, want 200", w.Code)
	}

	w = do(t, r, http.MethodPost, "/api/usuarios/"+number+"/historico",
		`{"remetente":"user","mensagem":"Oi"}`, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("append status = %d, body = %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/usuarios/"+number+"/historico", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("history status = %d", w.Code)
	}
	var hist map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &hist); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if hist["totalMensagens"] != float64(1) {
		t.Fatalf("totalMensagens = %v, want 1", hist["totalMensagens"])
	}

	w = do(t, r, http.MethodDelete, "/api/usuarios/"+number+"/historico", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("clear history status = %d", w.Code)
	}
}

func TestCanRespondAndLegacyProbe(t *testing.T) {
	r := newTestRouter(t)
	const number = "5511888888888"

	do(t, r, http.MethodGet, "/api/usuarios/"+number, "", true)

	w := do(t, r, http.MethodGet, "/api/usuarios/"+number+"/pode-responder", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var verdict map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &verdict); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if verdict["podeResponder"] != true {
		t.Fatalf("podeResponder = %v, want true", verdict["podeResponder"])
	}

	w = do(t, r, http.MethodPut, "/api/usuarios/"+number, `{"pausado":true}`, true)
	if w.Code != http.StatusOK {
		t.Fatalf("pause status = %d, body = %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/pausados/"+number, "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("legacy probe status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"pausado":true`) {
		t.Fatalf("legacy probe body = %q", w.Body.String())
	}
}

func TestConfigEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/config", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("get config status = %d", w.Code)
	}

	w = do(t, r, http.MethodPut, "/api/config", `{"history":{"messageLimit":99}}`, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range limit status = %d, want 400", w.Code)
	}

	w = do(t, r, http.MethodPut, "/api/config", `{"history":{"messageLimit":20}}`, true)
	if w.Code != http.StatusOK {
		t.Fatalf("update config status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestBuildPayloadEndpoint(t *testing.T) {
	r := newTestRouter(t)

	body := `{"usuario":{"numero":"5511777777777","nome":"Ana","historico":[]},"mensagem":"Tem tela?"}`
	w := do(t, r, http.MethodPost, "/api/build-ai-payload", body, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := resp["payload"]; !ok {
		t.Fatal("response missing payload field")
	}
	if _, ok := resp["apiKey"]; !ok {
		t.Fatal("response missing apiKey field")
	}
}

func TestFallbacks(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/nada", "", false)
	if w.Code != http.StatusNotFound {
		t.Fatalf("no-route status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Rota não encontrada") {
		t.Fatalf("no-route body = %q", w.Body.String())
	}

	w = do(t, r, http.MethodPatch, "/health", "", false)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("no-method status = %d, want 405", w.Code)
	}
}

func TestRootRedirectsToAdmin(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/", "", false)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if loc := w.Header().Get("Location"); loc != "/admin" {
		t.Fatalf("Location = %q, want /admin", loc)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/metrics", "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Fatal("expected http_requests_total in metrics exposition")
	}
}
