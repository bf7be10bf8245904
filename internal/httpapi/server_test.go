package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"penguind/internal/manager"
	"penguind/internal/store"
	"penguind/pkg/types"
)

const penguinTreeArtifact = `{
  "schema_version": 1,
  "kind": "decision_tree",
  "spec": {
    "features": [
      {"name": "island", "type": "categorical", "impute_category": "Biscoe"},
      {"name": "flipper_length_mm", "type": "numeric", "impute_number": 197},
      {"name": "year", "type": "numeric", "impute_number": 2008}
    ],
    "nodes": [
      {"feature": "flipper_length_mm", "threshold": 206.5, "left": 1, "right": 2},
      {"feature": "island", "in": ["Torgersen", "Biscoe"], "left": 3, "right": 4},
      {"leaf": "Gentoo"},
      {"leaf": "Adelie"},
      {"leaf": "Chinstrap"}
    ]
  }
}`

// newTestService builds a real manager over an on-disk store holding the
// given artifacts, activating the registry default when activate is true.
func newTestService(t *testing.T, reg types.Registry, artifacts map[string]string, activate bool) *manager.Manager {
	t.Helper()
	dir := t.TempDir()
	for name, body := range artifacts {
		if err := os.WriteFile(filepath.Join(dir, name+store.ArtifactExt), []byte(body), 0o644); err != nil {
			t.Fatalf("write artifact %s: %v", name, err)
		}
	}
	s, err := store.New(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	m := manager.New(reg, s)
	if activate {
		if err := m.SetActive(context.Background(), reg.DefaultModel); err != nil {
			t.Fatalf("activate default: %v", err)
		}
	}
	return m
}

func defaultRegistry() types.Registry {
	return types.Registry{DefaultModel: "rf", AvailableModels: []string{"rf", "svm"}}
}

func bothArtifacts() map[string]string {
	return map[string]string{"rf": penguinTreeArtifact, "svm": penguinTreeArtifact}
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHomeReportsActiveModel(t *testing.T) {
	svc := newTestService(t, defaultRegistry(), bothArtifacts(), true)
	w := doJSON(t, NewMux(svc), http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.HomeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Message == "" || body.ActiveModel == nil || *body.ActiveModel != "rf" {
		t.Fatalf("body=%+v", body)
	}
}

func TestHomeNullActiveModelBeforeActivation(t *testing.T) {
	svc := newTestService(t, defaultRegistry(), nil, false)
	w := doJSON(t, NewMux(svc), http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"active_model":null`) {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestModelsHandler(t *testing.T) {
	svc := newTestService(t, defaultRegistry(), bothArtifacts(), true)
	w := doJSON(t, NewMux(svc), http.MethodGet, "/models", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.ModelsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.DefaultModel != "rf" || len(body.AvailableModels) != 2 || body.ActiveModel == nil || *body.ActiveModel != "rf" {
		t.Fatalf("body=%+v", body)
	}
}

func TestSelectModelSwitches(t *testing.T) {
	svc := newTestService(t, defaultRegistry(), bothArtifacts(), true)
	mux := NewMux(svc)
	w := doJSON(t, mux, http.MethodPost, "/select_model", `{"model_name":"svm"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body types.SelectModelResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.ActiveModel != "svm" {
		t.Fatalf("body=%+v", body)
	}
	if name, _ := svc.ActiveModel(); name != "svm" {
		t.Fatalf("active=%q", name)
	}
}

func TestSelectModelUnknownName404AndStateUnchanged(t *testing.T) {
	svc := newTestService(t, defaultRegistry(), bothArtifacts(), true)
	mux := NewMux(svc)
	w := doJSON(t, mux, http.MethodPost, "/select_model", `{"model_name":"xgb"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(body.Detail, "xgb") {
		t.Fatalf("detail=%q", body.Detail)
	}
	// GET / still reports the prior model.
	home := doJSON(t, mux, http.MethodGet, "/", "")
	if !strings.Contains(home.Body.String(), `"active_model":"rf"`) {
		t.Fatalf("home=%s", home.Body.String())
	}
}

func TestSelectModelMissingArtifact404(t *testing.T) {
	// svm is in the registry but has no artifact on disk.
	svc := newTestService(t, defaultRegistry(), map[string]string{"rf": penguinTreeArtifact}, true)
	w := doJSON(t, NewMux(svc), http.MethodPost, "/select_model", `{"model_name":"svm"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if name, _ := svc.ActiveModel(); name != "rf" {
		t.Fatalf("active=%q", name)
	}
}

func TestSelectModelValidation(t *testing.T) {
	svc := newTestService(t, defaultRegistry(), bothArtifacts(), true)
	mux := NewMux(svc)
	if w := doJSON(t, mux, http.MethodPost, "/select_model", `not-json`); w.Code != http.StatusBadRequest {
		t.Fatalf("bad json: status=%d", w.Code)
	}
	if w := doJSON(t, mux, http.MethodPost, "/select_model", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing name: status=%d", w.Code)
	}
	req := httptest.NewRequest(http.MethodPost, "/select_model", bytes.NewBufferString(`{"model_name":"svm"}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("content type: status=%d", w.Code)
	}
}

func TestPredictWithOmittedOptionals(t *testing.T) {
	svc := newTestService(t, defaultRegistry(), bothArtifacts(), true)
	w := doJSON(t, NewMux(svc), http.MethodPost, "/predict", `{"island":"Biscoe","year":2008}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body types.PredictResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Prediction != "Adelie" || body.ModelUsed != "rf" {
		t.Fatalf("body=%+v", body)
	}
}

func TestPredictFullRecord(t *testing.T) {
	svc := newTestService(t, defaultRegistry(), bothArtifacts(), true)
	rec := `{"island":"Dream","bill_length_mm":49.5,"bill_depth_mm":18.1,"flipper_length_mm":220,"body_mass_g":5200,"sex":"male","year":2009}`
	w := doJSON(t, NewMux(svc), http.MethodPost, "/predict", rec)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"prediction":"Gentoo"`) {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestPredictNoActiveModel500(t *testing.T) {
	svc := newTestService(t, defaultRegistry(), nil, false)
	w := doJSON(t, NewMux(svc), http.MethodPost, "/predict", `{"island":"Biscoe","year":2008}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Detail == "" {
		t.Fatalf("expected descriptive detail, body=%s", w.Body.String())
	}
}

func TestPredictValidation(t *testing.T) {
	svc := newTestService(t, defaultRegistry(), bothArtifacts(), true)
	mux := NewMux(svc)
	if w := doJSON(t, mux, http.MethodPost, "/predict", `not-json`); w.Code != http.StatusBadRequest {
		t.Fatalf("bad json: status=%d", w.Code)
	}
	if w := doJSON(t, mux, http.MethodPost, "/predict", `{"year":2008}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing island: status=%d", w.Code)
	}
}

func TestPredictBodyTooLarge(t *testing.T) {
	svc := newTestService(t, defaultRegistry(), bothArtifacts(), true)
	big := bytes.Repeat([]byte("a"), int(maxBodyBytes)+10)
	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	NewMux(svc).ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	svc := newTestService(t, defaultRegistry(), nil, false)
	w := doJSON(t, NewMux(svc), http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
}

func TestReadyz(t *testing.T) {
	ready := newTestService(t, defaultRegistry(), bothArtifacts(), true)
	w := doJSON(t, NewMux(ready), http.MethodGet, "/readyz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}

	notReady := newTestService(t, defaultRegistry(), nil, false)
	w = doJSON(t, NewMux(notReady), http.MethodGet, "/readyz", "")
	if w.Code != http.StatusServiceUnavailable || !strings.Contains(w.Body.String(), "loading") {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	svc := newTestService(t, defaultRegistry(), bothArtifacts(), true)
	mux := NewMux(svc)
	doJSON(t, mux, http.MethodPost, "/predict", `{"island":"Biscoe","year":2008}`)
	w := doJSON(t, mux, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "penguind_http_requests_total") {
		t.Fatal("missing request counter in metrics exposition")
	}
	if !strings.Contains(w.Body.String(), "penguind_inference_predictions_total") {
		t.Fatal("missing prediction counter in metrics exposition")
	}
}

// mockService lets error-mapping tests inject arbitrary service errors.
type mockService struct {
	reg        types.Registry
	active     string
	setErr     error
	predictErr error
}

func (m *mockService) Registry() types.Registry { return m.reg }
func (m *mockService) ActiveModel() (string, bool) {
	return m.active, m.active != ""
}
func (m *mockService) Ready() bool { return m.active != "" }
func (m *mockService) SetActive(ctx context.Context, name string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.active = name
	return nil
}
func (m *mockService) Predict(ctx context.Context, rec types.FeatureRecord) (types.PredictResponse, error) {
	if m.predictErr != nil {
		return types.PredictResponse{}, m.predictErr
	}
	return types.PredictResponse{Prediction: "Adelie", ModelUsed: m.active}, nil
}

type mockHTTPError struct {
	msg  string
	code int
}

func (e mockHTTPError) Error() string   { return e.msg }
func (e mockHTTPError) StatusCode() int { return e.code }

func TestSelectModelHTTPErrorMapping(t *testing.T) {
	svc := &mockService{reg: defaultRegistry(), active: "rf", setErr: mockHTTPError{msg: "draining", code: http.StatusServiceUnavailable}}
	w := doJSON(t, NewMux(svc), http.MethodPost, "/select_model", `{"model_name":"svm"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestPredictHTTPErrorMapping(t *testing.T) {
	svc := &mockService{reg: defaultRegistry(), active: "rf", predictErr: mockHTTPError{msg: "nope", code: http.StatusBadGateway}}
	w := doJSON(t, NewMux(svc), http.MethodPost, "/predict", `{"island":"Biscoe","year":2008}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestPredictGenericErrorMaps500(t *testing.T) {
	svc := &mockService{reg: defaultRegistry(), active: "rf", predictErr: errors.New("pipeline exploded")}
	w := doJSON(t, NewMux(svc), http.MethodPost, "/predict", `{"island":"Biscoe","year":2008}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
}
