package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pizzeria/internal/ai"
	"pizzeria/internal/config"
	"pizzeria/internal/entity"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubRepository struct {
	compositions map[uint]*entity.DbComposition
	nextID       uint
	logs         []entity.DbGenerationLog
	users        map[uint]*entity.DbUser
}

func newStubRepository() *stubRepository {
	return &stubRepository{
		compositions: map[uint]*entity.DbComposition{},
		nextID:       1,
		users:        map[uint]*entity.DbUser{},
	}
}

func (s *stubRepository) CreateComposition(_ context.Context, composition *entity.DbComposition) error {
	composition.CompositionID = s.nextID
	s.nextID++
	clone := *composition
	s.compositions[composition.CompositionID] = &clone
	return nil
}

func (s *stubRepository) GetComposition(_ context.Context, id uint) (*entity.DbComposition, error) {
	composition, ok := s.compositions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *composition
	return &clone, nil
}

func (s *stubRepository) GetCompositionOwner(_ context.Context, id uint) (uint, error) {
	composition, ok := s.compositions[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return composition.UserID, nil
}

func (s *stubRepository) ListCompositions(_ context.Context, params *entity.CompositionQuery) ([]entity.DbComposition, *entity.Pagination, error) {
	var out []entity.DbComposition
	for _, composition := range s.compositions {
		if composition.UserID != params.UserID {
			continue
		}
		if params.Rating != nil && (composition.Rating == nil || *composition.Rating != *params.Rating) {
			continue
		}
		out = append(out, *composition)
	}
	return out, entity.NewPagination(int64(len(out)), params.Page, params.PageSize), nil
}

func (s *stubRepository) UpdateComposition(_ context.Context, id uint, updates entity.CompositionUpdates) (*entity.DbComposition, error) {
	composition, ok := s.compositions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if updates.Ingredients != nil {
		composition.Ingredients = *updates.Ingredients
	}
	if updates.Rating != nil {
		composition.Rating = updates.Rating
	}
	if updates.PhotoURL != nil {
		composition.PhotoURL = updates.PhotoURL
	}
	clone := *composition
	return &clone, nil
}

func (s *stubRepository) DeleteComposition(_ context.Context, id uint) error {
	if _, ok := s.compositions[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.compositions, id)
	return nil
}

func (s *stubRepository) CreateGenerationLog(_ context.Context, log *entity.DbGenerationLog) error {
	log.GenerationID = uint(len(s.logs) + 1)
	s.logs = append(s.logs, *log)
	return nil
}

func (s *stubRepository) ListGenerationLogs(_ context.Context, params *entity.GenerationLogQuery) ([]entity.DbGenerationLog, *entity.Pagination, error) {
	var out []entity.DbGenerationLog
	for _, log := range s.logs {
		if log.UserID == params.UserID {
			out = append(out, log)
		}
	}
	return out, entity.NewPagination(int64(len(out)), params.Page, params.PageSize), nil
}

func (s *stubRepository) CreateUser(_ context.Context, user *entity.DbUser) error {
	user.ID = uint(len(s.users) + 1)
	s.users[user.ID] = user
	return nil
}

func (s *stubRepository) GetUserByID(_ context.Context, id uint) (*entity.DbUser, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubRepository) GetUserByEmail(_ context.Context, email string) (*entity.DbUser, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepository) CountUsers(_ context.Context) (int64, error) {
	return int64(len(s.users)), nil
}

type stubSuggester struct {
	err error
}

func (s *stubSuggester) SuggestIngredients(_ context.Context, seeds []string) (*ai.Suggestion, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ai.Suggestion{
		Ingredients: append(append([]string{}, seeds...), "Suggested Ingredient 1", "Suggested Ingredient 2"),
		DurationMS:  42,
	}, nil
}

type testServer struct {
	repo   *stubRepository
	router *gin.Engine
}

func newTestServer(t *testing.T, suggester ai.Suggester) *testServer {
	t.Helper()

	repo := newStubRepository()
	defaultUser := &entity.DbUser{
		Email:       "chef@pizzeria.local",
		DisplayName: "Resident Chef",
		Role:        entity.UserRoleUser,
		IsActive:    true,
	}
	if err := repo.CreateUser(context.Background(), defaultUser); err != nil {
		t.Fatal(err)
	}

	cfg := config.Config{
		JWTSecret:            "test-secret",
		JWTIssuer:            "pizzeria",
		JWTExpirationMinutes: 60,
	}
	handler, err := NewHTTPHandler(cfg, repo, nil, suggester, defaultUser)
	if err != nil {
		t.Fatalf("failed to build handler: %v", err)
	}

	router := gin.New()
	handler.RegisterRoutes(router)
	return &testServer{repo: repo, router: router}
}

func (s *testServer) do(t *testing.T, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) seedComposition(t *testing.T, owner uint, rating *int) *entity.DbComposition {
	t.Helper()
	composition := &entity.DbComposition{
		UserID:          owner,
		Ingredients:     entity.StringArray{"tomato", "mozzarella"},
		Rating:          rating,
		CompositionType: entity.CompositionTypeManual,
	}
	if err := s.repo.CreateComposition(context.Background(), composition); err != nil {
		t.Fatal(err)
	}
	return composition
}

func TestListCompositions(t *testing.T) {
	server := newTestServer(t, &stubSuggester{})
	rating := 5
	server.seedComposition(t, 1, &rating)
	server.seedComposition(t, 1, nil)
	server.seedComposition(t, 2, nil) // foreign row, must not appear

	w := server.do(t, http.MethodGet, "/api/compositions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp entity.CompositionListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("expected 2 compositions, got %d", len(resp.Data))
	}
	if resp.Pagination == nil || resp.Pagination.TotalItems != 2 {
		t.Errorf("expected pagination with 2 items, got %+v", resp.Pagination)
	}
}

func TestListCompositionsRejectsUnknownKey(t *testing.T) {
	server := newTestServer(t, &stubSuggester{})

	w := server.do(t, http.MethodGet, "/api/compositions?bogus=1", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp APIError
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if _, ok := resp.Errors["bogus"]; !ok {
		t.Errorf("expected field error for unknown key, got %+v", resp.Errors)
	}
}

func TestListCompositionsRatingFilter(t *testing.T) {
	server := newTestServer(t, &stubSuggester{})
	five := 5
	three := 3
	server.seedComposition(t, 1, &five)
	server.seedComposition(t, 1, &three)

	w := server.do(t, http.MethodGet, "/api/compositions?rating=5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp entity.CompositionListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data) != 1 {
		t.Errorf("expected 1 composition with rating 5, got %d", len(resp.Data))
	}
}

func TestCreateManualComposition(t *testing.T) {
	server := newTestServer(t, &stubSuggester{})

	body := []byte(`{"composition_type":"manual","ingredients":["tomato","basil"],"rating":4}`)
	w := server.do(t, http.MethodPost, "/api/compositions", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var composition entity.DbComposition
	if err := json.Unmarshal(w.Body.Bytes(), &composition); err != nil {
		t.Fatal(err)
	}
	if composition.CompositionType != entity.CompositionTypeManual {
		t.Errorf("expected manual type, got %q", composition.CompositionType)
	}
	if len(composition.Ingredients) != 2 {
		t.Errorf("expected 2 ingredients, got %v", composition.Ingredients)
	}
	if composition.Rating == nil || *composition.Rating != 4 {
		t.Errorf("expected rating 4, got %v", composition.Rating)
	}
}

func TestCreateAIComposition(t *testing.T) {
	server := newTestServer(t, &stubSuggester{})

	body := []byte(`{"composition_type":"ai-generated","ingredients":["tomato"]}`)
	w := server.do(t, http.MethodPost, "/api/compositions", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var composition entity.DbComposition
	if err := json.Unmarshal(w.Body.Bytes(), &composition); err != nil {
		t.Fatal(err)
	}
	if composition.CompositionType != entity.CompositionTypeAIGenerated {
		t.Errorf("expected ai-generated type, got %q", composition.CompositionType)
	}
	if len(composition.Ingredients) != 3 {
		t.Errorf("expected expanded ingredients, got %v", composition.Ingredients)
	}
	if len(server.repo.logs) != 1 {
		t.Errorf("expected one generation log, got %d", len(server.repo.logs))
	}
}

func TestCreateAICompositionUnavailable(t *testing.T) {
	server := newTestServer(t, &stubSuggester{err: ai.ErrUnavailable})

	body := []byte(`{"composition_type":"ai-generated","ingredients":["tomato"]}`)
	w := server.do(t, http.MethodPost, "/api/compositions", body)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}
	if len(server.repo.compositions) != 0 {
		t.Error("no composition must be stored when suggestion fails")
	}
}

func TestCreateCompositionInvalidBody(t *testing.T) {
	server := newTestServer(t, &stubSuggester{})

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "{"},
		{name: "missing type", body: `{"ingredients":["tomato"]}`},
		{name: "empty ingredients", body: `{"composition_type":"manual","ingredients":[]}`},
		{name: "too many seeds", body: `{"composition_type":"ai-generated","ingredients":["a","b","c","d"]}`},
		{name: "rating out of range", body: `{"composition_type":"manual","ingredients":["tomato"],"rating":9}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := server.do(t, http.MethodPost, "/api/compositions", []byte(tt.body))
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestGetComposition(t *testing.T) {
	server := newTestServer(t, &stubSuggester{})
	composition := server.seedComposition(t, 1, nil)

	w := server.do(t, http.MethodGet, fmt.Sprintf("/api/compositions/%d", composition.CompositionID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = server.do(t, http.MethodGet, "/api/compositions/999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing id: expected 404, got %d", w.Code)
	}

	foreign := server.seedComposition(t, 2, nil)
	w = server.do(t, http.MethodGet, fmt.Sprintf("/api/compositions/%d", foreign.CompositionID), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign composition: expected 404, got %d: %s", w.Code, w.Body.String())
	}

	w = server.do(t, http.MethodGet, "/api/compositions/zero", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad id: expected 400, got %d", w.Code)
	}
}

func TestUpdateComposition(t *testing.T) {
	server := newTestServer(t, &stubSuggester{})
	own := server.seedComposition(t, 1, nil)
	foreign := server.seedComposition(t, 2, nil)

	w := server.do(t, http.MethodPatch, fmt.Sprintf("/api/compositions/%d", own.CompositionID), []byte(`{"rating":5}`))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated entity.DbComposition
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatal(err)
	}
	if updated.Rating == nil || *updated.Rating != 5 {
		t.Errorf("expected rating 5, got %v", updated.Rating)
	}

	w = server.do(t, http.MethodPatch, fmt.Sprintf("/api/compositions/%d", foreign.CompositionID), []byte(`{"rating":5}`))
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign row: expected 403, got %d", w.Code)
	}

	w = server.do(t, http.MethodPatch, "/api/compositions/999", []byte(`{"rating":5}`))
	if w.Code != http.StatusNotFound {
		t.Errorf("missing row: expected 404, got %d", w.Code)
	}

	w = server.do(t, http.MethodPatch, fmt.Sprintf("/api/compositions/%d", own.CompositionID), []byte(`{}`))
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty patch: expected 400, got %d", w.Code)
	}
}

func TestDeleteComposition(t *testing.T) {
	server := newTestServer(t, &stubSuggester{})
	own := server.seedComposition(t, 1, nil)
	foreign := server.seedComposition(t, 2, nil)

	w := server.do(t, http.MethodDelete, fmt.Sprintf("/api/compositions/%d", own.CompositionID), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}

	w = server.do(t, http.MethodDelete, fmt.Sprintf("/api/compositions/%d", foreign.CompositionID), nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign row: expected 403, got %d", w.Code)
	}

	w = server.do(t, http.MethodDelete, fmt.Sprintf("/api/compositions/%d", own.CompositionID), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("already deleted: expected 404, got %d", w.Code)
	}
}

func TestListGenerationLogs(t *testing.T) {
	server := newTestServer(t, &stubSuggester{})
	server.repo.logs = []entity.DbGenerationLog{
		{GenerationID: 1, UserID: 1, CompositionID: 4, GenerationDurationMS: 1500},
		{GenerationID: 2, UserID: 2, CompositionID: 5, GenerationDurationMS: 900},
	}

	w := server.do(t, http.MethodGet, "/api/generation-logs", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp entity.GenerationLogListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 log for default user, got %d", len(resp.Data))
	}
	if resp.Data[0].GenerationDuration != "1500ms" {
		t.Errorf("expected duration 1500ms, got %q", resp.Data[0].GenerationDuration)
	}
}

func TestListGenerationLogsRejectsUnknownSort(t *testing.T) {
	server := newTestServer(t, &stubSuggester{})

	w := server.do(t, http.MethodGet, "/api/generation-logs?sortBy=created_at", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestIdentityMiddlewareRejectsMalformedToken(t *testing.T) {
	server := newTestServer(t, &stubSuggester{})

	req := httptest.NewRequest(http.MethodGet, "/api/compositions", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for malformed token, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/compositions", strings.NewReader(""))
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w = httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for non-bearer scheme, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, &stubSuggester{})

	w := server.do(t, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
