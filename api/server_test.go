package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pastrysoft/merge-bakery/game/catalog"
	"github.com/pastrysoft/merge-bakery/game/service"
	"github.com/pastrysoft/merge-bakery/game/session"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	catalogManager, err := catalog.NewManager("")
	if err != nil {
		t.Fatalf("Failed to create catalog manager: %v", err)
	}
	sessionManager := session.NewManager()
	svc := service.NewGameService(sessionManager, catalogManager, nil)
	return NewServer(svc, nil)
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, srv *Server) string {
	t.Helper()

	rec := doJSON(t, srv, "POST", "/api/sessions", map[string]string{})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var info service.SessionInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("Failed to decode session: %v", err)
	}
	return info.ID
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) *service.OpResult {
	t.Helper()

	var result service.OpResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode result: %v", err)
	}
	return &result
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, "GET", "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %q", body["status"])
	}
}

func TestCreateAndGetSession(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	rec := doJSON(t, srv, "GET", "/api/sessions/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var info service.SessionInfo
	json.Unmarshal(rec.Body.Bytes(), &info)
	if info.ID != id {
		t.Errorf("Expected session %s, got %s", id, info.ID)
	}
	if info.GameState == nil || len(info.GameState.Grid) != 63 {
		t.Error("Expected a 9x7 grid in the game state")
	}
}

func TestGetUnknownSession(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, "GET", "/api/sessions/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", rec.Code)
	}

	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] == "" {
		t.Error("Expected an error message")
	}
}

func TestListSessions(t *testing.T) {
	srv := newTestServer(t)
	createSession(t, srv)
	createSession(t, srv)

	rec := doJSON(t, srv, "GET", "/api/sessions?limit=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var body struct {
		Count    int                    `json:"count"`
		Sessions []*service.SessionInfo `json:"sessions"`
	}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Count != 1 || len(body.Sessions) != 1 {
		t.Errorf("Expected the limit to apply, got count=%d", body.Count)
	}
}

func TestDeleteSession(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	rec := doJSON(t, srv, "DELETE", "/api/sessions/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	rec = doJSON(t, srv, "GET", "/api/sessions/"+id, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 after delete, got %d", rec.Code)
	}
}

func TestSpawnEndpoint(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	rec := doJSON(t, srv, "POST", "/api/sessions/"+id+"/spawn", map[string]string{"cell_id": "4-3"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	result := decodeResult(t, rec)
	if !result.Success {
		t.Fatal("Expected spawn to succeed")
	}
	if result.GameState.Energy != 99 {
		t.Errorf("Expected energy 99, got %d", result.GameState.Energy)
	}
	if len(result.GameState.SpawnAnimations) != 1 {
		t.Errorf("Expected 1 spawn animation, got %d", len(result.GameState.SpawnAnimations))
	}
}

func TestSpawnValidation(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	rec := doJSON(t, srv, "POST", "/api/sessions/"+id+"/spawn", map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 without cell_id, got %d", rec.Code)
	}

	// A policy rejection is HTTP 200 with success false.
	rec = doJSON(t, srv, "POST", "/api/sessions/"+id+"/spawn", map[string]string{"cell_id": "0-0"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if result := decodeResult(t, rec); result.Success {
		t.Error("Expected spawn from an empty cell to be rejected")
	}
}

func TestMoveEndpoint(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	// Move the starting generator.
	rec := doJSON(t, srv, "POST", "/api/sessions/"+id+"/move",
		map[string]string{"from_cell_id": "4-3", "to_cell_id": "0-0"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	result := decodeResult(t, rec)
	if !result.Success {
		t.Fatal("Expected move to succeed")
	}

	for _, cell := range result.GameState.Grid {
		if cell.ID == "0-0" && cell.Item == nil {
			t.Error("Expected the generator at 0-0 after the move")
		}
		if cell.ID == "4-3" && cell.Item != nil {
			t.Error("Expected 4-3 to be empty after the move")
		}
	}

	rec = doJSON(t, srv, "POST", "/api/sessions/"+id+"/move", map[string]string{"from_cell_id": "4-3"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 without to_cell_id, got %d", rec.Code)
	}
}

func TestOrderEndpoints(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	rec := doJSON(t, srv, "POST", "/api/sessions/"+id+"/orders", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	result := decodeResult(t, rec)
	if !result.Success || len(result.GameState.Orders) != 1 {
		t.Fatalf("Expected 1 generated order, got %+v", result)
	}

	orderID := result.GameState.Orders[0].ID
	rec = doJSON(t, srv, "POST", fmt.Sprintf("/api/sessions/%s/orders/%s/complete", id, orderID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	// No bread items on the board yet, so nothing matches.
	if result := decodeResult(t, rec); result.Success {
		t.Error("Expected completion without matching items to be rejected")
	}
}

func TestTaskEndpoint(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	// The player starts with no coins, so every task is unaffordable.
	rec := doJSON(t, srv, "POST", "/api/sessions/"+id+"/tasks/t1/complete", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if result := decodeResult(t, rec); result.Success {
		t.Error("Expected unaffordable task to be rejected")
	}
}

func TestPurchaseEnergyEndpoint(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	rec := doJSON(t, srv, "POST", "/api/sessions/"+id+"/purchase-energy", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	result := decodeResult(t, rec)
	if !result.Success {
		t.Fatal("Expected purchase to succeed with starting gems")
	}
	if result.GameState.Gems != 90 || result.GameState.Energy != 200 {
		t.Errorf("Expected 90 gems and 200 energy, got %d and %d",
			result.GameState.Gems, result.GameState.Energy)
	}
}

func TestSelectEndpoint(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	rec := doJSON(t, srv, "POST", "/api/sessions/"+id+"/select", map[string]string{"item_id": "abc"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	result := decodeResult(t, rec)
	if result.GameState.SelectedItemID != "abc" {
		t.Errorf("Expected selection abc, got %q", result.GameState.SelectedItemID)
	}
}

func TestOfflineProgressEndpoint(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	rec := doJSON(t, srv, "POST", "/api/sessions/"+id+"/offline-progress", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	result := decodeResult(t, rec)
	if !result.Success {
		t.Error("Expected offline progress to succeed")
	}
	if result.Message != "restored 0 energy" {
		t.Errorf("Expected restored 0 energy, got %q", result.Message)
	}
}

func TestListCatalogsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, "GET", "/api/catalogs", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var infos []*catalog.Info
	json.Unmarshal(rec.Body.Bytes(), &infos)
	if len(infos) != 1 || infos[0].CatalogID != "default" {
		t.Errorf("Expected the default catalog, got %+v", infos)
	}
}

func TestGameStateEndpoint(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	rec := doJSON(t, srv, "GET", "/api/sessions/"+id+"/state", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var state struct {
		Energy int `json:"energy"`
		Level  int `json:"level"`
	}
	json.Unmarshal(rec.Body.Bytes(), &state)
	if state.Energy != 100 || state.Level != 1 {
		t.Errorf("Expected a fresh state, got energy=%d level=%d", state.Energy, state.Level)
	}
}
