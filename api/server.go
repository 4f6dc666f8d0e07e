package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/pastrysoft/merge-bakery/game/service"
	"github.com/pastrysoft/merge-bakery/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Board operations
	api.HandleFunc("/sessions/{id}/state", s.handleGetGameState).Methods("GET")
	api.HandleFunc("/sessions/{id}/move", s.handleMove).Methods("POST")
	api.HandleFunc("/sessions/{id}/spawn", s.handleSpawn).Methods("POST")
	api.HandleFunc("/sessions/{id}/merge-all", s.handleMergeAll).Methods("POST")
	api.HandleFunc("/sessions/{id}/delete-item", s.handleDeleteItem).Methods("POST")
	api.HandleFunc("/sessions/{id}/select", s.handleSelect).Methods("POST")

	// Orders, tasks and economy
	api.HandleFunc("/sessions/{id}/orders", s.handleGenerateOrder).Methods("POST")
	api.HandleFunc("/sessions/{id}/orders/{orderId}/complete", s.handleCompleteOrder).Methods("POST")
	api.HandleFunc("/sessions/{id}/tasks/{taskId}/complete", s.handleCompleteTask).Methods("POST")
	api.HandleFunc("/sessions/{id}/purchase-energy", s.handlePurchaseEnergy).Methods("POST")
	api.HandleFunc("/sessions/{id}/offline-progress", s.handleOfflineProgress).Methods("POST")

	// Catalogs
	api.HandleFunc("/catalogs", s.handleListCatalogs).Methods("GET")

	// Health
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Static files (if needed)
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CatalogID string `json:"catalog_id,omitempty"`
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	session, err := s.service.CreateSession(r.Context(), req.CatalogID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	fmt.Printf("[SESSION] created id=%s catalog=%s\n", session.ID, session.CatalogID)
	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Parse query parameters
	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of sessions to return

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else { // "accessed"
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj) // desc
	})

	limit := len(sessions)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(sessions) {
			limit = l
		}
	}
	sessions = sessions[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	session, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	err := s.service.DeleteSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Board Operation Handlers

func (s *Server) handleGetGameState(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	state, err := s.service.GetGameState(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	var req struct {
		FromCellID string `json:"from_cell_id"`
		ToCellID   string `json:"to_cell_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FromCellID == "" || req.ToCellID == "" {
		respondError(w, http.StatusBadRequest, "from_cell_id and to_cell_id are required")
		return
	}

	result, err := s.service.MoveItem(r.Context(), sessionID, req.FromCellID, req.ToCellID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.broadcast(sessionID, result)

	fmt.Printf("[MOVE] session=%s %s->%s ok=%v\n", sessionID, req.FromCellID, req.ToCellID, result.Success)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSpawn(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	var req struct {
		CellID string `json:"cell_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CellID == "" {
		respondError(w, http.StatusBadRequest, "cell_id is required")
		return
	}

	result, err := s.service.SpawnItem(r.Context(), sessionID, req.CellID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.broadcast(sessionID, result)

	fmt.Printf("[SPAWN] session=%s cell=%s ok=%v energy=%d\n",
		sessionID, req.CellID, result.Success, result.GameState.Energy)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleMergeAll(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	var req struct {
		ItemID string `json:"item_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ItemID == "" {
		respondError(w, http.StatusBadRequest, "item_id is required")
		return
	}

	result, err := s.service.MergeAllItems(r.Context(), sessionID, req.ItemID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.broadcast(sessionID, result)

	fmt.Printf("[MERGE-ALL] session=%s item=%s ok=%v\n", sessionID, req.ItemID, result.Success)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	var req struct {
		ItemID string `json:"item_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ItemID == "" {
		respondError(w, http.StatusBadRequest, "item_id is required")
		return
	}

	result, err := s.service.DeleteItem(r.Context(), sessionID, req.ItemID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.broadcast(sessionID, result)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	var req struct {
		ItemID string `json:"item_id"` // empty clears the selection
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.SetSelectedItem(r.Context(), sessionID, req.ItemID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.broadcast(sessionID, result)
	respondJSON(w, http.StatusOK, result)
}

// Order, Task and Economy Handlers

func (s *Server) handleGenerateOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	result, err := s.service.GenerateOrder(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.broadcast(sessionID, result)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleCompleteOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]
	orderID := vars["orderId"]

	result, err := s.service.CompleteOrder(r.Context(), sessionID, orderID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.broadcast(sessionID, result)

	fmt.Printf("[ORDER] session=%s order=%s ok=%v coins=%d\n",
		sessionID, orderID, result.Success, result.GameState.Coins)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]
	taskID := vars["taskId"]

	result, err := s.service.CompleteTask(r.Context(), sessionID, taskID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.broadcast(sessionID, result)

	fmt.Printf("[TASK] session=%s task=%s ok=%v level=%d xp=%d\n",
		sessionID, taskID, result.Success, result.GameState.Level, result.GameState.XP)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handlePurchaseEnergy(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	result, err := s.service.PurchaseEnergy(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.broadcast(sessionID, result)

	fmt.Printf("[ENERGY] session=%s purchase ok=%v energy=%d gems=%d\n",
		sessionID, result.Success, result.GameState.Energy, result.GameState.Gems)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleOfflineProgress(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	result, err := s.service.ProcessOfflineProgress(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.broadcast(sessionID, result)
	respondJSON(w, http.StatusOK, result)
}

// Catalog Handlers

func (s *Server) handleListCatalogs(w http.ResponseWriter, r *http.Request) {
	catalogs, err := s.service.ListCatalogs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, catalogs)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	// Verify session exists
	_, err := s.service.GetSession(context.Background(), sessionID)
	if err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// broadcast pushes the post-operation state to WebSocket subscribers.
func (s *Server) broadcast(sessionID string, result *service.OpResult) {
	if s.hub != nil && result != nil {
		s.hub.BroadcastToSession(sessionID, result.GameState)
	}
}
