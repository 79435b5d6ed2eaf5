package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/meur/shortbox/internal/collection"
	"github.com/meur/shortbox/internal/models"
	"go.uber.org/zap"
)

// handleGetConditions returns the grade snapshot, best first
func (s *Server) handleGetConditions(w http.ResponseWriter, r *http.Request) {
	grades, err := s.svc.Conditions(r.Context())
	if err != nil {
		s.logger.Error("list conditions", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch conditions")
		return
	}
	respondJSON(w, http.StatusOK, grades)
}

// handleGetItems returns the unfiltered item list
func (s *Server) handleGetItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Items(r.Context())
	if err != nil {
		s.logger.Error("list items", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch items")
		return
	}

	respondJSON(w, http.StatusOK, models.ItemList{
		Items:      items,
		TotalCount: len(items),
	})
}

// handleGetView returns the filtered, grouped view
func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.View(r.Context(), criteriaFromQuery(r))
	if err != nil {
		s.logger.Error("build view", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch collection")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// handleCreateItem adds an item from a JSON body of string fields
func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var form models.ItemForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	respondResult(w, http.StatusCreated, s.svc.Create(r.Context(), form))
}

// handleUpdateItem updates an item; purchase_price in the body is ignored
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	var form models.ItemForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	respondResult(w, http.StatusOK, s.svc.Update(r.Context(), id, form))
}

// handleDeleteItem deletes an item by ID
func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	respondResult(w, http.StatusOK, s.svc.Delete(r.Context(), id))
}

func respondResult(w http.ResponseWriter, okStatus int, res models.Result) {
	if res.Success {
		respondJSON(w, okStatus, res)
		return
	}
	respondJSON(w, http.StatusUnprocessableEntity, res)
}

func itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid item id")
		return 0, false
	}
	return id, true
}

func criteriaFromQuery(r *http.Request) collection.Criteria {
	q := r.URL.Query()
	return collection.Criteria{
		Query:     q.Get("q"),
		Condition: q.Get("condition"),
		Tag:       q.Get("tag"),
	}.Normalized()
}
