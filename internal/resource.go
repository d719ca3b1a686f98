package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"devicehub-api/internal/store"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// resource serves the five CRUD routes of one entity over its repository.
type resource[T any] struct {
	srv  *Server
	repo *store.Repository[T]
	// prepare runs before a create (id 0) or update reaches the store.
	prepare func(ctx context.Context, id int64, rec *T) error
	// present shapes a record for output.
	present func(T) T
}

func mountResource[T any](r chi.Router, pattern string, rs *resource[T], related func(chi.Router)) {
	r.Route(pattern, func(r chi.Router) {
		r.Get("/", rs.list)
		r.Post("/", rs.create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", rs.get)
			r.Put("/", rs.update)
			r.Delete("/", rs.delete)
			if related != nil {
				related(r)
			}
		})
	})
}

func (rs *resource[T]) list(w http.ResponseWriter, r *http.Request) {
	items, err := rs.repo.List(r.Context())
	if err != nil {
		rs.srv.sendStoreError(w, r, rs.repo.Entity(), err)
		return
	}
	writeJSON(w, http.StatusOK, presentAll(items, rs.present))
}

func (rs *resource[T]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	rec, err := rs.repo.Get(r.Context(), id)
	if err != nil {
		rs.srv.sendStoreError(w, r, rs.repo.Entity(), err)
		return
	}
	writeJSON(w, http.StatusOK, rs.show(rec))
}

func (rs *resource[T]) create(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBody[T](w, r)
	if !ok {
		return
	}
	if rs.prepare != nil {
		if err := rs.prepare(r.Context(), 0, &in); err != nil {
			rs.srv.sendStoreError(w, r, rs.repo.Entity(), err)
			return
		}
	}
	out, err := rs.repo.Create(r.Context(), in)
	if err != nil {
		rs.srv.sendStoreError(w, r, rs.repo.Entity(), err)
		return
	}
	writeJSON(w, http.StatusCreated, rs.show(out))
}

func (rs *resource[T]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	in, ok := decodeBody[T](w, r)
	if !ok {
		return
	}
	if rs.prepare != nil {
		if err := rs.prepare(r.Context(), id, &in); err != nil {
			rs.srv.sendStoreError(w, r, rs.repo.Entity(), err)
			return
		}
	}
	out, err := rs.repo.Update(r.Context(), id, in)
	if err != nil {
		rs.srv.sendStoreError(w, r, rs.repo.Entity(), err)
		return
	}
	writeJSON(w, http.StatusOK, rs.show(out))
}

func (rs *resource[T]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := rs.repo.Delete(r.Context(), id); err != nil {
		rs.srv.sendStoreError(w, r, rs.repo.Entity(), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rs *resource[T]) show(rec T) T {
	if rs.present == nil {
		return rec
	}
	return rs.present(rec)
}

func presentAll[T any](items []T, present func(T) T) []T {
	if present == nil {
		return items
	}
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = present(it)
	}
	return out
}

// urlID parses the {id} route parameter, replying 400 when it is not an integer.
func urlID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		sendErrorResponse(w, "id must be an integer", CodeValidation, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func decodeBody[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var in T
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		sendErrorResponse(w, "invalid JSON: "+err.Error(), CodeValidation, http.StatusBadRequest)
		return in, false
	}
	return in, true
}
