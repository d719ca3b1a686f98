package internal

import (
	"context"
	"net/http"

	"devicehub-api/internal/models"

	"github.com/go-chi/chi/v5"
)

// listRelated serves a one-to-many lookup keyed by the {id} of the parent.
func listRelated[C any](s *Server, entity string, lookup func(context.Context, int64) ([]C, error), present func(C) C) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r)
		if !ok {
			return
		}
		items, err := lookup(r.Context(), id)
		if err != nil {
			s.sendStoreError(w, r, entity, err)
			return
		}
		writeJSON(w, http.StatusOK, presentAll(items, present))
	}
}

func (s *Server) assetRelations(r chi.Router) {
	r.Get("/licenses", listRelated(s, "asset", s.Store.AssetLicenses, nil))
	r.Get("/maintenance", listRelated(s, "asset", s.Store.AssetMaintenance, nil))
	r.Get("/warranty", func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r)
		if !ok {
			return
		}
		warranty, err := s.Store.AssetWarranty(r.Context(), id)
		if err != nil {
			s.sendStoreError(w, r, "asset", err)
			return
		}
		writeJSON(w, http.StatusOK, warranty)
	})
}

func (s *Server) departmentRelations(r chi.Router) {
	r.Get("/assets", listRelated(s, "department", s.Store.DepartmentAssets, nil))
	r.Get("/employees", listRelated(s, "department", s.Store.DepartmentEmployees, models.Employee.Redacted))
}

func (s *Server) supplierRelations(r chi.Router) {
	r.Get("/assets", listRelated(s, "supplier", s.Store.SupplierAssets, nil))
	r.Get("/warranties", listRelated(s, "supplier", s.Store.SupplierWarranties, nil))
}

func (s *Server) employeeRelations(r chi.Router) {
	r.Get("/assets", listRelated(s, "employee", s.Store.EmployeeAssets, nil))
}
