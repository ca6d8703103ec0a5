package dashboard

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniStock/internal/inventory"
	"MiniStock/pkg/kit"
)

// Reader is the read-only view of the inventory the dashboard serves.
type Reader interface {
	Get(id int) (inventory.Product, error)
	Sorted() []inventory.Product
	LowStock() []inventory.Product
	Threshold() int
}

type Server struct {
	Inventory Reader
	Log       *zap.Logger
}

type lowStockResp struct {
	Threshold int                 `json:"threshold"`
	Products  []inventory.Product `json:"products"`
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if s.Inventory == nil {
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/inventory.json", s.list)
	r.Get("/products/{id}", s.get)
	r.Get("/low-stock", s.lowStock)

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, nonNil(s.Inventory.Sorted()))
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad id", map[string]any{"id": raw})
		return
	}

	p, err := s.Inventory.Get(id)
	if errors.Is(err, inventory.ErrNotFound) {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get product failed", zap.Error(err), zap.Int("id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) lowStock(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, lowStockResp{
		Threshold: s.Inventory.Threshold(),
		Products:  nonNil(s.Inventory.LowStock()),
	})
}

func nonNil(ps []inventory.Product) []inventory.Product {
	if ps == nil {
		return []inventory.Product{}
	}
	return ps
}
