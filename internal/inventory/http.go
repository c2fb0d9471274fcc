package inventory

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Inventory/pkg/kit"
)

const readyTimeout = 1 * time.Second

type Server struct {
	Store Store
	Log   *zap.Logger
}

// Routes registers the API under /api plus the health probes. writeMW wraps
// only the mutating routes.
func (s *Server) Routes(writeMW ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.ready)

	r.Route("/api", func(api chi.Router) {
		api.Get("/products", s.listProducts)
		api.Get("/products/{id}", s.getProduct)
		api.Get("/categories", s.listCategories)
		api.Get("/categories/{id}", s.getCategory)
		api.Get("/categories/{id}/products", s.listCategoryProducts)

		api.Group(func(wr chi.Router) {
			wr.Use(writeMW...)

			wr.Post("/products", s.createProduct)
			wr.Put("/products/{id}", s.updateProduct)
			wr.Delete("/products/{id}", s.deleteProduct)

			wr.Post("/categories", s.createCategory)
			wr.Put("/categories/{id}", s.updateCategory)
			wr.Delete("/categories/{id}", s.deleteCategory)
		})
	})

	return r
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		s.logger().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.ListProducts(r.Context())
	if err != nil {
		s.serverError(w, r, "list products failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeRequestError(w, r, err)
		return
	}

	p, ok, err := s.Store.GetProduct(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "get product failed", err, zap.Int("id", id))
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "product not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) listCategoryProducts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeRequestError(w, r, err)
		return
	}

	// The store lists by any id; a deleted category must read as missing here.
	_, ok, err := s.Store.GetCategory(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "get category failed", err, zap.Int("id", id))
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "category not found", map[string]any{"id": id})
		return
	}

	products, err := s.Store.ListProductsByCategory(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "list category products failed", err, zap.Int("category_id", id))
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	cmd, err := decodeCreateProduct(w, r)
	if err != nil {
		writeRequestError(w, r, err)
		return
	}

	p, err := s.Store.CreateProduct(r.Context(), cmd)
	switch {
	case errors.Is(err, ErrInvalidCategory):
		s.logger().Debug("create product rejected", zap.Int("category_id", cmd.CategoryID))
		kit.WriteError(w, r, http.StatusBadRequest, "invalid category id", map[string]any{"category_id": cmd.CategoryID})
	case err != nil:
		s.serverError(w, r, "create product failed", err)
	default:
		kit.WriteJSON(w, http.StatusOK, p)
	}
}

// updateProduct reports an unknown product and an unknown target category the
// same way; callers cannot tell the two apart from the response.
func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeRequestError(w, r, err)
		return
	}
	cmd, err := decodeUpdateProduct(w, r)
	if err != nil {
		writeRequestError(w, r, err)
		return
	}

	p, err := s.Store.UpdateProduct(r.Context(), id, cmd)
	switch {
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrInvalidCategory):
		s.logger().Debug("update product rejected", zap.Int("id", id), zap.Error(err))
		kit.WriteError(w, r, http.StatusNotFound, "product not found or invalid category id", map[string]any{"id": id})
	case err != nil:
		s.serverError(w, r, "update product failed", err, zap.Int("id", id))
	default:
		kit.WriteJSON(w, http.StatusOK, p)
	}
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeRequestError(w, r, err)
		return
	}

	deleted, err := s.Store.DeleteProduct(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "delete product failed", err, zap.Int("id", id))
		return
	}
	if !deleted {
		kit.WriteError(w, r, http.StatusNotFound, "product not found", map[string]any{"id": id})
		return
	}
	kit.WriteMessage(w, http.StatusOK, "Product deleted successfully")
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.Store.ListCategories(r.Context())
	if err != nil {
		s.serverError(w, r, "list categories failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, categories)
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeRequestError(w, r, err)
		return
	}

	c, ok, err := s.Store.GetCategory(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "get category failed", err, zap.Int("id", id))
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "category not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, c)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	cmd, err := decodeCreateCategory(w, r)
	if err != nil {
		writeRequestError(w, r, err)
		return
	}

	c, err := s.Store.CreateCategory(r.Context(), cmd)
	if err != nil {
		s.serverError(w, r, "create category failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, c)
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeRequestError(w, r, err)
		return
	}
	cmd, err := decodeUpdateCategory(w, r)
	if err != nil {
		writeRequestError(w, r, err)
		return
	}

	c, ok, err := s.Store.UpdateCategory(r.Context(), id, cmd)
	if err != nil {
		s.serverError(w, r, "update category failed", err, zap.Int("id", id))
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "category not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, c)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeRequestError(w, r, err)
		return
	}

	deleted, err := s.Store.DeleteCategory(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "delete category failed", err, zap.Int("id", id))
		return
	}
	if !deleted {
		kit.WriteError(w, r, http.StatusNotFound, "category not found", map[string]any{"id": id})
		return
	}
	kit.WriteMessage(w, http.StatusOK, "Category deleted successfully")
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, err error, fields ...zap.Field) {
	s.logger().Error(msg, append(fields, zap.Error(err))...)
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

func writeRequestError(w http.ResponseWriter, r *http.Request, err error) {
	var re *requestError
	if !errors.As(err, &re) {
		kit.WriteError(w, r, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}

	var details any
	if len(re.details) > 0 {
		details = re.details
	}
	kit.WriteError(w, r, re.status, re.msg, details)
}
