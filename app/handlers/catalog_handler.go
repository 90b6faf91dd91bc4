package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/greenpantry/storefront/app/models"
	"github.com/greenpantry/storefront/app/repositories"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

const defaultPageSize = 12

// CatalogHandler serves the product and bundle listings the cart endpoints
// resolve their items from.
type CatalogHandler struct {
	productRepo  repositories.ProductRepositoryImpl
	bundleRepo   repositories.BundleRepository
	categoryRepo repositories.CategoryRepositoryImpl
	render       *render.Render
}

func NewCatalogHandler(
	productRepo repositories.ProductRepositoryImpl,
	bundleRepo repositories.BundleRepository,
	categoryRepo repositories.CategoryRepositoryImpl,
	render *render.Render,
) *CatalogHandler {
	return &CatalogHandler{
		productRepo:  productRepo,
		bundleRepo:   bundleRepo,
		categoryRepo: categoryRepo,
		render:       render,
	}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	keyword := r.URL.Query().Get("q")

	var (
		products []models.Product
		total    int64
		err      error
	)
	if keyword != "" {
		products, total, err = h.productRepo.SearchProductsPaginated(r.Context(), keyword, limit, (page-1)*limit)
	} else {
		products, total, err = h.productRepo.GetPaginated(r.Context(), limit, (page-1)*limit)
	}
	if err != nil {
		log.Printf("CatalogHandler.ListProducts: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load products"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	product, err := h.productRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		log.Printf("CatalogHandler.GetProduct: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load product"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) ListBundles(w http.ResponseWriter, r *http.Request) {
	bundles, err := h.bundleRepo.GetBundles(r.Context())
	if err != nil {
		log.Printf("CatalogHandler.ListBundles: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load bundles"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"bundles": bundles})
}

func (h *CatalogHandler) GetBundle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	bundle, err := h.bundleRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "bundle not found"})
			return
		}
		log.Printf("CatalogHandler.GetBundle: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load bundle"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, bundle)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("CatalogHandler.ListCategories: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load categories"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func (h *CatalogHandler) ListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	products, err := h.productRepo.GetByCategorySlug(r.Context(), slug)
	if err != nil {
		log.Printf("CatalogHandler.ListProductsByCategory: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load products"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

func pagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = defaultPageSize
	}
	return page, limit
}
