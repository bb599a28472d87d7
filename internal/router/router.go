package router

import (
	"net/http"
	"strings"

	"campus-eats/internal/handler"
	"campus-eats/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Cart routes
	cartRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			cartHandler.Get(w, r)
		case http.MethodDelete:
			cartHandler.Clear(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
	mux.HandleFunc("/api/cart", cartRouteHandler)

	cartItemRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// POST targets the collection, PUT/DELETE a specific line.
		if r.Method == http.MethodPost && (r.URL.Path == "/api/cart/items" || r.URL.Path == "/api/cart/items/") {
			cartHandler.AddItem(w, r)
			return
		}

		if strings.HasPrefix(r.URL.Path, "/api/cart/items/") && r.URL.Path != "/api/cart/items/" {
			switch r.Method {
			case http.MethodPut:
				cartHandler.UpdateItem(w, r)
			case http.MethodDelete:
				cartHandler.RemoveItem(w, r)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		http.Error(w, "not found", http.StatusNotFound)
	}
	mux.HandleFunc("/api/cart/items", cartItemRouteHandler)
	mux.HandleFunc("/api/cart/items/", cartItemRouteHandler)

	// Checkout route
	mux.HandleFunc("/api/checkout", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		orderHandler.Checkout(w, r)
	})

	// Order routes
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/orders/") || r.URL.Path == "/api/orders/" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		rest := strings.TrimPrefix(r.URL.Path, "/api/orders/")
		switch {
		case strings.HasSuffix(rest, "/status") && r.Method == http.MethodPatch:
			orderHandler.ChangeStatus(w, r)
		case strings.HasSuffix(rest, "/driver") && r.Method == http.MethodPatch:
			orderHandler.AssignDriver(w, r)
		case strings.HasSuffix(rest, "/feedback") && r.Method == http.MethodPost:
			orderHandler.SubmitFeedback(w, r)
		case !strings.Contains(rest, "/") && r.Method == http.MethodGet:
			orderHandler.GetByID(w, r)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}
	mux.HandleFunc("/api/orders", orderRouteHandler)
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
