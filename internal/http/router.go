package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router wraps the standard http.ServeMux (no third-party router
// dependency needed for this route count).
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterAuthRoutes wires the auth proxy. Paths mirror the upstream
// service so existing clients keep working unchanged.
func (r *Router) RegisterAuthRoutes(h *AuthHandler) {
	r.Handle("/login", postOnly(h.Login))
	r.Handle("/register", postOnly(h.Register))
}

// RegisterPredictRoutes wires the four prediction workflows.
func (r *Router) RegisterPredictRoutes(h *PredictHandler) {
	r.Handle("/upload-mri", postOnly(h.PredictAlzheimer))
	r.Handle("/upload-brain-mri", postOnly(h.PredictBrainTumor))
	r.Handle("/predict-heart", postOnly(h.PredictHeart))
	r.Handle("/predict-kidney", postOnly(h.PredictKidney))
}

// RegisterHistoryRoutes wires the history listing, summary and export.
func (r *Router) RegisterHistoryRoutes(h *HistoryHandler) {
	r.Handle("/predictions", getOnly(h.List))
	r.Handle("/predictions/summary", getOnly(h.Summary))
	r.Handle("/predictions/export", getOnly(h.Export))
}

func postOnly(h http.HandlerFunc) http.HandlerFunc {
	return methodOnly(http.MethodPost, h)
}

func getOnly(h http.HandlerFunc) http.HandlerFunc {
	return methodOnly(http.MethodGet, h)
}

func methodOnly(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, req)
	}
}
