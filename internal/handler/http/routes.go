package http

import (
	"net/http"

	"github.com/MKhiriev/secure-vault/internal/app"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))
	router.Use(withDecompressedBody)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.getServerVersion)

		r.Route("/auth", func(r chi.Router) {
			r.Use(h.withRateLimit)

			r.Post("/signup", h.signup)
			r.Post("/login", h.login)

			r.Group(func(r chi.Router) {
				r.Use(h.auth)
				r.Post("/2fa/setup", h.setupTwoFactor)
				r.Post("/2fa/verify", h.verifyTwoFactor)
			})
		})

		r.Route("/vault", func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/", h.listVault)
			r.Post("/", h.createVaultItem)
			r.Post("/import", h.importVault)
			r.Put("/{id}", h.updateVaultItem)
			r.Delete("/{id}", h.deleteVaultItem)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return router
}

// writeServiceError answers with the status and message mapped from err and
// logs unexpected failures.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := responseFromError(err)
	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	utils.WriteError(w, msg, status)
}

func writeInvalidJSON(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromRequest(r).Debug().Err(err).Msg(app.MsgInvalidJSON)
	utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
}
