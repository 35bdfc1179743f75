package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/cgpnunez/mural/internal/config"
	"github.com/cgpnunez/mural/internal/documento"
	httpmiddleware "github.com/cgpnunez/mural/internal/http/middleware"
	"github.com/cgpnunez/mural/internal/session"
	"github.com/cgpnunez/mural/internal/usuario"
)

// Handler agrupa las dependencias de la capa HTTP.
type Handler struct {
	cfg           *config.Config
	redis         *redis.Client
	sesiones      *session.Store
	usuarios      *usuario.Service
	documentos    *documento.Service
	publicLimiter *httpmiddleware.RateLimiter
	adminLimiter  *httpmiddleware.RateLimiter
	devCookies    bool
}

// NewRouter arma los servicios sobre el worker remoto y devuelve el
// enrutador configurado: mural público, login y área de administración
// protegida por presencia de sesión.
func NewRouter(cfg *config.Config, redisClient *redis.Client) http.Handler {
	devCookies := false
	for _, origin := range cfg.AllowOrigins {
		if strings.Contains(origin, "localhost") {
			devCookies = true
			break
		}
	}

	logger := log.Logger

	actasRepo := documento.NewRepository(cfg.APIBase, "actas", "acta", cfg.HTTPTimeout, logger,
		documento.ConAntesDeCrear(documento.MarcaCreacion(time.Now)))
	circularesRepo := documento.NewRepository(cfg.APIBase, "circulares", "circular", cfg.HTTPTimeout, logger,
		documento.ConAntesDeCrear(documento.MarcaCreacion(time.Now)))

	documentos := documento.NewService(documento.NewRegistro(), map[string]documento.Repositorio{
		documento.TipoActa:     actasRepo,
		documento.TipoCircular: circularesRepo,
	}, logger)

	usuarios := usuario.NewService(usuario.NewRepository(cfg.APIBase, cfg.HTTPTimeout, logger), logger)
	sesiones := session.NewStore(redisClient, cfg.SessionTTL)

	h := &Handler{
		cfg:           cfg,
		redis:         redisClient,
		sesiones:      sesiones,
		usuarios:      usuarios,
		documentos:    documentos,
		publicLimiter: httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst),
		adminLimiter:  httpmiddleware.NewRateLimiter(cfg.RateLimitAdmin.RequestsPerSecond, cfg.RateLimitAdmin.Burst),
		devCookies:    devCookies,
	}

	return h.routes()
}

func (h *Handler) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(h.cfg.AllowOrigins))

	r.Group(func(public chi.Router) {
		public.Use(httpmiddleware.IPRateLimit(h.publicLimiter))

		public.Get("/health", h.Health)
		public.Get("/ready", h.Ready)

		public.Route("/mural", func(mural chi.Router) {
			mural.Get("/circulares", h.listarDocumentos(documento.TipoCircular, "circulares"))
			mural.Get("/actas", h.listarDocumentos(documento.TipoActa, "actas"))
		})

		public.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", h.Login)
			auth.Post("/logout", h.Logout)
		})
	})

	r.Group(func(private chi.Router) {
		private.Use(httpmiddleware.Sesion(h.sesiones))
		private.Use(httpmiddleware.UserRateLimit(h.adminLimiter))

		private.Get("/me", h.Me)

		private.Route("/admin", func(admin chi.Router) {
			admin.Get("/dashboard", h.Dashboard)

			admin.Route("/actas", func(r chi.Router) {
				h.montarDocumentos(r, documento.TipoActa, "actas")
			})
			admin.Route("/circulares", func(r chi.Router) {
				h.montarDocumentos(r, documento.TipoCircular, "circulares")
			})

			admin.Route("/usuarios", func(u chi.Router) {
				u.Get("/", h.ListarUsuarios)
				u.Post("/", h.CrearUsuario)
				u.Get("/{id}", h.ObtenerUsuario)
				u.Put("/{id}", h.ActualizarUsuario)
				u.Delete("/{id}", h.EliminarUsuario)
			})
		})
	})

	return r
}

// montarDocumentos cuelga el CRUD de una colección; ambas comparten
// handlers parametrizados por tipo.
func (h *Handler) montarDocumentos(r chi.Router, tipo, plural string) {
	r.Get("/", h.listarDocumentos(tipo, plural))
	r.Post("/", h.guardarDocumento(tipo))
	r.Get("/{id}", h.obtenerDocumento(tipo))
	r.Put("/{id}", h.actualizarDocumento(tipo))
	r.Delete("/{id}", h.eliminarDocumento(tipo))
}

// Health responde estado simple.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready valida la conexión con Redis, la única dependencia propia; el
// worker remoto queda fuera del readiness a propósito.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.redis.Ping(ctx).Err(); err != nil {
		WriteError(w, http.StatusServiceUnavailable, "INTERNAL", "dependencias no disponibles", map[string]any{
			"redis": err.Error(),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
