package http

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	httpmiddleware "github.com/cgpnunez/mural/internal/http/middleware"
)

// Login verifica las credenciales contra el directorio remoto y, en
// caso de éxito, persiste el registro completo como sesión y entrega el
// token en una cookie HTTP-only. Toda falla responde el mismo 401
// genérico: el llamador nunca sabe si el usuario no existe, la
// contraseña no coincide o la red falló.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Usuario    string `json:"usuario"`
		Contrasena string `json:"contrasena"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	u, err := h.usuarios.Login(r.Context(), payload.Usuario, payload.Contrasena)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "credenciales inválidas", nil)
		return
	}

	token, err := h.sesiones.Crear(r.Context(), u)
	if err != nil {
		log.Error().Err(err).Msg("no se pudo persistir la sesión")
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "no se pudo iniciar sesión", nil)
		return
	}

	h.setSessionCookie(w, token)
	WriteJSON(w, http.StatusOK, map[string]any{"usuario": u})
}

// Logout elimina la sesión incondicionalmente; repetirlo es un no-op.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(httpmiddleware.SessionCookie); err == nil {
		if err := h.sesiones.Eliminar(r.Context(), cookie.Value); err != nil {
			log.Warn().Err(err).Msg("no se pudo eliminar la sesión")
		}
	}

	h.clearSessionCookie(w)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "sesión cerrada"})
}

// Me devuelve el registro autenticado presente en la sesión.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := httpmiddleware.GetUsuario(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "AUTH", "sesión inválida", nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"usuario": u})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	secure := !h.devCookies
	sameSite := http.SameSiteNoneMode
	if h.devCookies {
		sameSite = http.SameSiteLaxMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     httpmiddleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	secure := !h.devCookies
	sameSite := http.SameSiteNoneMode
	if h.devCookies {
		sameSite = http.SameSiteLaxMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     httpmiddleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	})
}
