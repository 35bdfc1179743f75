package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cgpnunez/mural/internal/usuario"
)

type usuarioPayload struct {
	Usuario    string `json:"usuario"`
	Contrasena string `json:"contrasena"`
}

// ListarUsuarios devuelve el directorio completo. Las contraseñas
// viajan hasheadas porque el worker remoto las almacena así.
func (h *Handler) ListarUsuarios(w http.ResponseWriter, r *http.Request) {
	usuarios, err := h.usuarios.Listar(r.Context())
	if err != nil {
		h.writeUsuarioError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"usuarios": usuarios})
}

// CrearUsuario da de alta una cuenta; el servicio hashea la contraseña
// antes de que viaje al worker.
func (h *Handler) CrearUsuario(w http.ResponseWriter, r *http.Request) {
	var payload usuarioPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	u, err := h.usuarios.Crear(r.Context(), payload.Usuario, payload.Contrasena)
	if err != nil {
		h.writeUsuarioError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"usuario": u})
}

// ObtenerUsuario busca una cuenta por id.
func (h *Handler) ObtenerUsuario(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(w, r)
	if !ok {
		return
	}

	u, err := h.usuarios.Obtener(r.Context(), id)
	if err != nil {
		h.writeUsuarioError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"usuario": u})
}

// ActualizarUsuario reemplaza nombre y contraseña de la cuenta.
func (h *Handler) ActualizarUsuario(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(w, r)
	if !ok {
		return
	}

	var payload usuarioPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	u, err := h.usuarios.Actualizar(r.Context(), id, payload.Usuario, payload.Contrasena)
	if err != nil {
		h.writeUsuarioError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"usuario": u})
}

// EliminarUsuario borra la cuenta indicada.
func (h *Handler) EliminarUsuario(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(w, r)
	if !ok {
		return
	}

	if err := h.usuarios.Eliminar(r.Context(), id); err != nil {
		h.writeUsuarioError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "usuario eliminado"})
}

func (h *Handler) writeUsuarioError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usuario.ErrNoEncontrado):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "usuario no encontrado", nil)
	case errors.Is(err, usuario.ErrPersistencia):
		WriteError(w, http.StatusBadGateway, "UPSTREAM", "el directorio remoto no respondió", nil)
	default:
		WriteError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
	}
}
