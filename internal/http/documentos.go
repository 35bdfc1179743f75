package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cgpnunez/mural/internal/documento"
)

// Dashboard carga ambas colecciones para el tablero de administración
// en un fan-out de dos consultas independientes.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	todo, err := h.documentos.CargarTodo(r.Context())
	if err != nil {
		h.writeDocumentoError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"actas":      todo[documento.TipoActa],
		"circulares": todo[documento.TipoCircular],
	})
}

func (h *Handler) listarDocumentos(tipo, plural string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := h.documentos.Listar(r.Context(), tipo)
		if err != nil {
			h.writeDocumentoError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{plural: docs})
	}
}

func (h *Handler) obtenerDocumento(tipo string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idDeRuta(w, r)
		if !ok {
			return
		}

		doc, err := h.documentos.Obtener(r.Context(), tipo, id)
		if err != nil {
			h.writeDocumentoError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{tipo: doc})
	}
}

// guardarDocumento maneja el alta: valida y, sólo si pasa, persiste.
func (h *Handler) guardarDocumento(tipo string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc documento.Documento
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
			return
		}

		guardado, err := h.documentos.Guardar(r.Context(), tipo, doc, false)
		if err != nil {
			h.writeDocumentoError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, map[string]any{tipo: guardado})
	}
}

func (h *Handler) actualizarDocumento(tipo string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idDeRuta(w, r)
		if !ok {
			return
		}

		var doc documento.Documento
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
			return
		}
		doc.ID = id

		guardado, err := h.documentos.Guardar(r.Context(), tipo, doc, true)
		if err != nil {
			h.writeDocumentoError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{tipo: guardado})
	}
}

func (h *Handler) eliminarDocumento(tipo string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idDeRuta(w, r)
		if !ok {
			return
		}

		if err := h.documentos.Eliminar(r.Context(), tipo, id); err != nil {
			h.writeDocumentoError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "eliminado"})
	}
}

// writeDocumentoError traduce los errores del orquestador a envelopes:
// la lista ordenada de validación viaja completa en details; las fallas
// de persistencia sólo exponen el mensaje genérico.
func (h *Handler) writeDocumentoError(w http.ResponseWriter, err error) {
	var validacion *documento.ErrorValidacion
	if errors.As(err, &validacion) {
		WriteError(w, http.StatusUnprocessableEntity, "VALIDATION", "documento inválido", validacion.Errores)
		return
	}

	var persistencia *documento.ErrorPersistencia
	if errors.As(err, &persistencia) {
		WriteError(w, http.StatusBadGateway, "UPSTREAM", persistencia.Mensaje, nil)
		return
	}

	switch {
	case errors.Is(err, documento.ErrNoEncontrado):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "documento no encontrado", nil)
	case errors.Is(err, documento.ErrTipoDesconocido):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "tipo de documento desconocido", nil)
	default:
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "error interno", nil)
	}
}

func idDeRuta(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(chi.URLParam(r, "id")))
	if err != nil || id <= 0 {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return 0, false
	}
	return id, true
}
