package documento

import (
	"errors"
	"strings"
)

var ErrNoEncontrado = errors.New("documento no encontrado")

// ErrTipoDesconocido se devuelve cuando el tipo no tiene validador ni
// repositorio registrado.
var ErrTipoDesconocido = errors.New("tipo de documento desconocido")

const (
	TipoActa     = "acta"
	TipoCircular = "circular"

	StatusActivo   = "activo"
	StatusInactivo = "inactivo"

	// StatusBorrador lo estampa el pipeline de creación; queda fuera del
	// conjunto que aceptan los validadores, igual que en el worker.
	StatusBorrador = "borrador"
)

// Documento es la forma compartida de actas y circulares; sólo cambian
// las reglas de validación y la ruta del recurso.
type Documento struct {
	ID        int    `json:"id,omitempty"`
	Titulo    string `json:"titulo"`
	Autor     string `json:"autor"`
	Cuerpo    string `json:"cuerpo"`
	Status    string `json:"status,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ErrorValidacion transporta la lista ordenada de reglas violadas.
// Nunca dispara una llamada de red.
type ErrorValidacion struct {
	Errores []string
}

func (e *ErrorValidacion) Error() string {
	return strings.Join(e.Errores, "; ")
}

// ErrorPersistencia envuelve una falla de transporte con un mensaje
// genérico por entidad/operación; el error crudo sólo va al log.
type ErrorPersistencia struct {
	Mensaje string
}

func (e *ErrorPersistencia) Error() string {
	return e.Mensaje
}
