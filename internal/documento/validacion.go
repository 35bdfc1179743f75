package documento

import (
	"fmt"
	"strings"
	"sync"
)

// ResultadoValidacion acumula todas las reglas violadas; Valido es
// verdadero sólo con la lista vacía.
type ResultadoValidacion struct {
	Valido  bool
	Errores []string
}

// Validador define la capacidad mínima de una estrategia de validación.
type Validador interface {
	Validar(doc Documento) ResultadoValidacion
}

// reglasDocumento parametriza la estrategia común a ambos tipos: los
// mensajes llevan el sujeto gramatical de la entidad y los límites de
// cuerpo varían por tipo.
type reglasDocumento struct {
	sujeto    string // "del acta", "de la circular"
	minCuerpo int
	maxCuerpo int
}

// Validar revisa cada campo sin cortar en la primera falla, para que el
// llamador pueda mostrar todos los problemas a la vez. El orden de los
// mensajes es fijo: título, cuerpo, autor, status.
func (r reglasDocumento) Validar(doc Documento) ResultadoValidacion {
	var errores []string

	titulo := strings.TrimSpace(doc.Titulo)
	switch {
	case titulo == "":
		errores = append(errores, fmt.Sprintf("El título %s es requerido", r.sujeto))
	case len([]rune(titulo)) < 5:
		errores = append(errores, fmt.Sprintf("El título %s debe tener al menos 5 caracteres", r.sujeto))
	case len([]rune(titulo)) > 200:
		errores = append(errores, fmt.Sprintf("El título %s no puede exceder 200 caracteres", r.sujeto))
	}

	cuerpo := strings.TrimSpace(doc.Cuerpo)
	switch {
	case cuerpo == "":
		errores = append(errores, fmt.Sprintf("El contenido %s es requerido", r.sujeto))
	case len([]rune(cuerpo)) < r.minCuerpo:
		errores = append(errores, fmt.Sprintf("El contenido %s debe tener al menos %d caracteres", r.sujeto, r.minCuerpo))
	case len([]rune(cuerpo)) > r.maxCuerpo:
		errores = append(errores, fmt.Sprintf("El contenido %s no puede exceder %d caracteres", r.sujeto, r.maxCuerpo))
	}

	autor := strings.TrimSpace(doc.Autor)
	switch {
	case autor == "":
		errores = append(errores, fmt.Sprintf("El autor %s es requerido", r.sujeto))
	case len([]rune(autor)) < 2:
		errores = append(errores, "El nombre del autor debe tener al menos 2 caracteres")
	case len([]rune(autor)) > 100:
		errores = append(errores, "El nombre del autor no puede exceder 100 caracteres")
	}

	// El status sólo se valida cuando viene presente.
	if doc.Status != "" && doc.Status != StatusActivo && doc.Status != StatusInactivo {
		errores = append(errores, fmt.Sprintf("El estado %s debe ser \"activo\" o \"inactivo\"", r.sujeto))
	}

	return ResultadoValidacion{Valido: len(errores) == 0, Errores: errores}
}

// Registro mapea tipo de documento a su validador y admite registrar
// estrategias nuevas en runtime, sin tocar el orquestador.
type Registro struct {
	mu          sync.RWMutex
	validadores map[string]Validador
}

// NewRegistro crea el registro con las estrategias de acta y circular.
func NewRegistro() *Registro {
	r := &Registro{validadores: make(map[string]Validador)}
	r.Registrar(TipoActa, reglasDocumento{sujeto: "del acta", minCuerpo: 20, maxCuerpo: 5000})
	r.Registrar(TipoCircular, reglasDocumento{sujeto: "de la circular", minCuerpo: 10, maxCuerpo: 3000})
	return r
}

// Registrar agrega o reemplaza la estrategia del tipo indicado.
func (r *Registro) Registrar(tipo string, v Validador) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validadores[tipo] = v
}

// Tipos devuelve las claves registradas.
func (r *Registro) Tipos() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tipos := make([]string, 0, len(r.validadores))
	for tipo := range r.validadores {
		tipos = append(tipos, tipo)
	}
	return tipos
}

// Validar despacha al validador del tipo indicado.
func (r *Registro) Validar(tipo string, doc Documento) (ResultadoValidacion, error) {
	r.mu.RLock()
	v, ok := r.validadores[tipo]
	r.mu.RUnlock()

	if !ok {
		return ResultadoValidacion{}, ErrTipoDesconocido
	}
	return v.Validar(doc), nil
}
