package documento

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hook transforma un documento antes o después de una operación de
// escritura. Reemplaza los métodos virtuales heredables por un
// pipeline explícito configurado al construir el repositorio.
type Hook func(doc Documento) Documento

// Option configura un Repository.
type Option func(*Repository)

// ConAntesDeCrear agrega un hook previo al POST de creación.
func ConAntesDeCrear(h Hook) Option {
	return func(r *Repository) { r.antesDeCrear = append(r.antesDeCrear, h) }
}

// ConAntesDeActualizar agrega un hook previo al PUT de actualización.
func ConAntesDeActualizar(h Hook) Option {
	return func(r *Repository) { r.antesDeActualizar = append(r.antesDeActualizar, h) }
}

// ConReloj reemplaza la fuente de tiempo (para pruebas).
func ConReloj(ahora func() time.Time) Option {
	return func(r *Repository) { r.ahora = ahora }
}

// MarcaCreacion es el hook estándar de creación: estampa created_at con
// el instante actual y, si no vino status, el borrador inicial. Corre
// después de la validación, igual que en el worker.
func MarcaCreacion(ahora func() time.Time) Hook {
	return func(doc Documento) Documento {
		doc.CreatedAt = ahora().UTC().Format(time.RFC3339)
		if doc.Status == "" {
			doc.Status = StatusBorrador
		}
		return doc
	}
}

// Repository realiza el CRUD contra una colección remota ({base}/actas
// o {base}/circulares). Tras cada mutación recarga la lista completa
// para que la caché local sea autoritativa: se paga red a cambio de
// consistencia simple, sin merge optimista.
type Repository struct {
	httpClient *http.Client
	baseURL    string
	entidad    string
	plural     string
	log        zerolog.Logger
	ahora      func() time.Time

	antesDeCrear      []Hook
	antesDeActualizar []Hook

	mu     sync.RWMutex
	ultima []Documento
}

// NewRepository crea un repositorio para la colección indicada, por
// ejemplo NewRepository(base, "actas", "acta", ...).
func NewRepository(apiBase, coleccion, entidad string, timeout time.Duration, log zerolog.Logger, opts ...Option) *Repository {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	r := &Repository{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    apiBase + "/" + coleccion,
		entidad:    entidad,
		plural:     coleccion,
		log:        log.With().Str("component", coleccion).Logger(),
		ahora:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Listar obtiene la colección completa y refresca la caché. Un campo
// results ausente o con forma inesperada degrada a lista vacía: los
// llamadores dependen de recibir [] ante cualquier desajuste de forma.
// Sólo las fallas de transporte (red, status no-2xx) devuelven error,
// siempre acompañadas de una lista vacía.
func (r *Repository) Listar(ctx context.Context) ([]Documento, error) {
	req, err := r.newRequest(ctx, http.MethodGet, r.baseURL, nil)
	if err != nil {
		return []Documento{}, err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.Error().Err(err).Msgf("error al obtener %s", r.plural)
		return []Documento{}, &ErrorPersistencia{Mensaje: fmt.Sprintf("Error al obtener %s. Por favor, intente nuevamente.", r.plural)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		r.log.Error().Int("status", resp.StatusCode).Msgf("error al obtener %s", r.plural)
		return []Documento{}, &ErrorPersistencia{Mensaje: fmt.Sprintf("Error al obtener %s. Por favor, intente nuevamente.", r.plural)}
	}

	var envelope struct {
		Results []Documento `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Results == nil {
		// Envoltura malformada: se tolera y degrada a lista vacía.
		r.guardarCache([]Documento{})
		return []Documento{}, nil
	}

	r.guardarCache(envelope.Results)
	return envelope.Results, nil
}

// Ultima devuelve una copia de la última lista cargada.
func (r *Repository) Ultima() []Documento {
	r.mu.RLock()
	defer r.mu.RUnlock()

	copia := make([]Documento, len(r.ultima))
	copy(copia, r.ultima)
	return copia
}

// Obtener busca un documento por id; la ausencia es un error explícito,
// nunca un objeto vacío que se haga pasar por registro válido.
func (r *Repository) Obtener(ctx context.Context, id int) (Documento, error) {
	req, err := r.newRequest(ctx, http.MethodGet, fmt.Sprintf("%s/%d", r.baseURL, id), nil)
	if err != nil {
		return Documento{}, err
	}

	var doc Documento
	if err := r.do(req, &doc); err != nil {
		r.log.Error().Err(err).Int("id", id).Msgf("error al obtener %s", r.entidad)
		return Documento{}, err
	}
	if doc.ID == 0 && doc.Titulo == "" {
		return Documento{}, ErrNoEncontrado
	}
	return doc, nil
}

// Crear envía el POST, pasando antes el documento por el pipeline de
// hooks, y recarga la colección antes de devolver.
func (r *Repository) Crear(ctx context.Context, doc Documento) (Documento, error) {
	for _, hook := range r.antesDeCrear {
		doc = hook(doc)
	}

	req, err := r.newRequest(ctx, http.MethodPost, r.baseURL, doc)
	if err != nil {
		return Documento{}, err
	}

	var creado Documento
	if err := r.do(req, &creado); err != nil {
		r.log.Error().Err(err).Msgf("error al crear %s", r.entidad)
		return Documento{}, err
	}

	r.recargar(ctx)
	return creado, nil
}

// Actualizar envía el PUT a {base}/{id} con el mismo contrato de
// recarga posterior.
func (r *Repository) Actualizar(ctx context.Context, id int, doc Documento) (Documento, error) {
	for _, hook := range r.antesDeActualizar {
		doc = hook(doc)
	}

	req, err := r.newRequest(ctx, http.MethodPut, fmt.Sprintf("%s/%d", r.baseURL, id), doc)
	if err != nil {
		return Documento{}, err
	}

	var actualizado Documento
	if err := r.do(req, &actualizado); err != nil {
		r.log.Error().Err(err).Int("id", id).Msgf("error al actualizar %s", r.entidad)
		return Documento{}, err
	}

	r.recargar(ctx)
	return actualizado, nil
}

// Eliminar envía el DELETE y recarga la colección.
func (r *Repository) Eliminar(ctx context.Context, id int) error {
	req, err := r.newRequest(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", r.baseURL, id), nil)
	if err != nil {
		return err
	}

	if err := r.do(req, nil); err != nil {
		r.log.Error().Err(err).Int("id", id).Msgf("error al eliminar %s", r.entidad)
		return err
	}

	r.recargar(ctx)
	return nil
}

func (r *Repository) guardarCache(docs []Documento) {
	r.mu.Lock()
	r.ultima = docs
	r.mu.Unlock()
}

// recargar resincroniza la caché tras una escritura. La mutación ya se
// confirmó, así que una falla aquí sólo se registra.
func (r *Repository) recargar(ctx context.Context) {
	if _, err := r.Listar(ctx); err != nil {
		r.log.Warn().Err(err).Msgf("no se pudo recargar la lista de %s", r.plural)
	}
}

func (r *Repository) newRequest(ctx context.Context, method, endpoint string, body any) (*http.Request, error) {
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (r *Repository) do(req *http.Request, v any) error {
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return &ErrorPersistencia{Mensaje: fmt.Sprintf("Error de red al acceder a %s.", r.plural)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNoEncontrado
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// El status crudo sólo va al log; el llamador recibe el
		// mensaje genérico por colección.
		r.log.Error().Int("status", resp.StatusCode).Str("url", req.URL.Path).Msg("respuesta no exitosa del worker")
		return &ErrorPersistencia{Mensaje: fmt.Sprintf("Error al acceder a %s. Por favor, intente nuevamente.", r.plural)}
	}

	if v == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
