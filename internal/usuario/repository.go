package usuario

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Repository encapsula llamadas al recurso remoto de usuarios.
type Repository struct {
	httpClient *http.Client
	baseURL    string
	log        zerolog.Logger
}

// NewRepository crea un cliente del directorio apuntando a {base}/usuarios.
func NewRepository(apiBase string, timeout time.Duration, log zerolog.Logger) *Repository {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Repository{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    apiBase + "/usuarios",
		log:        log.With().Str("component", "usuarios").Logger(),
	}
}

// Listar obtiene el directorio completo. La respuesta viene envuelta en
// {results: [...]}.
func (r *Repository) Listar(ctx context.Context) ([]Usuario, error) {
	req, err := r.newRequest(ctx, http.MethodGet, r.baseURL, nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Results []Usuario `json:"results"`
	}
	if err := r.do(req, &envelope); err != nil {
		r.log.Error().Err(err).Msg("no se pudo listar usuarios")
		return nil, err
	}
	if envelope.Results == nil {
		return []Usuario{}, nil
	}
	return envelope.Results, nil
}

// Obtener busca un usuario por id.
func (r *Repository) Obtener(ctx context.Context, id int) (Usuario, error) {
	req, err := r.newRequest(ctx, http.MethodGet, fmt.Sprintf("%s/%d", r.baseURL, id), nil)
	if err != nil {
		return Usuario{}, err
	}

	var u Usuario
	if err := r.do(req, &u); err != nil {
		r.log.Error().Err(err).Int("id", id).Msg("no se pudo obtener usuario")
		return Usuario{}, err
	}
	if u.Usuario == "" {
		return Usuario{}, ErrNoEncontrado
	}
	return u, nil
}

// Crear registra un usuario nuevo; contrasena ya debe venir hasheada.
func (r *Repository) Crear(ctx context.Context, nombre, huella string) (Usuario, error) {
	body := Usuario{Usuario: nombre, Contrasena: huella}
	req, err := r.newRequest(ctx, http.MethodPost, r.baseURL, body)
	if err != nil {
		return Usuario{}, err
	}

	var creado Usuario
	if err := r.do(req, &creado); err != nil {
		r.log.Error().Err(err).Str("usuario", nombre).Msg("no se pudo crear usuario")
		return Usuario{}, err
	}
	return creado, nil
}

// Actualizar reemplaza nombre y huella del usuario indicado.
func (r *Repository) Actualizar(ctx context.Context, id int, nombre, huella string) (Usuario, error) {
	body := Usuario{Usuario: nombre, Contrasena: huella}
	req, err := r.newRequest(ctx, http.MethodPut, fmt.Sprintf("%s/%d", r.baseURL, id), body)
	if err != nil {
		return Usuario{}, err
	}

	var actualizado Usuario
	if err := r.do(req, &actualizado); err != nil {
		r.log.Error().Err(err).Int("id", id).Msg("no se pudo actualizar usuario")
		return Usuario{}, err
	}
	return actualizado, nil
}

// Eliminar borra el usuario indicado.
func (r *Repository) Eliminar(ctx context.Context, id int) error {
	req, err := r.newRequest(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", r.baseURL, id), nil)
	if err != nil {
		return err
	}

	if err := r.do(req, nil); err != nil {
		r.log.Error().Err(err).Int("id", id).Msg("no se pudo eliminar usuario")
		return err
	}
	return nil
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
		return fmt.Errorf("%w: %v", ErrPersistencia, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNoEncontrado
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrPersistencia, resp.StatusCode)
	}

	if v == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
