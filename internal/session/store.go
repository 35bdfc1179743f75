package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/cgpnunez/mural/internal/usuario"
)

const prefix = "sesion:"

// ErrNoSesion indica ausencia de registro para el token consultado.
var ErrNoSesion = errors.New("sesión no encontrada")

// Store persiste la sesión en Redis: un único registro de usuario
// serializado bajo un token opaco. La mera presencia del registro es el
// predicado de autenticación; no hay refresh ni invalidación multi-tab.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore crea el almacén. ttl = 0 significa sin expiración automática.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Crear persiste el registro autenticado y devuelve su token.
func (s *Store) Crear(ctx context.Context, u usuario.Usuario) (string, error) {
	payload, err := json.Marshal(u)
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	if err := s.client.Set(ctx, prefix+token, payload, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Obtener deserializa el registro almacenado, si existe.
func (s *Store) Obtener(ctx context.Context, token string) (usuario.Usuario, error) {
	payload, err := s.client.Get(ctx, prefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return usuario.Usuario{}, ErrNoSesion
		}
		return usuario.Usuario{}, err
	}

	var u usuario.Usuario
	if err := json.Unmarshal(payload, &u); err != nil {
		return usuario.Usuario{}, err
	}
	return u, nil
}

// Autenticado informa si hay registro presente para el token.
func (s *Store) Autenticado(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	_, err := s.Obtener(ctx, token)
	return err == nil
}

// Eliminar borra el registro incondicionalmente; es idempotente.
func (s *Store) Eliminar(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.client.Del(ctx, prefix+token).Err()
}
