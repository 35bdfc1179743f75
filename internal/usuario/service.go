package usuario

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cgpnunez/mural/internal/auth"
)

// Directorio abstrae el acceso al recurso remoto de usuarios.
type Directorio interface {
	Listar(ctx context.Context) ([]Usuario, error)
	Obtener(ctx context.Context, id int) (Usuario, error)
	Crear(ctx context.Context, nombre, huella string) (Usuario, error)
	Actualizar(ctx context.Context, id int, nombre, huella string) (Usuario, error)
	Eliminar(ctx context.Context, id int) error
}

// Service reúne las reglas de autenticación y gestión del directorio.
type Service struct {
	directorio Directorio
	log        zerolog.Logger
}

// NewService crea una nueva instancia del servicio.
func NewService(directorio Directorio, log zerolog.Logger) *Service {
	return &Service{
		directorio: directorio,
		log:        log.With().Str("component", "auth").Logger(),
	}
}

// Login verifica las credenciales contra el directorio remoto. Toda
// falla (usuario inexistente, contraseña incorrecta, error de red o de
// parseo) colapsa en ErrCredenciales: el llamador nunca distingue cuál
// fue. En caso de éxito devuelve el registro completo tal como lo
// almacena el directorio, huella incluida, porque ese registro íntegro
// es lo que se persiste como sesión.
func (s *Service) Login(ctx context.Context, nombre, contrasena string) (Usuario, error) {
	huella := auth.Digest(contrasena)

	usuarios, err := s.directorio.Listar(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("fallo al consultar el directorio durante login")
		return Usuario{}, ErrCredenciales
	}

	// Coincidencia exacta, sensible a mayúsculas; gana el primer registro.
	for _, u := range usuarios {
		if u.Usuario == nombre {
			if u.Contrasena == huella {
				return u, nil
			}
			return Usuario{}, ErrCredenciales
		}
	}

	return Usuario{}, ErrCredenciales
}

// Listar devuelve el directorio completo.
func (s *Service) Listar(ctx context.Context) ([]Usuario, error) {
	return s.directorio.Listar(ctx)
}

// Obtener busca un usuario por id.
func (s *Service) Obtener(ctx context.Context, id int) (Usuario, error) {
	return s.directorio.Obtener(ctx, id)
}

// Crear da de alta un usuario; la contraseña se hashea antes de viajar.
func (s *Service) Crear(ctx context.Context, nombre, contrasena string) (Usuario, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return Usuario{}, errors.New("usuario obligatorio")
	}
	if contrasena == "" {
		return Usuario{}, errors.New("contraseña obligatoria")
	}
	return s.directorio.Crear(ctx, nombre, auth.Digest(contrasena))
}

// Actualizar reemplaza nombre y contraseña; vuelve a hashear siempre.
func (s *Service) Actualizar(ctx context.Context, id int, nombre, contrasena string) (Usuario, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return Usuario{}, errors.New("usuario obligatorio")
	}
	if contrasena == "" {
		return Usuario{}, errors.New("contraseña obligatoria")
	}
	return s.directorio.Actualizar(ctx, id, nombre, auth.Digest(contrasena))
}

// Eliminar borra el usuario indicado.
func (s *Service) Eliminar(ctx context.Context, id int) error {
	return s.directorio.Eliminar(ctx, id)
}
