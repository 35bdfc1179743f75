package documento

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Repositorio abstrae el CRUD remoto de una colección de documentos.
type Repositorio interface {
	Listar(ctx context.Context) ([]Documento, error)
	Obtener(ctx context.Context, id int) (Documento, error)
	Crear(ctx context.Context, doc Documento) (Documento, error)
	Actualizar(ctx context.Context, id int, doc Documento) (Documento, error)
	Eliminar(ctx context.Context, id int) error
}

// Service orquesta "validar y luego persistir": compone el registro de
// validadores con el repositorio de cada tipo. Eliminar y listar
// delegan directo, sin validación.
type Service struct {
	registro *Registro
	repos    map[string]Repositorio
	log      zerolog.Logger
}

// NewService crea el orquestador con los repositorios por tipo.
func NewService(registro *Registro, repos map[string]Repositorio, log zerolog.Logger) *Service {
	return &Service{
		registro: registro,
		repos:    repos,
		log:      log.With().Str("component", "documentos").Logger(),
	}
}

// mensajePersistencia arma el mensaje genérico por entidad/operación
// que ve el usuario cuando falla el transporte.
func mensajePersistencia(operacion, tipo string) string {
	articulo := "el"
	if tipo == TipoCircular {
		articulo = "la"
	}
	return fmt.Sprintf("Error al %s %s %s. Por favor, intente nuevamente.", operacion, articulo, tipo)
}

func (s *Service) repo(tipo string) (Repositorio, error) {
	repo, ok := s.repos[tipo]
	if !ok {
		return nil, ErrTipoDesconocido
	}
	return repo, nil
}

// Guardar valida el documento y, sólo si pasa, lo crea o actualiza.
// Con validación fallida devuelve ErrorValidacion con la lista ordenada
// completa y no emite ninguna llamada de red. Una falla del repositorio
// se traduce a un mensaje genérico por entidad; el error crudo de
// transporte no llega al llamador.
func (s *Service) Guardar(ctx context.Context, tipo string, doc Documento, esEdicion bool) (Documento, error) {
	resultado, err := s.registro.Validar(tipo, doc)
	if err != nil {
		return Documento{}, err
	}
	if !resultado.Valido {
		return Documento{}, &ErrorValidacion{Errores: resultado.Errores}
	}

	repo, err := s.repo(tipo)
	if err != nil {
		return Documento{}, err
	}

	var (
		guardado Documento
		opErr    error
	)
	if esEdicion && doc.ID != 0 {
		guardado, opErr = repo.Actualizar(ctx, doc.ID, doc)
	} else {
		guardado, opErr = repo.Crear(ctx, doc)
	}
	if opErr != nil {
		s.log.Error().Err(opErr).Str("tipo", tipo).Bool("edicion", esEdicion).Msg("fallo al guardar documento")
		return Documento{}, &ErrorPersistencia{Mensaje: mensajePersistencia("guardar", tipo)}
	}

	return guardado, nil
}

// Listar delega en el repositorio del tipo.
func (s *Service) Listar(ctx context.Context, tipo string) ([]Documento, error) {
	repo, err := s.repo(tipo)
	if err != nil {
		return nil, err
	}
	return repo.Listar(ctx)
}

// Obtener delega en el repositorio del tipo.
func (s *Service) Obtener(ctx context.Context, tipo string, id int) (Documento, error) {
	repo, err := s.repo(tipo)
	if err != nil {
		return Documento{}, err
	}
	return repo.Obtener(ctx, id)
}

// Eliminar delega en el repositorio del tipo, sin validación.
func (s *Service) Eliminar(ctx context.Context, tipo string, id int) error {
	repo, err := s.repo(tipo)
	if err != nil {
		return err
	}

	if err := repo.Eliminar(ctx, id); err != nil {
		if errors.Is(err, ErrNoEncontrado) {
			return err
		}
		s.log.Error().Err(err).Str("tipo", tipo).Int("id", id).Msg("fallo al eliminar documento")
		return &ErrorPersistencia{Mensaje: mensajePersistencia("eliminar", tipo)}
	}
	return nil
}

// CargarTodo trae ambas colecciones para el tablero de administración
// con un fan-out fijo de dos consultas independientes; espera las dos
// antes de devolver. El orden entre ellas es irrelevante.
func (s *Service) CargarTodo(ctx context.Context) (map[string][]Documento, error) {
	actasRepo, err := s.repo(TipoActa)
	if err != nil {
		return nil, err
	}
	circularesRepo, err := s.repo(TipoCircular)
	if err != nil {
		return nil, err
	}

	var (
		wg            sync.WaitGroup
		actas         []Documento
		circulares    []Documento
		errActas      error
		errCirculares error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		actas, errActas = actasRepo.Listar(ctx)
	}()
	go func() {
		defer wg.Done()
		circulares, errCirculares = circularesRepo.Listar(ctx)
	}()
	wg.Wait()

	if errActas != nil {
		return nil, errActas
	}
	if errCirculares != nil {
		return nil, errCirculares
	}

	return map[string][]Documento{
		TipoActa:     actas,
		TipoCircular: circulares,
	}, nil
}
