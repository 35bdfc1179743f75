package usuario

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cgpnunez/mural/internal/auth"
)

type stubDirectorio struct {
	usuarios  []Usuario
	errListar error

	creados      int
	actualizados int
	ultimaHuella string
}

func (s *stubDirectorio) Listar(ctx context.Context) ([]Usuario, error) {
	return s.usuarios, s.errListar
}

func (s *stubDirectorio) Obtener(ctx context.Context, id int) (Usuario, error) {
	for _, u := range s.usuarios {
		if u.ID == id {
			return u, nil
		}
	}
	return Usuario{}, ErrNoEncontrado
}

func (s *stubDirectorio) Crear(ctx context.Context, nombre, huella string) (Usuario, error) {
	s.creados++
	s.ultimaHuella = huella
	return Usuario{ID: 99, Usuario: nombre, Contrasena: huella}, nil
}

func (s *stubDirectorio) Actualizar(ctx context.Context, id int, nombre, huella string) (Usuario, error) {
	s.actualizados++
	s.ultimaHuella = huella
	return Usuario{ID: id, Usuario: nombre, Contrasena: huella}, nil
}

func (s *stubDirectorio) Eliminar(ctx context.Context, id int) error {
	return nil
}

func TestLogin(t *testing.T) {
	directorio := &stubDirectorio{
		usuarios: []Usuario{{ID: 1, Usuario: "admin", Contrasena: auth.Digest("secret")}},
	}
	svc := NewService(directorio, zerolog.Nop())
	ctx := context.Background()

	u, err := svc.Login(ctx, "admin", "secret")
	if err != nil {
		t.Fatalf("login válido falló: %v", err)
	}
	if u.Usuario != "admin" || u.Contrasena != auth.Digest("secret") {
		t.Fatalf("el login debe devolver el registro completo del directorio, incluida la huella: %+v", u)
	}

	if _, err := svc.Login(ctx, "admin", "wrong"); !errors.Is(err, ErrCredenciales) {
		t.Fatalf("contraseña incorrecta: se esperaba ErrCredenciales, hay %v", err)
	}

	if _, err := svc.Login(ctx, "nobody", "secret"); !errors.Is(err, ErrCredenciales) {
		t.Fatalf("usuario inexistente: se esperaba ErrCredenciales, hay %v", err)
	}

	// Sensible a mayúsculas: Admin != admin.
	if _, err := svc.Login(ctx, "Admin", "secret"); !errors.Is(err, ErrCredenciales) {
		t.Fatalf("la comparación de usuario debe ser exacta, hay %v", err)
	}
}

func TestLoginPrimerRegistroGana(t *testing.T) {
	directorio := &stubDirectorio{
		usuarios: []Usuario{
			{ID: 1, Usuario: "admin", Contrasena: auth.Digest("primera")},
			{ID: 2, Usuario: "admin", Contrasena: auth.Digest("segunda")},
		},
	}
	svc := NewService(directorio, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Login(ctx, "admin", "primera"); err != nil {
		t.Fatalf("el primer registro duplicado debe ganar: %v", err)
	}
	if _, err := svc.Login(ctx, "admin", "segunda"); !errors.Is(err, ErrCredenciales) {
		t.Fatal("el segundo registro duplicado nunca debe consultarse")
	}
}

func TestLoginColapsaFallaDeRed(t *testing.T) {
	directorio := &stubDirectorio{errListar: errors.New("connection refused")}
	svc := NewService(directorio, zerolog.Nop())

	_, err := svc.Login(context.Background(), "admin", "secret")
	if !errors.Is(err, ErrCredenciales) {
		t.Fatalf("una falla de red debe colapsar en ErrCredenciales, hay %v", err)
	}
}

func TestCrearYActualizarRehashean(t *testing.T) {
	directorio := &stubDirectorio{}
	svc := NewService(directorio, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Crear(ctx, "nuevo", "clave123"); err != nil {
		t.Fatalf("crear falló: %v", err)
	}
	if directorio.ultimaHuella != auth.Digest("clave123") {
		t.Fatal("crear debe transmitir la huella, nunca el texto claro")
	}

	if _, err := svc.Actualizar(ctx, 1, "nuevo", "otra456"); err != nil {
		t.Fatalf("actualizar falló: %v", err)
	}
	if directorio.ultimaHuella != auth.Digest("otra456") {
		t.Fatal("actualizar debe rehashear la contraseña")
	}

	if _, err := svc.Crear(ctx, "  ", "clave"); err == nil {
		t.Fatal("usuario vacío debe rechazarse")
	}
	if _, err := svc.Crear(ctx, "nuevo", ""); err == nil {
		t.Fatal("contraseña vacía debe rechazarse")
	}
}
