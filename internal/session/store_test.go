package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/cgpnunez/mural/internal/usuario"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client, ttl), mr
}

func TestCicloDeVida(t *testing.T) {
	store, _ := newTestStore(t, 0)
	ctx := context.Background()

	if store.Autenticado(ctx, "inexistente") {
		t.Fatal("sin login no debe haber sesión")
	}

	registro := usuario.Usuario{ID: 1, Usuario: "admin", Contrasena: "abc123"}
	token, err := store.Crear(ctx, registro)
	if err != nil {
		t.Fatalf("crear sesión falló: %v", err)
	}

	if !store.Autenticado(ctx, token) {
		t.Fatal("tras el login la sesión debe estar presente")
	}

	recuperado, err := store.Obtener(ctx, token)
	if err != nil {
		t.Fatalf("obtener sesión falló: %v", err)
	}
	if recuperado != registro {
		t.Fatalf("el registro debe persistirse íntegro: %+v != %+v", recuperado, registro)
	}

	if err := store.Eliminar(ctx, token); err != nil {
		t.Fatalf("logout falló: %v", err)
	}
	if store.Autenticado(ctx, token) {
		t.Fatal("tras el logout la sesión debe desaparecer")
	}

	// Logout repetido es un no-op.
	if err := store.Eliminar(ctx, token); err != nil {
		t.Fatalf("el logout debe ser idempotente: %v", err)
	}
	if err := store.Eliminar(ctx, ""); err != nil {
		t.Fatalf("logout sin token debe ser no-op: %v", err)
	}
}

func TestObtenerSinRegistro(t *testing.T) {
	store, _ := newTestStore(t, 0)

	_, err := store.Obtener(context.Background(), "no-existe")
	if !errors.Is(err, ErrNoSesion) {
		t.Fatalf("se esperaba ErrNoSesion, hay %v", err)
	}
}

func TestSinExpiracionPorDefecto(t *testing.T) {
	store, mr := newTestStore(t, 0)
	ctx := context.Background()

	token, err := store.Crear(ctx, usuario.Usuario{Usuario: "admin"})
	if err != nil {
		t.Fatalf("crear sesión falló: %v", err)
	}

	// Con TTL 0 el registro sobrevive cualquier avance del reloj.
	mr.FastForward(365 * 24 * time.Hour)
	if !store.Autenticado(ctx, token) {
		t.Fatal("con TTL 0 la sesión nunca expira sola")
	}
}

func TestConTTLConfigurado(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	token, err := store.Crear(ctx, usuario.Usuario{Usuario: "admin"})
	if err != nil {
		t.Fatalf("crear sesión falló: %v", err)
	}

	mr.FastForward(2 * time.Minute)
	if store.Autenticado(ctx, token) {
		t.Fatal("pasado el TTL configurado la sesión debe expirar")
	}
}
