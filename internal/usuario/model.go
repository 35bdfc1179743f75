package usuario

import "errors"

var (
	// ErrCredenciales colapsa "usuario inexistente", "contraseña
	// incorrecta" y fallas de red en un único error, para no revelar
	// qué parte del login falló.
	ErrCredenciales = errors.New("credenciales inválidas")

	ErrNoEncontrado = errors.New("usuario no encontrado")
	ErrPersistencia = errors.New("error de persistencia de usuarios")
)

// Usuario representa un registro del directorio remoto. Contrasena
// guarda la huella doble SHA-256 en hexadecimal, nunca texto claro.
type Usuario struct {
	ID         int    `json:"id,omitempty"`
	Usuario    string `json:"usuario"`
	Contrasena string `json:"contrasena"`
}
