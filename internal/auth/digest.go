package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest calcula la huella doble SHA-256 de una contraseña: el segundo
// pase se aplica sobre los 32 bytes crudos del primer digest, y el
// resultado se codifica en hexadecimal. El directorio remoto almacena
// exactamente este formato (sin sal ni factor de trabajo), por lo que
// debe reproducirse bit a bit.
func Digest(contrasena string) string {
	primero := sha256.Sum256([]byte(contrasena))
	segundo := sha256.Sum256(primero[:])
	return hex.EncodeToString(segundo[:])
}

// Verificar compara una contraseña en claro con una huella almacenada.
func Verificar(contrasena, huella string) bool {
	return Digest(contrasena) == huella
}
