package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestDigestDeterminista(t *testing.T) {
	a := Digest("secret")
	b := Digest("secret")
	if a != b {
		t.Fatalf("digest no determinista: %s != %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("se esperaba hex de 64 caracteres, hay %d", len(a))
	}
}

func TestDigestDoblePase(t *testing.T) {
	// El segundo pase debe aplicarse sobre los bytes crudos del primero,
	// no sobre su representación hexadecimal.
	primero := sha256.Sum256([]byte("secret"))
	segundo := sha256.Sum256(primero[:])
	esperado := hex.EncodeToString(segundo[:])

	if got := Digest("secret"); got != esperado {
		t.Fatalf("digest = %s, se esperaba %s", got, esperado)
	}

	sobreHex := sha256.Sum256([]byte(hex.EncodeToString(primero[:])))
	if Digest("secret") == hex.EncodeToString(sobreHex[:]) {
		t.Fatal("el segundo pase no debe operar sobre la codificación hexadecimal")
	}
}

func TestDigestSensibleAlCambio(t *testing.T) {
	if Digest("secret") == Digest("secreT") {
		t.Fatal("un cambio de un carácter debe producir una huella distinta")
	}
	if Digest("") == Digest(" ") {
		t.Fatal("cadenas distintas no deben colisionar en los vectores de prueba")
	}
}

func TestVerificar(t *testing.T) {
	huella := Digest("secret")

	if !Verificar("secret", huella) {
		t.Fatal("la contraseña correcta debe verificar")
	}
	if Verificar("wrong", huella) {
		t.Fatal("una contraseña incorrecta no debe verificar")
	}
}
