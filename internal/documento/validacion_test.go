package documento

import (
	"strings"
	"testing"
)

func actaValida() Documento {
	return Documento{
		Titulo: "Acta de reunión ordinaria",
		Autor:  "Secretaría",
		Cuerpo: "Se aprueban los puntos uno, dos y tres del orden del día.",
	}
}

func circularValida() Documento {
	return Documento{
		Titulo: "Circular informativa",
		Autor:  "Dirección",
		Cuerpo: "Se informa a la comunidad.",
	}
}

func TestActaValidaSinErrores(t *testing.T) {
	registro := NewRegistro()

	resultado, err := registro.Validar(TipoActa, actaValida())
	if err != nil {
		t.Fatalf("validar falló: %v", err)
	}
	if !resultado.Valido || len(resultado.Errores) != 0 {
		t.Fatalf("acta válida rechazada: %v", resultado.Errores)
	}
}

func TestActaCamposFaltantes(t *testing.T) {
	registro := NewRegistro()

	resultado, err := registro.Validar(TipoActa, Documento{})
	if err != nil {
		t.Fatalf("validar falló: %v", err)
	}
	if resultado.Valido {
		t.Fatal("documento vacío no puede ser válido")
	}

	esperados := []string{
		"El título del acta es requerido",
		"El contenido del acta es requerido",
		"El autor del acta es requerido",
	}
	if len(resultado.Errores) != len(esperados) {
		t.Fatalf("errores = %v, se esperaban %v", resultado.Errores, esperados)
	}
	for i, msg := range esperados {
		if resultado.Errores[i] != msg {
			t.Fatalf("error[%d] = %q, se esperaba %q", i, resultado.Errores[i], msg)
		}
	}
}

func TestActaAcumulaTodasLasReglas(t *testing.T) {
	registro := NewRegistro()

	// Propiedad de la operación guardar: título y cuerpo cortos deben
	// reportarse juntos, sin cortar en la primera falla.
	resultado, _ := registro.Validar(TipoActa, Documento{Titulo: "Hi", Autor: "Jo", Cuerpo: "short"})
	if resultado.Valido {
		t.Fatal("documento inválido aceptado")
	}

	esperados := []string{
		"El título del acta debe tener al menos 5 caracteres",
		"El contenido del acta debe tener al menos 20 caracteres",
	}
	if len(resultado.Errores) != len(esperados) {
		t.Fatalf("errores = %v, se esperaban %v", resultado.Errores, esperados)
	}
	for i, msg := range esperados {
		if resultado.Errores[i] != msg {
			t.Fatalf("error[%d] = %q, se esperaba %q", i, resultado.Errores[i], msg)
		}
	}
}

func TestLimitesPorTipo(t *testing.T) {
	registro := NewRegistro()

	// El cuerpo mínimo difiere por tipo: circular exige 10, acta 20.
	doc := Documento{Titulo: "Título válido", Autor: "Autor", Cuerpo: "doce letras"}

	resultado, _ := registro.Validar(TipoCircular, doc)
	if !resultado.Valido {
		t.Fatalf("circular con cuerpo de 11 caracteres debe pasar: %v", resultado.Errores)
	}

	resultado, _ = registro.Validar(TipoActa, doc)
	if resultado.Valido {
		t.Fatal("acta con cuerpo menor a 20 caracteres no debe pasar")
	}

	// Máximos: circular 3000, acta 5000.
	doc.Cuerpo = strings.Repeat("a", 4000)
	resultado, _ = registro.Validar(TipoActa, doc)
	if !resultado.Valido {
		t.Fatalf("acta de 4000 caracteres debe pasar: %v", resultado.Errores)
	}
	resultado, _ = registro.Validar(TipoCircular, doc)
	if resultado.Valido {
		t.Fatal("circular de 4000 caracteres no debe pasar")
	}
	if resultado.Errores[0] != "El contenido de la circular no puede exceder 3000 caracteres" {
		t.Fatalf("mensaje inesperado: %q", resultado.Errores[0])
	}
}

func TestStatusSoloSePruebaSiViene(t *testing.T) {
	registro := NewRegistro()

	doc := actaValida()
	if resultado, _ := registro.Validar(TipoActa, doc); !resultado.Valido {
		t.Fatalf("sin status debe pasar: %v", resultado.Errores)
	}

	doc.Status = StatusActivo
	if resultado, _ := registro.Validar(TipoActa, doc); !resultado.Valido {
		t.Fatalf("status activo debe pasar: %v", resultado.Errores)
	}

	doc.Status = "publicado"
	resultado, _ := registro.Validar(TipoActa, doc)
	if resultado.Valido {
		t.Fatal("status fuera del conjunto no debe pasar")
	}
	if resultado.Errores[0] != `El estado del acta debe ser "activo" o "inactivo"` {
		t.Fatalf("mensaje inesperado: %q", resultado.Errores[0])
	}
}

func TestCamposSeRecortanAntesDeMedir(t *testing.T) {
	registro := NewRegistro()

	doc := Documento{Titulo: "   ab   ", Autor: "Jo", Cuerpo: circularValida().Cuerpo}
	resultado, _ := registro.Validar(TipoCircular, doc)
	if resultado.Valido {
		t.Fatal("título de 2 caracteres tras recorte no debe pasar")
	}
	if resultado.Errores[0] != "El título de la circular debe tener al menos 5 caracteres" {
		t.Fatalf("mensaje inesperado: %q", resultado.Errores[0])
	}
}

type validadorPermisivo struct{}

func (validadorPermisivo) Validar(Documento) ResultadoValidacion {
	return ResultadoValidacion{Valido: true}
}

func TestRegistroEnRuntime(t *testing.T) {
	registro := NewRegistro()

	if _, err := registro.Validar("comunicado", Documento{}); err != ErrTipoDesconocido {
		t.Fatalf("tipo sin registrar: se esperaba ErrTipoDesconocido, hay %v", err)
	}

	registro.Registrar("comunicado", validadorPermisivo{})
	resultado, err := registro.Validar("comunicado", Documento{})
	if err != nil || !resultado.Valido {
		t.Fatalf("el tipo registrado en runtime debe despachar: %v %v", resultado, err)
	}

	tipos := registro.Tipos()
	if len(tipos) != 3 {
		t.Fatalf("se esperaban 3 tipos registrados, hay %v", tipos)
	}
}
