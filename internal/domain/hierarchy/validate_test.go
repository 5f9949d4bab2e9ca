package hierarchy_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/clientes-pro/internal/domain/entity"
	"github.com/tu-usuario/clientes-pro/internal/domain/hierarchy"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// validCustomer devuelve un candidato que pasa todas las validaciones: un
// PARENT con una dirección principal+facturación y un contacto principal.
func validCustomer(account string) *entity.Customer {
	return &entity.Customer{
		ID:            "id-" + account,
		Type:          entity.TypeParent,
		Name:          "Cliente " + account,
		AccountNumber: account,
		Addresses: []entity.Address{
			{
				ID:        "addr-" + account,
				Street:    "Calle 10 # 5-23",
				City:      "Medellín",
				State:     "Antioquia",
				ZipCode:   "050001",
				IsPrimary: true,
				IsBilling: true,
			},
		},
		Contacts: []entity.Contact{
			{
				ID:        "ct-" + account,
				Name:      "Ana Gómez",
				Email:     "ana@example.com",
				Phone:     "3001234567",
				IsPrimary: true,
			},
		},
	}
}

func dec(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Casos aceptables
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_CandidatoValido(t *testing.T) {
	errs := hierarchy.Validate(validCustomer("ACC-001"), nil, "")
	assert.Empty(t, errs, "un candidato completo no debe producir violaciones")
}

// La calle puede faltar si hay coordenadas completas.
func TestValidate_DireccionSoloCoordenadas(t *testing.T) {
	cand := validCustomer("ACC-001")
	cand.Addresses[0].Street = ""
	cand.Addresses[0].Latitude = dec(6.2442)
	cand.Addresses[0].Longitude = dec(-75.5812)

	errs := hierarchy.Validate(cand, nil, "")
	assert.Empty(t, errs, "latitud y longitud reemplazan a la calle")
}

// ──────────────────────────────────────────────────────────────────────────────
// Campos requeridos y unicidad
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_NombreRequerido(t *testing.T) {
	cand := validCustomer("ACC-001")
	cand.Name = "   "

	errs := hierarchy.Validate(cand, nil, "")
	assert.Contains(t, errs, "el nombre es requerido")
}

func TestValidate_CuentaRequerida(t *testing.T) {
	cand := validCustomer("ACC-001")
	cand.AccountNumber = ""

	errs := hierarchy.Validate(cand, nil, "")
	assert.Contains(t, errs, "el número de cuenta es requerido")
}

func TestValidate_CuentaDuplicada(t *testing.T) {
	existing := validCustomer("ACC-001")
	cand := validCustomer("ACC-001")
	cand.ID = "otro-id"

	errs := hierarchy.Validate(cand, []*entity.Customer{existing}, "")
	assert.Contains(t, errs, `el número de cuenta "ACC-001" ya está en uso por otro cliente`)
}

// Una actualización no debe chocar contra su propio registro almacenado.
func TestValidate_CuentaDuplicada_ExcluyeElPropioID(t *testing.T) {
	existing := validCustomer("ACC-001")
	cand := validCustomer("ACC-001")
	cand.ID = existing.ID

	errs := hierarchy.Validate(cand, []*entity.Customer{existing}, existing.ID)
	assert.Empty(t, errs, "el registro excluido no cuenta para la unicidad")
}

// ──────────────────────────────────────────────────────────────────────────────
// Direcciones
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_SinDirecciones(t *testing.T) {
	cand := validCustomer("ACC-001")
	cand.Addresses = nil

	errs := hierarchy.Validate(cand, nil, "")
	assert.Contains(t, errs, "debe existir al menos una dirección")
	// Sin direcciones no se exige marcar principal ni facturación.
	assert.NotContains(t, errs, "se requiere exactamente una dirección principal (ninguna marcada)")
}

func TestValidate_VariasDireccionesPrincipales(t *testing.T) {
	cand := validCustomer("ACC-001")
	second := cand.Addresses[0]
	second.ID = "addr-2"
	second.IsBilling = false
	cand.Addresses = append(cand.Addresses, second)

	errs := hierarchy.Validate(cand, nil, "")
	assert.Contains(t, errs, "se requiere exactamente una dirección principal (2 marcadas)")
}

func TestValidate_SinDireccionFacturacion(t *testing.T) {
	cand := validCustomer("ACC-001")
	cand.Addresses[0].IsBilling = false

	errs := hierarchy.Validate(cand, nil, "")
	assert.Contains(t, errs, "se requiere exactamente una dirección de facturación (ninguna marcada)")
}

func TestValidate_DireccionIncompleta(t *testing.T) {
	cand := validCustomer("ACC-001")
	cand.Addresses[0].Street = ""
	cand.Addresses[0].Latitude = dec(6.2442) // falta longitud
	cand.Addresses[0].City = ""
	cand.Addresses[0].State = ""
	cand.Addresses[0].ZipCode = ""

	errs := hierarchy.Validate(cand, nil, "")
	assert.Contains(t, errs, "dirección 1: se requiere calle, o latitud y longitud")
	assert.Contains(t, errs, "dirección 1: la ciudad es requerida")
	assert.Contains(t, errs, "dirección 1: el departamento es requerido")
	assert.Contains(t, errs, "dirección 1: el código postal es requerido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Contactos
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_SinContactos(t *testing.T) {
	cand := validCustomer("ACC-001")
	cand.Contacts = nil

	errs := hierarchy.Validate(cand, nil, "")
	assert.Contains(t, errs, "debe existir al menos un contacto")
}

func TestValidate_ContactoSinPrincipal(t *testing.T) {
	cand := validCustomer("ACC-001")
	cand.Contacts[0].IsPrimary = false

	errs := hierarchy.Validate(cand, nil, "")
	assert.Contains(t, errs, "se requiere exactamente un contacto principal (ninguno marcado)")
}

func TestValidate_ContactoIncompleto(t *testing.T) {
	cand := validCustomer("ACC-001")
	cand.Contacts[0].Name = ""
	cand.Contacts[0].Email = ""
	cand.Contacts[0].Phone = ""

	errs := hierarchy.Validate(cand, nil, "")
	assert.Contains(t, errs, "contacto 1: el nombre es requerido")
	assert.Contains(t, errs, "contacto 1: el email es requerido")
	assert.Contains(t, errs, "contacto 1: el teléfono es requerido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tipo y jerarquía
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_ParentConPadreAsignado(t *testing.T) {
	cand := validCustomer("ACC-001")
	cand.ParentID = "algun-padre"

	errs := hierarchy.Validate(cand, nil, "")
	assert.Contains(t, errs, "un cliente de tipo PARENT no puede tener padre asignado")
}

func TestValidate_DirectConPadre(t *testing.T) {
	cand := validCustomer("ACC-002")
	cand.Type = entity.TypeDirect
	cand.ParentID = "id-ACC-001"

	errs := hierarchy.Validate(cand, nil, "")
	assert.Empty(t, errs, "un DIRECT con padre es el caso normal")
}

// Validate acumula todas las violaciones en una sola pasada, no corta en la
// primera.
func TestValidate_AcumulaTodasLasViolaciones(t *testing.T) {
	cand := &entity.Customer{Type: entity.TypeParent}

	errs := hierarchy.Validate(cand, nil, "")
	assert.GreaterOrEqual(t, len(errs), 4,
		"nombre, cuenta, direcciones y contactos faltantes deben reportarse juntos")
}
