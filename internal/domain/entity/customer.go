package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cliente dentro de la jerarquía (máximo dos niveles).
const (
	// TypeParent cuenta independiente; puede tener clientes directos debajo.
	TypeParent = "PARENT"
	// TypeDirect cuenta atada a exactamente un padre; no puede tener hijos.
	TypeDirect = "DIRECT"
)

// Customer representa una cuenta de cliente (padre o directa) con sus
// direcciones y contactos. Las direcciones y contactos pertenecen
// exclusivamente a su cliente: no se comparten entre cuentas ni tienen
// ciclo de vida propio.
type Customer struct {
	ID            string
	Type          string // PARENT | DIRECT
	Name          string
	AccountNumber string // único en toda la población (sensible a mayúsculas)
	IsVIP         bool
	ParentID      string // no vacío solo si Type = DIRECT y está atado a un padre
	Addresses     []Address
	Contacts      []Contact
	CreatedAt     time.Time
}

// Address dirección de un cliente. Debe tener calle, o latitud y longitud
// juntas. Por cliente: exactamente una principal y exactamente una de
// facturación (puede ser la misma).
type Address struct {
	ID             string
	Street         string
	Latitude       *decimal.Decimal // nil = sin coordenada
	Longitude      *decimal.Decimal
	City           string
	State          string
	ZipCode        string
	IsPrimary      bool
	IsBilling      bool
	IsGateProperty bool
}

// Contact persona de contacto de un cliente. Por cliente: exactamente un
// contacto principal.
type Contact struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	IsPrimary bool
}

// Clone devuelve una copia profunda del cliente (listas incluidas).
// El motor de mutaciones nunca modifica registros en sitio: clona y
// reemplaza, para que la población anterior siga siendo consistente.
func (c *Customer) Clone() *Customer {
	cp := *c
	cp.Addresses = make([]Address, len(c.Addresses))
	copy(cp.Addresses, c.Addresses)
	cp.Contacts = make([]Contact, len(c.Contacts))
	copy(cp.Contacts, c.Contacts)
	return &cp
}

// IsParent indica si el cliente es una cuenta padre.
func (c *Customer) IsParent() bool { return c.Type == TypeParent }
