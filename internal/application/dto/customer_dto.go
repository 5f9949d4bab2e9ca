package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddressRequest dirección dentro de un cliente (entrada).
type AddressRequest struct {
	Street         string           `json:"street,omitempty"`
	Latitude       *decimal.Decimal `json:"latitude,omitempty"`
	Longitude      *decimal.Decimal `json:"longitude,omitempty"`
	City           string           `json:"city"`
	State          string           `json:"state"`
	ZipCode        string           `json:"zip_code"`
	IsPrimary      bool             `json:"is_primary"`
	IsBilling      bool             `json:"is_billing"`
	IsGateProperty bool             `json:"is_gate_property"`
}

// ContactRequest contacto dentro de un cliente (entrada).
type ContactRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IsPrimary bool   `json:"is_primary"`
}

// SaveCustomerRequest body para POST /api/customers y PUT /api/customers/:id.
// ChildIDs solo aplica cuando Type es PARENT: IDs de clientes existentes que
// quedan enlazados como hijos directos.
type SaveCustomerRequest struct {
	Type          string           `json:"type"` // PARENT | DIRECT
	Name          string           `json:"name"`
	AccountNumber string           `json:"account_number"`
	IsVIP         bool             `json:"is_vip"`
	ParentID      string           `json:"parent_id,omitempty"`
	Addresses     []AddressRequest `json:"addresses"`
	Contacts      []ContactRequest `json:"contacts"`
	ChildIDs      []string         `json:"child_ids,omitempty"`
}

// AddressResponse dirección en respuestas.
type AddressResponse struct {
	ID             string           `json:"id"`
	Street         string           `json:"street,omitempty"`
	Latitude       *decimal.Decimal `json:"latitude,omitempty"`
	Longitude      *decimal.Decimal `json:"longitude,omitempty"`
	City           string           `json:"city"`
	State          string           `json:"state"`
	ZipCode        string           `json:"zip_code"`
	IsPrimary      bool             `json:"is_primary"`
	IsBilling      bool             `json:"is_billing"`
	IsGateProperty bool             `json:"is_gate_property"`
}

// ContactResponse contacto en respuestas.
type ContactResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IsPrimary bool   `json:"is_primary"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	Name          string            `json:"name"`
	AccountNumber string            `json:"account_number"`
	IsVIP         bool              `json:"is_vip"`
	ParentID      string            `json:"parent_id,omitempty"`
	Addresses     []AddressResponse `json:"addresses"`
	Contacts      []ContactResponse `json:"contacts"`
	CreatedAt     time.Time         `json:"created_at"`
}

// ValidationResponse resultado de validar un candidato sin escribir.
// Errors vacío significa que el candidato es aceptable.
type ValidationResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}
