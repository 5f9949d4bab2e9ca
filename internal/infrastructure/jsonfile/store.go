// Package jsonfile implementa los puertos de persistencia sobre un documento
// JSON en disco: cargar todo al arrancar, reescribir todo en cada cambio. Es
// el backend por defecto (sin PostgreSQL) para despliegues de una sola
// instancia.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/clientes-pro/internal/domain/entity"
	"github.com/tu-usuario/clientes-pro/internal/domain/repository"
)

var _ repository.CustomerStore = (*CustomerStore)(nil)

// CustomerStore persiste la población completa como un documento JSON.
type CustomerStore struct {
	path string
}

// NewCustomerStore construye el store sobre la ruta dada.
func NewCustomerStore(path string) *CustomerStore {
	return &CustomerStore{path: path}
}

// ── Esquema del documento ─────────────────────────────────────────────────────

type document struct {
	Version   int              `json:"version"`
	SavedAt   time.Time        `json:"saved_at"`
	Customers []customerRecord `json:"customers"`
}

type customerRecord struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Name          string          `json:"name"`
	AccountNumber string          `json:"account_number"`
	IsVIP         bool            `json:"is_vip"`
	ParentID      string          `json:"parent_id,omitempty"`
	Addresses     []addressRecord `json:"addresses"`
	Contacts      []contactRecord `json:"contacts"`
	CreatedAt     time.Time       `json:"created_at"`
}

type addressRecord struct {
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

type contactRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

// ── Puerto ────────────────────────────────────────────────────────────────────

// Load lee el documento completo. Archivo inexistente = población vacía.
func (s *CustomerStore) Load(_ context.Context) ([]*entity.Customer, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer %s: %w", s.path, err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", s.path, err)
	}

	pop := make([]*entity.Customer, 0, len(doc.Customers))
	for _, rec := range doc.Customers {
		pop = append(pop, fromRecord(rec))
	}
	return pop, nil
}

// Save reescribe el documento completo de forma atómica (archivo temporal +
// rename): un corte a mitad de escritura nunca deja un documento corrupto.
func (s *CustomerStore) Save(_ context.Context, customers []*entity.Customer) error {
	doc := document{
		Version:   1,
		SavedAt:   time.Now(),
		Customers: make([]customerRecord, 0, len(customers)),
	}
	for _, c := range customers {
		doc.Customers = append(doc.Customers, toRecord(c))
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("codificar población: %w", err)
	}
	return writeAtomic(s.path, data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("crear directorio %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("archivo temporal: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("escribir %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renombrar a %s: %w", path, err)
	}
	return nil
}

// ── Mapeo entidad <-> registro ────────────────────────────────────────────────

func toRecord(c *entity.Customer) customerRecord {
	rec := customerRecord{
		ID:            c.ID,
		Type:          c.Type,
		Name:          c.Name,
		AccountNumber: c.AccountNumber,
		IsVIP:         c.IsVIP,
		ParentID:      c.ParentID,
		Addresses:     make([]addressRecord, 0, len(c.Addresses)),
		Contacts:      make([]contactRecord, 0, len(c.Contacts)),
		CreatedAt:     c.CreatedAt,
	}
	for _, a := range c.Addresses {
		rec.Addresses = append(rec.Addresses, addressRecord{
			ID: a.ID, Street: a.Street, Latitude: a.Latitude, Longitude: a.Longitude,
			City: a.City, State: a.State, ZipCode: a.ZipCode,
			IsPrimary: a.IsPrimary, IsBilling: a.IsBilling, IsGateProperty: a.IsGateProperty,
		})
	}
	for _, ct := range c.Contacts {
		rec.Contacts = append(rec.Contacts, contactRecord{
			ID: ct.ID, Name: ct.Name, Email: ct.Email, Phone: ct.Phone, IsPrimary: ct.IsPrimary,
		})
	}
	return rec
}

func fromRecord(rec customerRecord) *entity.Customer {
	c := &entity.Customer{
		ID:            rec.ID,
		Type:          rec.Type,
		Name:          rec.Name,
		AccountNumber: rec.AccountNumber,
		IsVIP:         rec.IsVIP,
		ParentID:      rec.ParentID,
		Addresses:     make([]entity.Address, 0, len(rec.Addresses)),
		Contacts:      make([]entity.Contact, 0, len(rec.Contacts)),
		CreatedAt:     rec.CreatedAt,
	}
	for _, a := range rec.Addresses {
		c.Addresses = append(c.Addresses, entity.Address{
			ID: a.ID, Street: a.Street, Latitude: a.Latitude, Longitude: a.Longitude,
			City: a.City, State: a.State, ZipCode: a.ZipCode,
			IsPrimary: a.IsPrimary, IsBilling: a.IsBilling, IsGateProperty: a.IsGateProperty,
		})
	}
	for _, ct := range rec.Contacts {
		c.Contacts = append(c.Contacts, entity.Contact{
			ID: ct.ID, Name: ct.Name, Email: ct.Email, Phone: ct.Phone, IsPrimary: ct.IsPrimary,
		})
	}
	return c
}
