package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/clientes-pro/internal/domain/entity"
	"github.com/tu-usuario/clientes-pro/internal/domain/repository"
)

var _ repository.CustomerStore = (*CustomerStore)(nil)

// CustomerStore implementación PostgreSQL del puerto CustomerStore. El
// contrato es reemplazar-todo: Save borra y re-inserta la población completa
// en una sola transacción. A la escala de este dominio (miles de cuentas, un
// solo mutador) eso mantiene la copia durable idéntica a la de memoria sin
// diffs incrementales.
type CustomerStore struct {
	pool *pgxpool.Pool
}

// NewCustomerStore construye el adaptador.
func NewCustomerStore(pool *pgxpool.Pool) *CustomerStore {
	return &CustomerStore{pool: pool}
}

// EnsureSchema crea las tablas si no existen (arranque).
func (s *CustomerStore) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS customers (
		id             TEXT PRIMARY KEY,
		type           TEXT NOT NULL,
		name           TEXT NOT NULL,
		account_number TEXT NOT NULL UNIQUE,
		is_vip         BOOLEAN NOT NULL DEFAULT FALSE,
		parent_id      TEXT,
		created_at     TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS customer_addresses (
		id               TEXT PRIMARY KEY,
		customer_id      TEXT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		position         INT NOT NULL,
		street           TEXT NOT NULL DEFAULT '',
		latitude         NUMERIC,
		longitude        NUMERIC,
		city             TEXT NOT NULL,
		state            TEXT NOT NULL,
		zip_code         TEXT NOT NULL,
		is_primary       BOOLEAN NOT NULL,
		is_billing       BOOLEAN NOT NULL,
		is_gate_property BOOLEAN NOT NULL
	);
	CREATE TABLE IF NOT EXISTS customer_contacts (
		id          TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		position    INT NOT NULL,
		name        TEXT NOT NULL,
		email       TEXT NOT NULL,
		phone       TEXT NOT NULL DEFAULT '',
		is_primary  BOOLEAN NOT NULL
	);`
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}

// Load devuelve la población completa con direcciones y contactos en su orden
// original. Sin filas = población vacía, no error.
func (s *CustomerStore) Load(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, type, name, account_number, is_vip, COALESCE(parent_id, ''), created_at
		FROM customers ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("cargar clientes: %w", err)
	}
	defer rows.Close()

	var pop []*entity.Customer
	index := make(map[string]*entity.Customer)
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Type, &c.Name, &c.AccountNumber, &c.IsVIP, &c.ParentID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		pop = append(pop, &c)
		index[c.ID] = &c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadAddresses(ctx, index); err != nil {
		return nil, err
	}
	if err := s.loadContacts(ctx, index); err != nil {
		return nil, err
	}
	return pop, nil
}

func (s *CustomerStore) loadAddresses(ctx context.Context, index map[string]*entity.Customer) error {
	rows, err := s.pool.Query(ctx, `
		SELECT customer_id, id, street, latitude, longitude, city, state, zip_code,
		       is_primary, is_billing, is_gate_property
		FROM customer_addresses ORDER BY customer_id, position`)
	if err != nil {
		return fmt.Errorf("cargar direcciones: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var customerID string
		var a entity.Address
		if err := rows.Scan(&customerID, &a.ID, &a.Street, &a.Latitude, &a.Longitude,
			&a.City, &a.State, &a.ZipCode, &a.IsPrimary, &a.IsBilling, &a.IsGateProperty); err != nil {
			return fmt.Errorf("scan dirección: %w", err)
		}
		if c, ok := index[customerID]; ok {
			c.Addresses = append(c.Addresses, a)
		}
	}
	return rows.Err()
}

func (s *CustomerStore) loadContacts(ctx context.Context, index map[string]*entity.Customer) error {
	rows, err := s.pool.Query(ctx, `
		SELECT customer_id, id, name, email, phone, is_primary
		FROM customer_contacts ORDER BY customer_id, position`)
	if err != nil {
		return fmt.Errorf("cargar contactos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var customerID string
		var ct entity.Contact
		if err := rows.Scan(&customerID, &ct.ID, &ct.Name, &ct.Email, &ct.Phone, &ct.IsPrimary); err != nil {
			return fmt.Errorf("scan contacto: %w", err)
		}
		if c, ok := index[customerID]; ok {
			c.Contacts = append(c.Contacts, ct)
		}
	}
	return rows.Err()
}

// Save reemplaza la población completa en una transacción: o queda todo el
// estado nuevo o no queda nada de él.
func (s *CustomerStore) Save(ctx context.Context, customers []*entity.Customer) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// El DELETE de customers arrastra direcciones y contactos (ON DELETE CASCADE).
	if _, err := tx.Exec(ctx, `DELETE FROM customers`); err != nil {
		return fmt.Errorf("vaciar población: %w", err)
	}

	for _, c := range customers {
		parentID := any(nil)
		if c.ParentID != "" {
			parentID = c.ParentID
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO customers (id, type, name, account_number, is_vip, parent_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			c.ID, c.Type, c.Name, c.AccountNumber, c.IsVIP, parentID, c.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert cliente %s: %w", c.AccountNumber, err)
		}
		for i, a := range c.Addresses {
			if _, err := tx.Exec(ctx, `
				INSERT INTO customer_addresses
					(id, customer_id, position, street, latitude, longitude, city, state, zip_code,
					 is_primary, is_billing, is_gate_property)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
				a.ID, c.ID, i, a.Street, a.Latitude, a.Longitude, a.City, a.State, a.ZipCode,
				a.IsPrimary, a.IsBilling, a.IsGateProperty,
			); err != nil {
				return fmt.Errorf("insert dirección: %w", err)
			}
		}
		for i, ct := range c.Contacts {
			if _, err := tx.Exec(ctx, `
				INSERT INTO customer_contacts (id, customer_id, position, name, email, phone, is_primary)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				ct.ID, c.ID, i, ct.Name, ct.Email, ct.Phone, ct.IsPrimary,
			); err != nil {
				return fmt.Errorf("insert contacto: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
