// Package customers orquesta las operaciones sobre la población de clientes:
// carga la población al arrancar, valida candidatos, aplica mutaciones con el
// motor de jerarquía y persiste con semántica reemplazar-todo.
package customers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/clientes-pro/internal/application/dto"
	"github.com/tu-usuario/clientes-pro/internal/domain"
	"github.com/tu-usuario/clientes-pro/internal/domain/entity"
	"github.com/tu-usuario/clientes-pro/internal/domain/hierarchy"
	"github.com/tu-usuario/clientes-pro/internal/domain/repository"
)

// CustomerUseCase casos de uso de clientes. Es el único mutador de la
// población: serializa las escrituras con un mutex y reemplaza la referencia
// en memoria solo después de que el store persistió la población nueva, así
// las lecturas nunca observan estados parciales.
type CustomerUseCase struct {
	store repository.CustomerStore

	mu  sync.RWMutex
	pop []*entity.Customer
}

// NewCustomerUseCase construye el caso de uso y carga la población completa
// desde el store (una sola vez, al arrancar el proceso).
func NewCustomerUseCase(ctx context.Context, store repository.CustomerStore) (*CustomerUseCase, error) {
	pop, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &CustomerUseCase{store: store, pop: pop}, nil
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(limit, offset int) []*dto.CustomerResponse {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	out := make([]*dto.CustomerResponse, 0, limit)
	for i := offset; i < len(uc.pop) && len(out) < limit; i++ {
		out = append(out, ToCustomerResponse(uc.pop[i]))
	}
	return out
}

// GetByID obtiene un cliente por ID. Devuelve domain.ErrNotFound si no existe.
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	for _, c := range uc.pop {
		if c.ID == id {
			return ToCustomerResponse(c), nil
		}
	}
	return nil, domain.ErrNotFound
}

// Validate valida un candidato sin escribir nada. excludeID distinto de vacío
// valida una actualización contra sí misma.
func (uc *CustomerUseCase) Validate(in dto.SaveCustomerRequest, excludeID string) []string {
	cand := fromRequest(in)
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return hierarchy.Validate(cand, uc.pop, excludeID)
}

// Create valida y crea un cliente. Si hay violaciones las devuelve como datos
// (no como error) y no muta nada; un error solo indica fallo de persistencia.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.SaveCustomerRequest) (*dto.CustomerResponse, []string, error) {
	cand := fromRequest(in)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if violations := hierarchy.Validate(cand, uc.pop, ""); len(violations) > 0 {
		return nil, violations, nil
	}
	cand.ID = uuid.New().String()
	cand.CreatedAt = time.Now()

	next := hierarchy.Create(uc.pop, cand, in.ChildIDs)
	if err := uc.store.Save(ctx, next); err != nil {
		return nil, nil, err
	}
	uc.pop = next
	return ToCustomerResponse(cand), nil, nil
}

// Update valida y reemplaza los campos del cliente id (identidad y fecha de
// creación se preservan), re-enlazando la jerarquía según ChildIDs.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.SaveCustomerRequest) (*dto.CustomerResponse, []string, error) {
	cand := fromRequest(in)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if violations := hierarchy.Validate(cand, uc.pop, id); len(violations) > 0 {
		return nil, violations, nil
	}
	next, found := hierarchy.Update(uc.pop, id, cand, in.ChildIDs)
	if !found {
		return nil, nil, domain.ErrNotFound
	}
	if err := uc.store.Save(ctx, next); err != nil {
		return nil, nil, err
	}
	uc.pop = next

	for _, c := range next {
		if c.ID == id {
			return ToCustomerResponse(c), nil, nil
		}
	}
	return nil, nil, domain.ErrNotFound
}

// Delete elimina el cliente id; si es PARENT sus hijos quedan desenlazados
// como cuentas independientes. Un id inexistente es un no-op: el estado final
// deseado (ausencia) ya se cumple.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next, found := hierarchy.Delete(uc.pop, id)
	if !found {
		return nil
	}
	if err := uc.store.Save(ctx, next); err != nil {
		return err
	}
	uc.pop = next
	return nil
}

// Snapshot devuelve la población actual. Los registros se comparten: el
// llamador no debe mutarlos (el motor siempre clona antes de cambiar).
func (uc *CustomerUseCase) Snapshot() []*entity.Customer {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	out := make([]*entity.Customer, len(uc.pop))
	copy(out, uc.pop)
	return out
}

// CommitBatch agrega un lote pre-validado (salida del resolver) a la
// población y persiste. No re-valida: esa responsabilidad ya fue del resolver.
func (uc *CustomerUseCase) CommitBatch(ctx context.Context, customers []*entity.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := hierarchy.BatchAdd(uc.pop, customers)
	if err := uc.store.Save(ctx, next); err != nil {
		return err
	}
	uc.pop = next
	return nil
}

// fromRequest arma la entidad candidata desde el body. Direcciones y contactos
// reciben ID nuevo: pertenecen en exclusiva a su cliente y se reemplazan
// completos en cada escritura.
func fromRequest(in dto.SaveCustomerRequest) *entity.Customer {
	c := &entity.Customer{
		Type:          in.Type,
		Name:          in.Name,
		AccountNumber: in.AccountNumber,
		IsVIP:         in.IsVIP,
		ParentID:      in.ParentID,
	}
	for _, a := range in.Addresses {
		c.Addresses = append(c.Addresses, entity.Address{
			ID:             uuid.New().String(),
			Street:         a.Street,
			Latitude:       a.Latitude,
			Longitude:      a.Longitude,
			City:           a.City,
			State:          a.State,
			ZipCode:        a.ZipCode,
			IsPrimary:      a.IsPrimary,
			IsBilling:      a.IsBilling,
			IsGateProperty: a.IsGateProperty,
		})
	}
	for _, ct := range in.Contacts {
		c.Contacts = append(c.Contacts, entity.Contact{
			ID:        uuid.New().String(),
			Name:      ct.Name,
			Email:     ct.Email,
			Phone:     ct.Phone,
			IsPrimary: ct.IsPrimary,
		})
	}
	return c
}

// ToCustomerResponse mapea la entidad al DTO de respuesta.
func ToCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	resp := &dto.CustomerResponse{
		ID:            c.ID,
		Type:          c.Type,
		Name:          c.Name,
		AccountNumber: c.AccountNumber,
		IsVIP:         c.IsVIP,
		ParentID:      c.ParentID,
		Addresses:     make([]dto.AddressResponse, 0, len(c.Addresses)),
		Contacts:      make([]dto.ContactResponse, 0, len(c.Contacts)),
		CreatedAt:     c.CreatedAt,
	}
	for _, a := range c.Addresses {
		resp.Addresses = append(resp.Addresses, dto.AddressResponse{
			ID:             a.ID,
			Street:         a.Street,
			Latitude:       a.Latitude,
			Longitude:      a.Longitude,
			City:           a.City,
			State:          a.State,
			ZipCode:        a.ZipCode,
			IsPrimary:      a.IsPrimary,
			IsBilling:      a.IsBilling,
			IsGateProperty: a.IsGateProperty,
		})
	}
	for _, ct := range c.Contacts {
		resp.Contacts = append(resp.Contacts, dto.ContactResponse{
			ID:        ct.ID,
			Name:      ct.Name,
			Email:     ct.Email,
			Phone:     ct.Phone,
			IsPrimary: ct.IsPrimary,
		})
	}
	return resp
}
