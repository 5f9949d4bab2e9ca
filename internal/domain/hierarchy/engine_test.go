package hierarchy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/clientes-pro/internal/domain/entity"
	"github.com/tu-usuario/clientes-pro/internal/domain/hierarchy"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func parent(id string) *entity.Customer {
	c := validCustomer("ACC-" + id)
	c.ID = id
	return c
}

func direct(id, parentID string) *entity.Customer {
	c := validCustomer("ACC-" + id)
	c.ID = id
	c.Type = entity.TypeDirect
	c.ParentID = parentID
	return c
}

func byID(t *testing.T, pop []*entity.Customer, id string) *entity.Customer {
	t.Helper()
	for _, c := range pop {
		if c.ID == id {
			return c
		}
	}
	require.Failf(t, "cliente no encontrado", "id %s no está en la población", id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_AgregaSinTocarLaPoblacion(t *testing.T) {
	pop := []*entity.Customer{parent("p1")}
	cand := parent("p2")

	next := hierarchy.Create(pop, cand, nil)

	assert.Len(t, next, 2)
	assert.Len(t, pop, 1, "la población original no debe cambiar")
}

// Crear un PARENT con childIDs convierte a los hijos en DIRECT enlazados.
func TestCreate_ParentEnlazaHijos(t *testing.T) {
	pop := []*entity.Customer{parent("a"), parent("b")}
	cand := parent("nuevo")

	next := hierarchy.Create(pop, cand, []string{"a"})

	a := byID(t, next, "a")
	assert.Equal(t, entity.TypeDirect, a.Type)
	assert.Equal(t, "nuevo", a.ParentID)

	b := byID(t, next, "b")
	assert.Equal(t, entity.TypeParent, b.Type, "los no listados quedan intactos")
	assert.Empty(t, b.ParentID)

	// Copy-on-write: el registro original de "a" no fue mutado.
	assert.Equal(t, entity.TypeParent, pop[0].Type)
}

func TestCreate_ChildIDsInexistentesSeIgnoran(t *testing.T) {
	pop := []*entity.Customer{parent("a")}

	next := hierarchy.Create(pop, parent("nuevo"), []string{"no-existe"})

	assert.Len(t, next, 2)
	assert.Equal(t, entity.TypeParent, byID(t, next, "a").Type)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_IDInexistente(t *testing.T) {
	pop := []*entity.Customer{parent("a")}

	next, found := hierarchy.Update(pop, "no-existe", parent("x"), nil)

	assert.False(t, found)
	assert.Equal(t, pop, next, "sin coincidencia se devuelve la población original")
}

func TestUpdate_PreservaIDYCreatedAt(t *testing.T) {
	stored := parent("a")
	pop := []*entity.Customer{stored}

	cand := validCustomer("ACC-a")
	cand.ID = "otro-id-que-se-ignora"
	cand.Name = "Nombre Nuevo"

	next, found := hierarchy.Update(pop, "a", cand, nil)
	require.True(t, found)

	updated := byID(t, next, "a")
	assert.Equal(t, "Nombre Nuevo", updated.Name)
	assert.Equal(t, stored.CreatedAt, updated.CreatedAt)
}

// Re-enlace: un hijo sale de childIDs y otro entra en la misma llamada.
func TestUpdate_ReenlaceDeHijos(t *testing.T) {
	pop := []*entity.Customer{
		parent("p"),
		direct("viejo", "p"),
		parent("nuevo"),
	}
	cand := validCustomer("ACC-p")

	next, found := hierarchy.Update(pop, "p", cand, []string{"nuevo"})
	require.True(t, found)

	viejo := byID(t, next, "viejo")
	assert.Equal(t, entity.TypeParent, viejo.Type, "el hijo desenlazado queda independiente")
	assert.Empty(t, viejo.ParentID)

	nuevo := byID(t, next, "nuevo")
	assert.Equal(t, entity.TypeDirect, nuevo.Type)
	assert.Equal(t, "p", nuevo.ParentID)
}

// Repetir la misma actualización produce el mismo estado (idempotencia).
func TestUpdate_ReenlaceIdempotente(t *testing.T) {
	pop := []*entity.Customer{parent("p"), direct("h", "p")}
	cand := validCustomer("ACC-p")

	once, found := hierarchy.Update(pop, "p", cand, []string{"h"})
	require.True(t, found)
	twice, found := hierarchy.Update(once, "p", cand, []string{"h"})
	require.True(t, found)

	h := byID(t, twice, "h")
	assert.Equal(t, entity.TypeDirect, h.Type)
	assert.Equal(t, "p", h.ParentID)
	assert.Len(t, twice, 2)
}

// Convertir un PARENT con hijos a DIRECT no toca a los hijos: quedan con el
// ParentID anterior y es la capa de validación quien impide ese estado si el
// llamador lo consulta antes.
func TestUpdate_ParentADirectoNoReenlaza(t *testing.T) {
	pop := []*entity.Customer{parent("p"), direct("h", "p"), parent("otro")}

	cand := validCustomer("ACC-p")
	cand.Type = entity.TypeDirect
	cand.ParentID = "otro"

	next, found := hierarchy.Update(pop, "p", cand, nil)
	require.True(t, found)

	p := byID(t, next, "p")
	assert.Equal(t, entity.TypeDirect, p.Type)
	assert.Equal(t, "otro", p.ParentID)

	h := byID(t, next, "h")
	assert.Equal(t, "p", h.ParentID, "los hijos no se reprocesan al degradar el padre")
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_IDInexistenteEsNoOp(t *testing.T) {
	pop := []*entity.Customer{parent("a")}

	next, found := hierarchy.Delete(pop, "no-existe")

	assert.False(t, found)
	assert.Equal(t, pop, next)
}

func TestDelete_Directo(t *testing.T) {
	pop := []*entity.Customer{parent("p"), direct("h", "p")}

	next, found := hierarchy.Delete(pop, "h")
	require.True(t, found)

	assert.Len(t, next, 1)
	assert.Equal(t, "p", next[0].ID)
}

// Eliminar un PARENT desenlaza a sus hijos en vez de borrarlos.
func TestDelete_ParentPromueveHijos(t *testing.T) {
	pop := []*entity.Customer{parent("p"), direct("h1", "p"), direct("h2", "p")}

	next, found := hierarchy.Delete(pop, "p")
	require.True(t, found)

	assert.Len(t, next, 2, "los hijos sobreviven a la eliminación del padre")
	for _, id := range []string{"h1", "h2"} {
		c := byID(t, next, id)
		assert.Equal(t, entity.TypeParent, c.Type)
		assert.Empty(t, c.ParentID)
	}

	// Los registros originales de los hijos siguen intactos.
	assert.Equal(t, "p", pop[1].ParentID)
}

// ──────────────────────────────────────────────────────────────────────────────
// BatchAdd
// ──────────────────────────────────────────────────────────────────────────────

func TestBatchAdd_AgregaTodoSinChequeos(t *testing.T) {
	pop := []*entity.Customer{parent("a")}
	lote := []*entity.Customer{parent("b"), direct("c", "b")}

	next := hierarchy.BatchAdd(pop, lote)

	assert.Len(t, next, 3)
	assert.Len(t, pop, 1)
}
