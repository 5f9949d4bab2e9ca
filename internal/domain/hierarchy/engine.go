package hierarchy

import "github.com/tu-usuario/clientes-pro/internal/domain/entity"

// Motor de mutaciones sobre la población de clientes.
//
// Las funciones son copy-on-write: nunca modifican la población recibida ni
// sus registros; los registros que cambian se clonan y el resultado es una
// población nueva. El llamador decide cuándo reemplazar la suya (después de
// persistir con éxito), así el intercambio es atómico y los estados parciales
// no son observables.

// Create inserta un candidato ya validado. El llamador asigna ID y CreatedAt
// antes de llamar. Si el candidato es PARENT, cada registro existente cuyo ID
// esté en childIDs se fuerza a DIRECT con ParentID = cand.ID; los IDs que no
// existen en la población se ignoran.
func Create(pop []*entity.Customer, cand *entity.Customer, childIDs []string) []*entity.Customer {
	next := make([]*entity.Customer, 0, len(pop)+1)
	link := cand.IsParent()
	for _, c := range pop {
		if link && contains(childIDs, c.ID) {
			cl := c.Clone()
			cl.Type = entity.TypeDirect
			cl.ParentID = cand.ID
			next = append(next, cl)
			continue
		}
		next = append(next, c)
	}
	return append(next, cand)
}

// Update reemplaza los campos del registro id con los del candidato (ya
// validado con excludeID = id), preservando ID y CreatedAt. Si el nuevo tipo
// es PARENT se re-enlaza la jerarquía en dos pasadas: primero se desenlazan
// los hijos actuales ausentes de childIDs (quedan como PARENT independientes),
// después se enlazan los IDs de childIDs. El orden importa: un hijo que sale y
// otro que entra en la misma llamada no deben colisionar.
//
// Devuelve found = false (y la población original) si id no existe.
func Update(pop []*entity.Customer, id string, cand *entity.Customer, childIDs []string) ([]*entity.Customer, bool) {
	stored := find(pop, id)
	if stored == nil {
		return pop, false
	}

	updated := cand.Clone()
	updated.ID = id
	updated.CreatedAt = stored.CreatedAt

	next := make([]*entity.Customer, 0, len(pop))
	for _, c := range pop {
		if c.ID == id {
			next = append(next, updated)
			continue
		}
		next = append(next, c)
	}

	if !updated.IsParent() {
		return next, true
	}

	// Pasada 1: desenlazar hijos que ya no están en childIDs.
	for i, c := range next {
		if c.ParentID == id && !contains(childIDs, c.ID) {
			cl := c.Clone()
			cl.ParentID = ""
			cl.Type = entity.TypeParent
			next[i] = cl
		}
	}
	// Pasada 2: enlazar los hijos solicitados.
	for i, c := range next {
		if c.ID != id && contains(childIDs, c.ID) {
			cl := c.Clone()
			cl.ParentID = id
			cl.Type = entity.TypeDirect
			next[i] = cl
		}
	}
	return next, true
}

// Delete elimina el registro id. Si es PARENT, sus hijos se desenlazan antes
// (ParentID vacío, tipo PARENT): los hijos nunca se eliminan en cascada, solo
// se promueven a independientes. Un id inexistente es un no-op (la ausencia
// deseada ya se cumple) y devuelve found = false.
func Delete(pop []*entity.Customer, id string) ([]*entity.Customer, bool) {
	target := find(pop, id)
	if target == nil {
		return pop, false
	}

	next := make([]*entity.Customer, 0, len(pop)-1)
	for _, c := range pop {
		if c.ID == id {
			continue
		}
		if target.IsParent() && c.ParentID == id {
			cl := c.Clone()
			cl.ParentID = ""
			cl.Type = entity.TypeParent
			next = append(next, cl)
			continue
		}
		next = append(next, c)
	}
	return next, true
}

// BatchAdd agrega un conjunto ya validado (salida del resolver de importación)
// sin más chequeos: la detección de duplicados de un lote es responsabilidad
// exclusiva del resolver.
func BatchAdd(pop []*entity.Customer, customers []*entity.Customer) []*entity.Customer {
	next := make([]*entity.Customer, 0, len(pop)+len(customers))
	next = append(next, pop...)
	return append(next, customers...)
}

func find(pop []*entity.Customer, id string) *entity.Customer {
	for _, c := range pop {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
