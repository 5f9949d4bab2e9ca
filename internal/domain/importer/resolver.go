// Package importer implementa el resolver de importación masiva: agrupa filas
// planas del archivo por número de cuenta, resuelve referencias a padres por
// nombre (incluyendo referencias hacia adelante dentro del mismo lote) y
// particiona el resultado en clientes aceptados y rechazos por fila.
//
// El resolver solo clasifica: nunca muta la población. La aceptación es un
// paso aparte (BatchAdd en el motor de jerarquía).
package importer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/clientes-pro/internal/domain/entity"
)

// Valores de relleno para campos que el formato plano no trae.
const (
	PlaceholderCity  = "Sin especificar"
	PlaceholderState = "Sin especificar"
)

// Row es una fila plana del archivo de importación, ya parseada. Varias filas
// con el mismo número de cuenta representan varios contactos del mismo
// cliente. ParentName vacío clasifica al cliente como PARENT; no vacío lo
// clasifica como DIRECT y nombra a su padre por nombre visible (el archivo no
// puede conocer IDs generados).
type Row struct {
	Line             int // línea original del archivo (para reportar rechazos)
	CustomerName     string
	AccountNumber    string
	Address          string
	ZipCode          string
	ParentName       string
	ContactName      string
	ContactEmail     string
	ContactPhone     string
	IsPrimaryContact bool
}

// Rejection es el motivo de rechazo de una fila. Un grupo que falla aporta un
// rechazo por cada una de sus filas originales, todos con el mismo motivo, de
// modo que cada fila del archivo queda contabilizada exactamente una vez entre
// aceptados y rechazos.
type Rejection struct {
	Line   int
	Reason string
}

// Result salida del resolver: clientes aceptados y rechazos ordenados por
// línea.
type Result struct {
	Accepted   []*entity.Customer
	Rejections []Rejection
}

// NameIndex es el mapa de resolución nombre→ID congelado en la fase 1.
// Contiene los padres ya existentes en la población y los padres del propio
// lote pre-registrados (válidos o no). Los nombres existentes tienen
// prioridad: un padre del lote con el mismo nombre no los pisa.
type NameIndex struct {
	names map[string]string // strings.ToLower(nombre) -> ID
	batch map[string]string // número de cuenta -> ID sintetizado para grupos PARENT del lote
}

// Lookup resuelve un nombre de padre (insensible a mayúsculas).
func (ix NameIndex) Lookup(name string) (string, bool) {
	id, ok := ix.names[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// batchID devuelve el ID sintetizado para el grupo PARENT con ese número de
// cuenta, si fue pre-registrado.
func (ix NameIndex) batchID(account string) (string, bool) {
	id, ok := ix.batch[account]
	return id, ok
}

// group un grupo de filas con el mismo número de cuenta = un cliente candidato.
type group struct {
	account string
	rows    []Row
}

// isParent clasifica el grupo: PARENT si la primera fila no nombra padre.
func (g group) isParent() bool {
	return strings.TrimSpace(g.rows[0].ParentName) == ""
}

func (g group) name() string   { return strings.TrimSpace(g.rows[0].CustomerName) }
func (g group) parent() string { return strings.TrimSpace(g.rows[0].ParentName) }

// groupRows agrupa por número de cuenta preservando el orden de primera
// aparición. Las filas sin número de cuenta no se agrupan; se rechazan una a
// una en Resolve.
func groupRows(rows []Row) []group {
	index := make(map[string]int)
	var groups []group
	for _, r := range rows {
		acct := strings.TrimSpace(r.AccountNumber)
		if acct == "" {
			continue
		}
		if i, ok := index[acct]; ok {
			groups[i].rows = append(groups[i].rows, r)
			continue
		}
		index[acct] = len(groups)
		groups = append(groups, group{account: acct, rows: []Row{r}})
	}
	return groups
}

// RegisterParentNames es la fase 1 del resolver: construye el mapa nombre→ID
// con todos los padres existentes en la población más un ID sintetizado por
// cada grupo PARENT del lote, se registre válido o no después. Este
// pre-registro es obligatorio para que filas DIRECT que aparecen antes que la
// fila de su padre (o intercaladas) resuelvan igual.
func RegisterParentNames(rows []Row, existing []*entity.Customer) NameIndex {
	ix := NameIndex{
		names: make(map[string]string),
		batch: make(map[string]string),
	}
	for _, c := range existing {
		if c.IsParent() && !blank(c.Name) {
			ix.names[strings.ToLower(strings.TrimSpace(c.Name))] = c.ID
		}
	}
	for _, g := range groupRows(rows) {
		if !g.isParent() || g.name() == "" {
			continue
		}
		id := uuid.New().String()
		ix.batch[g.account] = id
		key := strings.ToLower(g.name())
		if _, taken := ix.names[key]; !taken {
			ix.names[key] = id
		}
	}
	return ix
}

// Resolve es la fase 2: valida cada grupo como unidad de fallo independiente
// (el rechazo de un grupo jamás afecta a otro) y construye los clientes
// aceptados usando el mapa congelado de la fase 1.
//
// Política para padres colgantes (decidida aquí, no ambigua): un grupo DIRECT
// cuyo nombre de padre resuelve a un PARENT del propio lote que terminó
// rechazado se rechaza también, para que el conjunto aceptado quede cerrado
// bajo referencias de padre.
func Resolve(rows []Row, existing []*entity.Customer, ix NameIndex) Result {
	var res Result
	now := time.Now()

	reject := func(g group, reason string) {
		for _, r := range g.rows {
			res.Rejections = append(res.Rejections, Rejection{Line: r.Line, Reason: reason})
		}
	}

	// Filas sin número de cuenta: fuera antes de agrupar.
	for _, r := range rows {
		if blank(r.AccountNumber) {
			res.Rejections = append(res.Rejections, Rejection{Line: r.Line, Reason: "el número de cuenta es requerido"})
		}
	}

	existingAccounts := make(map[string]bool, len(existing))
	for _, c := range existing {
		existingAccounts[c.AccountNumber] = true
	}

	// IDs pre-registrados cuyo grupo PARENT terminó rechazado.
	rejectedParentIDs := make(map[string]bool)
	markRejected := func(g group) {
		if id, ok := ix.batchID(g.account); ok {
			rejectedParentIDs[id] = true
		}
	}

	// candidatos aceptados provisionalmente, con su grupo para poder emitir
	// rechazos por fila en el barrido final.
	type candidate struct {
		g    group
		cust *entity.Customer
	}
	var candidates []candidate

	for _, g := range groupRows(rows) {
		name := g.name()
		if name == "" {
			reject(g, "el nombre del cliente es requerido")
			continue
		}
		if conflicting := conflictingName(g); conflicting {
			markRejected(g)
			reject(g, fmt.Sprintf("el número de cuenta %q aparece con nombres de cliente distintos", g.account))
			continue
		}
		if existingAccounts[g.account] {
			markRejected(g)
			reject(g, fmt.Sprintf("el número de cuenta %q ya existe", g.account))
			continue
		}

		contacts, err := buildContacts(g)
		if err != "" {
			markRejected(g)
			reject(g, err)
			continue
		}

		cust := &entity.Customer{
			Type:          entity.TypeParent,
			Name:          name,
			AccountNumber: g.account,
			IsVIP:         false,
			Addresses: []entity.Address{{
				ID:        uuid.New().String(),
				Street:    strings.TrimSpace(g.rows[0].Address),
				City:      PlaceholderCity,
				State:     PlaceholderState,
				ZipCode:   strings.TrimSpace(g.rows[0].ZipCode),
				IsPrimary: true,
				IsBilling: true,
			}},
			Contacts:  contacts,
			CreatedAt: now,
		}

		if g.isParent() {
			if id, ok := ix.batchID(g.account); ok {
				cust.ID = id
			} else {
				cust.ID = uuid.New().String()
			}
		} else {
			parentID, ok := ix.Lookup(g.parent())
			if !ok {
				reject(g, fmt.Sprintf("cliente padre %q no encontrado", g.parent()))
				continue
			}
			cust.ID = uuid.New().String()
			cust.Type = entity.TypeDirect
			cust.ParentID = parentID
		}

		candidates = append(candidates, candidate{g: g, cust: cust})
	}

	// Barrido final: grupos DIRECT enlazados a un padre del lote rechazado.
	for _, cand := range candidates {
		if cand.cust.ParentID != "" && rejectedParentIDs[cand.cust.ParentID] {
			reject(cand.g, fmt.Sprintf("el cliente padre %q fue rechazado en el mismo archivo", cand.g.parent()))
			continue
		}
		res.Accepted = append(res.Accepted, cand.cust)
	}

	sort.Slice(res.Rejections, func(i, j int) bool {
		return res.Rejections[i].Line < res.Rejections[j].Line
	})
	return res
}

// conflictingName detecta un número de cuenta ambiguo: filas del mismo grupo
// que no coinciden en el nombre del cliente.
func conflictingName(g group) bool {
	name := g.name()
	for _, r := range g.rows[1:] {
		if strings.TrimSpace(r.CustomerName) != name {
			return true
		}
	}
	return false
}

// buildContacts construye un contacto por fila y aplica la resolución de
// contacto principal: con un solo contacto se fuerza principal sin importar la
// bandera del archivo; con varios se exige exactamente una fila marcada.
// Devuelve el motivo de rechazo como string vacío si el grupo es válido.
func buildContacts(g group) ([]entity.Contact, string) {
	contacts := make([]entity.Contact, 0, len(g.rows))
	for _, r := range g.rows {
		if blank(r.ContactName) || blank(r.ContactEmail) {
			return nil, "contacto incompleto: nombre y email son requeridos"
		}
		contacts = append(contacts, entity.Contact{
			ID:        uuid.New().String(),
			Name:      strings.TrimSpace(r.ContactName),
			Email:     strings.TrimSpace(r.ContactEmail),
			Phone:     strings.TrimSpace(r.ContactPhone),
			IsPrimary: r.IsPrimaryContact,
		})
	}

	if len(contacts) == 1 {
		contacts[0].IsPrimary = true
		return contacts, ""
	}

	primary := 0
	for _, c := range contacts {
		if c.IsPrimary {
			primary++
		}
	}
	switch {
	case primary == 0:
		return nil, "ningún contacto marcado como principal"
	case primary > 1:
		return nil, fmt.Sprintf("más de un contacto marcado como principal (%d)", primary)
	}
	return contacts, ""
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
