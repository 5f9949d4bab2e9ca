// Package hierarchy contiene las reglas de consistencia de la jerarquía de
// clientes (padre/directo): validación de candidatos y motor de mutaciones
// sobre la población. Todo es puro: sin I/O, sin estado compartido.
package hierarchy

import (
	"fmt"
	"strings"

	"github.com/tu-usuario/clientes-pro/internal/domain/entity"
)

// Validate revisa un cliente candidato contra las invariantes del modelo y
// contra la población existente. Devuelve la lista completa de violaciones
// (no corta en la primera); lista vacía = candidato aceptable.
//
// excludeID permite validar una actualización contra sí misma: el registro
// con ese ID se ignora en el chequeo de unicidad del número de cuenta.
func Validate(cand *entity.Customer, all []*entity.Customer, excludeID string) []string {
	var errs []string

	if blank(cand.Name) {
		errs = append(errs, "el nombre es requerido")
	}
	if blank(cand.AccountNumber) {
		errs = append(errs, "el número de cuenta es requerido")
	} else {
		for _, c := range all {
			if c.ID == excludeID {
				continue
			}
			if c.AccountNumber == cand.AccountNumber {
				errs = append(errs, fmt.Sprintf("el número de cuenta %q ya está en uso por otro cliente", cand.AccountNumber))
				break
			}
		}
	}

	errs = append(errs, validateAddresses(cand.Addresses)...)
	errs = append(errs, validateContacts(cand.Contacts)...)

	if cand.Type == entity.TypeParent && cand.ParentID != "" {
		errs = append(errs, "un cliente de tipo PARENT no puede tener padre asignado")
	}

	return errs
}

func validateAddresses(addrs []entity.Address) []string {
	var errs []string

	if len(addrs) == 0 {
		errs = append(errs, "debe existir al menos una dirección")
	}
	primary, billing := 0, 0
	for _, a := range addrs {
		if a.IsPrimary {
			primary++
		}
		if a.IsBilling {
			billing++
		}
	}
	switch {
	case len(addrs) > 0 && primary == 0:
		errs = append(errs, "se requiere exactamente una dirección principal (ninguna marcada)")
	case primary > 1:
		errs = append(errs, fmt.Sprintf("se requiere exactamente una dirección principal (%d marcadas)", primary))
	}
	switch {
	case len(addrs) > 0 && billing == 0:
		errs = append(errs, "se requiere exactamente una dirección de facturación (ninguna marcada)")
	case billing > 1:
		errs = append(errs, fmt.Sprintf("se requiere exactamente una dirección de facturación (%d marcadas)", billing))
	}

	for i, a := range addrs {
		pos := i + 1 // posición 1-based en los mensajes
		if blank(a.Street) && (a.Latitude == nil || a.Longitude == nil) {
			errs = append(errs, fmt.Sprintf("dirección %d: se requiere calle, o latitud y longitud", pos))
		}
		if blank(a.City) {
			errs = append(errs, fmt.Sprintf("dirección %d: la ciudad es requerida", pos))
		}
		if blank(a.State) {
			errs = append(errs, fmt.Sprintf("dirección %d: el departamento es requerido", pos))
		}
		if blank(a.ZipCode) {
			errs = append(errs, fmt.Sprintf("dirección %d: el código postal es requerido", pos))
		}
	}
	return errs
}

func validateContacts(contacts []entity.Contact) []string {
	var errs []string

	if len(contacts) == 0 {
		errs = append(errs, "debe existir al menos un contacto")
	}
	primary := 0
	for _, c := range contacts {
		if c.IsPrimary {
			primary++
		}
	}
	switch {
	case len(contacts) > 0 && primary == 0:
		errs = append(errs, "se requiere exactamente un contacto principal (ninguno marcado)")
	case primary > 1:
		errs = append(errs, fmt.Sprintf("se requiere exactamente un contacto principal (%d marcados)", primary))
	}

	for i, c := range contacts {
		pos := i + 1
		if blank(c.Name) {
			errs = append(errs, fmt.Sprintf("contacto %d: el nombre es requerido", pos))
		}
		if blank(c.Email) {
			errs = append(errs, fmt.Sprintf("contacto %d: el email es requerido", pos))
		}
		if blank(c.Phone) {
			errs = append(errs, fmt.Sprintf("contacto %d: el teléfono es requerido", pos))
		}
	}
	return errs
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
