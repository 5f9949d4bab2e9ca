// Package imports implementa la importación masiva de clientes desde un
// archivo CSV: parseo de filas, resolución de padres por nombre (resolver de
// dominio) y commit del lote aceptado. El preview y el commit comparten el
// mismo recorrido; la única diferencia es si el lote aceptado se agrega a la
// población o no.
package imports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tu-usuario/clientes-pro/internal/application/customers"
	"github.com/tu-usuario/clientes-pro/internal/application/dto"
	"github.com/tu-usuario/clientes-pro/internal/domain/importer"
)

// Columnas del archivo, en orden fijo. La fila de encabezado se descarta.
// Las columnas 8 y 9 (teléfono y bandera de contacto principal) son
// opcionales: una fila con menos de 7 columnas se descarta en silencio.
const minColumns = 7

// ImportUseCase casos de uso de importación masiva.
type ImportUseCase struct {
	customersUC *customers.CustomerUseCase
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(customersUC *customers.CustomerUseCase) *ImportUseCase {
	return &ImportUseCase{customersUC: customersUC}
}

// Preview resuelve el archivo contra la población actual sin mutar nada.
func (uc *ImportUseCase) Preview(data []byte) (*dto.ImportResultResponse, error) {
	res, err := uc.resolve(data)
	if err != nil {
		return nil, err
	}
	return toResponse(res, false), nil
}

// Import resuelve el archivo y agrega los clientes aceptados a la población
// en un solo paso de commit (BatchAdd + Save).
func (uc *ImportUseCase) Import(ctx context.Context, data []byte) (*dto.ImportResultResponse, error) {
	res, err := uc.resolve(data)
	if err != nil {
		return nil, err
	}
	if err := uc.customersUC.CommitBatch(ctx, res.Accepted); err != nil {
		return nil, err
	}
	return toResponse(res, true), nil
}

// resolve: parseo + las dos fases del resolver sobre una foto de la población.
func (uc *ImportUseCase) resolve(data []byte) (importer.Result, error) {
	rows, err := ParseRows(data)
	if err != nil {
		return importer.Result{}, err
	}
	pop := uc.customersUC.Snapshot()
	ix := importer.RegisterParentNames(rows, pop)
	return importer.Resolve(rows, pop, ix), nil
}

// ParseRows parsea el CSV (valores escapados con comillas dobles) a filas del
// resolver. La primera fila es el encabezado y se ignora; Line conserva el
// número de línea original del archivo (encabezado = línea 1).
func ParseRows(data []byte) ([]importer.Row, error) {
	r := csv.NewReader(bytes.NewReader(sanitizeUTF8(data)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsear CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	rows := make([]importer.Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) < minColumns {
			continue
		}
		row := importer.Row{
			Line:          i + 2, // +1 por el encabezado, +1 por índice 0-based
			CustomerName:  strings.TrimSpace(rec[0]),
			AccountNumber: strings.TrimSpace(rec[1]),
			Address:       strings.TrimSpace(rec[2]),
			ZipCode:       strings.TrimSpace(rec[3]),
			ParentName:    strings.TrimSpace(rec[4]),
			ContactName:   strings.TrimSpace(rec[5]),
			ContactEmail:  strings.TrimSpace(rec[6]),
		}
		if len(rec) > 7 {
			row.ContactPhone = strings.TrimSpace(rec[7])
		}
		if len(rec) > 8 {
			row.IsPrimaryContact = truthy(rec[8])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// truthy interpreta la bandera de contacto principal: true/yes/1 sin importar
// mayúsculas; cualquier otro valor es falso.
func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true
	}
	return false
}

// sanitizeUTF8 reemplaza bytes inválidos por U+FFFD para que el parser CSV no
// propague basura de archivos con codificación rota.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	var buf bytes.Buffer
	buf.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}
	return buf.Bytes()
}

func toResponse(res importer.Result, committed bool) *dto.ImportResultResponse {
	out := &dto.ImportResultResponse{
		Accepted:   make([]dto.CustomerResponse, 0, len(res.Accepted)),
		Rejections: make([]dto.ImportRejectionDTO, 0, len(res.Rejections)),
		Committed:  committed,
	}
	for _, c := range res.Accepted {
		out.Accepted = append(out.Accepted, *customers.ToCustomerResponse(c))
	}
	for _, r := range res.Rejections {
		out.Rejections = append(out.Rejections, dto.ImportRejectionDTO{Line: r.Line, Reason: r.Reason})
	}
	return out
}
