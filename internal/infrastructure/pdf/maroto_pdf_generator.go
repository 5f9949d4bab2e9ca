// Package pdf implementa la generación del Directorio de Clientes en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Directorio de Clientes  │  Fecha + total cuentas   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cuenta | Cliente | Tipo | Padre | Contacto ppal.    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/clientes-pro/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa customers.DirectoryPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateDirectoryPDF genera el PDF del directorio y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDirectoryPDF(_ context.Context, customers []*entity.Customer) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Directorio de Clientes", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(len(customers)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())

	// Nombres de padres para la columna "Padre".
	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}
	for _, r := range customerRows(customers, names) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha + total de cuentas (der).
func headerRow(total int) core.Row {
	fecha := time.Now().Format("02/01/2006")
	return row.New(14).Add(
		col.New(7).Add(
			text.New("DIRECTORIO DE CLIENTES", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Fecha: "+fecha, props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Cuentas: %d", total), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla del directorio.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cuenta", 2, align.Left),
		h("Cliente", 3, align.Left),
		h("Tipo", 1, align.Center),
		h("Padre", 3, align.Left),
		h("Contacto principal", 3, align.Left),
	)
}

// customerRows: una fila por cliente.
func customerRows(customers []*entity.Customer, names map[string]string) []core.Row {
	result := make([]core.Row, 0, len(customers))
	for _, c := range customers {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				c.AccountNumber,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				customerLabel(c),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				c.Type,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				nonEmpty(names[c.ParentID], "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				primaryContact(c),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

func customerLabel(c *entity.Customer) string {
	if c.IsVIP {
		return c.Name + " ★"
	}
	return c.Name
}

func primaryContact(c *entity.Customer) string {
	for _, ct := range c.Contacts {
		if ct.IsPrimary {
			return fmt.Sprintf("%s <%s>", ct.Name, ct.Email)
		}
	}
	return "—"
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
