package imports_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/clientes-pro/internal/application/imports"
)

// ──────────────────────────────────────────────────────────────────────────────
// ParseRows: parseo del CSV plano al formato del resolver
// ──────────────────────────────────────────────────────────────────────────────

const csvHeader = "customer_name,account_number,address,zip_code,parent_name,contact_name,contact_email,contact_phone,is_primary_contact\n"

func TestParseRows_FilaCompleta(t *testing.T) {
	data := []byte(csvHeader +
		"Hacienda Norte,P-001,Calle 1 # 2-3,050001,,Ana Gómez,ana@example.com,3001234567,true\n")

	rows, err := imports.ParseRows(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, 2, r.Line, "la primera fila de datos es la línea 2 del archivo")
	assert.Equal(t, "Hacienda Norte", r.CustomerName)
	assert.Equal(t, "P-001", r.AccountNumber)
	assert.Equal(t, "Calle 1 # 2-3", r.Address)
	assert.Equal(t, "050001", r.ZipCode)
	assert.Empty(t, r.ParentName)
	assert.Equal(t, "Ana Gómez", r.ContactName)
	assert.Equal(t, "ana@example.com", r.ContactEmail)
	assert.Equal(t, "3001234567", r.ContactPhone)
	assert.True(t, r.IsPrimaryContact)
}

// Teléfono y bandera de principal son opcionales (columnas 8 y 9).
func TestParseRows_ColumnasOpcionalesAusentes(t *testing.T) {
	data := []byte(csvHeader +
		"Hacienda Norte,P-001,Calle 1,050001,,Ana,ana@example.com\n")

	rows, err := imports.ParseRows(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].ContactPhone)
	assert.False(t, rows[0].IsPrimaryContact)
}

// Una fila con menos de 7 columnas se descarta en silencio, sin romper el
// resto del archivo.
func TestParseRows_FilaCortaSeDescarta(t *testing.T) {
	data := []byte(csvHeader +
		"truncada,P-001\n" +
		"Hacienda Norte,P-002,Calle 1,050001,,Ana,ana@example.com,,true\n")

	rows, err := imports.ParseRows(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "P-002", rows[0].AccountNumber)
	assert.Equal(t, 3, rows[0].Line, "la línea original se conserva aunque se descarten filas previas")
}

// Campos con comas van escapados entre comillas dobles.
func TestParseRows_CamposEntreComillas(t *testing.T) {
	data := []byte(csvHeader +
		`"Hacienda Norte, S.A.S.",P-001,"Calle 1 # 2-3, Bodega 4",050001,,Ana,ana@example.com,,true` + "\n")

	rows, err := imports.ParseRows(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Hacienda Norte, S.A.S.", rows[0].CustomerName)
	assert.Equal(t, "Calle 1 # 2-3, Bodega 4", rows[0].Address)
}

func TestParseRows_ArchivoVacio(t *testing.T) {
	rows, err := imports.ParseRows(nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseRows_SoloEncabezado(t *testing.T) {
	rows, err := imports.ParseRows([]byte(csvHeader))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// Bytes inválidos (archivos con codificación rota) no abortan el parseo.
func TestParseRows_UTF8Invalido(t *testing.T) {
	data := append([]byte(csvHeader), []byte("Hacienda \xff\xfeNorte,P-001,Calle 1,050001,,Ana,ana@example.com\n")...)

	rows, err := imports.ParseRows(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "P-001", rows[0].AccountNumber)
}

// ──────────────────────────────────────────────────────────────────────────────
// Interpretación de la bandera de contacto principal
// ──────────────────────────────────────────────────────────────────────────────

func TestParseRows_BanderaPrincipalVariantes(t *testing.T) {
	cases := []struct {
		raw    string
		expect bool
	}{
		{"true", true},
		{"TRUE", true},
		{"Yes", true},
		{"1", true},
		{"false", false},
		{"no", false},
		{"0", false},
		{"", false},
		{"si", false}, // solo true/yes/1 son verdaderos
	}
	for _, tc := range cases {
		data := []byte(csvHeader +
			"Cliente,ACC,Calle 1,050001,,Ana,ana@example.com,," + tc.raw + "\n")
		rows, err := imports.ParseRows(data)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equalf(t, tc.expect, rows[0].IsPrimaryContact, "valor crudo %q", tc.raw)
	}
}
