package series_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/cuentas-pro/internal/domain/series"
)

func TestNext_PrimerNumeroDelAnio(t *testing.T) {
	got, err := series.Next("VENTA", 2025, "")
	require.NoError(t, err)
	assert.Equal(t, "VENTA-2025-00001", got)
}

func TestNext_IncrementaUltimoNumero(t *testing.T) {
	got, err := series.Next("VENTA", 2025, "VENTA-2025-00042")
	require.NoError(t, err)
	assert.Equal(t, "VENTA-2025-00043", got)
}

func TestNext_CreceDeAnchoDespuesDe99999(t *testing.T) {
	got, err := series.Next("VENTA", 2025, "VENTA-2025-99999")
	require.NoError(t, err)
	assert.Equal(t, "VENTA-2025-100000", got)

	got, err = series.Next("VENTA", 2025, "VENTA-2025-100000")
	require.NoError(t, err)
	assert.Equal(t, "VENTA-2025-100001", got)
}

func TestNext_PrefijoVacio(t *testing.T) {
	_, err := series.Next("", 2025, "")
	assert.Error(t, err)
}

func TestNext_NumeroDeOtraSerie(t *testing.T) {
	_, err := series.Next("VENTA", 2025, "VENTA-2024-00009")
	assert.Error(t, err, "un número del año anterior no pertenece a la serie")

	_, err = series.Next("VENTA", 2025, "REMITO-2025-00009")
	assert.Error(t, err)
}

func TestParse_ConsecutivoInvalido(t *testing.T) {
	_, err := series.Parse("VENTA", 2025, "VENTA-2025-ABCDE")
	assert.Error(t, err)

	_, err = series.Parse("VENTA", 2025, "VENTA-2025-00000")
	assert.Error(t, err, "el consecutivo empieza en 1")
}

func TestFormat_RellenaACincoDigitos(t *testing.T) {
	assert.Equal(t, "VENTA-2025-00007", series.Format("VENTA", 2025, 7))
	assert.Equal(t, "VENTA-2025-123456", series.Format("VENTA", 2025, 123456))
}
