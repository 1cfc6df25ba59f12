// Package series implementa la numeración consecutiva de documentos de venta.
//
// El formato es {prefijo}-{año}-{consecutivo}, ej. VENTA-2025-00001. El
// consecutivo se rellena con ceros a mínimo 5 dígitos y crece de ancho cuando
// supera 99999 (99999 -> 100000). La serie reinicia cada año, por eso el año
// va embebido en el número y no se usa una secuencia nativa de la base.
//
// Este paquete solo calcula; la serialización de emisiones concurrentes la
// da el caller bloqueando la fila del último número emitido (FOR UPDATE)
// dentro de su transacción.
package series

import (
	"fmt"
	"strconv"
	"strings"
)

const minDigits = 5

// Next devuelve el número que sigue a last para la serie prefix/year.
// Con last vacío (sin documentos previos en el año) devuelve el primero:
// {prefix}-{year}-00001.
func Next(prefix string, year int, last string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("series: prefijo vacío")
	}
	if last == "" {
		return Format(prefix, year, 1), nil
	}
	n, err := Parse(prefix, year, last)
	if err != nil {
		return "", err
	}
	return Format(prefix, year, n+1), nil
}

// Format arma el número de documento con el consecutivo dado.
func Format(prefix string, year, n int) string {
	return fmt.Sprintf("%s-%d-%0*d", prefix, year, minDigits, n)
}

// Parse extrae el consecutivo de un número de documento de la serie
// prefix/year. Retorna error si el número no pertenece a la serie.
func Parse(prefix string, year int, number string) (int, error) {
	want := fmt.Sprintf("%s-%d-", prefix, year)
	if !strings.HasPrefix(number, want) {
		return 0, fmt.Errorf("series: %q no pertenece a la serie %s%d", number, prefix, year)
	}
	suffix := number[len(want):]
	n, err := strconv.Atoi(suffix)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("series: consecutivo inválido en %q", number)
	}
	return n, nil
}
