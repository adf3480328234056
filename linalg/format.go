package linalg

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// formatFloat renders v like a default C++ stream: six significant digits,
// no trailing zeros.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func formatComplex(v complex128) string {
	return "(" + formatFloat(real(v)) + "," + formatFloat(imag(v)) + ")"
}

func formatRows(r, c int, at func(i, j int) string) string {
	var sb strings.Builder
	sb.WriteString("[" + strconv.Itoa(r) + "," + strconv.Itoa(c) + "](")
	for i := 0; i < r; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('(')
		for j := 0; j < c; j++ {
			if j > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(at(i, j))
		}
		sb.WriteByte(')')
	}
	sb.WriteByte(')')
	return sb.String()
}

func formatList(items []string) string {
	return "[" + strconv.Itoa(len(items)) + "](" + strings.Join(items, ",") + ")"
}

// Format renders m as [r,c]((a,b),(c,d)).
func Format(m mat.Matrix) string {
	r, c := m.Dims()
	return formatRows(r, c, func(i, j int) string { return formatFloat(m.At(i, j)) })
}

// FormatComplex renders m with (re,im) entries.
func FormatComplex(m mat.CMatrix) string {
	r, c := m.Dims()
	return formatRows(r, c, func(i, j int) string { return formatComplex(m.At(i, j)) })
}

// FormatVector renders v as [n](a,b,c).
func FormatVector(v mat.Vector) string {
	items := make([]string, v.Len())
	for i := range items {
		items[i] = formatFloat(v.AtVec(i))
	}
	return formatList(items)
}

// FormatPermutation renders p as [n](p0,p1,...).
func FormatPermutation(p Permutation) string {
	items := make([]string, len(p))
	for i, v := range p {
		items[i] = strconv.Itoa(v)
	}
	return formatList(items)
}
