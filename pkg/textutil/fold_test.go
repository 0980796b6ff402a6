package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/gestion-pro/pkg/textutil"
)

func TestFoldSearchTerm(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Jabón Líquido", "jabon liquido"},
		{"CAFÉ", "cafe"},
		{"  Ñoño  ", "nono"},
		{"Pingüino", "pinguino"},
		{"sin tildes", "sin tildes"},
		{"", ""},
		{"Örtega Müller", "ortega muller"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, textutil.FoldSearchTerm(tc.in), "entrada %q", tc.in)
	}
}
