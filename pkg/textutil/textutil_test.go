package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gruasdelsur/backoffice-api/pkg/textutil"
)

func TestFold_QuitaTildesYMayusculas(t *testing.T) {
	cases := map[string]string{
		"Batería 12V":       "bateria 12v",
		"NEUMÁTICO":         "neumatico",
		"Señal de tránsito": "senal de transito",
		"aceite":            "aceite",
		"":                  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, textutil.Fold(in), "Fold(%q)", in)
	}
}

func TestContainsFold(t *testing.T) {
	assert.True(t, textutil.ContainsFold("Batería 12V Bosch", "bateria"))
	assert.True(t, textutil.ContainsFold("Filtro de Aceite", "ACEITE"))
	assert.True(t, textutil.ContainsFold("Neumático 295/80", "neumatico 295"))
	assert.False(t, textutil.ContainsFold("Filtro de Aceite", "bateria"))
}
