package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Barbearia São João", "barbearia-sao-joao"},
		{"  The Classic Cut  ", "the-classic-cut"},
		{"Joe's  Barber -- Shop!", "joes-barber-shop"},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugCandidate(t *testing.T) {
	assert.Equal(t, "corte", SlugCandidate("corte", 1))
	assert.Equal(t, "corte-2", SlugCandidate("corte", 2))
	assert.Equal(t, "corte-10", SlugCandidate("corte", 10))
}
