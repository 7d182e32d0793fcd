// internal/utils/slug_test.go
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
		{"Samsung Galaxy S24", "samsung-galaxy-s24"},
		{"Apple iPhone 15 Pro Max", "apple-iphone-15-pro-max"},
		{"  OnePlus   12R  ", "oneplus-12r"},
		{"Redmi Note 13 (5G)", "redmi-note-13-5g"},
		{"already-a-slug", "already-a-slug"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
}
