package seo_test

import (
	"seodash/internal/seo"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"example.com", "example.com", true},
		{"  Example.COM ", "example.com", true},
		{"www.example.com", "example.com", true},
		{"https://www.example.com/", "example.com", true},
		{"http://shop.example.co.uk/path?q=1", "shop.example.co.uk", true},
		{"example.com/", "example.com", true},
		{"", "", false},
		{"localhost", "", false},
		{"exa mple.com", "", false},
		{"example.com/path", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := seo.NormalizeDomain(tt.in)
			if !tt.ok {
				assert.ErrorIs(t, err, seo.ErrInvalidDomain)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProjectInput_ValidateAndNormalize(t *testing.T) {
	t.Run("normalizes and defaults status", func(t *testing.T) {
		in := seo.ProjectInput{Name: "  Shop ", Domain: "https://Shop.com"}

		require.NoError(t, in.ValidateAndNormalize())

		assert.Equal(t, seo.ProjectInput{Name: "Shop", Domain: "shop.com", Status: seo.ProjectActive}, in)
	})

	t.Run("empty name", func(t *testing.T) {
		in := seo.ProjectInput{Name: "  ", Domain: "shop.com"}

		assert.ErrorIs(t, in.ValidateAndNormalize(), seo.ErrEmptyName)
	})

	t.Run("unknown status", func(t *testing.T) {
		in := seo.ProjectInput{Name: "Shop", Domain: "shop.com", Status: "deleted"}

		assert.ErrorIs(t, in.ValidateAndNormalize(), seo.ErrInvalidStatus)
	})
}

func TestProjectPatch(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.True(t, seo.ProjectPatch{}.IsEmpty())
	})

	t.Run("normalizes set fields only", func(t *testing.T) {
		domain := "WWW.Shop.com"
		p := seo.ProjectPatch{Domain: &domain}

		require.NoError(t, p.ValidateAndNormalize())

		assert.Nil(t, p.Name)
		require.NotNil(t, p.Domain)
		assert.Equal(t, "shop.com", *p.Domain)
		assert.Equal(t, "WWW.Shop.com", domain, "caller's value is not modified")
	})

	t.Run("rejects blank name", func(t *testing.T) {
		name := ""
		p := seo.ProjectPatch{Name: &name}

		assert.ErrorIs(t, p.ValidateAndNormalize(), seo.ErrEmptyName)
	})

	t.Run("validates status", func(t *testing.T) {
		status := seo.ProjectStatus("gone")
		p := seo.ProjectPatch{Status: &status}

		assert.ErrorIs(t, p.ValidateAndNormalize(), seo.ErrInvalidStatus)
	})
}
