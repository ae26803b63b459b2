package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase and strip diacritics", "Xăng RON 95-III", "xangron95iii"},
		{"spacing variants collapse", "Xăng RON95III", "xangron95iii"},
		{"comma inside label", "Dầu DO 0,05S-II", "daudo005sii"},
		{"đ folds to d", "Dầu KO", "dauko"},
		{"whitespace trimmed", "  Dầu KO  ", "dauko"},
		{"empty", "", ""},
		{"punctuation only", "-, .", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestMatcher_MatchLabel(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name       string
		catalog    string
		candidates []string
		want       string
	}{
		{
			name:       "exact after normalization",
			catalog:    "Xăng RON 95-III",
			candidates: []string{"Dầu KO", "Xăng RON95III"},
			want:       "Xăng RON95III",
		},
		{
			name:       "exact beats prefix",
			catalog:    "Xăng RON 95-III",
			candidates: []string{"Xăng RON 95", "xăng ron 95-iii"},
			want:       "xăng ron 95-iii",
		},
		{
			name:       "prefix tier",
			catalog:    "Xăng RON 95-III",
			candidates: []string{"Dầu KO", "Xăng RON 95"},
			want:       "Xăng RON 95",
		},
		{
			name:       "substring tier",
			catalog:    "RON 95",
			candidates: []string{"Xăng RON 95-III cao cấp"},
			want:       "Xăng RON 95-III cao cấp",
		},
		{
			name:       "first candidate wins within a tier",
			catalog:    "Xăng RON 95-III",
			candidates: []string{"Xăng RON 95-III", "XĂNG RON 95-III"},
			want:       "Xăng RON 95-III",
		},
		{
			name:       "fallback to catalog name",
			catalog:    "Dầu KO",
			candidates: []string{"Xăng E5 RON 92-II"},
			want:       "Dầu KO",
		},
		{
			name:       "no candidates",
			catalog:    "Dầu KO",
			candidates: nil,
			want:       "Dầu KO",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.MatchLabel(tt.catalog, tt.candidates))
		})
	}
}
