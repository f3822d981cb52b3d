package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ctd-ild-mcp-server/internal/domain"
	"github.com/ctd-ild-mcp-server/internal/knowledge"
)

func TestCheckContraindications(t *testing.T) {
	kb := knowledge.Default()

	tests := []struct {
		name       string
		declared   []string
		treatment  string
		wantResult []string
	}{
		{
			name:       "one patient entry matches two treatment entries",
			declared:   []string{"Pregnancy/breastfeeding"},
			treatment:  knowledge.KeyMycophenolate,
			wantResult: []string{"Pregnancy", "Breastfeeding"},
		},
		{
			name:       "treatment text found inside longer patient text",
			declared:   []string{"Known hypersensitivity"},
			treatment:  knowledge.KeyMycophenolate,
			wantResult: []string{"Hypersensitivity"},
		},
		{
			name:       "case-insensitive",
			declared:   []string{"ACTIVE INFECTION"},
			treatment:  knowledge.KeyRituximab,
			wantResult: []string{"Active infection"},
		},
		{
			name:       "patient text inside treatment text does not match",
			declared:   []string{"infection"},
			treatment:  knowledge.KeyRituximab,
			wantResult: []string{},
		},
		{
			name:       "different wording does not match",
			declared:   []string{"Severe hepatic impairment"},
			treatment:  knowledge.KeyNintedanib,
			wantResult: []string{},
		},
		{
			name:       "heart failure matches severe heart failure",
			declared:   []string{"Severe heart failure"},
			treatment:  knowledge.KeyIVIg,
			wantResult: []string{"Heart failure"},
		},
		{
			name:       "unknown treatment",
			declared:   []string{"Active infection"},
			treatment:  "unknown",
			wantResult: []string{},
		},
		{
			name:       "no declared contraindication",
			treatment:  knowledge.KeyRituximab,
			wantResult: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &domain.PatientProfile{Contraindications: tt.declared}
			assert.Equal(t, tt.wantResult, checkContraindications(kb, p, tt.treatment))
		})
	}
}
