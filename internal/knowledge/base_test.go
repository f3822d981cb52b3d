package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctd-ild-mcp-server/internal/domain"
)

func TestDefault_DiseaseTypes(t *testing.T) {
	kb := Default()

	got := kb.DiseaseTypes()
	require.Len(t, got, len(domain.AllDiseaseTypes))
	for i, dt := range domain.AllDiseaseTypes {
		assert.Equal(t, dt, got[i].Type)
		assert.NotEmpty(t, got[i].Label)
	}

	tests := []struct {
		diseaseType domain.DiseaseType
		want        domain.RiskTier
	}{
		{domain.SystemicSclerosis, domain.RiskHigh},
		{domain.Myositis, domain.RiskHigh},
		{domain.RheumatoidArthritis, domain.RiskModerate},
		{domain.MixedConnectiveTissue, domain.RiskModerate},
		{domain.Sjogren, domain.RiskModerate},
	}
	for _, tt := range tests {
		t.Run(tt.diseaseType.String(), func(t *testing.T) {
			info, ok := kb.DiseaseType(tt.diseaseType)
			require.True(t, ok)
			assert.Equal(t, tt.want, info.Baseline)
		})
	}

	_, ok := kb.DiseaseType("")
	assert.False(t, ok)
}

func TestDefault_Treatments(t *testing.T) {
	kb := Default()

	keys := []string{
		KeyMycophenolate, KeyAzathioprine, KeyRituximab, KeyCyclophosphamide, KeyTocilizumab,
		KeyNintedanib, KeyJAKInhibitors, KeyCalcineurinInhibitors, KeyIVIg, KeyMethylprednisolone,
		KeyGlucocorticoids, KeyPirfenidone, KeyAbatacept,
	}
	assert.Len(t, kb.Treatments(), len(keys))

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			tr, ok := kb.Treatment(key)
			require.True(t, ok)
			assert.Equal(t, key, tr.Key)
			assert.NotEmpty(t, tr.Name)
			assert.NotEmpty(t, tr.Dosage)
			assert.NotEmpty(t, tr.Contraindications)
			assert.True(t, kb.HasTreatment(key))
		})
	}

	_, ok := kb.Treatment("aspirin")
	assert.False(t, ok)
	assert.Equal(t, "aspirin", kb.TreatmentName("aspirin"))
	assert.Equal(t, "Mycophenolate mofetil", kb.TreatmentName(KeyMycophenolate))
}

func TestBase_TreatmentIsCopy(t *testing.T) {
	kb := Default()

	tr, ok := kb.Treatment(KeyRituximab)
	require.True(t, ok)
	tr.Contraindications[0] = "changed"

	again, _ := kb.Treatment(KeyRituximab)
	assert.Equal(t, "Active infection", again.Contraindications[0])

	all := kb.Treatments()
	all[0].Interactions[0] = "changed"
	assert.NotEqual(t, "changed", kb.Treatments()[0].Interactions[0])
}

func TestBase_ResolveMedication(t *testing.T) {
	kb := Default()

	tests := []struct {
		entry   string
		wantKey string
		wantOK  bool
	}{
		{"Mycophenolate mofetil", KeyMycophenolate, true},
		{"mycophenolate mofetil", KeyMycophenolate, true},
		{"  Rituximab ", KeyRituximab, true},
		{"jak-inhibitors", KeyJAKInhibitors, true},
		{"IV methylprednisolone", KeyMethylprednisolone, true},
		{"Methotrexate", "", false},
		{"Anti-TNF", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			key, ok := kb.ResolveMedication(tt.entry)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestDefault_MedicationKeysExist(t *testing.T) {
	kb := Default()
	for _, m := range kb.Medications() {
		if m.TreatmentKey == "" {
			continue
		}
		assert.True(t, kb.HasTreatment(m.TreatmentKey), "medication %q maps to unknown key %q", m.Label, m.TreatmentKey)
	}
}

func TestDefault_Options(t *testing.T) {
	opts := Default().Options()

	assert.NotEmpty(t, opts.RiskFactors)
	assert.NotEmpty(t, opts.Symptoms)
	assert.NotEmpty(t, opts.Contraindications)
	assert.Len(t, opts.Medications, len(defaultMedications))
	for _, m := range HighRiskManifestations {
		assert.Contains(t, opts.Manifestations, m)
	}

	opts.RiskFactors[0] = "changed"
	assert.NotEqual(t, "changed", Default().Options().RiskFactors[0])
}

func TestNew_DuplicateKeysReplace(t *testing.T) {
	kb := New(nil, []Treatment{
		{Key: "a", Name: "First"},
		{Key: "b", Name: "Second"},
		{Key: "a", Name: "Replaced"},
	}, nil, Options{})

	all := kb.Treatments()
	require.Len(t, all, 2)
	assert.Equal(t, "Replaced", all[0].Name)
	assert.Equal(t, "b", all[1].Key)
}
