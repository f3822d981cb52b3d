package knowledge

// Treatment registry keys.
const (
	KeyMycophenolate         = "mycophenolate"
	KeyAzathioprine          = "azathioprine"
	KeyRituximab             = "rituximab"
	KeyCyclophosphamide      = "cyclophosphamide"
	KeyTocilizumab           = "tocilizumab"
	KeyNintedanib            = "nintedanib"
	KeyJAKInhibitors         = "jak-inhibitors"
	KeyCalcineurinInhibitors = "calcineurin-inhibitors"
	KeyIVIg                  = "ivig"
	KeyMethylprednisolone    = "methylprednisolone"
	KeyGlucocorticoids       = "glucocorticoids"
	KeyPirfenidone           = "pirfenidone"
	KeyAbatacept             = "abatacept"
)

var defaultTreatments = []Treatment{
	{
		Key:               KeyMycophenolate,
		Name:              "Mycophenolate mofetil",
		Dosage:            "2-3 g/day (1000-1500 mg twice daily)",
		Administration:    "Oral, fasting or with a light meal",
		Surveillance:      "CBC, creatinine, transaminases at D15, M1, M3, then every 3 months",
		Contraindications: []string{"Pregnancy", "Breastfeeding", "Hypersensitivity"},
		Interactions:      []string{"Antacids", "Cholestyramine", "Ciclosporin"},
		SideEffects:       "Gastrointestinal upset, leucopenia, anaemia, infections",
		Monitoring:        "CBC + LFT + creatinine",
		Notes:             "Preferred first-line treatment for most SARD-ILD",
	},
	{
		Key:               KeyAzathioprine,
		Name:              "Azathioprine",
		Dosage:            "2-2.5 mg/kg/day (max 200 mg/day)",
		Administration:    "Oral, in 1-2 doses",
		Surveillance:      "CBC, transaminases weekly for the first month, then monthly",
		Contraindications: []string{"TPMT deficiency", "Pregnancy", "Breastfeeding"},
		Interactions:      []string{"Allopurinol", "ACE inhibitors", "Warfarin"},
		SideEffects:       "Myelosuppression, hepatotoxicity, infections",
		Monitoring:        "CBC + LFT, TPMT assay before initiation",
		Notes:             "Alternative to mycophenolate, check TPMT",
	},
	{
		Key:               KeyRituximab,
		Name:              "Rituximab",
		Dosage:            "1000 mg D1 and D15, then every 6-12 months",
		Administration:    "IV, with premedication (corticosteroids, antihistamines)",
		Surveillance:      "CBC, immunoglobulins, viral serologies (HBV, HCV, HIV)",
		Contraindications: []string{"Active infection", "Severe immunodeficiency"},
		Interactions:      []string{"Live vaccines"},
		SideEffects:       "Infusion reactions, infections, hypogammaglobulinaemia",
		Monitoring:        "CBC + Ig + serologies + clinical",
		Notes:             "Effective in myositis and SSc-ILD. Cornerstone of anti-MDA5 triple therapy.",
	},
	{
		Key:               KeyCyclophosphamide,
		Name:              "Cyclophosphamide",
		Dosage:            "IV: 500-1000 mg/m² monthly for 6 months or oral: 1-2 mg/kg/day",
		Administration:    "IV (NIH protocol) or oral",
		Surveillance:      "CBC, urinalysis, cystoscopy if prolonged oral use",
		Contraindications: []string{"Haemorrhagic cystitis", "Severe renal impairment"},
		Interactions:      []string{"Allopurinol", "Phenytoin"},
		SideEffects:       "Myelosuppression, haemorrhagic cystitis, infertility, malignancy",
		Monitoring:        "CBC + urinalysis + gonadal function",
		Notes:             "Reserved for severe disease. Option within anti-MDA5 triple therapy.",
	},
	{
		Key:               KeyTocilizumab,
		Name:              "Tocilizumab",
		Dosage:            "8 mg/kg (max 800 mg) every 4 weeks or 162 mg/week SC",
		Administration:    "IV or SC",
		Surveillance:      "CBC, transaminases, lipids, latent tuberculosis screening",
		Contraindications: []string{"Active infection", "Neutropenia <500/mm³"},
		Interactions:      []string{"Live vaccines", "Warfarin"},
		SideEffects:       "Infections, hepatic cytolysis, dyslipidaemia, neutropenia",
		Monitoring:        "CBC + LFT + lipids + QuantiFERON",
		Notes:             "Specifically recommended for SSc-ILD and MCTD-ILD",
	},
	{
		Key:               KeyNintedanib,
		Name:              "Nintedanib",
		Dosage:            "150 mg twice daily (100 mg twice daily if not tolerated)",
		Administration:    "Oral, with meals",
		Surveillance:      "Transaminases at M1, M3, M6 then every 6 months",
		Contraindications: []string{"Pregnancy", "Breastfeeding", "Severe liver disease"},
		Interactions:      []string{"CYP3A4 inhibitors", "Anticoagulants"},
		SideEffects:       "Diarrhoea, nausea, hepatic cytolysis, bleeding",
		Monitoring:        "LFT + renal function",
		Notes:             "Antifibrotic, specifically recommended for SSc-ILD",
	},
	{
		Key:               KeyJAKInhibitors,
		Name:              "JAK inhibitors",
		Dosage:            "Tofacitinib: 5 mg twice daily, Baricitinib: 2-4 mg/day",
		Administration:    "Oral",
		Surveillance:      "CBC, transaminases, lipids, tuberculosis screening",
		Contraindications: []string{"Active infection", "Lymphopenia <500/mm³"},
		Interactions:      []string{"Live vaccines", "Potent immunosuppressants"},
		SideEffects:       "Infections, cytolysis, dyslipidaemia, thrombosis",
		Monitoring:        "CBC + LFT + lipids + QuantiFERON",
		Notes:             "Particularly effective in IIM-ILD, including anti-MDA5.",
	},
	{
		Key:               KeyCalcineurinInhibitors,
		Name:              "Calcineurin inhibitors",
		Dosage:            "Tacrolimus: 0.1-0.2 mg/kg/day, Ciclosporin: 3-5 mg/kg/day",
		Administration:    "Oral, in 2 doses",
		Surveillance:      "Trough levels, creatinine, blood pressure, potassium",
		Contraindications: []string{"Severe renal impairment", "Uncontrolled hypertension"},
		Interactions:      []string{"Many CYP3A4 interactions"},
		SideEffects:       "Nephrotoxicity, hypertension, tremor, hirsutism",
		Monitoring:        "Levels + renal function + electrolytes + blood pressure",
		Notes:             "Major option for IIM-ILD, notably within anti-MDA5 triple therapy.",
	},
	{
		Key:               KeyIVIg,
		Name:              "IVIg",
		Dosage:            "0.4-1 g/kg/day for 5 days, then monthly",
		Administration:    "Slow IV, watch for fluid overload",
		Surveillance:      "Renal function, haemolysis",
		Contraindications: []string{"IgA deficiency with anti-IgA antibodies", "Heart failure"},
		Interactions:      []string{"Live vaccines"},
		SideEffects:       "Infusion reactions, renal failure, haemolysis",
		Monitoring:        "Renal function + haptoglobin + LDH",
		Notes:             "Useful add-on in severe IIM-ILD, including anti-MDA5.",
	},
	{
		Key:               KeyMethylprednisolone,
		Name:              "IV methylprednisolone",
		Dosage:            "500-1000 mg/day for 3 days (pulse), then oral taper",
		Administration:    "IV over 60 min",
		Surveillance:      "Blood glucose, blood pressure, electrolytes",
		Contraindications: []string{"Uncontrolled systemic infection", "Active peptic ulcer"},
		Interactions:      []string{"Anticoagulants", "Antidiabetic agents"},
		SideEffects:       "Hyperglycaemia, hypertension, fluid and electrolyte disturbances",
		Monitoring:        "Glucose + blood pressure + electrolytes",
		Notes:             "Essential for induction in RP-ILD, notably anti-MDA5.",
	},
	{
		Key:               KeyGlucocorticoids,
		Name:              "Glucocorticoids",
		Dosage:            "0.5-1 mg/kg/day prednisone equivalent",
		Administration:    "Oral, in the morning, single dose",
		Surveillance:      "Blood glucose, blood pressure, bone densitometry",
		Contraindications: []string{"CONTRAINDICATED in SSc-ILD (except in exceptional cases)", "Active peptic ulcer"},
		Interactions:      []string{"Many interactions"},
		SideEffects:       "Osteoporosis, diabetes, hypertension, infections, scleroderma renal crisis",
		Monitoring:        "Glucose + blood pressure + bone densitometry",
		Notes:             "Use with caution at the lowest dose and shortest duration. STRONG RELATIVE CONTRAINDICATION in SSc-ILD.",
	},
	{
		Key:               KeyPirfenidone,
		Name:              "Pirfenidone",
		Dosage:            "Titrated up to 801 mg three times daily",
		Administration:    "Oral, with food",
		Surveillance:      "Transaminases before, then monthly for 6 months, then every 3 months",
		Contraindications: []string{"Severe hepatic impairment", "End-stage renal disease"},
		Interactions:      []string{"Fluvoxamine", "Ciprofloxacin"},
		SideEffects:       "Photosensitivity, rash, gastrointestinal upset, anorexia",
		Monitoring:        "LFT",
		Notes:             "Antifibrotic, option for progressive RA-ILD.",
	},
	{
		Key:               KeyAbatacept,
		Name:              "Abatacept",
		Dosage:            "125 mg SC weekly or monthly IV (weight-based)",
		Administration:    "SC or IV",
		Surveillance:      "Latent tuberculosis screening",
		Contraindications: []string{"Severe active infection"},
		Interactions:      []string{"Anti-TNF", "Live vaccines"},
		SideEffects:       "Infections (mainly respiratory), headache, nausea",
		Monitoring:        "QuantiFERON, clinical",
		Notes:             "First-line option for RA-ILD.",
	},
}
