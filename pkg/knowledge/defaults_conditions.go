package knowledge

// Built-in skin classes in classifier index order. Index 0 is the baseline.
const (
	HealthySkin     = "Healthy Skin"
	Acne            = "Acne"
	Eczema          = "Eczema"
	Psoriasis       = "Psoriasis"
	Melanoma        = "Melanoma"
	Dermatitis      = "Dermatitis"
	Rosacea         = "Rosacea"
	FungalInfection = "Fungal Infection"
)

// Built-in respiratory classes in classifier index order. Index 0 is the baseline.
const (
	HealthyBreathing = "Healthy Breathing"
	Asthma           = "Asthma"
	Bronchitis       = "Bronchitis"
	Pneumonia        = "Pneumonia"
	COPD             = "COPD"
	WhoopingCough    = "Whooping Cough"
)

var (
	SkinClasses        = []string{HealthySkin, Acne, Eczema, Psoriasis, Melanoma, Dermatitis, Rosacea, FungalInfection}
	RespiratoryClasses = []string{HealthyBreathing, Asthma, Bronchitis, Pneumonia, COPD, WhoopingCough}
)

func defaultConditions() []ConditionRecord {
	return append(defaultSkinConditions(), defaultRespiratoryConditions()...)
}

func defaultSkinConditions() []ConditionRecord {
	return []ConditionRecord{
		{
			Name:        HealthySkin,
			Domain:      DomainSkin,
			Severity:    SeverityNone,
			Description: "No visible lesion or abnormality",
			Characteristics: []string{
				"No visible lesions or abnormalities",
				"Even skin tone",
				"Normal texture",
				"No discomfort",
			},
		},
		{
			Name:        Acne,
			Domain:      DomainSkin,
			Severity:    SeverityMild,
			Description: "Inflammation of hair follicles and sebaceous glands",
			Duration:    "6-8 weeks",
			Medications: []string{"Benzoyl peroxide 5% gel", "Salicylic acid 2% cleanser", "Tretinoin 0.025% cream", "Clindamycin 1% gel"},
			Characteristics: []string{
				"Red, inflamed bumps (papules)",
				"Pus-filled pimples (pustules)",
				"Blackheads and whiteheads",
				"Oily skin",
				"Possible scarring",
				"Tenderness or pain in affected areas",
			},
		},
		{
			Name:        Eczema,
			Domain:      DomainSkin,
			Severity:    SeverityModerate,
			Description: "Chronic inflammatory skin condition causing dry, itchy patches",
			Duration:    "2-4 weeks per flare",
			Medications: []string{"Hydrocortisone 1% cream", "Cetaphil moisturizer", "Tacrolimus 0.1% ointment", "Antihistamine (Cetirizine 10mg)"},
			Characteristics: []string{
				"Intense itching (especially at night)",
				"Dry, sensitive skin",
				"Red or brownish-gray patches",
				"Thickened, cracked, or scaly skin",
				"Small raised bumps (may leak fluid)",
				"Raw, swollen skin from scratching",
			},
		},
		{
			Name:        Psoriasis,
			Domain:      DomainSkin,
			Severity:    SeverityModerate,
			Description: "Autoimmune condition producing scaly plaques",
			Duration:    "Chronic management",
			Medications: []string{"Betamethasone cream", "Calcipotriene ointment", "Coal tar shampoo", "Methotrexate (if severe)"},
			Characteristics: []string{
				"Red patches covered with silvery scales",
				"Dry, cracked skin that may bleed",
				"Itching, burning, or soreness",
				"Thickened or ridged nails",
				"Swollen and stiff joints (psoriatic arthritis)",
				"Patches on scalp, elbows, knees",
			},
		},
		{
			Name:        Melanoma,
			Domain:      DomainSkin,
			Severity:    SeveritySevere,
			Description: "Malignant tumour of pigment-producing cells",
			Duration:    "Specialist-directed",
			Medications: []string{"URGENT: Surgical excision", "Immunotherapy (Pembrolizumab)", "Targeted therapy (if BRAF+)", "Radiation therapy"},
			Characteristics: []string{
				"Asymmetric mole or lesion",
				"Irregular or notched borders",
				"Multiple colors (brown, black, red, white, blue)",
				"Diameter larger than 6mm (pencil eraser)",
				"Evolving size, shape, or color",
				"May bleed or ooze",
				"Usually painless",
			},
			EmergencySigns: []string{"Rapidly changing mole", "Bleeding lesion"},
		},
		{
			Name:        Dermatitis,
			Domain:      DomainSkin,
			Severity:    SeverityMild,
			Description: "Skin inflammation triggered by irritants or allergens",
			Duration:    "1-2 weeks",
			Medications: []string{"Hydrocortisone 1% cream", "Moisturizer (fragrance-free)", "Antihistamine", "Avoid irritants"},
			Characteristics: []string{
				"Red, inflamed skin",
				"Itching (mild to severe)",
				"Dry, flaky skin",
				"Blisters or oozing (in severe cases)",
				"Burning or stinging sensation",
				"Swelling in affected area",
			},
		},
		{
			Name:        Rosacea,
			Domain:      DomainSkin,
			Severity:    SeverityMild,
			Description: "Chronic facial redness with visible blood vessels",
			Duration:    "3-6 months",
			Medications: []string{"Metronidazole 0.75% gel", "Azelaic acid 15% gel", "Doxycycline 40mg", "Gentle cleanser"},
			Characteristics: []string{
				"Facial redness (especially cheeks, nose)",
				"Visible blood vessels",
				"Swollen, red bumps (may contain pus)",
				"Burning or stinging sensation",
				"Dry, rough, scaly skin",
				"Eye problems (dryness, irritation)",
				"Enlarged nose (rhinophyma) in severe cases",
			},
		},
		{
			Name:        FungalInfection,
			Domain:      DomainSkin,
			Severity:    SeverityMild,
			Description: "Superficial dermatophyte or yeast infection",
			Duration:    "2-4 weeks",
			Medications: []string{"Clotrimazole 1% cream", "Miconazole 2% cream", "Terbinafine 1% cream", "Fluconazole 150mg (oral)"},
			Characteristics: []string{
				"Ring-shaped rash with raised edges",
				"Itching (often intense)",
				"Red, scaly, or cracked skin",
				"Circular patches that spread outward",
				"Hair loss in affected areas (scalp)",
				"Discolored, thick, brittle nails (if nail infection)",
			},
		},
	}
}

func defaultRespiratoryConditions() []ConditionRecord {
	return []ConditionRecord{
		{
			Name:            HealthyBreathing,
			Domain:          DomainRespiratory,
			Severity:        SeverityNone,
			Description:     "Normal breath sounds",
			Characteristics: []string{"Quiet, regular breathing", "No wheeze or crackle"},
		},
		{
			Name:            Asthma,
			Domain:          DomainRespiratory,
			Severity:        SeverityModerate,
			Description:     "Reversible airway narrowing with wheeze",
			Duration:        "Chronic management",
			Medications:     []string{"Albuterol inhaler", "Inhaled corticosteroid (Fluticasone)", "Montelukast 10mg"},
			Characteristics: []string{"High-pitched wheezing", "Chest tightness", "Cough at night or early morning"},
			EmergencySigns:  []string{"Lips or fingernails turning blue", "Rescue inhaler not helping"},
		},
		{
			Name:            Bronchitis,
			Domain:          DomainRespiratory,
			Severity:        SeverityModerate,
			Description:     "Inflammation of the bronchial tubes",
			Duration:        "2-3 weeks",
			Medications:     []string{"Dextromethorphan", "Guaifenesin", "Honey with warm water"},
			Characteristics: []string{"Low-pitched rattling", "Productive cough", "Mucus production"},
		},
		{
			Name:            Pneumonia,
			Domain:          DomainRespiratory,
			Severity:        SeveritySevere,
			Description:     "Infection inflaming the air sacs of the lungs",
			Duration:        "3-4 weeks",
			Medications:     []string{"Amoxicillin 500mg (if prescribed)", "Acetaminophen 500mg", "Plenty of fluids"},
			Characteristics: []string{"Crackles on inspiration", "Fever with chills", "Shortness of breath"},
			EmergencySigns:  []string{"Bluish lips", "Confusion", "Severe shortness of breath"},
		},
		{
			Name:            COPD,
			Domain:          DomainRespiratory,
			Severity:        SeveritySevere,
			Description:     "Chronic obstructive airflow limitation",
			Duration:        "Chronic management",
			Medications:     []string{"Tiotropium inhaler", "Albuterol inhaler", "Pulmonary rehabilitation"},
			Characteristics: []string{"Prolonged expiration", "Chronic cough", "Breathlessness on exertion"},
			EmergencySigns:  []string{"Severe breathlessness at rest", "Chest pain"},
		},
		{
			Name:            WhoopingCough,
			Domain:          DomainRespiratory,
			Severity:        SeverityModerate,
			Description:     "Bacterial infection with paroxysmal coughing",
			Duration:        "6-10 weeks",
			Medications:     []string{"Azithromycin (if prescribed)", "Plenty of fluids", "Cool-mist humidifier"},
			Characteristics: []string{"Paroxysmal coughing fits", "Inspiratory whoop", "Vomiting after coughing"},
			EmergencySigns:  []string{"Turning blue during coughing", "Pauses in breathing"},
		},
	}
}
