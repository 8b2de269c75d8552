package knowledge

func defaultSymptoms() []SymptomEntry {
	return []SymptomEntry{
		{
			Key:         "fever",
			Conditions:  []string{"Common Cold", "Flu", "Viral Infection", "Bacterial Infection"},
			Advice:      "Rest, stay hydrated, take fever reducers. Monitor temperature. See a doctor if fever persists over 3 days or exceeds 103°F.",
			Severity:    SeverityMild,
			Medications: []string{"Acetaminophen 500mg", "Ibuprofen 400mg", "Plenty of fluids"},
		},
		{
			Key:         "headache",
			Conditions:  []string{"Tension Headache", "Migraine", "Dehydration", "Sinusitis"},
			Advice:      "Rest in quiet, dark room. Stay hydrated. Apply cold/warm compress. Avoid triggers.",
			Severity:    SeverityMild,
			Medications: []string{"Acetaminophen", "Ibuprofen", "Aspirin (if no contraindications)"},
		},
		{
			Key:         "cough",
			Conditions:  []string{"Common Cold", "Bronchitis", "Allergies", "Asthma"},
			Advice:      "Stay hydrated, use honey, avoid irritants. Use humidifier. See doctor if persistent or bloody.",
			Severity:    SeverityMild,
			Medications: []string{"Dextromethorphan", "Guaifenesin", "Honey with warm water"},
		},
		{
			Key:         "sore_throat",
			Conditions:  []string{"Pharyngitis", "Tonsillitis", "Viral Infection", "Strep Throat"},
			Advice:      "Gargle with salt water, stay hydrated, rest voice. Avoid irritants.",
			Severity:    SeverityMild,
			Medications: []string{"Throat lozenges", "Warm salt water gargle", "Acetaminophen for pain"},
		},
		{
			Key:         "chest_pain",
			Conditions:  []string{"Heart Attack", "Angina", "Anxiety", "Costochondritis"},
			Advice:      "URGENT: Seek immediate medical attention. Call 911 if severe, radiating pain, or with other symptoms.",
			Severity:    SeveritySevere,
			Medications: []string{"DO NOT SELF-MEDICATE - SEEK EMERGENCY CARE"},
		},
		{
			Key:         "shortness_of_breath",
			Conditions:  []string{"Asthma", "Pneumonia", "Heart Problems", "Anxiety"},
			Advice:      "Seek medical attention immediately. Use prescribed inhaler if available. Call 911 if severe.",
			Severity:    SeveritySevere,
			Medications: []string{"Use prescribed inhaler", "SEEK EMERGENCY CARE"},
		},
		{
			Key:         "stomach_pain",
			Conditions:  []string{"Indigestion", "Gastritis", "Appendicitis", "Ulcer"},
			Advice:      "Avoid spicy/fatty foods, eat bland diet. If severe, persistent, or in lower right abdomen, seek immediate care.",
			Severity:    SeverityModerate,
			Medications: []string{"Antacids", "Avoid NSAIDs", "Bland diet (BRAT)"},
		},
		{
			Key:         "abdominal_pain",
			Conditions:  []string{"Gastroenteritis", "IBS", "Appendicitis", "Constipation"},
			Advice:      "Monitor location and severity. Avoid solid foods if severe. Seek care if persistent or worsening.",
			Severity:    SeverityModerate,
			Medications: []string{"Antacids", "Anti-gas medication", "Stay hydrated"},
		},
		{
			Key:         "nausea",
			Conditions:  []string{"Food Poisoning", "Gastroenteritis", "Pregnancy", "Migraine"},
			Advice:      "Stay hydrated with small sips. Eat bland foods (crackers, toast). Rest. Avoid strong smells.",
			Severity:    SeverityMild,
			Medications: []string{"Ginger tea", "Small sips of water", "Ondansetron if prescribed"},
		},
		{
			Key:         "vomiting",
			Conditions:  []string{"Gastroenteritis", "Food Poisoning", "Migraine", "Pregnancy"},
			Advice:      "Stay hydrated. Avoid solid foods initially. Seek care if persistent, bloody, or with severe pain.",
			Severity:    SeverityModerate,
			Medications: []string{"Oral rehydration solution", "Clear liquids", "Anti-emetics if prescribed"},
		},
		{
			Key:         "diarrhea",
			Conditions:  []string{"Gastroenteritis", "Food Poisoning", "IBS", "Infection"},
			Advice:      "Stay hydrated with electrolyte solutions. Eat bland foods. Avoid dairy. See doctor if bloody or persistent.",
			Severity:    SeverityModerate,
			Medications: []string{"Oral rehydration solution", "Loperamide (if no fever)", "Probiotics"},
		},
		{
			Key:         "dizziness",
			Conditions:  []string{"Low Blood Pressure", "Dehydration", "Inner Ear Problem", "Anemia"},
			Advice:      "Sit or lie down immediately. Stay hydrated. Avoid sudden movements. See doctor if frequent.",
			Severity:    SeverityModerate,
			Medications: []string{"Increase fluid intake", "Avoid sudden position changes"},
		},
		{
			Key:         "fatigue",
			Conditions:  []string{"Anemia", "Sleep Deprivation", "Thyroid Issues", "Depression"},
			Advice:      "Ensure 7-8 hours sleep, balanced diet, regular exercise. See doctor if persistent.",
			Severity:    SeverityMild,
			Medications: []string{"Multivitamin", "Iron supplement (if anemic)", "Improve sleep hygiene"},
		},
		{
			Key:         "weakness",
			Conditions:  []string{"Anemia", "Dehydration", "Electrolyte Imbalance", "Chronic Illness"},
			Advice:      "Rest, stay hydrated, eat nutritious meals. See doctor if sudden or severe.",
			Severity:    SeverityModerate,
			Medications: []string{"Electrolyte drinks", "Nutritious diet", "Rest"},
		},
		{
			Key:         "rash",
			Conditions:  []string{"Allergic Reaction", "Eczema", "Contact Dermatitis", "Viral Infection"},
			Advice:      "Avoid irritants, use gentle moisturizers. Antihistamines may help. See doctor if spreading.",
			Severity:    SeverityMild,
			Medications: []string{"Hydrocortisone cream 1%", "Antihistamine (Benadryl)", "Calamine lotion"},
		},
		{
			Key:         "itching",
			Conditions:  []string{"Allergic Reaction", "Dry Skin", "Eczema", "Insect Bite"},
			Advice:      "Avoid scratching, use moisturizers, take cool baths. Antihistamines may help.",
			Severity:    SeverityMild,
			Medications: []string{"Antihistamine", "Moisturizing cream", "Hydrocortisone cream"},
		},
		{
			Key:         "back_pain",
			Conditions:  []string{"Muscle Strain", "Poor Posture", "Herniated Disc", "Kidney Issues"},
			Advice:      "Rest, apply heat/ice, gentle stretching. Maintain good posture. See doctor if severe or persistent.",
			Severity:    SeverityModerate,
			Medications: []string{"Ibuprofen", "Acetaminophen", "Muscle relaxants (if prescribed)"},
		},
		{
			Key:         "joint_pain",
			Conditions:  []string{"Arthritis", "Injury", "Gout", "Infection"},
			Advice:      "Rest affected joint, apply ice, elevate. Gentle movement. See doctor if swollen or persistent.",
			Severity:    SeverityModerate,
			Medications: []string{"Ibuprofen", "Acetaminophen", "Ice packs"},
		},
		{
			Key:         "muscle_pain",
			Conditions:  []string{"Overexertion", "Strain", "Flu", "Fibromyalgia"},
			Advice:      "Rest, apply heat, gentle stretching. Stay hydrated. Massage may help.",
			Severity:    SeverityMild,
			Medications: []string{"Ibuprofen", "Acetaminophen", "Warm compress"},
		},
		{
			Key:         "runny_nose",
			Conditions:  []string{"Common Cold", "Allergies", "Sinusitis", "Flu"},
			Advice:      "Stay hydrated, use saline spray, rest. Avoid irritants. See doctor if persistent.",
			Severity:    SeverityMild,
			Medications: []string{"Decongestant", "Antihistamine", "Saline nasal spray"},
		},
		{
			Key:         "congestion",
			Conditions:  []string{"Common Cold", "Sinusitis", "Allergies", "Flu"},
			Advice:      "Use humidifier, stay hydrated, steam inhalation. Elevate head while sleeping.",
			Severity:    SeverityMild,
			Medications: []string{"Decongestant", "Saline spray", "Steam inhalation"},
		},
		{
			Key:         "sneezing",
			Conditions:  []string{"Allergies", "Common Cold", "Irritants", "Flu"},
			Advice:      "Avoid allergens, stay hydrated, rest. Use tissues and wash hands frequently.",
			Severity:    SeverityMild,
			Medications: []string{"Antihistamine", "Decongestant", "Avoid triggers"},
		},
	}
}

// Dosage is reference guidance for a medication name.
type Dosage struct {
	Dose     string `json:"dose"`
	Timing   string `json:"timing"`
	Duration string `json:"duration"`
}

type dosageEntry struct {
	name string
	Dosage
}

func defaultDosages() []dosageEntry {
	return []dosageEntry{
		{"Acetaminophen 500mg", Dosage{"500mg per dose", "Every 4-6 hours as needed", "Maximum 3000mg per day, up to 7 days"}},
		{"Ibuprofen 400mg", Dosage{"400mg per dose", "Every 6-8 hours with food", "Maximum 1200mg per day, up to 10 days"}},
		{"Acetaminophen", Dosage{"500-1000mg per dose", "Every 4-6 hours", "Do not exceed 3000mg daily"}},
		{"Ibuprofen", Dosage{"200-400mg per dose", "Every 6-8 hours with food", "Short-term use only"}},
		{"Decongestant", Dosage{"As directed on package", "Usually every 12 hours", "Maximum 3-5 days"}},
		{"Antihistamine", Dosage{"As directed (e.g., 25-50mg)", "Once daily or as needed", "Continue as long as symptoms persist"}},
		{"Albuterol inhaler", Dosage{"2 puffs", "Every 4-6 hours as needed", "Use as prescribed by doctor"}},
		{"Hydrocortisone cream 1%", Dosage{"Thin layer", "Apply 2-3 times daily", "Up to 7 days"}},
	}
}

// Timeline is the expected course of a condition under treatment.
type Timeline struct {
	Improvement string `json:"improvement"`
	Recovery    string `json:"recovery"`
}

var (
	// NoConditionTimeline applies when nothing was matched.
	NoConditionTimeline = Timeline{Improvement: "3-5 days", Recovery: "1-2 weeks"}
	defaultTimeline     = Timeline{Improvement: "3-7 days", Recovery: "1-2 weeks"}
)

func defaultTimelines() map[string]Timeline {
	return map[string]Timeline{
		"common cold":             {"3-5 days", "7-10 days"},
		"flu":                     {"3-7 days", "1-2 weeks"},
		"pneumonia":               {"1-2 weeks", "3-4 weeks"},
		"asthma":                  {"Hours with medication", "Chronic management"},
		"bronchitis":              {"1 week", "2-3 weeks"},
		"gastroenteritis":         {"1-3 days", "3-7 days"},
		"migraine":                {"4-72 hours", "Varies"},
		"hypertension":            {"Weeks", "Chronic management"},
		"type 2 diabetes":         {"Weeks to months", "Chronic management"},
		"urinary tract infection": {"2-3 days", "5-7 days"},
	}
}
