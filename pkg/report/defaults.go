package report

import "github.com/synaptica-ai/diagnostics/pkg/knowledge"

// Template condition keys for modalities whose label is not a class name.
const (
	LabKey  = "lab"
	ChatKey = "chat"
)

// Reply keys.
const (
	ReplyGreeting  = "greeting"
	ReplyFarewell  = "farewell"
	ReplyHelp      = "help"
	ReplyEmergency = "emergency"
	ReplyFallback  = "fallback"
)

const (
	planHeader = "{{upper .Condition}} TREATMENT PLAN\nSeverity: {{upper .Severity}}\n\n"
	planMeds   = "{{if .Medications}}\n\nMedications: {{join (first .Medications 4) \", \"}}{{end}}"
	planSigns  = "{{if .EmergencySigns}}\n\nEmergency signs: {{join .EmergencySigns \", \"}}. Seek care immediately if these appear.{{end}}"
)

func skinPlan(condition, text string, tips ...string) Template {
	return Template{
		Condition:       condition,
		Severity:        Wildcard,
		Treatment:       planHeader + text + planMeds + planSigns,
		Recommendations: tips,
	}
}

func respiratoryPlan(condition, text string, tips ...string) Template {
	return Template{
		Condition:       condition,
		Severity:        Wildcard,
		Treatment:       text + planSigns,
		Recommendations: tips,
	}
}

func defaultCatalog() *Catalog {
	return &Catalog{
		Templates:     defaultTemplates(),
		General:       defaultGeneral(),
		LabGroups:     defaultLabGroups(),
		SymptomGroups: defaultSymptomGroups(),
		Replies:       defaultReplies(),
		Disclaimer:    DefaultDisclaimer,
	}
}

func defaultTemplates() []Template {
	return []Template{
		{
			Condition: knowledge.HealthySkin,
			Severity:  Wildcard,
			Treatment: "Your skin appears healthy! Continue with regular skincare routine: gentle cleanser, moisturizer, and sunscreen daily.",
		},
		{
			Condition: knowledge.Acne,
			Severity:  "severe",
			Treatment: planHeader + "Recommended: Benzoyl peroxide or salicylic acid cleanser. " +
				"Widespread or cystic acne needs a dermatologist for prescription treatment." + planMeds,
			Recommendations: []string{"Avoid touching face", "Change pillowcases regularly", "Use oil-free products", "Book a dermatologist appointment"},
		},
		skinPlan(knowledge.Acne,
			"Recommended: Benzoyl peroxide or salicylic acid cleanser. Consult dermatologist for severe cases.",
			"Avoid touching face", "Change pillowcases regularly", "Use oil-free products"),
		skinPlan(knowledge.Eczema,
			"Use moisturizing creams and avoid irritants. Hydrocortisone cream may help. See a doctor if severe.",
			"Use fragrance-free moisturizers", "Take short, lukewarm showers", "Wear soft fabrics"),
		skinPlan(knowledge.Psoriasis,
			"Topical corticosteroids and moisturizers recommended. Consult dermatologist for treatment plan.",
			"Moisturize daily", "Avoid stress", "Consider phototherapy"),
		skinPlan(knowledge.Melanoma,
			"URGENT: Please consult a dermatologist immediately for proper diagnosis and treatment.",
			"Schedule immediate dermatologist appointment", "Monitor mole changes", "Avoid sun exposure"),
		skinPlan(knowledge.Dermatitis,
			"Avoid allergens and use gentle, fragrance-free products. Antihistamines may help with itching.",
			"Identify and avoid triggers", "Use hypoallergenic products", "Keep skin moisturized"),
		skinPlan(knowledge.Rosacea,
			"Avoid triggers (spicy food, alcohol, sun). Use gentle skincare. Consult doctor for prescription treatment.",
			"Avoid hot beverages", "Use sunscreen daily", "Keep skincare routine simple"),
		skinPlan(knowledge.FungalInfection,
			"Antifungal creams (clotrimazole, miconazole) recommended. Keep area clean and dry.",
			"Keep area dry", "Wear breathable clothing", "Avoid sharing personal items"),

		respiratoryPlan(knowledge.HealthyBreathing,
			"Your breathing sounds normal. Continue maintaining good respiratory health.",
			"Continue healthy lifestyle", "Regular cardiovascular exercise", "Practice breathing exercises",
			"Eat antioxidant-rich foods", "Maintain good posture", "Spend time in fresh air",
			"Manage stress effectively", "Stay up-to-date with vaccinations"),
		respiratoryPlan(knowledge.Asthma,
			"Use prescribed inhaler as directed. Avoid triggers. Keep rescue inhaler available. Consult pulmonologist.",
			"Keep a symptom diary to identify triggers", "Always carry rescue inhaler (albuterol)",
			"Warm up before exercise, avoid cold air", "Reduce allergens: dust mites, pet dander, mold",
			"Get flu vaccine annually", "Monitor peak flow regularly", "Have an asthma action plan",
			"Regular follow-ups with pulmonologist", "Avoid temperature extremes", "Manage stress (can trigger attacks)"),
		respiratoryPlan(knowledge.Bronchitis,
			"Rest, stay hydrated, use humidifier. Avoid smoking. See doctor if symptoms persist over 3 weeks.",
			"Use cool-mist humidifier", "Avoid cold air exposure", "Get plenty of rest",
			"Avoid irritants: smoke, fumes, dust", "Honey and warm liquids for cough relief", "Use saline nasal spray",
			"Take prescribed antibiotics if bacterial", "Cover mouth when coughing", "Wash hands frequently",
			"Seek care if symptoms worsen after 3 weeks"),
		respiratoryPlan(knowledge.Pneumonia,
			"IMPORTANT: Consult doctor immediately. May require antibiotics. Rest and stay hydrated.",
			"URGENT: Complete full antibiotic course", "Rest adequately, avoid strenuous activity",
			"Monitor temperature regularly", "Drink plenty of fluids", "Deep breathing exercises to prevent complications",
			"Take all prescribed medications", "Seek immediate care if breathing worsens",
			"Get pneumonia vaccine (if eligible)", "Follow-up chest X-ray after treatment",
			"Watch for complications: chest pain, confusion"),
		respiratoryPlan(knowledge.COPD,
			"Follow prescribed treatment plan. Quit smoking. Pulmonary rehabilitation recommended. Regular doctor visits.",
			"QUIT SMOKING immediately (most critical!)", "Use prescribed inhalers correctly",
			"Follow pulmonary rehabilitation program", "Use oxygen therapy as prescribed", "Get flu and pneumonia vaccines",
			"Maintain healthy weight", "Eat nutritious, high-protein diet", "Avoid respiratory infections",
			"Keep home well-ventilated", "Regular check-ups with pulmonologist", "Monitor oxygen saturation",
			"Have emergency action plan"),
		respiratoryPlan(knowledge.WhoopingCough,
			"Seek medical attention. Antibiotics may be needed. Isolate to prevent spread. Stay hydrated.",
			"URGENT: Isolate to prevent spread", "Complete full antibiotic course (erythromycin)",
			"Cover mouth when coughing", "Disinfect surfaces regularly", "Stay hydrated, small frequent sips",
			"Eat small, frequent meals", "Rest in upright position", "Use cool-mist humidifier",
			"Avoid irritants and smoke", "Keep away from infants (very dangerous for them)",
			"Ensure family members are vaccinated", "Seek immediate care if turning blue or severe coughing"),

		{
			Condition: LabKey,
			Severity:  "none",
			Treatment: "Continue maintaining a healthy lifestyle",
		},
		{
			Condition: LabKey,
			Severity:  Wildcard,
			Treatment: "LAB RESULTS TREATMENT PLAN\n" +
				"{{range .Findings}}\n{{upper .Name}}: {{.Value}} ({{upper .Status}}), normal range {{.NormalRange}}\n" +
				"  Condition: {{.Condition}}{{if .Medications}}\n  Medications: {{join .Medications \", \"}}{{end}}\n{{end}}",
			Recommendations: []string{
				"Consult with your healthcare provider to discuss these results",
				"Bring this analysis to your doctor appointment",
				"Schedule follow-up tests as recommended by your doctor",
			},
		},

		{
			Condition: ChatKey,
			Severity:  "severe",
			Treatment: chatBody + "\n\nURGENT: Your symptoms may indicate a serious condition. " +
				"Go to the emergency room or call 911. Do not delay medical care.",
			Recommendations: []string{"PRIORITY: Seek immediate medical attention"},
		},
		{
			Condition: ChatKey,
			Severity:  "moderate",
			Treatment: chatBody + "\n\nIMPORTANT: Consult a healthcare provider within 24-48 hours. " +
				"Monitor symptoms closely and seek immediate care if they worsen.",
		},
		{
			Condition: ChatKey,
			Severity:  Wildcard,
			Treatment: chatBody + "\n\nFOLLOW-UP: Symptoms are typically mild and self-care measures should help. " +
				"Consult a doctor if symptoms persist for more than 7 days.",
		},

		{
			Condition: Wildcard,
			Severity:  Wildcard,
			Treatment: "{{if .Description}}{{.Description}}. {{end}}" +
				"{{if .Medications}}Recommended: {{join (first .Medications 3) \", \"}}. {{end}}" +
				"Consult a healthcare provider for a treatment plan." + planSigns,
		},
	}
}

const chatBody = "Symptoms detected: {{upper (join .Symptoms \", \")}}" +
	"{{if .Conditions}}\nMost likely conditions: {{join (first .Conditions 3) \", \"}}{{end}}" +
	"{{range .Advice}}\n- {{.}}{{end}}"

func defaultGeneral() map[string][]string {
	return map[string][]string{
		"skin": {
			"Maintain good hygiene",
			"Stay hydrated",
			"Protect skin from sun exposure",
			"Use gentle, non-irritating products",
		},
		"respiratory": {
			"Avoid smoking and secondhand smoke (most important!)",
			"Stay well hydrated (8-10 glasses of water daily)",
			"Practice deep breathing exercises (diaphragmatic breathing)",
			"Maintain good air quality at home (use air purifiers)",
			"Avoid air pollutants and irritants",
			"Keep indoor humidity at 30-50%",
			"Regular moderate exercise to strengthen lungs",
			"Get adequate sleep (7-9 hours) for immune function",
		},
		"respiratory_urgent": {
			"IMPORTANT: This is a serious condition. Follow medical advice strictly!",
		},
		"lab": {
			"Maintain a balanced, nutritious diet rich in fruits and vegetables",
			"Exercise regularly (150 minutes moderate activity per week)",
			"Stay well hydrated (8-10 glasses of water daily)",
			"Get adequate sleep (7-9 hours per night)",
			"Manage stress through meditation, yoga, or relaxation techniques",
			"Avoid smoking and limit alcohol consumption",
			"Maintain healthy body weight (BMI 18.5-24.9)",
		},
		"lab_monitoring": {
			"Keep a health journal to track symptoms and lifestyle changes",
			"Schedule regular check-ups and lab tests as advised",
			"Consider using health tracking apps for diet and exercise",
			"Join support groups if managing chronic conditions",
		},
		"chat": {
			"Stay well hydrated (8-10 glasses of water daily)",
			"Get adequate rest (7-9 hours of sleep)",
			"Maintain good hygiene (wash hands frequently)",
		},
		"emergency": {
			"Call emergency services (911) immediately",
			"Go to the nearest emergency room",
			"Do not drive yourself if you feel faint or short of breath",
		},
	}
}

func defaultLabGroups() []Group {
	return []Group{
		{
			Keys: []string{"glucose", "cholesterol", "triglycerides"},
			Recommendations: []string{
				"Follow a low-glycemic, heart-healthy diet (Mediterranean diet recommended)",
				"Increase aerobic exercise (walking, jogging, swimming)",
				"Achieve and maintain healthy weight",
				"Limit sugary drinks and processed foods",
			},
		},
		{
			Keys: []string{"hemoglobin"},
			Recommendations: []string{
				"Eat iron-rich foods: red meat, spinach, lentils, fortified cereals",
				"Consume vitamin C with iron-rich meals for better absorption",
				"Consider iron supplements (consult doctor first)",
				"Check for sources of blood loss (heavy periods, GI bleeding)",
			},
		},
		{
			Keys: []string{"wbc", "rbc", "platelets"},
			Recommendations: []string{
				"Boost immune system: adequate sleep, stress management, balanced diet",
				"Practice good hygiene to prevent infections",
				"Take multivitamin with B12, folate, and iron",
				"Follow up with hematologist if values are significantly abnormal",
			},
		},
		{
			Keys: []string{"creatinine", "alt", "ast"},
			Recommendations: []string{
				"Increase water intake to support kidney/liver function",
				"Avoid alcohol and hepatotoxic/nephrotoxic medications",
				"Follow kidney/liver-friendly diet (low sodium, moderate protein)",
				"Review all medications with doctor",
			},
		},
		{
			Keys: []string{"cholesterol", "ldl", "triglycerides"},
			Recommendations: []string{
				"Eat omega-3 rich fish (salmon, mackerel) 2-3 times per week",
				"Include nuts, seeds, and healthy fats (avocado, olive oil)",
				"Increase soluble fiber (oats, beans, apples)",
				"Avoid trans fats and limit saturated fats",
			},
		},
	}
}

func defaultSymptomGroups() []Group {
	return []Group{
		{
			Keys: []string{"fever", "high_fever"},
			Recommendations: []string{
				"Monitor temperature every 4 hours",
				"Use cool compresses if fever is high",
				"Avoid bundling up excessively",
			},
		},
		{
			Keys: []string{"cough", "persistent_cough"},
			Recommendations: []string{
				"Use humidifier or steam inhalation",
				"Avoid irritants (smoke, strong odors)",
				"Try honey for throat soothing (if over 1 year old)",
			},
		},
		{
			Keys: []string{"nausea", "vomiting", "stomach_pain"},
			Recommendations: []string{
				"Eat bland foods (BRAT diet: Bananas, Rice, Applesauce, Toast)",
				"Avoid spicy, fatty, or acidic foods",
				"Small frequent meals instead of large meals",
			},
		},
		{
			Keys: []string{"headache", "severe_headache"},
			Recommendations: []string{
				"Rest in quiet, dark room",
				"Apply cold or warm compress to head",
				"Avoid screens and bright lights",
			},
		},
	}
}

func defaultReplies() map[string]string {
	return map[string]string{
		ReplyGreeting: "Hello! I'm your medical AI assistant. Please describe your symptoms, and I'll provide medical advice. " +
			"Remember, I'm not a replacement for professional medical care.",
		ReplyFarewell: "Take care! Remember to consult with a healthcare professional for serious concerns. Stay healthy!",
		ReplyHelp: "I'm here to help! You can describe your symptoms for medical advice, upload skin images for analysis, " +
			"upload lab reports for interpretation, or record cough sounds for respiratory analysis.",
		ReplyEmergency: "EMERGENCY: Please call emergency services (911) immediately or go to the nearest emergency room. " +
			"This is a medical emergency that requires immediate professional attention.",
		ReplyFallback: "I'm not sure I understand. Could you describe your symptoms or health concerns?",
	}
}
