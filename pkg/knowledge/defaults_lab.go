package knowledge

var (
	statins      = []string{"Atorvastatin 10-80mg", "Rosuvastatin 5-40mg", "Ezetimibe 10mg", "Omega-3 Fish Oil 1000-2000mg"}
	liverSupport = []string{"Milk Thistle 150-300mg", "Vitamin E 400-800 IU", "Ursodeoxycholic Acid (if prescribed)"}
	ironSupplies = []string{"Ferrous Sulfate 325mg", "Vitamin B12 1000mcg", "Folic Acid 1mg", "Vitamin C 500mg"}
)

func defaultLabTests() []LabTestDefinition {
	return []LabTestDefinition{
		{
			Key: "glucose", Name: "Glucose", Unit: "mg/dL",
			Normal: Range{70, 100}, Plausible: Range{20, 500},
			Patterns: []string{
				`glucose[:\s]+(\d+\.?\d*)`,
				`blood\s+sugar[:\s]+(\d+\.?\d*)`,
				`fasting\s+glucose[:\s]+(\d+\.?\d*)`,
				`glu[:\s]+(\d+\.?\d*)`,
				`bs[:\s]+(\d+\.?\d*)`,
			},
			Low:  Band{Condition: "Hypoglycemia", Medications: []string{"Glucose tablets (15-20g)", "Fast-acting carbohydrates"}},
			High: Band{Condition: "Hyperglycemia", Medications: []string{"Metformin 500mg", "Glimepiride 1-2mg", "Insulin (if severe)"}},
		},
		{
			Key: "cholesterol", Name: "Total Cholesterol", Unit: "mg/dL",
			Normal: Range{0, 200}, Plausible: Range{50, 500},
			Patterns: []string{
				`total\s+cholesterol[:\s]+(\d+\.?\d*)`,
				`cholesterol[:\s]+(\d+\.?\d*)`,
				`chol[:\s]+(\d+\.?\d*)`,
				`t\.chol[:\s]+(\d+\.?\d*)`,
			},
			Low:  Band{Condition: "Low Cholesterol"},
			High: Band{Condition: "Hypercholesterolemia", Medications: statins},
		},
		{
			Key: "hdl", Name: "HDL Cholesterol", Unit: "mg/dL",
			Normal: Range{40, 1000}, Plausible: Range{10, 200},
			Patterns: []string{
				`hdl[:\s-]+cholesterol[:\s]+(\d+\.?\d*)`,
				`hdl[:\s]+(\d+\.?\d*)`,
				`hdl-c[:\s]+(\d+\.?\d*)`,
			},
			Low:  Band{Condition: "Low HDL Cholesterol", Medications: []string{"Omega-3 Fish Oil 1000-2000mg", "Niacin (if prescribed)"}},
			High: Band{Condition: "High HDL Cholesterol"},
		},
		{
			Key: "ldl", Name: "LDL Cholesterol", Unit: "mg/dL",
			Normal: Range{0, 100}, Plausible: Range{10, 300},
			Patterns: []string{
				`ldl[:\s-]+cholesterol[:\s]+(\d+\.?\d*)`,
				`ldl[:\s]+(\d+\.?\d*)`,
				`ldl-c[:\s]+(\d+\.?\d*)`,
			},
			Low:  Band{Condition: "Low LDL Cholesterol"},
			High: Band{Condition: "Hypercholesterolemia", Medications: statins},
		},
		{
			Key: "triglycerides", Name: "Triglycerides", Unit: "mg/dL",
			Normal: Range{0, 150}, Plausible: Range{20, 1000},
			Patterns: []string{
				`triglycerides[:\s]+(\d+\.?\d*)`,
				`trig[:\s]+(\d+\.?\d*)`,
				`tg[:\s]+(\d+\.?\d*)`,
			},
			Low:  Band{Condition: "Low Triglycerides"},
			High: Band{Condition: "Hypertriglyceridemia", Medications: []string{"Omega-3 Fish Oil 1000-2000mg", "Fenofibrate (if prescribed)"}},
		},
		{
			Key: "hemoglobin", Name: "Hemoglobin", Unit: "g/dL",
			Normal: Range{12, 17}, Plausible: Range{5, 25},
			Patterns: []string{
				`hemoglobin[:\s]+(\d+\.?\d*)`,
				`haemoglobin[:\s]+(\d+\.?\d*)`,
				`hgb[:\s]+(\d+\.?\d*)`,
				`hb[:\s]+(\d+\.?\d*)`,
			},
			Low:  Band{Condition: "Anemia", Medications: ironSupplies},
			High: Band{Condition: "Polycythemia"},
		},
		{
			Key: "wbc", Name: "White Blood Cells", Unit: "cells/mcL",
			Normal: Range{4000, 11000}, Plausible: Range{1000, 50000},
			Patterns: []string{
				`white\s+blood\s+cell[s]?[:\s]+(\d+\.?\d*)`,
				`wbc[:\s]+(\d+\.?\d*)`,
				`leukocyte[s]?[:\s]+(\d+\.?\d*)`,
				`tc[:\s]+(\d+\.?\d*)`,
			},
			Low:  Band{Condition: "Leukopenia", Medications: []string{"G-CSF (Filgrastim) if prescribed", "Vitamin B12", "Folate", "Zinc"}},
			High: Band{Condition: "Leukocytosis", Medications: []string{"Amoxicillin 500mg (if bacterial)", "Azithromycin 250mg (if prescribed)", "Ibuprofen 400mg"}},
		},
		{
			Key: "rbc", Name: "Red Blood Cells", Unit: "million cells/mcL",
			Normal: Range{4.5, 5.5}, Plausible: Range{2, 10},
			Patterns: []string{
				`red\s+blood\s+cell[s]?[:\s]+(\d+\.?\d*)`,
				`rbc[:\s]+(\d+\.?\d*)`,
				`erythrocyte[s]?[:\s]+(\d+\.?\d*)`,
			},
			Low:  Band{Condition: "Low Red Blood Cell Count", Medications: []string{"Ferrous Sulfate 325mg", "Vitamin B12 1000mcg"}},
			High: Band{Condition: "Erythrocytosis"},
		},
		{
			Key: "platelets", Name: "Platelets", Unit: "platelets/mcL",
			Normal: Range{150000, 400000}, Plausible: Range{50000, 1000000},
			Patterns: []string{
				`platelet[s]?[:\s]+(\d+\.?\d*)`,
				`plt[:\s]+(\d+\.?\d*)`,
				`thrombocyte[s]?[:\s]+(\d+\.?\d*)`,
			},
			Low:  Band{Condition: "Thrombocytopenia"},
			High: Band{Condition: "Thrombocytosis"},
		},
		{
			Key: "creatinine", Name: "Creatinine", Unit: "mg/dL",
			Normal: Range{0.6, 1.2}, Plausible: Range{0.1, 15},
			Patterns: []string{
				`creatinine[:\s]+(\d+\.?\d*)`,
				`creat[:\s]+(\d+\.?\d*)`,
				`cr[:\s]+(\d+\.?\d*)`,
			},
			Low:  Band{Condition: "Low Creatinine"},
			High: Band{Condition: "Possible Kidney Dysfunction", Medications: []string{"Lisinopril 5-40mg", "Furosemide 20-80mg", "Sodium Bicarbonate 650mg"}},
		},
		{
			Key: "alt", Name: "ALT (SGPT)", Unit: "U/L",
			Normal: Range{7, 56}, Plausible: Range{1, 500},
			Patterns: []string{
				`alt[:\s]+(\d+\.?\d*)`,
				`sgpt[:\s]+(\d+\.?\d*)`,
				`alanine\s+aminotransferase[:\s]+(\d+\.?\d*)`,
			},
			Low:  Band{Condition: "Low ALT"},
			High: Band{Condition: "Elevated Liver Enzymes", Medications: liverSupport},
		},
		{
			Key: "ast", Name: "AST (SGOT)", Unit: "U/L",
			Normal: Range{10, 40}, Plausible: Range{1, 500},
			Patterns: []string{
				`ast[:\s]+(\d+\.?\d*)`,
				`sgot[:\s]+(\d+\.?\d*)`,
				`aspartate\s+aminotransferase[:\s]+(\d+\.?\d*)`,
			},
			Low:  Band{Condition: "Low AST"},
			High: Band{Condition: "Elevated Liver Enzymes", Medications: liverSupport},
		},
	}
}
