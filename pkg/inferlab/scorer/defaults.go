package scorer

// Default returns the bundled respiratory/digestive scoring table.
// Condition and symptom names line up with sampledata.Medical so the
// scorer can rank whatever the engines derive from that rulebase.
func Default() *Table {
	return &Table{
		Weights: map[string]map[string]float64{
			"common_cold": {
				"fever":            0.75,
				"cough":            0.85,
				"runny_nose":       0.80,
				"throat_pain":      0.70,
				"headache":         0.60,
				"fatigue":          0.55,
				"high_temperature": 0.65,
				// contra-indications
				"shortness_of_breath": -0.30,
				"low_spo2":            -0.50,
				"loss_of_taste":       -0.40,
				"loss_of_smell":       -0.40,
				"coughing_blood":      -0.60,
			},
			"covid19": {
				"loss_of_taste":       0.95,
				"loss_of_smell":       0.95,
				"fever":               0.85,
				"cough":               0.80,
				"shortness_of_breath": 0.85,
				"fatigue":             0.75,
				"headache":            0.70,
				"high_fever":          0.80,
				"throat_pain":         0.60,
				"runny_nose":          0.55,
			},
			"suspected_covid": {
				"loss_of_taste":       0.90,
				"loss_of_smell":       0.90,
				"fever":               0.80,
				"cough":               0.75,
				"shortness_of_breath": 0.80,
				"fatigue":             0.70,
				"headache":            0.65,
			},
			"pneumonia": {
				"high_fever":          0.90,
				"productive_cough":    0.90,
				"shortness_of_breath": 0.95,
				"chest_pain":          0.85,
				"low_spo2":            0.90,
				"coughing_blood":      0.85,
				"fatigue":             0.70,
				"cough":               0.75,
				"fever":               0.80,
				"high_temperature":    0.85,
			},
			"pharyngitis": {
				"throat_pain":           0.95,
				"difficulty_swallowing": 0.90,
				"fever":                 0.70,
				"cough":                 0.65,
				"fatigue":               0.55,
				"high_temperature":      0.60,
				"runny_nose":            0.50,
			},
			"asthma": {
				"shortness_of_breath": 0.95,
				"wheezing":            0.90,
				"cough":               0.75,
				"irritant_exposure":   0.80,
				"chest_pain":          0.60,
			},
			"gastritis": {
				"abdominal_pain":       0.90,
				"nausea":               0.85,
				"chronic_pain":         0.80,
				"vomiting_after_meals": 0.85,
				"indigestion":          0.75,
				// contra-indications
				"cough":               -0.30,
				"shortness_of_breath": -0.40,
				"runny_nose":          -0.20,
			},
			"food_poisoning": {
				"nausea":         0.95,
				"diarrhea":       0.95,
				"abdominal_pain": 0.90,
				"vomiting_blood": 0.85,
				"fever":          0.65,
				"fatigue":        0.60,
			},
		},
		Priors: map[string]float64{
			"common_cold":     0.20,
			"pharyngitis":     0.12,
			"covid19":         0.08,
			"suspected_covid": 0.06,
			"pneumonia":       0.03,
			"asthma":          0.05,
			"gastritis":       0.08,
			"food_poisoning":  0.02,
		},
		Severity: map[string]map[string]float64{
			"common_cold": {
				"shortness_of_breath": 25,
				"low_spo2":            30,
				"coughing_blood":      35,
				"high_fever":          15,
			},
			"pharyngitis": {
				"shortness_of_breath": 20,
				"low_spo2":            25,
				"coughing_blood":      30,
			},
			"suspected_covid": {
				"low_spo2":       15,
				"coughing_blood": 20,
			},
		},
		Combos: map[string][]Combo{
			"covid19": {
				{Symptoms: []string{"loss_of_taste", "loss_of_smell"}, Bonus: 20},
				{Symptoms: []string{"fever", "cough", "shortness_of_breath"}, Bonus: 15},
				{Symptoms: []string{"loss_of_taste", "fever", "cough"}, Bonus: 18},
			},
			"suspected_covid": {
				{Symptoms: []string{"loss_of_taste", "loss_of_smell"}, Bonus: 18},
				{Symptoms: []string{"fever", "cough", "shortness_of_breath"}, Bonus: 12},
			},
			"pneumonia": {
				{Symptoms: []string{"high_fever", "shortness_of_breath", "productive_cough"}, Bonus: 20},
				{Symptoms: []string{"shortness_of_breath", "chest_pain", "low_spo2"}, Bonus: 25},
				{Symptoms: []string{"high_fever", "shortness_of_breath"}, Bonus: 15},
			},
			"food_poisoning": {
				{Symptoms: []string{"nausea", "diarrhea", "abdominal_pain"}, Bonus: 20},
				{Symptoms: []string{"nausea", "diarrhea"}, Bonus: 12},
			},
		},
		Caps: map[string]float64{
			"common_cold": 80,
			"pharyngitis": 85,
		},
	}
}
