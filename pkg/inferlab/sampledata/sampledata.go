// Package sampledata bundles the demonstration rulebases.
package sampledata

import "github.com/inferlab/inferlab/pkg/inferlab/config"

// Triangle is the classic triangle-geometry rulebase: lowercase atoms
// are side lengths and derived quantities, uppercase atoms angles.
// From facts {a, b, c} forward chaining can reach the circumradius r.
func Triangle() *config.Rulebase {
	return &config.Rulebase{
		Name: "triangle-demo",
		Rules: []string{
			"a ^ b ^ C -> c",
			"a ^ b ^ ma -> c",
			"a ^ b ^ mb -> c",
			"A ^ B -> C",
			"a ^ hc -> B",
			"b ^ hc -> A",
			"a ^ R -> A",
			"b ^ R -> B",
			"a ^ b ^ c -> P",
			"a ^ b ^ c -> p",
			"a ^ b ^ c -> mc",
			"a ^ ha -> S",
			"a ^ b ^ C -> S",
			"a ^ b ^ c ^ p -> S",
			"b ^ S -> hb",
			"S ^ p -> r",
		},
		Facts: []string{"a", "b", "c"},
		Goals: []string{"r"},
	}
}

// Medical is a small symptom-to-condition rulebase whose atom
// vocabulary matches the default scorer table. Conditions are derived
// facts; the scorer then ranks whichever conditions inference reaches.
func Medical() *config.Rulebase {
	return &config.Rulebase{
		Name: "medical-demo",
		Rules: []string{
			"fever ^ cough ^ runny_nose -> common_cold",
			"throat_pain ^ fever -> common_cold",
			"high_temperature -> fever",
			"fever ^ cough ^ fatigue -> suspected_covid",
			"loss_of_taste ^ loss_of_smell -> suspected_covid",
			"suspected_covid ^ loss_of_taste -> covid19",
			"suspected_covid ^ shortness_of_breath -> covid19",
			"high_fever ^ productive_cough ^ shortness_of_breath -> pneumonia",
			"low_spo2 ^ chest_pain -> pneumonia",
			"throat_pain ^ difficulty_swallowing -> pharyngitis",
			"shortness_of_breath ^ wheezing -> asthma",
			"irritant_exposure ^ cough ^ shortness_of_breath -> asthma",
			"abdominal_pain ^ nausea ^ indigestion -> gastritis",
			"vomiting_after_meals ^ chronic_pain -> gastritis",
			"nausea ^ diarrhea ^ abdominal_pain -> food_poisoning",
		},
		Facts: []string{},
		Goals: []string{"common_cold", "suspected_covid", "covid19", "pneumonia", "pharyngitis", "asthma", "gastritis", "food_poisoning"},
	}
}
