// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"

	"github.com/pdiddy/diligence-engine/pkg/types"
)

// taAliases maps case-folded therapeutic-area labels to their key. Lookup
// is exact: a label that merely contains a known word (for example
// "veterinary oncology") is not an alias and resolves to GENERAL.
var taAliases = map[string]types.TherapeuticArea{
	"oncology":                   types.TAOncology,
	"cancer":                     types.TAOncology,
	"onc":                        types.TAOncology,
	"solid tumors":               types.TAOncology,
	"hematology/oncology":        types.TAOncology,
	"hematology":                 types.TAHematology,
	"haematology":                types.TAHematology,
	"blood disorders":            types.TAHematology,
	"cardiovascular":             types.TACardiovascular,
	"cardiology":                 types.TACardiovascular,
	"cardio":                     types.TACardiovascular,
	"cv":                         types.TACardiovascular,
	"metabolic":                  types.TAMetabolic,
	"metabolism":                 types.TAMetabolic,
	"endocrinology":              types.TAMetabolic,
	"cardiometabolic":            types.TAMetabolic,
	"diabetes":                   types.TAMetabolic,
	"obesity":                    types.TAMetabolic,
	"neurology":                  types.TANeurology,
	"neuro":                      types.TANeurology,
	"neuroscience":               types.TANeurology,
	"cns":                        types.TANeurology,
	"psychiatry":                 types.TAPsychiatry,
	"mental health":              types.TAPsychiatry,
	"infectious disease":         types.TAInfectiousDisease,
	"infectious diseases":        types.TAInfectiousDisease,
	"infectious_disease":         types.TAInfectiousDisease,
	"anti-infectives":            types.TAInfectiousDisease,
	"vaccines":                   types.TAInfectiousDisease,
	"virology":                   types.TAInfectiousDisease,
	"immunology":                 types.TAImmunology,
	"i&i":                        types.TAImmunology,
	"inflammation":               types.TAImmunology,
	"immunology & inflammation":  types.TAImmunology,
	"autoimmune":                 types.TAImmunology,
	"rheumatology":               types.TAImmunology,
	"respiratory":                types.TARespiratory,
	"pulmonology":                types.TARespiratory,
	"rare disease":               types.TARareDisease,
	"rare diseases":              types.TARareDisease,
	"rare_disease":               types.TARareDisease,
	"orphan":                     types.TARareDisease,
	"ophthalmology":              types.TAOphthalmology,
	"eye disease":                types.TAOphthalmology,
	"dermatology":                types.TADermatology,
	"gastroenterology":           types.TAGastroenterology,
	"gi":                         types.TAGastroenterology,
	"hepatology":                 types.TAGastroenterology,
	"general":                    types.TAGeneral,
}

// NormalizeTherapeuticArea returns the key for a therapeutic-area label.
// Keys are accepted as-is; unknown labels return types.TAGeneral.
func NormalizeTherapeuticArea(raw string) types.TherapeuticArea {
	ta, _ := LookupTherapeuticArea(raw)
	return ta
}

// LookupTherapeuticArea is NormalizeTherapeuticArea that also reports
// whether raw was a recognized label. Filters use it to reject typos
// instead of silently selecting GENERAL.
func LookupTherapeuticArea(raw string) (types.TherapeuticArea, bool) {
	s := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	if s == "" {
		return types.TAGeneral, false
	}
	if ta, ok := taAliases[s]; ok {
		return ta, true
	}
	for _, ta := range types.TherapeuticAreas {
		if strings.EqualFold(s, string(ta)) {
			return ta, true
		}
	}
	return types.TAGeneral, false
}

// ConditionRule assigns a therapeutic area to a condition containing any of
// Keywords. Rules are evaluated in order; the first match wins.
type ConditionRule struct {
	Keywords []string
	Area     types.TherapeuticArea
}

// ConditionRules is checked only when a record carries no therapeutic area.
// Hematologic malignancies are matched before the general hematology and
// oncology rules so "leukemia" lands in ONCOLOGY, not HEMATOLOGY.
var ConditionRules = []ConditionRule{
	{Keywords: []string{"leukemia", "lymphoma", "myeloma"}, Area: types.TAOncology},
	{Keywords: []string{"cancer", "carcinoma", "tumor", "tumour", "neoplasm", "sarcoma", "melanoma", "glioblastoma", "oncology"}, Area: types.TAOncology},
	{Keywords: []string{"hemophilia", "sickle cell", "thalassemia", "anemia", "thrombocytopenia"}, Area: types.TAHematology},
	{Keywords: []string{"heart", "cardiac", "hypertension", "atrial", "coronary", "cardiomyopathy", "atherosclero"}, Area: types.TACardiovascular},
	{Keywords: []string{"diabetes", "obesity", "dyslipidemia", "nash", "mash", "hypercholesterol"}, Area: types.TAMetabolic},
	{Keywords: []string{"alzheimer", "parkinson", "epilepsy", "multiple sclerosis", "migraine", "als", "neuropathy"}, Area: types.TANeurology},
	{Keywords: []string{"depress", "schizophrenia", "bipolar", "anxiety", "ptsd", "adhd"}, Area: types.TAPsychiatry},
	{Keywords: []string{"hiv", "hepatitis", "influenza", "covid", "sars-cov", "infection", "bacterial", "viral", "tuberculosis", "malaria"}, Area: types.TAInfectiousDisease},
	{Keywords: []string{"arthritis", "psoriasis", "lupus", "crohn", "colitis", "atopic", "eczema"}, Area: types.TAImmunology},
	{Keywords: []string{"asthma", "copd", "pulmonary", "cystic fibrosis"}, Area: types.TARespiratory},
	{Keywords: []string{"macular", "retina", "glaucoma", "uveitis"}, Area: types.TAOphthalmology},
	{Keywords: []string{"acne", "dermatitis", "alopecia", "vitiligo"}, Area: types.TADermatology},
	{Keywords: []string{"irritable bowel", "gastro", "liver", "cirrhosis"}, Area: types.TAGastroenterology},
	{Keywords: []string{"rare", "orphan", "duchenne", "spinal muscular", "fabry", "gaucher", "pompe"}, Area: types.TARareDisease},
}

// InferTherapeuticArea classifies a record from its conditions. Conditions
// are tried in order; GENERAL is returned when none match.
func InferTherapeuticArea(conditions []string) types.TherapeuticArea {
	for _, c := range conditions {
		words := " " + strings.ToLower(c) + " "
		for _, r := range ConditionRules {
			for _, kw := range r.Keywords {
				if containsWord(words, kw) {
					return r.Area
				}
			}
		}
	}
	return types.TAGeneral
}

// containsWord reports whether kw starts at a word boundary in padded.
// Prefix matching lets "depress" cover "depression" and "depressive".
func containsWord(padded, kw string) bool {
	for i := 0; ; {
		j := strings.Index(padded[i:], kw)
		if j < 0 {
			return false
		}
		at := i + j
		if at > 0 && !isWordByte(padded[at-1]) {
			return true
		}
		i = at + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}
