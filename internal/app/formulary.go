package app

import (
	"fmt"
	"os"
	"strings"

	"clinical_voice_service/internal/pkg/logger"

	"github.com/bytedance/sonic"
)

// FormularyEntry describes one medication in the local formulary.
type FormularyEntry struct {
	Name         string   `json:"name"`
	Class        string   `json:"class"`
	Indication   string   `json:"indication"`
	Interactions []string `json:"interactions"`
}

// Formulary is the in-memory medication reference backing the medication
// agent. Lookups are case-insensitive.
type Formulary struct {
	entries []FormularyEntry
}

type formularyDocument struct {
	Medications []FormularyEntry `json:"medications"`
}

// defaultFormulary seeds the formulary when no data file is configured.
var defaultFormulary = []FormularyEntry{
	{Name: "Aspirin", Class: "NSAID", Indication: "Pain relief and antiplatelet therapy", Interactions: []string{"Warfarin", "Ibuprofen"}},
	{Name: "Ibuprofen", Class: "NSAID", Indication: "Pain and inflammation", Interactions: []string{"Warfarin", "Lisinopril"}},
	{Name: "Warfarin", Class: "Anticoagulant", Indication: "Prevention of blood clots", Interactions: []string{"Aspirin", "Ibuprofen", "Amoxicillin"}},
	{Name: "Lisinopril", Class: "ACE inhibitor", Indication: "Hypertension", Interactions: []string{"Potassium supplements", "Ibuprofen"}},
	{Name: "Metformin", Class: "Biguanide", Indication: "Type 2 diabetes", Interactions: []string{"Contrast media"}},
	{Name: "Atorvastatin", Class: "Statin", Indication: "High cholesterol", Interactions: []string{"Clarithromycin"}},
	{Name: "Simvastatin", Class: "Statin", Indication: "High cholesterol", Interactions: []string{"Clarithromycin", "Amlodipine"}},
	{Name: "Amoxicillin", Class: "Penicillin antibiotic", Indication: "Bacterial infections", Interactions: []string{"Warfarin"}},
}

// LoadFormulary reads a {"medications": [...]} document from path. A missing
// or unreadable file falls back to the built-in seed so the agent stays
// usable offline.
func LoadFormulary(path string, log logger.Logger) *Formulary {
	if path == "" {
		return &Formulary{entries: defaultFormulary}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn("Formulary file not readable, using built-in seed: ", err)
		return &Formulary{entries: defaultFormulary}
	}

	var doc formularyDocument
	if err := sonic.Unmarshal(raw, &doc); err != nil || len(doc.Medications) == 0 {
		log.Warn("Formulary file invalid, using built-in seed: ", path)
		return &Formulary{entries: defaultFormulary}
	}

	log.Info("Loaded ", len(doc.Medications), " medications from ", path)
	return &Formulary{entries: doc.Medications}
}

// Lookup returns the formulary entry for a medication name, or nil when the
// medication is unknown.
func (f *Formulary) Lookup(name string) *FormularyEntry {
	for i := range f.entries {
		if strings.EqualFold(f.entries[i].Name, strings.TrimSpace(name)) {
			return &f.entries[i]
		}
	}
	return nil
}

// SameClass returns the names of other formulary medications sharing the
// entry's class.
func (f *Formulary) SameClass(entry *FormularyEntry) []string {
	var alternatives []string
	for i := range f.entries {
		if f.entries[i].Class == entry.Class && !strings.EqualFold(f.entries[i].Name, entry.Name) {
			alternatives = append(alternatives, f.entries[i].Name)
		}
	}
	return alternatives
}

// InteractionsBetween reports the pairwise interactions among the named
// medications, consulting the formulary in both directions.
func (f *Formulary) InteractionsBetween(names []string) []Interaction {
	var found []Interaction
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			if f.interacts(names[i], names[j]) || f.interacts(names[j], names[i]) {
				found = append(found, Interaction{
					Medication1: names[i],
					Medication2: names[j],
					Severity:    "Moderate",
					Description: fmt.Sprintf("Interaction between %s and %s", names[i], names[j]),
				})
			}
		}
	}
	return found
}

func (f *Formulary) interacts(a, b string) bool {
	entry := f.Lookup(a)
	if entry == nil {
		return false
	}
	for _, other := range entry.Interactions {
		if strings.EqualFold(other, strings.TrimSpace(b)) {
			return true
		}
	}
	return false
}

// Interaction is one detected drug-drug interaction.
type Interaction struct {
	Medication1 string `json:"medication1"`
	Medication2 string `json:"medication2"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}
