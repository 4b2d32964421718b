package models

// inspection template for overhead cranes and hoists, in question order
var templateQuestions = []string{
	"Os cabos de aço apresentam fios partidos?",
	"Os cabos de aço apresentam pontos de amassamento?",
	"Os cabos de aço apresentam alguma dobra?",
	"O sistema de freios do guincho está funcionando?",
	"O gancho está girando sem dificuldades?",
	"O gancho possui trava de segurança funcionando?",
	"O gancho possui sinais de alongamento?",
	"Os ganchos da corrente possuem sinais de desgaste?",
	"As travas de segurança dos ganchos estão funcionando?",
}

// NewChecklistItems returns a fresh, unanswered copy of the fixed question
// template. Item IDs are 1-based ordinals.
func NewChecklistItems() []ChecklistItem {
	items := make([]ChecklistItem, 0, len(templateQuestions))
	for i, q := range templateQuestions {
		items = append(items, ChecklistItem{ID: i + 1, Question: q})
	}
	return items
}
