package services

// Pre-filled viewing questions, surfaced through the ask_questions webhook
// function.
var viewingQuestions = map[string][]string{
	"general": {
		"How long is the rental contract?",
		"What is the monthly rent including utilities?",
		"Is there a security deposit? How much?",
		"When can I move in?",
		"What is the notice period for termination?",
	},
	"building": {
		"Is the building pet-friendly?",
		"Is there an elevator?",
		"Is there parking available?",
		"What floor is the apartment on?",
		"Are there shared spaces?",
	},
	"utilities": {
		"Which utilities are included in rent?",
		"How is heating charged?",
		"Is internet included?",
		"Who handles repairs?",
		"Is the apartment energy efficient?",
	},
	"neighborhood": {
		"What schools are nearby?",
		"How far is the nearest public transport?",
		"Are there supermarkets nearby?",
		"Is the area quiet?",
		"What is the neighborhood like?",
	},
	"legal": {
		"Can I see the rental contract?",
		"Are there any additional fees?",
		"Who is responsible for minor repairs?",
		"Can I sublet if needed?",
		"Is the rental price registered?",
	},
}

// Deterministic category order for the "all questions" case.
var questionCategories = []string{"general", "building", "utilities", "neighborhood", "legal"}

// ViewingQuestions returns the prompts for a category, or every category's
// prompts in a fixed order when the category is unknown or empty.
func ViewingQuestions(category string) []string {
	if qs, ok := viewingQuestions[category]; ok {
		return qs
	}
	var all []string
	for _, c := range questionCategories {
		all = append(all, viewingQuestions[c]...)
	}
	return all
}
