// Package quiz holds the placement quizzes used to derive a proficiency
// score when a caller has none.
package quiz

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"course-recommender/internal/domain"
)

// ErrUnknownSubject means no quiz exists for the subject.
var ErrUnknownSubject = errors.New("quiz: no quiz available for this subject")

// Question is what callers show to the student.
type Question struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

type item struct {
	Question
	answer string
}

// bank is keyed by subject label. Answers are option letters.
var bank = map[string][]item{
	"data science": {
		{Question{"What is the most commonly used library for data visualization in Python?", []string{"A) Pandas", "B) Matplotlib", "C) NumPy", "D) Seaborn"}}, "B"},
		{Question{"Which of these is used for supervised learning?", []string{"A) K-Means", "B) Linear Regression", "C) DBSCAN", "D) Apriori"}}, "B"},
		{Question{"Which language is best suited for machine learning?", []string{"A) Python", "B) C++", "C) Java", "D) Swift"}}, "A"},
	},
	"computer science": {
		{Question{"What does OOP stand for?", []string{"A) Object-Oriented Programming", "B) Open Online Programming", "C) Overlapping Object Processing", "D) None"}}, "A"},
		{Question{"What is the time complexity of binary search?", []string{"A) O(n)", "B) O(n^2)", "C) O(log n)", "D) O(1)"}}, "C"},
		{Question{"Which sorting algorithm has the best average-case time complexity?", []string{"A) Bubble Sort", "B) Merge Sort", "C) Quick Sort", "D) Selection Sort"}}, "B"},
	},
	"business": {
		{Question{"What is ROI?", []string{"A) Return on Investment", "B) Risk of Inflation", "C) Rate of Interest", "D) Revenue of Industry"}}, "A"},
		{Question{"Which of these is a key financial statement?", []string{"A) Balance Sheet", "B) Business Plan", "C) Marketing Strategy", "D) SWOT Analysis"}}, "A"},
		{Question{"What does KPI stand for?", []string{"A) Key Performance Indicator", "B) Knowledge Process Integration", "C) Key Productivity Index", "D) Kinetic Process Implementation"}}, "A"},
	},
	"health": {
		{Question{"What is the basic structural and functional unit of life?", []string{"A) Tissue", "B) Organ", "C) Cell", "D) Organ System"}}, "C"},
		{Question{"Which vitamin is essential for blood clotting?", []string{"A) Vitamin A", "B) Vitamin C", "C) Vitamin D", "D) Vitamin K"}}, "D"},
		{Question{"What is the normal resting heart rate for adults?", []string{"A) 40-60 bpm", "B) 60-100 bpm", "C) 100-120 bpm", "D) 120-140 bpm"}}, "B"},
	},
	"information technology": {
		{Question{"What does CPU stand for?", []string{"A) Central Processing Unit", "B) Computer Programming Utility", "C) Common Protocol Unit", "D) Control Processing Unit"}}, "A"},
		{Question{"What is RAM?", []string{"A) Read Only Memory", "B) Random Access Memory", "C) Redundant Array of Memory", "D) Registered Access Module"}}, "B"},
		{Question{"What is the purpose of a firewall?", []string{"A) To speed up internet connection", "B) To protect a network from unauthorized access", "C) To organize files on a computer", "D) To enhance graphics performance"}}, "B"},
	},
	"math and logic": {
		{Question{"What is the value of pi (π) to two decimal places?", []string{"A) 3.10", "B) 3.14", "C) 3.16", "D) 3.20"}}, "B"},
		{Question{"What is the square root of 144?", []string{"A) 10", "B) 12", "C) 14", "D) 16"}}, "B"},
		{Question{"If A is true and B is false, what is the result of A AND B?", []string{"A) True", "B) False", "C) Undefined", "D) Cannot be determined"}}, "B"},
	},
	"arts and humanities": {
		{Question{"Who painted the Mona Lisa?", []string{"A) Vincent van Gogh", "B) Leonardo da Vinci", "C) Pablo Picasso", "D) Claude Monet"}}, "B"},
		{Question{"Which ancient civilization built the Great Pyramids of Giza?", []string{"A) Roman", "B) Greek", "C) Egyptian", "D) Mesopotamian"}}, "C"},
		{Question{"Who wrote the play 'Hamlet'?", []string{"A) William Shakespeare", "B) Jane Austen", "C) Charles Dickens", "D) George Bernard Shaw"}}, "A"},
	},
	"social sciences": {
		{Question{"What is the study of human society and social relationships called?", []string{"A) Psychology", "B) Anthropology", "C) Sociology", "D) Economics"}}, "C"},
		{Question{"What event is considered the start of World War I?", []string{"A) Invasion of Poland", "B) Attack on Pearl Harbor", "C) Assassination of Archduke Franz Ferdinand", "D) Treaty of Versailles"}}, "C"},
		{Question{"What is a form of government in which the people hold the power to rule?", []string{"A) Monarchy", "B) Oligarchy", "C) Democracy", "D) Autocracy"}}, "C"},
	},
	"language learning": {
		{Question{"In Spanish, what does 'Hola' mean?", []string{"A) Goodbye", "B) Thank you", "C) Hello", "D) Please"}}, "C"},
		{Question{"In French, how do you say 'good morning'?", []string{"A) Bonjour", "B) Au revoir", "C) Merci", "D) S'il vous plaît"}}, "A"},
		{Question{"In German, what does 'Danke' mean?", []string{"A) Yes", "B) No", "C) Thank you", "D) You're welcome"}}, "C"},
	},
	"other": {
		{Question{"What color is the sky on a clear day?", []string{"A) Green", "B) Blue", "C) Red", "D) Yellow"}}, "B"},
		{Question{"What is the chemical symbol for water?", []string{"A) Wo", "B) Wa", "C) H2O", "D) HO2"}}, "C"},
		{Question{"Which planet is known as the 'Red Planet'?", []string{"A) Venus", "B) Mars", "C) Jupiter", "D) Saturn"}}, "B"},
	},
}

// Subjects lists the subjects that have a quiz, in canonical tag order.
func Subjects() []string {
	out := make([]string, 0, len(bank))
	for _, s := range domain.AllSubjects() {
		if _, ok := bank[s.Label()]; ok {
			out = append(out, s.Label())
		}
	}
	return out
}

// Questions returns the quiz for subject without its answers.
func Questions(subject string) ([]Question, error) {
	items, ok := bank[subject]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSubject, subject)
	}
	out := make([]Question, len(items))
	for i, it := range items {
		out[i] = Question{Text: it.Text, Options: slices.Clone(it.Options)}
	}
	return out, nil
}

// Score grades answers keyed by zero-based question index ("0", "1", ...)
// and returns the percentage answered correctly. Letters compare ignoring
// case and surrounding space; unanswered questions count as wrong.
func Score(subject string, answers map[string]string) (float64, error) {
	items, ok := bank[subject]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSubject, subject)
	}
	if len(items) == 0 {
		return 0, nil
	}
	correct := 0
	for i, it := range items {
		got, ok := answers[strconv.Itoa(i)]
		if ok && strings.EqualFold(strings.TrimSpace(got), it.answer) {
			correct++
		}
	}
	return float64(correct) / float64(len(items)) * 100, nil
}
