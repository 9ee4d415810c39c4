package dataset

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sadopc/studyr/internal/review"
	"github.com/sadopc/studyr/internal/syllabus"
)

// Template is an exam syllabus a user can load in place of the current one.
type Template struct {
	ID       string
	Name     string
	Subjects []TemplateSubject
	cards    []sampleCard
}

type TemplateSubject struct {
	ID       string
	Name     string
	Chapters []TemplateChapter
}

type TemplateChapter struct {
	ID     string
	Name   string
	Topics []string
}

type sampleCard struct {
	id, front, back, subject, topic string
	difficulty                      review.Difficulty
}

// Forest expands the template into syllabus nodes. Node IDs are built from
// the subject and chapter slugs so they stay stable across loads.
func (t Template) Forest() []syllabus.Node {
	out := make([]syllabus.Node, 0, len(t.Subjects))
	for _, s := range t.Subjects {
		sid := t.ID + "-" + s.ID
		subject := syllabus.Node{ID: sid, Title: s.Name, Type: syllabus.TypeSubject}
		for _, c := range s.Chapters {
			cid := sid + "-" + c.ID
			chapter := syllabus.Node{ID: cid, Title: c.Name, Type: syllabus.TypeChapter}
			for i, topic := range c.Topics {
				chapter.Children = append(chapter.Children, syllabus.Node{
					ID:    fmt.Sprintf("%s-%d", cid, i+1),
					Title: topic,
					Type:  syllabus.TypeTopic,
				})
			}
			subject.Children = append(subject.Children, chapter)
		}
		out = append(out, subject)
	}
	return out
}

// Cards returns the template's sample flashcards, due at now.
func (t Template) Cards(now time.Time) []review.Card {
	out := make([]review.Card, 0, len(t.cards))
	for _, c := range t.cards {
		out = append(out, review.NewCard(c.id, c.front, c.back, c.subject, c.topic, c.difficulty, now))
	}
	return out
}

// Lookup finds a template by ID, case-insensitively.
func Lookup(name string) (Template, bool) {
	t, ok := templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Templates returns every template sorted by ID.
func Templates() []Template {
	out := make([]Template, 0, len(templates))
	for _, t := range templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TemplateNames returns the template IDs sorted.
func TemplateNames() []string {
	var names []string
	for _, t := range Templates() {
		names = append(names, t.ID)
	}
	return names
}

var templates = map[string]Template{
	"gmat": {
		ID:   "gmat",
		Name: "GMAT",
		Subjects: []TemplateSubject{
			{ID: "quant", Name: "Quantitative Reasoning", Chapters: []TemplateChapter{
				{ID: "problem-solving", Name: "Problem Solving", Topics: []string{
					"Arithmetic", "Algebra", "Geometry", "Word Problems"}},
				{ID: "data-sufficiency", Name: "Data Sufficiency", Topics: []string{
					"Basic Concepts", "Advanced Strategies", "Common Pitfalls"}},
			}},
			{ID: "verbal", Name: "Verbal Reasoning", Chapters: []TemplateChapter{
				{ID: "reading-comprehension", Name: "Reading Comprehension", Topics: []string{
					"Main Idea Questions", "Detail Questions", "Inference Questions", "Critical Reasoning"}},
				{ID: "sentence-correction", Name: "Sentence Correction", Topics: []string{
					"Grammar Rules", "Idioms", "Parallelism", "Modifiers"}},
			}},
		},
		cards: []sampleCard{
			{"gmat-1", "If x + y = 10 and x - y = 4, what is the value of x?",
				"x = 7 (Add the equations: 2x = 14, so x = 7)", "GMAT", "Algebra", review.Medium},
			{"gmat-2", "What is the area of a circle with radius 5?",
				"25π (Area = πr² = π × 5² = 25π)", "GMAT", "Geometry", review.Easy},
		},
	},
	"jee": {
		ID:   "jee",
		Name: "JEE Advanced",
		Subjects: []TemplateSubject{
			{ID: "physics", Name: "Physics", Chapters: []TemplateChapter{
				{ID: "mechanics", Name: "Mechanics", Topics: []string{
					"Kinematics", "Laws of Motion", "Work, Energy and Power", "Rotational Motion", "Gravitation"}},
				{ID: "thermodynamics", Name: "Thermodynamics", Topics: []string{
					"Heat and Temperature", "Kinetic Theory", "Laws of Thermodynamics"}},
				{ID: "electromagnetism", Name: "Electromagnetism", Topics: []string{
					"Electric Field", "Magnetic Field", "Electromagnetic Induction", "AC Circuits"}},
			}},
			{ID: "chemistry", Name: "Chemistry", Chapters: []TemplateChapter{
				{ID: "physical-chemistry", Name: "Physical Chemistry", Topics: []string{
					"Atomic Structure", "Chemical Bonding", "Thermodynamics", "Equilibrium", "Kinetics"}},
				{ID: "organic-chemistry", Name: "Organic Chemistry", Topics: []string{
					"Hydrocarbons", "Functional Groups", "Reactions and Mechanisms", "Stereochemistry"}},
				{ID: "inorganic-chemistry", Name: "Inorganic Chemistry", Topics: []string{
					"Periodic Table", "Chemical Bonding", "Coordination Compounds", "Metallurgy"}},
			}},
			{ID: "mathematics", Name: "Mathematics", Chapters: []TemplateChapter{
				{ID: "algebra", Name: "Algebra", Topics: []string{
					"Complex Numbers", "Quadratic Equations", "Sequences and Series",
					"Permutations and Combinations", "Binomial Theorem"}},
				{ID: "calculus", Name: "Calculus", Topics: []string{
					"Limits", "Derivatives", "Applications of Derivatives", "Integrals", "Differential Equations"}},
				{ID: "coordinate-geometry", Name: "Coordinate Geometry", Topics: []string{
					"Straight Lines", "Circles", "Parabola", "Ellipse", "Hyperbola"}},
			}},
		},
		cards: []sampleCard{
			{"jee-1", "State Newton's Second Law of Motion",
				"F = ma (Force equals mass times acceleration)", "Physics", "Mechanics", review.Easy},
			{"jee-2", "What is the derivative of sin(x)?", "cos(x)", "Mathematics", "Calculus", review.Medium},
		},
	},
	"programming": {
		ID:   "programming",
		Name: "Programming Roadmap",
		Subjects: []TemplateSubject{
			{ID: "fundamentals", Name: "Programming Fundamentals", Chapters: []TemplateChapter{
				{ID: "basics", Name: "Basics", Topics: []string{
					"Variables and Data Types", "Control Structures", "Functions", "Arrays and Objects"}},
				{ID: "oop", Name: "Object-Oriented Programming", Topics: []string{
					"Classes and Objects", "Inheritance", "Polymorphism", "Encapsulation"}},
			}},
			{ID: "data-structures", Name: "Data Structures", Chapters: []TemplateChapter{
				{ID: "linear", Name: "Linear Data Structures", Topics: []string{
					"Arrays", "Linked Lists", "Stacks", "Queues"}},
				{ID: "non-linear", Name: "Non-Linear Data Structures", Topics: []string{
					"Trees", "Graphs", "Hash Tables", "Heaps"}},
			}},
			{ID: "algorithms", Name: "Algorithms", Chapters: []TemplateChapter{
				{ID: "sorting", Name: "Sorting Algorithms", Topics: []string{
					"Bubble Sort", "Quick Sort", "Merge Sort", "Heap Sort"}},
				{ID: "searching", Name: "Searching Algorithms", Topics: []string{
					"Linear Search", "Binary Search", "Depth-First Search", "Breadth-First Search"}},
			}},
		},
		cards: []sampleCard{
			{"prog-1", "What is the time complexity of binary search?",
				"O(log n) - Binary search eliminates half the search space in each iteration",
				"Programming", "Algorithms", review.Medium},
			{"prog-2", "Explain what a stack data structure is",
				"A Last-In-First-Out (LIFO) data structure where elements are added and removed from the same end (top)",
				"Programming", "Data Structures", review.Easy},
		},
	},
}
