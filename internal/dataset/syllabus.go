// Package dataset holds the built-in study content: the starter syllabus,
// starter flashcards and the exam templates a user can switch to.
package dataset

import "github.com/sadopc/studyr/internal/syllabus"

func node(id, title string, t syllabus.NodeType, children ...syllabus.Node) syllabus.Node {
	return syllabus.Node{ID: id, Title: title, Type: t, Children: children}
}

func leaf(id, title string, done bool) syllabus.Node {
	return syllabus.Node{ID: id, Title: title, Type: syllabus.TypeSubtopic, Completed: done}
}

// Syllabus returns a fresh copy of the starter syllabus.
func Syllabus() []syllabus.Node {
	const (
		subj = syllabus.TypeSubject
		chap = syllabus.TypeChapter
		top  = syllabus.TypeTopic
	)
	return []syllabus.Node{
		node("1", "Data Structures & Algorithms", subj,
			node("1-1", "Data Structures", chap,
				node("1-1-1", "Linear Data Structures", top,
					leaf("1-1-1-1", "Arrays", true),
					leaf("1-1-1-2", "Linked Lists", true),
					leaf("1-1-1-3", "Stacks", false),
					leaf("1-1-1-4", "Queues", false),
				),
				node("1-1-2", "Non-Linear Data Structures", top,
					leaf("1-1-2-1", "Trees", false),
					leaf("1-1-2-2", "Graphs", false),
					leaf("1-1-2-3", "Hash Tables", false),
				),
			),
			node("1-2", "Algorithms", chap,
				node("1-2-1", "Sorting Algorithms", top,
					leaf("1-2-1-1", "Bubble Sort", false),
					leaf("1-2-1-2", "Quick Sort", false),
					leaf("1-2-1-3", "Merge Sort", false),
				),
				node("1-2-2", "Searching Algorithms", top,
					leaf("1-2-2-1", "Linear Search", false),
					leaf("1-2-2-2", "Binary Search", false),
				),
			),
		),
		node("2", "Web2 Development", subj,
			node("2-1", "Frontend Development", chap,
				node("2-1-1", "HTML & CSS", top,
					leaf("2-1-1-1", "HTML Fundamentals", true),
					leaf("2-1-1-2", "CSS Grid & Flexbox", false),
					leaf("2-1-1-3", "Responsive Design", false),
				),
				node("2-1-2", "JavaScript", top,
					leaf("2-1-2-1", "ES6+ Features", false),
					leaf("2-1-2-2", "DOM Manipulation", false),
					leaf("2-1-2-3", "Async Programming", false),
				),
				node("2-1-3", "React.js", top,
					leaf("2-1-3-1", "Components & JSX", false),
					leaf("2-1-3-2", "State Management", false),
					leaf("2-1-3-3", "Hooks", false),
				),
			),
			node("2-2", "Backend Development", chap,
				node("2-2-1", "Node.js", top,
					leaf("2-2-1-1", "Express.js", false),
					leaf("2-2-1-2", "RESTful APIs", false),
					leaf("2-2-1-3", "Authentication", false),
				),
				node("2-2-2", "Databases", top,
					leaf("2-2-2-1", "MongoDB", false),
					leaf("2-2-2-2", "PostgreSQL", false),
				),
			),
		),
		node("3", "Web3 Development", subj,
			node("3-1", "Blockchain Fundamentals", chap,
				node("3-1-1", "Blockchain Basics", top,
					leaf("3-1-1-1", "Cryptography", false),
					leaf("3-1-1-2", "Consensus Mechanisms", false),
					leaf("3-1-1-3", "Decentralization", false),
				),
				node("3-1-2", "Ethereum", top,
					leaf("3-1-2-1", "Smart Contracts", false),
					leaf("3-1-2-2", "Gas & Transactions", false),
					leaf("3-1-2-3", "EVM", false),
				),
			),
			node("3-2", "Smart Contract Development", chap,
				node("3-2-1", "Solidity", top,
					leaf("3-2-1-1", "Syntax & Data Types", false),
					leaf("3-2-1-2", "Functions & Modifiers", false),
					leaf("3-2-1-3", "Inheritance", false),
				),
				node("3-2-2", "DeFi Protocols", top,
					leaf("3-2-2-1", "DEX Development", false),
					leaf("3-2-2-2", "Lending Protocols", false),
					leaf("3-2-2-3", "Yield Farming", false),
				),
			),
			node("3-3", "DApp Development", chap,
				node("3-3-1", "Web3.js & Ethers.js", top,
					leaf("3-3-1-1", "Wallet Integration", false),
					leaf("3-3-1-2", "Contract Interaction", false),
				),
			),
		),
	}
}
