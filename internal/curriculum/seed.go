package curriculum

// Default returns the embedded Python track. It is the catalog used when no
// curriculum directory is configured. Each call builds a fresh Graph.
func Default() *Graph {
	return MustNew(DefaultTopics())
}

// DefaultTopics returns the embedded Python track topic set.
func DefaultTopics() []Topic {
	return []Topic{
		{
			ID:      "py.basics",
			Label:   "Python Basics",
			Summary: "Variables, numbers, strings, and simple statements. Running code with the interpreter.",
		},
		{
			ID:            "py.control-flow",
			Label:         "Control Flow",
			Summary:       "Branching with if/elif/else and looping with for and while.",
			Prerequisites: []string{"py.basics"},
		},
		{
			ID:            "py.data-structures",
			Label:         "Data Structures",
			Summary:       "Lists, tuples, dictionaries, and sets. Indexing, slicing, and membership.",
			Prerequisites: []string{"py.basics"},
		},
		{
			ID:            "py.strings",
			Label:         "String Manipulation",
			Summary:       "String methods, formatting, and building text from parts.",
			Prerequisites: []string{"py.basics"},
		},
		{
			ID:            "py.functions",
			Label:         "Functions",
			Summary:       "Defining functions, parameters and return values, default arguments, scope.",
			Prerequisites: []string{"py.control-flow"},
		},
		{
			ID:            "py.files",
			Label:         "File I/O",
			Summary:       "Reading and writing text files, the with statement, and paths.",
			Prerequisites: []string{"py.data-structures", "py.strings"},
		},
		{
			ID:            "py.errors",
			Label:         "Exceptions",
			Summary:       "Raising and handling exceptions with try/except, and cleaning up with finally.",
			Prerequisites: []string{"py.functions"},
		},
		{
			ID:            "py.modules",
			Label:         "Modules and Packages",
			Summary:       "Importing from the standard library and organizing code into modules.",
			Prerequisites: []string{"py.functions"},
		},
		{
			ID:            "py.comprehensions",
			Label:         "Comprehensions",
			Summary:       "List, set, and dict comprehensions as expressions over iterables.",
			Prerequisites: []string{"py.data-structures", "py.control-flow"},
		},
		{
			ID:            "py.oop",
			Label:         "Classes and Objects",
			Summary:       "Defining classes, instance methods, attributes, and simple inheritance.",
			Prerequisites: []string{"py.functions", "py.data-structures"},
		},
		{
			ID:            "py.iterators",
			Label:         "Iterators and Generators",
			Summary:       "The iterator protocol, generator functions, and lazy sequences.",
			Prerequisites: []string{"py.oop", "py.comprehensions"},
		},
		{
			ID:            "py.testing",
			Label:         "Testing Basics",
			Summary:       "Writing unit tests with assertions and structuring testable code.",
			Prerequisites: []string{"py.functions", "py.errors"},
		},
	}
}
