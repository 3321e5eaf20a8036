package lmc

// Keyword tables. The groups are disjoint and never modified.
var (
	variabledKeywords  = []string{"STA", "STO", "LDA"}
	otherKeywords      = []string{"HLT"}
	branchKeywords     = []string{"BRA", "BRZ", "BRP"}
	arithmeticKeywords = []string{"ADD", "SUB"}
	ioKeywords         = []string{"INP", "OUT", "OTC"}

	// labelableKeywords can be preceded by a label at the start of a
	// statement.
	labelableKeywords = concat(
		variabledKeywords, otherKeywords, branchKeywords,
		arithmeticKeywords, ioKeywords)
)

// The DAT directive.
const DatDirective = "DAT"

// Group identifies the table a mnemonic belongs to.
type Group string

// Possible values of Group.
const (
	GroupVariabled  Group = "variabled"
	GroupOther      Group = "other"
	GroupBranch     Group = "branch"
	GroupArithmetic Group = "arithmetic"
	GroupIO         Group = "io"
	GroupDirective  Group = "directive"
)

// Mnemonic describes one entry of the keyword tables.
type Mnemonic struct {
	Name  string
	Group Group
	Doc   string
}

var mnemonicDocs = map[string]string{
	"STA": "Store the accumulator into the named memory cell.",
	"STO": "Store the accumulator into the named memory cell (alias of STA).",
	"LDA": "Load the named memory cell into the accumulator.",
	"HLT": "Halt the program.",
	"BRA": "Branch to the label unconditionally.",
	"BRZ": "Branch to the label if the accumulator is zero.",
	"BRP": "Branch to the label if the accumulator is zero or positive.",
	"ADD": "Add the named memory cell to the accumulator.",
	"SUB": "Subtract the named memory cell from the accumulator.",
	"INP": "Read a number from the input into the accumulator.",
	"OUT": "Write the accumulator to the output as a number.",
	"OTC": "Write the accumulator to the output as a character.",
	"DAT": "Reserve a memory cell, optionally initialized with a number.",
}

// Mnemonics returns all mnemonics and the DAT directive, grouped in the order
// of the keyword tables.
func Mnemonics() []Mnemonic {
	var ms []Mnemonic
	add := func(g Group, names []string) {
		for _, name := range names {
			ms = append(ms, Mnemonic{name, g, mnemonicDocs[name]})
		}
	}
	add(GroupVariabled, variabledKeywords)
	add(GroupOther, otherKeywords)
	add(GroupBranch, branchKeywords)
	add(GroupArithmetic, arithmeticKeywords)
	add(GroupIO, ioKeywords)
	add(GroupDirective, []string{DatDirective})
	return ms
}

// LookupMnemonic finds a mnemonic case-insensitively.
func LookupMnemonic(name string) (Mnemonic, bool) {
	for _, m := range Mnemonics() {
		if len(name) == len(m.Name) && hasPrefixFold(name, m.Name) {
			return m, true
		}
	}
	return Mnemonic{}, false
}

func concat(lists ...[]string) []string {
	var all []string
	for _, list := range lists {
		all = append(all, list...)
	}
	return all
}
