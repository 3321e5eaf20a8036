package mode

import "src.lmc.sh/pkg/lmc"

// Names under which the LMC mode is registered, and its MIME type.
var (
	LMCNames = []string{"lmc", "lmc-asm", "littlemancomputer"}
	LMCMIME  = "text/x-lmc"
)

// LMC returns a new LMC mode with the given name.
func LMC(name string) *Mode {
	return &Mode{
		Name:       name,
		Lexer:      lmc.New(),
		StartState: lmc.StartState,
		Version:    lmc.RulesVersion,
	}
}

// RegisterLMC registers the LMC mode under all of LMCNames and binds LMCMIME
// to the first name. It is idempotent.
func RegisterLMC(r *Registry, owner string) error {
	for _, name := range LMCNames {
		if err := r.Define(owner, name, LMC(name)); err != nil {
			return err
		}
	}
	return r.DefineMIME(owner, LMCMIME, LMCNames[0])
}

// UnregisterLMC undoes RegisterLMC. Entries with the same names installed by
// other owners are left untouched.
func UnregisterLMC(r *Registry, owner string) {
	for _, name := range LMCNames {
		r.Undefine(owner, name)
	}
	r.UndefineMIME(owner, LMCMIME)
}
