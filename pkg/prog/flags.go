package prog

import "flag"

// FlagSet wraps a [flag.FlagSet]. It provides methods to register flags
// shared by multiple subprograms on demand.
type FlagSet struct {
	*flag.FlagSet
	json *bool
}

// JSON returns a pointer to the value of the -json flag, registering it if
// it has not been registered yet.
func (fs *FlagSet) JSON() *bool {
	if fs.json == nil {
		var json bool
		fs.BoolVar(&json, "json", false,
			"Show the output from -buildinfo or -version in JSON")
		fs.json = &json
	}
	return fs.json
}
