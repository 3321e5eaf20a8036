// Lmchl highlights LMC assembly. It writes colored text, HTML or a token
// stream for the given files, and can also run as a language server.
package main

import (
	"os"

	"src.lmc.sh/pkg/buildinfo"
	"src.lmc.sh/pkg/hlprog"
	"src.lmc.sh/pkg/lsp"
	"src.lmc.sh/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			&buildinfo.Program{}, &lsp.Program{}, &hlprog.Program{})))
}
