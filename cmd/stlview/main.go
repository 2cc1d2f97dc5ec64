package main

import (
	"github.com/philipparndt/stlview/cmd"
)

var flags cmd.Flags

var rootCmd = cmd.NewRootCommand(
	"stlview",
	"View STL models as orbitable wireframes",
	`stlview decodes binary and ASCII STL files and shows them in a 3D viewport
with orbit, pan and zoom navigation. Models can be added to the scene one after
another; every displayed file becomes an additional mesh.`,
	&flags,
)

func main() {
	cmd.Execute(rootCmd)
}
