package codegen

// Template is the entry point every project starts from. Render replaces
// the placeholder lines:
//
//	//EMBED      the go:embed directive for embedded assets
//	//ASSETS     one load statement per registered asset
//	WINDOW_SIZE  the configured window size
const Template = `package main

import (
	"embed"
	"log"

	"github.com/milk9111/lilah/app"
)

//EMBED
var embedded embed.FS

func setup(a *app.App, state *app.State, scripting *app.Scripting) {
	//ASSETS
}

func main() {
	a := app.New("Lilah", WINDOW_SIZE)
	if err := a.Run(setup); err != nil {
		log.Fatal(err)
	}
}
`
