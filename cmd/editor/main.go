package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilesmith/session"
	"golang.design/x/clipboard"
)

func main() {
	projectDir := flag.String("project", ".", "Project directory")
	sceneFile := flag.String("scene", "scene.json", "Scene file relative to the project, created if missing")
	create := flag.Bool("new", false, "Scaffold a new project in -project first")
	flag.Parse()

	log.Println("Editor starting...")
	sess := session.New()
	if *create {
		if err := sess.NewProject(context.Background(), *projectDir); err != nil {
			log.Fatalf("Failed to create project: %v", err)
		}
	} else if err := sess.OpenProject(*projectDir); err != nil {
		log.Fatalf("Failed to open project: %v", err)
	}
	if err := sess.OpenScene(*sceneFile); err != nil {
		log.Fatalf("Failed to open scene: %v", err)
	}

	clipboardOK := true
	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable: %v", err)
		clipboardOK = false
	}

	game := NewEditorGame(sess, clipboardOK)
	ebiten.SetWindowTitle("tilesmith - " + sess.Scene().Name)
	ebiten.SetWindowSize(1280, 800)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game); err != nil {
		log.Printf("Editor exited: %v", err)
		os.Exit(1)
	}
}
