// Package main provides the entry point for the Mask Studio application.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/Alan-512/AI-vision-studio-sub000/internal/app"
	"github.com/Alan-512/AI-vision-studio-sub000/internal/editor"
	"github.com/Alan-512/AI-vision-studio-sub000/internal/version"
	"github.com/Alan-512/AI-vision-studio-sub000/ui/mainwindow"
	"github.com/Alan-512/AI-vision-studio-sub000/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s", version.String())

	fyneApp := fyneapp.NewWithID("io.maskstudio.app")
	fyneApp.Settings().SetTheme(&app.StudioTheme{})

	session := editor.NewSession()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, session, appPrefs)

	// Open an image passed on the command line.
	if flag.NArg() > 0 {
		win.OpenImagePath(flag.Arg(0))
	}

	setupHotReload(win)

	win.SetOnClosed(win.SavePreferences)
	win.ShowAndRun()
}

// setupHotReload prompts for restart when a newer binary lands, and piggybacks
// a periodic preferences flush on the same ticker.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s (modified %s)",
		reloader.ExecPath(), reloader.StartupTime().Format("15:04:05"))

	reloader.OnTick(win.SavePreferencesIfChanged)

	reloader.OnNewBinary(func() {
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if !restart {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				log.Println("Hot reload: saving preferences before restart...")
				win.SavePreferences()
				if err := reloader.Restart(); err != nil {
					log.Printf("Hot reload: restart failed: %v", err)
				}
			}, win)
	})

	reloader.Start()
}
