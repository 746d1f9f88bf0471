// Package main provides the entry point for the Room Painter application.
package main

import (
	"time"

	"roompainter/config"
	"roompainter/internal/app"
	"roompainter/internal/compositor"
	"roompainter/internal/segmentation"
	"roompainter/internal/version"
	"roompainter/ui/mainwindow"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	log.WithField("version", version.Version).Info("starting Room Painter")

	fyneApp := fyneapp.NewWithID("roompainter")
	fyneApp.Settings().SetTheme(&app.RoomPainterTheme{})

	state := app.NewState(compositor.New(log), log)

	services := buildServices(cfg, log)

	win := mainwindow.New(fyneApp, state, services, log)
	win.Resize(fyne.NewSize(1200, 800))

	setupHotReload(win, log)

	win.ShowAndRun()
}

// buildServices wires the segmentation endpoints from configuration: the
// remote service when a URL is set, the in-process detector otherwise.
func buildServices(cfg *config.Config, log *logrus.Logger) mainwindow.Services {
	if cfg.UseLocalDetector || cfg.ServiceURL == "" {
		log.Info("using local wall detection")
		return mainwindow.Services{
			Uploader: segmentation.LocalUploader{},
			Detector: segmentation.NewLocalDetector(log),
		}
	}

	client := segmentation.NewClient(cfg.ServiceURL, cfg.ServiceTimeout, log)
	return mainwindow.Services{
		Uploader: client,
		Detector: client,
		Advisor:  client,
	}
}

// setupHotReload prompts for restart when the binary is rebuilt underneath a
// running session.
func setupHotReload(win *mainwindow.MainWindow, log *logrus.Logger) {
	reloader := app.NewHotReloader(2*time.Second, log)
	if reloader == nil {
		log.Warn("hot reload: unable to determine executable path")
		return
	}

	reloader.OnNewBinary(func() {
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if restart {
					if err := reloader.Restart(); err != nil {
						log.WithError(err).Error("hot reload: restart failed")
					}
					return
				}
				reloader.ResetBaseline()
				reloader.Start()
			}, win.Window)
	})

	reloader.Start()
}
