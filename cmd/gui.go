package main

import (
	"context"
	"errors"
	"fmt"

	"eyerest/internal/alert"
	"eyerest/internal/core/model"
	"eyerest/internal/core/schedule"
	"eyerest/internal/core/timekeeper"
	"eyerest/internal/history"
	"eyerest/internal/platform"
	"eyerest/internal/storage"
	"eyerest/internal/ui/overlay"
	"eyerest/internal/ui/panel"
	"eyerest/internal/ui/tray"
	"eyerest/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"
)

const restMessage = "Time to rest your eyes"

func runGUI(cmd *cobra.Command, args []string) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Warn("another instance is already running", "error", err)
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := storage.LoadSettings(globalOpts.configPath)
	if err != nil {
		logger.Warn("failed to load settings, using defaults", "path", globalOpts.configPath, "error", err)
	}
	settings = applyOverrides(cmd, settings)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo(resources.ActiveIcon))

	keeper, err := timekeeper.New(settings, timekeeper.Options{
		Scheduler: schedule.NewLoop(fyne.Do),
		Displays:  platform.Displays,
		Overlays:  overlayFactory(fyneApp),
		Idle:      platform.NewIdleProvider(),
		Logger:    logger.With("component", "timekeeper"),
	})
	if err != nil {
		return err
	}

	store, err := history.Open(globalOpts.historyDB)
	if err != nil {
		logger.Warn("break history disabled", "path", globalOpts.historyDB, "error", err)
	} else {
		defer func() {
			_ = store.Close()
		}()
		recorder := history.NewRecorder(store, logger.With("component", "history"))
		go recorder.Run(ctx, keeper.Subscribe(16))
	}

	notifier := alert.NewNotifier(appName, logger.With("component", "notifier"))
	defer func() {
		_ = notifier.Close()
	}()
	chime := alert.NewChime(0.6, logger.With("component", "chime"))
	defer chime.Close()
	dispatcher := alert.NewDispatcher(notifier, chime, settings, logger.With("component", "alert"))
	go dispatcher.Run(ctx, keeper.Subscribe(4))

	saveSettings := func(applied model.Settings) {
		dispatcher.Apply(applied)
		if err := storage.SaveSettings(globalOpts.configPath, applied); err != nil {
			logger.Warn("failed to save settings", "path", globalOpts.configPath, "error", err)
		}
	}
	controlPanel := panel.New(fyneApp, "Eye Rest", keeper, saveSettings)

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Icons{
			Active: resources.MustLogo(resources.ActiveIcon),
			Paused: resources.MustLogo(resources.PausedIcon),
		}, tray.Callbacks{
			OnShowPanel: controlPanel.Show,
			OnToggle: func() {
				if err := controlPanel.Toggle(); err != nil {
					controlPanel.Show()
				}
			},
			OnQuit: func() {
				keeper.Close()
				fyneApp.Quit()
			},
		})
	} else {
		logger.Info("system tray unsupported on this platform")
		controlPanel.SetCloseAction(func() {
			keeper.Close()
			fyneApp.Quit()
		})
	}

	uiEvents := keeper.Subscribe(32)
	go func() {
		for range uiEvents {
			fyne.Do(func() {
				controlPanel.Refresh()
				if trayManager != nil {
					trayManager.Update(keeper.Status(), keeper.Running())
				}
			})
		}
	}()

	watcher, err := storage.NewWatcher(globalOpts.configPath, func(reloaded model.Settings) {
		fyne.Do(func() {
			if err := keeper.UpdateSettings(reloaded); err != nil {
				logger.Debug("settings change ignored", "reason", err)
				return
			}
			dispatcher.Apply(reloaded)
			controlPanel.SetSettings(keeper.Settings())
		})
	}, logger.With("component", "watcher"))
	if err != nil {
		logger.Warn("settings reload disabled", "error", err)
	} else if err := watcher.Start(); err != nil {
		logger.Warn("settings reload disabled", "error", err)
	} else {
		defer func() {
			_ = watcher.Stop()
		}()
	}

	fyneApp.Lifecycle().SetOnStarted(func() {
		if !runOpts.start {
			controlPanel.Show()
			return
		}
		if err := keeper.Start(); err != nil {
			logger.Warn("could not start", "error", err)
			controlPanel.Show()
		} else {
			saveSettings(keeper.Settings())
		}
		controlPanel.Refresh()
	})
	fyneApp.Lifecycle().SetOnStopped(func() {
		keeper.Close()
	})

	fyneApp.Run()
	return nil
}

func overlayFactory(fyneApp fyne.App) timekeeper.OverlayFactory {
	return func(target model.DisplayTarget) (timekeeper.Overlay, error) {
		if fyneApp == nil {
			return nil, fmt.Errorf("no application for display %d", target.Index)
		}
		return overlay.New(fyneApp, target, overlay.Config{
			Message: restMessage,
			Placer:  platform.PlaceWindow,
		}), nil
	}
}
