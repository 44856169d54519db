package main

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// watchConfig regenerates whenever the config file is rewritten. Every
// pass is a full run with deterministic overwrite; a failing pass is
// logged and the loop keeps watching so the config can be fixed in place.
func watchConfig(log zerolog.Logger, path string, run func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// Watch the directory, not the file: editors replace files on save,
	// which drops a direct file watch.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	if err := run(); err != nil {
		log.Error().Err(err).Msg("generation failed")
	}
	log.Info().Str("config", path).Msg("watching for changes")

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			evAbs, err := filepath.Abs(ev.Name)
			if err != nil || evAbs != abs || !ev.Op.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if err := run(); err != nil {
				log.Error().Err(err).Msg("generation failed")
				continue
			}
			log.Info().Str("config", path).Msg("regenerated")
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
