package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/coinmaze/model"
)

const configPath = "config.json"

// loadConfig reads the settings file. A missing file is a first run; a
// broken one is logged and the defaults are used instead.
func loadConfig(path string) model.GameConfig {
	file, err := ebitenutil.OpenFile(path)
	if err != nil {
		log.Infof("no %s, using defaults", path)
		return model.DefaultConfig()
	}
	defer file.Close()

	cfg, err := model.LoadConfig(file)
	if err != nil {
		log.Warnf("failed loading %s: %v", path, err)
	}
	return cfg
}

func saveConfig(path string, cfg model.GameConfig) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create config")
	}
	if err := cfg.Save(file); err != nil {
		file.Close()
		return err
	}
	return errors.Wrap(file.Close(), "close config")
}
