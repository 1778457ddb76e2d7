package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

type Config struct {
	OutputFolder string `json:"output_folder"`
	Addr         string `json:"addr"`
}

const defaultAddr = "0.0.0.0:8093"

func LoadConfig(path string) (cfg Config, err error) {
	cfg.Addr = defaultAddr
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	if err = json.Unmarshal(data, &cfg); err != nil {
		err = errors.Wrapf(err, "parse %s", path)
	}

	return
}
