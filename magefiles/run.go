//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs texprobe against the fake driver with the bundled config.
func (Run) Probe() error {
	_, err := executeCmd("go",
		withArgs("run", "./cmd/texprobe", "-config", "cmd/texprobe/testdata/texprobe.toml"),
		withStream())
	return err
}

// Runs texprobe on the EGL driver. Set TEXPROBE_CONFIG to use another config.
func (Run) ProbeEGL() error {
	config := os.Getenv("TEXPROBE_CONFIG")
	if config == "" {
		config = "cmd/texprobe/testdata/texprobe.toml"
	}
	_, err := executeCmd("go",
		withArgs("run", "./cmd/texprobe", "-config", config, "-driver", "egl"),
		withStream())
	return err
}
