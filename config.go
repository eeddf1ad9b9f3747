package tnpeff

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// LoadConfig decodes a YAML or JSON configuration file into v.
func LoadConfig(fname string, v interface{}) error {
	raw, err := os.ReadFile(fname)
	if err != nil {
		return errors.Wrapf(err, "could not read config %s", fname)
	}
	if err := yaml.Unmarshal(raw, v); err != nil {
		return errors.Wrapf(err, "could not parse config %s", fname)
	}
	return nil
}

// SetVerbose switches the package logger between info and debug output.
func SetVerbose(v bool) {
	if v {
		logrus.SetLevel(logrus.DebugLevel)
		return
	}
	logrus.SetLevel(logrus.InfoLevel)
}
