// Package conf contains the configuration of the program.
package conf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pngme/pngme/internal/conf/env"
	"github.com/pngme/pngme/internal/conf/yamlwrapper"
	"github.com/pngme/pngme/internal/logger"
)

func firstThatExists(paths []string) string {
	for _, pa := range paths {
		_, err := os.Stat(pa)
		if err == nil {
			return pa
		}
	}
	return ""
}

func contains(list []logger.Destination, item logger.Destination) bool {
	for _, i := range list {
		if i == item {
			return true
		}
	}
	return false
}

// Conf is a configuration.
type Conf struct {
	LogLevel        LogLevel        `json:"logLevel"`
	LogDestinations LogDestinations `json:"logDestinations"`
	LogStructured   bool            `json:"logStructured"`
	LogFile         string          `json:"logFile"`
	SysLogPrefix    string          `json:"sysLogPrefix"`
	MaxFileSize     StringSize      `json:"maxFileSize"`
}

func (conf *Conf) setDefaults() {
	conf.LogLevel = LogLevel(logger.Warn)
	conf.LogDestinations = LogDestinations{logger.DestinationStdout}
	conf.LogStructured = false
	conf.LogFile = "pngme.log"
	conf.SysLogPrefix = "pngme"
	conf.MaxFileSize = 64 * 1024 * 1024
}

// Load loads a Conf.
func Load(fpath string, defaultConfPaths []string) (*Conf, string, error) {
	conf := &Conf{}

	fpath, err := conf.loadFromFile(fpath, defaultConfPaths)
	if err != nil {
		return nil, "", err
	}

	err = env.Load("PNGME", conf)
	if err != nil {
		return nil, "", err
	}

	err = conf.Validate()
	if err != nil {
		return nil, "", err
	}

	return conf, fpath, nil
}

func (conf *Conf) loadFromFile(fpath string, defaultConfPaths []string) (string, error) {
	if fpath == "" {
		fpath = firstThatExists(defaultConfPaths)

		// when the configuration file is not explicitly set,
		// it is optional.
		if fpath == "" {
			conf.setDefaults()
			return "", nil
		}
	}

	byts, err := os.ReadFile(fpath)
	if err != nil {
		return "", err
	}

	// an empty document leaves the destination untouched
	conf.setDefaults()

	err = yamlwrapper.Unmarshal(byts, conf)
	if err != nil {
		return "", err
	}

	return fpath, nil
}

// Validate checks the configuration for errors.
func (conf *Conf) Validate() error {
	if len(conf.LogDestinations) == 0 {
		return fmt.Errorf("at least one log destination must be set")
	}

	if contains(conf.LogDestinations, logger.DestinationFile) && conf.LogFile == "" {
		return fmt.Errorf("'logFile' must be set when logging to file")
	}

	if conf.MaxFileSize == 0 {
		return fmt.Errorf("'maxFileSize' must be greater than zero")
	}

	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (conf *Conf) UnmarshalJSON(b []byte) error {
	conf.setDefaults()

	type alias Conf
	d := json.NewDecoder(bytes.NewReader(b))
	d.DisallowUnknownFields()
	return d.Decode((*alias)(conf))
}
