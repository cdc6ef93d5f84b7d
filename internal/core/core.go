// Package core contains the main struct of the software.
package core

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/pngme/pngme/internal/commands"
	"github.com/pngme/pngme/internal/conf"
	"github.com/pngme/pngme/internal/logger"
)

var version = "v0.0.0"

var defaultConfPaths = []string{
	"pngme.yml",
}

// Core is an instance of pngme.
type Core struct {
	stdout io.Writer
	stderr io.Writer
	exit   func(int)

	conf     *conf.Conf
	confPath string
	logger   *logger.Logger
}

// Run parses the command line, runs the selected command and reports whether it succeeded.
func Run(args []string) bool {
	p := &Core{
		stdout: os.Stdout,
		stderr: os.Stderr,
		exit:   os.Exit,
	}
	return p.run(args)
}

// Log implements logger.Writer.
func (p *Core) Log(level logger.Level, format string, args ...any) {
	p.logger.Log(level, format, args...)
}

func (p *Core) run(args []string) bool {
	var c cli

	parser, err := kong.New(&c,
		kong.Name("pngme"),
		kong.Description("pngme "+version+", hides messages inside PNG chunks"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.Writers(p.stdout, p.stderr),
		kong.Exit(p.exit))
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		parser.FatalIfErrorf(err)
		return false
	}

	p.conf, p.confPath, err = conf.Load(c.Conf, defaultConfPaths)
	if err != nil {
		fmt.Fprintf(p.stderr, "ERR: %s\n", err)
		return false
	}

	err = p.createLogger()
	if err != nil {
		fmt.Fprintf(p.stderr, "ERR: %s\n", err)
		return false
	}
	defer p.logger.Close()

	if p.confPath != "" {
		p.Log(logger.Debug, "configuration loaded from %s", p.confPath)
	}

	cmds := &commands.Commands{
		MaxFileSize: uint64(p.conf.MaxFileSize),
		Stdout:      p.stdout,
		Parent:      p,
	}

	err = ctx.Run(cmds)
	if err != nil {
		p.Log(logger.Error, "%s", err)
		return false
	}

	return true
}

func (p *Core) createLogger() error {
	p.logger = &logger.Logger{
		Level:        logger.Level(p.conf.LogLevel),
		Destinations: p.conf.LogDestinations,
		Structured:   p.conf.LogStructured,
		File:         p.conf.LogFile,
		SysLogPrefix: p.conf.SysLogPrefix,
	}
	return p.logger.Initialize()
}
