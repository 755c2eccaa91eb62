package cmd

import (
	"github.com/achilleasa/pathview/log"
	"github.com/urfave/cli"
)

var logger = log.New("pathview")

// Apply the configured log level; the -v and -vv flags take precedence.
func setupLogging(ctx *cli.Context, levelName string) {
	level, err := log.ParseLevel(levelName)
	if err != nil {
		logger.Warningf("%s; using notice", err)
	}
	log.SetLevel(level)

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
