package main

import (
	"os"
	"runtime"

	"github.com/achilleasa/pathview/cmd"
	"github.com/urfave/cli"
)

func init() {
	// GLFW event handling must run on the main thread
	runtime.LockOSThread()
}

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "pathview"
	app.Usage = "interactive progressive render viewer"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load viewer settings from a YAML file",
		},
		cli.StringFlag{
			Name:  "model, m",
			Usage: "model file or http(s) URL to display; overrides the configured model",
		},
		cli.BoolFlag{
			Name:  "watch, w",
			Usage: "reload the model when its file changes",
		},
	}
	app.Action = cmd.View
	app.Commands = []cli.Command{
		{
			Name:  "info",
			Usage: "print model bounds",
			Description: `
Parse one or more wavefront obj models and print their bounding volume and
the world scale used for camera motion. When no model is specified the
configured model is used.`,
			ArgsUsage: "model1.obj model2.obj ...",
			Action:    cmd.ModelInfo,
		},
	}

	app.Run(os.Args)
}
