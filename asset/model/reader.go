// Package model loads the bounding volume of model files.
package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/achilleasa/pathview/asset"
	"github.com/achilleasa/pathview/log"
	"github.com/achilleasa/pathview/scene"
)

var logger = log.New("model")

// Read the model at path, which may be a local file or an http(s) URL. The
// reader is selected by the file extension.
func Read(path string) (*scene.Model, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".obj" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	res, err := asset.NewResource(path, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	logger.Infof("parsing model from %s", res.Path())
	start := time.Now()

	r := newWavefrontReader()
	if err = r.parse(res); err != nil {
		return nil, err
	}

	model := r.model(res.Path())
	if model.Vertices == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyModel, res.Path())
	}

	logger.Infof("parsed model in %d ms", time.Since(start).Nanoseconds()/1000000)
	logger.Debugf("%s", model)
	return model, nil
}
