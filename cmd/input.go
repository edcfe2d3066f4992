package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/chartband/chart"
	"github.com/jsphweid/chartband/model"
	"github.com/pkg/errors"
)

// readChart loads a chart from the file named in args, or from stdin when
// there is none or it is "-".
func readChart(args []string) (model.Tune, error) {
	var data []byte
	var err error
	name := "-"
	if len(args) > 0 {
		name = args[0]
	}
	if name == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return model.Tune{}, errors.Wrapf(err, "Could not read chart %v", name)
	}

	t := chart.Parse(string(data))
	if t.Title == "" && name != "-" {
		t.Title = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	return t, nil
}
