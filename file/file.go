package file

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jsphweid/chartband/chart"
	"github.com/jsphweid/chartband/model"
	"github.com/pkg/errors"
)

var chartExtensions = []string{".txt", ".ireal", ".html", ".htm"}

var linkRe = regexp.MustCompile(`irealbook://[^"'<>\s]+`)

func isChartFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range chartExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// GatherChartPaths walks dir for chart files. maxNum of 0 means no limit.
func GatherChartPaths(dir string, maxNum int) ([]string, error) {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isChartFile(s) {
			if maxNum == 0 || len(res) < maxNum {
				res = append(res, s)
			}
		}
		return nil
	}
	if err := filepath.WalkDir(dir, walk); err != nil {
		return nil, errors.Wrapf(err, "Error walking %v", dir)
	}
	return res, nil
}

// ReadCharts returns every tune in a chart file. Files holding irealbook://
// links (as exported web pages do) give one tune per link; anything else is
// read as bare chart notation titled after the file.
func ReadCharts(path string) ([]model.Tune, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not read %v", path)
	}
	text := string(data)

	links := linkRe.FindAllString(text, -1)
	if len(links) == 0 {
		t := chart.Parse(text)
		if t.Title == "" {
			t.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		tunes := []model.Tune{t}
		AssignIDs(tunes)
		return tunes, nil
	}

	var res []model.Tune
	for _, link := range links {
		t, err := chart.ParseURI(link)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad chart link in %v", path)
		}
		res = append(res, t)
	}
	return res, nil
}

// AssignIDs gives a fresh id to every tune that lacks one.
func AssignIDs(tunes []model.Tune) {
	for i := range tunes {
		if tunes[i].ID == "" {
			tunes[i].ID = uuid.NewString()
		}
	}
}
