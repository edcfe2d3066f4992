package chart

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/jsphweid/chartband/model"
)

const (
	uriScheme           = "irealbook://"
	obfuscatedURIScheme = "irealb://"
	headerFields        = 5
)

var (
	ErrNotChartURI     = errors.New("chart: not an irealbook:// link")
	ErrObfuscatedChart = errors.New("chart: obfuscated irealb:// links are not supported")
)

// ParseURI reads a link of the form
// irealbook://Title=Composer=Style=Key=n=chord data.
func ParseURI(uri string) (model.Tune, error) {
	if strings.HasPrefix(uri, obfuscatedURIScheme) {
		return model.Tune{}, ErrObfuscatedChart
	}
	if !strings.HasPrefix(uri, uriScheme) {
		return model.Tune{}, ErrNotChartURI
	}

	content, err := url.PathUnescape(uri[len(uriScheme):])
	if err != nil {
		return model.Tune{}, fmt.Errorf("chart: decode link: %w", err)
	}

	parts := strings.Split(content, "=")
	if len(parts) <= headerFields {
		return model.Tune{}, fmt.Errorf("chart: link has %d fields, want at least %d", len(parts), headerFields+1)
	}

	return model.Tune{
		ID:           uuid.NewString(),
		Title:        parts[0],
		Composer:     parts[1],
		Style:        parts[2],
		DefaultKey:   parts[3],
		DefaultTempo: model.DefaultTempo,
		// chord data may itself contain '='
		Sections: ParseSections(strings.Join(parts[headerFields:], "=")),
	}, nil
}

// URI is the inverse of ParseURI.
func URI(t model.Tune) string {
	fields := []string{t.Title, t.Composer, t.Style, t.DefaultKey, "n", Serialize(t)}
	return uriScheme + url.PathEscape(strings.Join(fields, "="))
}
