package model

type ParseRequestBody struct {
	Text string `json:"text"`
}

type SerializeResponse struct {
	Text string `json:"text"`
	URI  string `json:"uri"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

type Cadence struct {
	Key     string   `json:"key"`
	Chords  []string `json:"chords"`
	Implied bool     `json:"implied,omitempty"`
}

type BarHint struct {
	Position Position `json:"position"`
	Chord    string   `json:"chord,omitempty"`
	Scales   []string `json:"scales,omitempty"`
	Cadence  *Cadence `json:"two_five_one,omitempty"`
}

type AnalyzeResponse struct {
	Tune  Tune      `json:"tune"`
	Hints []BarHint `json:"hints"`
}

type RenderRequestBody struct {
	Text      string  `json:"text"`
	Tempo     float64 `json:"tempo,omitempty"`
	Transpose int     `json:"transpose,omitempty"`
	Loops     int     `json:"loops,omitempty"`
	NoClick   bool    `json:"no_click,omitempty"`
}

// SearchRequestBody holds MIDI note numbers of one voicing.
type SearchRequestBody struct {
	Notes []uint8 `json:"notes"`
}

type SearchResult struct {
	TuneID   string   `json:"tune_id"`
	Title    string   `json:"title"`
	Position Position `json:"position"`
}

type SearchResponse struct {
	Chord      string         `json:"chord"`
	Scales     []string       `json:"scales"`
	NumMatches int            `json:"num_matches"`
	Results    []SearchResult `json:"results"`
}
