package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jsphweid/chartband/band"
	"github.com/jsphweid/chartband/catalog"
	"github.com/jsphweid/chartband/chart"
	"github.com/jsphweid/chartband/chord"
	"github.com/jsphweid/chartband/config"
	"github.com/jsphweid/chartband/constants"
	"github.com/jsphweid/chartband/db"
	"github.com/jsphweid/chartband/hint"
	"github.com/jsphweid/chartband/model"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

// TuneStore looks tunes up by id. Missing ids are left out of the result.
type TuneStore interface {
	GetTunes(ids []string) (map[string]model.Tune, error)
}

var (
	library    catalog.Catalog
	store      TuneStore
	bandConfig = config.Default()
	useDynamo  bool
)

func init() {
	serveCmd.Flags().BoolVar(&useDynamo, "dynamo", false, "look tunes up in DynamoDB instead of the index")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the chart API",
	Long:  `Serves parsing, analysis, rendering and chord search over HTTP on PORT.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := LoadServeFiles(constants.GetOutDir()); err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		bandConfig = cfg
		if useDynamo {
			s, err := db.Connect(constants.GetDynamoEndpoint(), constants.GetDynamoRegion(), constants.TunesTable)
			if err != nil {
				return err
			}
			store = s
		}

		addr := ":" + constants.GetPort()
		log.Printf("Listening on %v", addr)
		return http.ListenAndServe(addr, NewRouter())
	},
}

// LoadServeFiles loads the chart index written by index from outDir.
func LoadServeFiles(outDir string) error {
	c, err := catalog.Load(outDir)
	if err != nil {
		return err
	}
	library = c
	store = c
	return nil
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/parse", HandleParse).Methods("POST")
	router.HandleFunc("/serialize", HandleSerialize).Methods("POST")
	router.HandleFunc("/analyze", HandleAnalyze).Methods("POST")
	router.HandleFunc("/render", HandleRender).Methods("POST")
	router.HandleFunc("/search", HandleSearch).Methods("POST")
	router.HandleFunc("/tunes/{id}", HandleGetTune).Methods("GET")
	return cors.Default().Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Could not write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Could not parse request body: "+err.Error())
		return false
	}
	return true
}

func HandleParse(w http.ResponseWriter, r *http.Request) {
	var input model.ParseRequestBody
	if !decode(w, r, &input) {
		return
	}
	writeJSON(w, http.StatusOK, chart.Parse(input.Text))
}

func HandleSerialize(w http.ResponseWriter, r *http.Request) {
	var t model.Tune
	if !decode(w, r, &t) {
		return
	}
	writeJSON(w, http.StatusOK, model.SerializeResponse{Text: chart.Serialize(t), URI: chart.URI(t)})
}

func HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var input model.ParseRequestBody
	if !decode(w, r, &input) {
		return
	}
	t := chart.Parse(input.Text)
	writeJSON(w, http.StatusOK, model.AnalyzeResponse{Tune: t, Hints: hint.All(t)})
}

func HandleRender(w http.ResponseWriter, r *http.Request) {
	var input model.RenderRequestBody
	if !decode(w, r, &input) {
		return
	}
	t := chart.Parse(input.Text)
	if len(t.Sections) == 0 {
		writeError(w, http.StatusBadRequest, "Chart has no bars to play")
		return
	}

	p := bandConfig.Params()
	if input.Tempo > 0 {
		p.Tempo = input.Tempo
	}
	if input.Loops > 0 {
		p.Loops = input.Loops
	}
	p.Transpose = input.Transpose
	if input.NoClick {
		p.Mute = map[band.Role]bool{band.Click: true}
	}

	s, err := renderTune(t, p, bandConfig)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", t.Title+".mid"))
	w.Write(buf.Bytes())
}

func HandleSearch(w http.ResponseWriter, r *http.Request) {
	var input model.SearchRequestBody
	if !decode(w, r, &input) {
		return
	}
	notes := make([]chord.Note, len(input.Notes))
	for i, n := range input.Notes {
		notes[i] = chord.Note(n)
	}
	sym, ok := chord.Identify(notes)
	if !ok {
		writeError(w, http.StatusBadRequest, "Could not name a chord from those notes")
		return
	}

	matches := library.Search(sym)
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.TuneID)
	}
	tunes, err := store.GetTunes(ids)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	res := model.SearchResponse{
		Chord:      sym.String(),
		Scales:     chord.SuggestedScales(sym),
		NumMatches: len(matches),
		Results:    make([]model.SearchResult, 0, len(matches)),
	}
	for _, m := range matches {
		res.Results = append(res.Results, model.SearchResult{
			TuneID:   m.TuneID,
			Title:    tunes[m.TuneID].Title,
			Position: m.Position,
		})
	}
	writeJSON(w, http.StatusOK, res)
}

func HandleGetTune(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	tunes, err := store.GetTunes([]string{id})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	t, ok := tunes[id]
	if !ok {
		writeError(w, http.StatusNotFound, "No tune with id "+id)
		return
	}
	writeJSON(w, http.StatusOK, t)
}
