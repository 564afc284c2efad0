package cmd

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jwhitt/romannotate/apperr"
	"github.com/jwhitt/romannotate/constants"
	"github.com/jwhitt/romannotate/engine"
	"github.com/jwhitt/romannotate/sidecar"
)

var serveAddr string

// serveLog is replaced with the real sink when the serve command starts;
// the handler stays usable (and silent) under httptest.
var serveLog logrus.FieldLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", constants.GetServeAddr(), "listen address")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the analyzer over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

// HandleAnalyze accepts raw SMF bytes in the request body and responds
// with the sidecar, as YAML by default or JSON with ?format=json.
func HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()
	log := serveLog.WithField("request_id", requestID)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "could not read request body", http.StatusBadRequest)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = requestID + ".mid"
	}

	doc, err := engine.AnalyzeBytes(body, name, engine.WithLogger(log))
	if err != nil {
		var malformed *apperr.MalformedFileError
		var empty *apperr.EmptyScoreError
		if errors.As(err, &malformed) || errors.As(err, &empty) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if r.URL.Query().Get("format") == "json" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(doc)
		return
	}

	data, err := sidecar.Render(doc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/yaml")
	w.Write(data)
}

func serve() error {
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()
	serveLog = logger

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/analyze", HandleAnalyze).Methods("POST")
	handler := cors.Default().Handler(router)

	logger.Infof("listening on %v", serveAddr)
	return http.ListenAndServe(serveAddr, handler)
}
