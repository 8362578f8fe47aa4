package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	perr "mortgage-agent/errors"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// writeJSON encodes into a buffer first so a failed encode never leaves a half-written 200
func writeJSON(w http.ResponseWriter, log zerolog.Logger, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Error().Err(err).Msg("encoding response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn().Err(err).Msg("writing response")
	}
}

func writeError(w http.ResponseWriter, log zerolog.Logger, err error) {
	resp := errorResponse{Code: perr.CodeOf(err).String(), Message: perr.MessageOf(err)}
	if e, ok := perr.As(err); ok {
		resp.Field = e.Field()
	}
	writeJSON(w, log, perr.HTTPStatus(err), resp)
}
