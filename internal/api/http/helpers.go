package http

import (
	"encoding/json"
	"log"
	nethttp "net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/openlearn/classroom/internal/auth"
	authmw "github.com/openlearn/classroom/internal/auth/middleware"
	"github.com/openlearn/classroom/internal/errs"
)

var validate = validator.New()

func writeJSON(w nethttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps the error kinds from the core onto transport statuses.
func writeErr(w nethttp.ResponseWriter, err error) {
	kind := errs.KindOf(err)
	status := nethttp.StatusInternalServerError
	switch kind {
	case errs.KindNotFound:
		status = nethttp.StatusNotFound
	case errs.KindUnauthorized:
		status = nethttp.StatusForbidden
	case errs.KindInvalidInput:
		status = nethttp.StatusBadRequest
	}
	msg := err.Error()
	if status == nethttp.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		msg = "operation failed"
	}
	writeJSON(w, status, map[string]string{"message": msg})
}

// decodeValid decodes the JSON body into req and runs validator tags.
func decodeValid(r *nethttp.Request, req any) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return errs.InvalidInput("bad json")
	}
	if err := validate.Struct(req); err != nil {
		return errs.InvalidInput(err.Error())
	}
	return nil
}

func actorFrom(r *nethttp.Request) (auth.Actor, bool) {
	return authmw.ActorFromContext(r.Context())
}

// parseAnswers converts the wire answer map (JSON object keys are
// strings) into question-index keyed form. Unparsable keys are dropped,
// matching the scoring policy that missing answers count as incorrect.
func parseAnswers(raw map[string]int) map[int]int {
	out := make(map[int]int, len(raw))
	for k, v := range raw {
		if i, err := strconv.Atoi(k); err == nil && i >= 0 {
			out[i] = v
		}
	}
	return out
}
