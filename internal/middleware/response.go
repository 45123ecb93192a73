package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/haguru/bugtracker/internal/models/dto"
)

const unmatchedRoute = "unmatched"

func writeError(w http.ResponseWriter, status int, errMsg, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponseDTO{Error: errMsg, Message: message})
}

// routeLabel returns the path template of the matched route, which keeps
// metric label cardinality bounded.
func routeLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return unmatchedRoute
}
