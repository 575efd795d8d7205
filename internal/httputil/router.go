package httputil

import (
	"github.com/gorilla/mux"
)

// NewRouter returns a new router instance.
func NewRouter() *mux.Router {
	return mux.NewRouter()
}
