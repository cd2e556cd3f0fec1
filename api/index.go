package handler

import (
	"net/http"

	"github.com/lovedesignwork/skyrock-sub001/config"
	"github.com/lovedesignwork/skyrock-sub001/di"
	"github.com/lovedesignwork/skyrock-sub001/shared/logger"
)

// Handler is the serverless entrypoint. Each cold start builds the full
// dependency graph; warm invocations reuse it through the package-level
// singletons inside config and the wire injector.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	server := di.InitializeService()
	server.ServeHTTP(w, r)
}
