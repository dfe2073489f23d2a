package main

import "net/http"

func buildHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/register", handleRegister)
	mux.HandleFunc("POST /v1/login", handleLogin)
	mux.HandleFunc("POST /v1/logout", handleLogout)

	mux.HandleFunc("GET /v1/status", handleStatus)
	mux.HandleFunc("GET /v1/records", handleGetRecords)
	mux.HandleFunc("GET /v1/myrecords", handleGetOwnRecords)

	mux.HandleFunc("POST /v1/puzzle", handleNewPuzzle)
	mux.HandleFunc("GET /v1/puzzle/{id}", handleGetPuzzle)
	mux.HandleFunc("POST /v1/puzzle/{id}/solve", handleSolvePuzzle)
	mux.HandleFunc("POST /v1/solve", handleSolveAdHoc)

	mux.HandleFunc("/v1/puzzle/{id}/connect", handleConnectWs)

	handler := useMiddleware(mux,
		corsMiddleware,
		authMiddleware,
		loggingMiddleware,
	)

	return handler
}
