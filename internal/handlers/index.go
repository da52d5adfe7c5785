package handlers

import "net/http"

// Endpoint describes one route in the API index.
type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// Endpoints is served by Index and logged at startup.
var Endpoints = []Endpoint{
	{"GET", "/health", "Liveness check"},
	{"POST", "/api/auth/register", "Create an account"},
	{"POST", "/api/auth/login", "Log in and receive a session token"},
	{"POST", "/api/auth/logout", "Revoke the current session"},
	{"GET", "/api/auth/me", "Current account"},
	{"GET", "/api/goals/{userId}", "List goals"},
	{"GET", "/api/goals/{userId}/summary", "Savings summary"},
	{"POST", "/api/goals", "Create a goal"},
	{"PUT", "/api/goals/{id}", "Update a goal"},
	{"POST", "/api/goals/{id}/add-money", "Deposit into a goal"},
	{"DELETE", "/api/goals/{id}", "Delete a goal"},
	{"GET", "/api/activities/{userId}", "Recent activity"},
	{"GET", "/api/database", "Database dump without credentials"},
	{"GET", "/api/database/stats", "Database statistics"},
	{"POST", "/api/database/backup", "Write a backup"},
	{"GET", "/ws/activities", "Live activity feed"},
}

func Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "Goal Ledger API", Response{"endpoints": Endpoints})
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}
