package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
)

// Token is the only token accepted by the fake server.
const Token = "squ_integration"

// FakeSonarQube serves a fixed project "acme" with one hotspot to review and one reviewed hotspot.
// Requests without the expected token are rejected with 401.
func FakeSonarQube() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/languages/list", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"languages": []map[string]string{
			{"key": "java", "name": "Java"},
			{"key": "py", "name": "Python"},
		}})
	})

	mux.HandleFunc("/api/hotspots/search", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("projectKey") != "acme" {
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]any{"errors": []map[string]string{{"msg": "Project not found"}}})

			return
		}

		page, _ := strconv.Atoi(query.Get("p"))

		var hotspots []map[string]any

		switch query.Get("status") {
		case "TO_REVIEW":
			hotspots = []map[string]any{{
				"key": "AX-open", "component": "acme:src/Db.java", "project": "acme", "line": 12,
				"status": "TO_REVIEW", "vulnerabilityProbability": "HIGH", "securityCategory": "sql-injection",
				"message": "Make sure using a dynamically formatted SQL query is safe here.",
			}}
		case "REVIEWED":
			hotspots = []map[string]any{{
				"key": "AX-done", "component": "acme:app.py", "project": "acme", "line": 3,
				"status": "REVIEWED", "vulnerabilityProbability": "LOW", "securityCategory": "weak-cryptography",
				"message": "Make sure this weak hash algorithm is not used in a sensitive context here.",
			}}
		}

		if page > 1 {
			hotspots = []map[string]any{}
		}

		writeJSON(w, map[string]any{
			"paging":   map[string]any{"pageIndex": page, "pageSize": 500, "total": 1},
			"hotspots": hotspots,
		})
	})

	mux.HandleFunc("/api/hotspots/show", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("hotspot") {
		case "AX-open":
			writeJSON(w, map[string]any{"rule": map[string]string{"key": "java:S2077"}, "comment": []any{}})
		case "AX-done":
			writeJSON(w, map[string]any{
				"rule":       map[string]string{"key": "python:S4790"},
				"resolution": "SAFE",
				"comment": []map[string]string{
					{"key": "c1", "login": "alice", "markdown": "Only used for cache keys", "createdAt": "2024-01-01"},
				},
			})
		default:
			http.NotFound(w, r)
		}
	})

	mux.HandleFunc("/api/rules/show", func(w http.ResponseWriter, r *http.Request) {
		rules := map[string]map[string]string{
			"java:S2077":   {"key": "java:S2077", "severity": "MAJOR", "lang": "java"},
			"python:S4790": {"key": "python:S4790", "severity": "CRITICAL", "lang": "py"},
		}

		rule, ok := rules[r.URL.Query().Get("key")]
		if !ok {
			http.NotFound(w, r)

			return
		}

		writeJSON(w, map[string]any{"rule": rule})
	})

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, _, ok := r.BasicAuth(); !ok || user != Token {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}

		mux.ServeHTTP(w, r)
	}))
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
