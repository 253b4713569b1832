package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

// RemoteServer is an in-process goals REST API. Tasks are kept as the raw
// JSON objects clients sent, so tests can assert on the wire format.
type RemoteServer struct {
	*httptest.Server

	// Token is the bearer token every request must carry.
	Token string

	mu      sync.Mutex
	tasks   []map[string]any
	nextID  int
	keys    []string
	failure int
}

// NewRemoteServer starts a server accepting token. It is closed when the
// test ends.
func NewRemoteServer(t testing.TB, token string) *RemoteServer {
	t.Helper()
	s := &RemoteServer{Token: token}

	router := mux.NewRouter()
	router.Use(s.authenticate)
	router.HandleFunc("/tasks", s.listTasks).Methods(http.MethodGet)
	router.HandleFunc("/tasks", s.createTask).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{taskID}", s.deleteTask).Methods(http.MethodDelete)

	s.Server = httptest.NewServer(router)
	t.Cleanup(s.Close)
	return s
}

// FailWith makes every following request answer with status. Zero restores
// normal behavior.
func (s *RemoteServer) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = status
}

// Saved returns the stored tasks as raw JSON objects.
func (s *RemoteServer) Saved() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]map[string]any, len(s.tasks))
	copy(result, s.tasks)
	return result
}

// IdempotencyKeys returns the Idempotency-Key header of every POST.
func (s *RemoteServer) IdempotencyKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.keys...)
}

func (s *RemoteServer) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.Token {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		s.mu.Lock()
		failure := s.failure
		s.mu.Unlock()
		if failure != 0 {
			http.Error(w, http.StatusText(failure), failure)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *RemoteServer) listTasks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Saved())
}

func (s *RemoteServer) createTask(w http.ResponseWriter, r *http.Request) {
	var task map[string]any
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.nextID++
	task["_id"] = fmt.Sprintf("srv-%d", s.nextID)
	s.tasks = append(s.tasks, task)
	s.keys = append(s.keys, r.Header.Get("Idempotency-Key"))
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(task)
}

func (s *RemoteServer) deleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, task := range s.tasks {
		if task["_id"] == taskID {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "Task not found", http.StatusNotFound)
}
