package notes

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Server exposes a Store on the note routes.
type Server struct {
	addr   string
	store  *Store
	logger *log.Logger
}

// NewServer returns a server for store listening on addr. A nil logger
// discards request logs.
func NewServer(addr string, store *Store, logger *log.Logger) (*Server, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("notes: addr is empty")
	}
	if store == nil {
		return nil, errors.New("notes: store is nil")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Server{addr: addr, store: store, logger: logger}, nil
}

func (s *Server) Addr() string { return s.addr }

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /note/list", s.handleList)
	mux.HandleFunc("POST /note/add", s.handleAdd)
	mux.HandleFunc("POST /note/edit", s.handleEdit)
	mux.HandleFunc("POST /note/delete", s.handleDelete)
	return s.logRequests(allowCORS(mux))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.writeErr(w, "list", err)
		return
	}
	writeJSON(w, Response{Code: CodeOK, Data: list})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if !s.decode(w, r, &req) {
		return
	}
	if _, err := s.store.Add(r.Context(), req.Title); err != nil {
		s.writeErr(w, "add", err)
		return
	}
	writeJSON(w, Response{Code: CodeOK})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.store.Edit(r.Context(), req.ID, req.Title); err != nil {
		s.writeErr(w, "edit", err)
		return
	}
	writeJSON(w, Response{Code: CodeOK})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.store.Delete(r.Context(), req.ID); err != nil {
		s.writeErr(w, "delete", err)
		return
	}
	writeJSON(w, Response{Code: CodeOK})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err == nil {
		err = json.Unmarshal(body, v)
	}
	if err != nil {
		writeJSON(w, Response{Code: CodeBadRequest, Msg: "invalid request body"})
		return false
	}
	return true
}

func (s *Server) writeErr(w http.ResponseWriter, op string, err error) {
	code := codeFor(err)
	if code == CodeInternal {
		s.logger.Printf("%s: %v", op, err)
	}
	writeJSON(w, Response{Code: code, Msg: err.Error()})
}

// writeJSON always answers 200; failures are carried in the code field.
func writeJSON(w http.ResponseWriter, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Printf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start).Round(time.Microsecond))
	})
}

func allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
