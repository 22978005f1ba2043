package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/shortclip/shortclip/internal/metadata"
)

// handleUpload stores the request body and answers 201 with the short link.
// The Authorization value is accepted with or without a "Bearer " prefix.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) error {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		badRequest(w, "Missing Authorization header")
		return nil
	}
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		badRequest(w, "Missing Content-Type header")
		return nil
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	username, ok := s.registry.Lookup(token)
	if !ok {
		authDenied(w)
		return nil
	}

	if limiter := s.limiterFor(token); limiter != nil && !limiter.Allow() {
		w.WriteHeader(http.StatusTooManyRequests)
		return nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	meta := metadata.New(username, contentType)
	id, created, err := s.store.Put(r.Context(), data, meta)
	if err != nil {
		return err
	}

	link := s.linkFor(id)

	s.logger.Info("upload",
		"request_id", requestID(r.Context()),
		"id", id,
		"author", username,
		"content_type", contentType,
		"size", len(data),
		"created", created,
	)

	w.Header().Set("Location", link)
	w.WriteHeader(http.StatusCreated)
	_, err = w.Write([]byte(link))
	return err
}
