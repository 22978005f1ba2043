package server

import (
	"errors"
	"net/http"

	"github.com/jellydator/ttlcache/v3"

	"github.com/shortclip/shortclip/internal/metadata"
	"github.com/shortclip/shortclip/internal/store"
)

// MediaTypeURIList marks stored objects that are themselves URLs.
const MediaTypeURIList = "text/uri-list"

// handleDownload resolves /<id>. Stored URLs answer with a 307 redirect,
// everything else is served verbatim with aggressive caching headers
// (objects are immutable, the id pins the content).
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) error {
	path := r.URL.Path
	if len(path) < 2 {
		notFound(w, r)
		return nil
	}
	id := path[1:]

	data, meta, err := s.lookup(r, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notFound(w, r)
			return nil
		}
		return err
	}

	w.Header().Set("X-Content-Type-Options", "nosniff")

	if meta.ContentType == MediaTypeURIList {
		target := string(data)
		w.Header().Set("Location", target)
		w.Header().Set("Content-Type", MediaTypeURIList)
		w.WriteHeader(http.StatusTemporaryRedirect)
		_, err = w.Write(data)
		return err
	}

	w.Header().Set("Content-Type", meta.ContentType)
	w.Header().Set("Cache-Control", "max-age=31536000, immutable")
	_, err = w.Write(data)
	return err
}

// lookup consults the hot-object cache before hitting the store.
func (s *Server) lookup(r *http.Request, id string) ([]byte, metadata.Metadata, error) {
	if item := s.cache.Get(id); item != nil {
		obj := item.Value()
		return obj.data, obj.meta, nil
	}

	data, meta, err := s.store.Get(r.Context(), id)
	if err != nil {
		return nil, metadata.Metadata{}, err
	}

	if len(data) <= maxCacheableSize {
		s.cache.Set(id, cachedObject{data: data, meta: meta}, ttlcache.DefaultTTL)
	}

	return data, meta, nil
}
