// Package petapitest provides an in-memory pet store backend for tests and
// local development.
package petapitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/five82/petdesk/internal/pets"
)

const (
	defaultImage  = "/assets/default-pet.jpg"
	maxUploadSize = 8 << 20
)

var allowedExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true}

// Upload records an image received by the create endpoint.
type Upload struct {
	Path    string
	Content []byte
}

// Calls counts requests per endpoint.
type Calls struct {
	List   int
	Create int
	Remove int
}

// Server is a fake backend speaking the same HTTP contract as the real one.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	pets      map[int64]pets.Pet
	nextID    int64
	failure   int
	calls     Calls
	uploads   []Upload
	lastHeads http.Header
}

// NewServer starts a backend seeded with the given pets.
func NewServer(seed ...pets.Pet) *Server {
	s := &Server{pets: make(map[int64]pets.Pet), nextID: 1}
	for _, p := range seed {
		s.pets[p.ID] = p
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	s.Server = httptest.NewServer(s.Router())
	return s
}

// Router returns the chi router serving the backend endpoints.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.record)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Pet Store API is running!"})
	})
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", s.listPets)
		pr.Post("/", s.createPet)
		pr.Delete("/{petID}", s.deletePet)
	})
	return r
}

// SetFailure makes every pet endpoint answer with status. Zero restores normal behavior.
func (s *Server) SetFailure(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = status
}

// Pets returns the stored pets ordered by id.
func (s *Server) Pets() []pets.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

// Calls returns the request counters.
func (s *Server) Calls() Calls {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Uploads returns every image the create endpoint accepted.
func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Upload, len(s.uploads))
	copy(out, s.uploads)
	return out
}

// LastHeaders returns the headers of the most recent request.
func (s *Server) LastHeaders() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastHeads.Clone()
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.lastHeads = r.Header.Clone()
		failure := s.failure
		s.mu.Unlock()

		if failure != 0 && strings.HasPrefix(r.URL.Path, "/pets") {
			writeJSON(w, failure, map[string]string{"error": http.StatusText(failure)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listPets(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.calls.List++
	list := s.sortedLocked()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) createPet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.calls.Create++
	s.mu.Unlock()

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	price := int64(0)
	if raw := r.FormValue("price"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid literal for int(): '" + raw + "'"})
			return
		}
		price = n
	}

	imageURL := defaultImage
	var upload *Upload
	if file, header, err := r.FormFile("image"); err == nil {
		defer func() { _ = file.Close() }()
		if allowedExtensions[strings.ToLower(filepath.Ext(header.Filename))] {
			content, err := io.ReadAll(file)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			imageURL = "/uploads/" + strings.ReplaceAll(uuid.NewString(), "-", "") + "_" + header.Filename
			upload = &Upload{Path: imageURL, Content: content}
		}
	}

	p := pets.Pet{
		Name:        formValue(r, "name", "Unnamed"),
		Type:        pets.Type(formValue(r, "type", string(pets.TypeDog))),
		Price:       decimal.NewFromInt(price),
		Description: r.FormValue("description"),
		ImageURL:    imageURL,
	}

	s.mu.Lock()
	p.ID = s.nextID
	s.nextID++
	s.pets[p.ID] = p
	if upload != nil {
		s.uploads = append(s.uploads, *upload)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) deletePet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "petID"), 10, 64)

	s.mu.Lock()
	s.calls.Remove++
	_, ok := s.pets[id]
	if err == nil && ok {
		delete(s.pets, id)
	}
	s.mu.Unlock()

	if err != nil || !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Pet not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Pet deleted successfully"})
}

func (s *Server) sortedLocked() []pets.Pet {
	out := make([]pets.Pet, 0, len(s.pets))
	for _, p := range s.pets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// formValue mirrors the backend's dict.get semantics: absent keys take the
// default, present-but-empty values are kept.
func formValue(r *http.Request, key, fallback string) string {
	if r.MultipartForm != nil {
		if vals, ok := r.MultipartForm.Value[key]; ok && len(vals) > 0 {
			return vals[0]
		}
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
