package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/twitterclone/twitter-api/internal/api/shared"
	"github.com/twitterclone/twitter-api/internal/platform/logger"
)

// knownPersonIDs are the ids GET /tutorial/person/detail/{person_id} reports as existing.
var knownPersonIDs = map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}

// TutorialHandler serves the /tutorial playground. None of its endpoints
// touch the record store; they only exercise request decoding and validation.
type TutorialHandler struct {
	maxFormMemory int64
	logger        *slog.Logger
}

// NewTutorialHandler creates a new TutorialHandler.
func NewTutorialHandler(maxFormMemory int64, logger *slog.Logger) *TutorialHandler {
	if logger == nil {
		// ALLOW-PANIC: constructor misuse is a programming error
		panic("logger cannot be nil")
	}
	return &TutorialHandler{
		maxFormMemory: maxFormMemory,
		logger:        logger.With("component", "tutorial_handler"),
	}
}

// Home handles GET /tutorial/.
func (h *TutorialHandler) Home(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"First API": "Congratulation"})
}

// CreatePerson handles POST /tutorial/person/new.
func (h *TutorialHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req Person
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, PersonOut{PersonBase: req.PersonBase})
}

// ShowPerson handles GET /tutorial/person/detail?name=&age= and answers {name: age}.
func (h *TutorialHandler) ShowPerson(w http.ResponseWriter, r *http.Request) {
	var q PersonQuery
	if err := shared.DecodeValues(r.URL.Query(), &q); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&q); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	name := q.Name
	if name == "" {
		name = "null"
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{name: q.Age})
}

// PersonExists handles GET /tutorial/person/detail/{person_id}.
func (h *TutorialHandler) PersonExists(w http.ResponseWriter, r *http.Request) {
	id, err := getPathPositiveInt(r, "person_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if !knownPersonIDs[id] {
		shared.RespondWithError(w, r, http.StatusNotFound, "This person doesn't exist")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{strconv.Itoa(id): "it_exist!"})
}

// UpdatePerson handles PUT /tutorial/person/{person_id} and returns the person
// merged with the location.
func (h *TutorialHandler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	if _, err := getPathPositiveInt(r, "person_id"); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdatePersonRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PersonLocationOut{
		PersonBase: req.Person.PersonBase,
		Location:   req.Location,
	})
}

// Login handles POST /tutorial/login. It checks the form shape only.
func (h *TutorialHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req TutorialLoginRequest
	if err := shared.DecodeForm(r, &req, h.maxFormMemory); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, TutorialLoginResponse{Username: req.Username})
}

// Contact handles POST /tutorial/contact. It answers with the caller's
// User-Agent (null when absent) and logs the "ads" cookie.
func (h *TutorialHandler) Contact(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ContactRequest
	if err := shared.DecodeForm(r, &req, h.maxFormMemory); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if c, err := r.Cookie("ads"); err == nil {
		log.Debug("contact form ads cookie", slog.String("ads", c.Value))
	}

	var userAgent *string
	if ua := r.Header.Get("User-Agent"); ua != "" {
		userAgent = &ua
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userAgent)
}
