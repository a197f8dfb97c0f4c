package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/autumnleaf-ra/Anime-API/internal/app"
	"github.com/autumnleaf-ra/Anime-API/internal/httpjson"
)

const maxBodyBytes = 1 << 20

type AnimeHandler struct {
	anime *app.AnimeService
}

func NewAnimeHandler(anime *app.AnimeService) *AnimeHandler {
	return &AnimeHandler{anime: anime}
}

func (h *AnimeHandler) Routes(r chi.Router) {
	r.Route("/anime", func(r chi.Router) {
		r.Get("/list", h.list)
		r.Post("/search", h.search)
		r.Get("/detail/{id}", h.detail)
		r.Post("/genre", h.genre)
		r.Post("/episode", h.episode)
		r.Post("/year", h.year)
	})
}

func (h *AnimeHandler) list(w http.ResponseWriter, r *http.Request) {
	q := app.ParseListQuery(r.URL.Query().Get("offset"), r.URL.Query().Get("limit"))
	res, err := h.anime.List(r.Context(), q)
	writeResult(w, r, res, err)
}

func (h *AnimeHandler) search(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	res, err := h.anime.Search(r.Context(), body)
	writeResult(w, r, res, err)
}

func (h *AnimeHandler) detail(w http.ResponseWriter, r *http.Request) {
	res, err := h.anime.Detail(r.Context(), chi.URLParam(r, "id"))
	writeResult(w, r, res, err)
}

func (h *AnimeHandler) genre(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	res, err := h.anime.Genre(r.Context(), body)
	writeResult(w, r, res, err)
}

func (h *AnimeHandler) episode(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	res, err := h.anime.Episodes(r.Context(), body)
	writeResult(w, r, res, err)
}

func (h *AnimeHandler) year(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	res, err := h.anime.Year(r.Context(), body)
	writeResult(w, r, res, err)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpjson.WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		httpjson.WriteError(w, http.StatusBadRequest, "invalid body")
		return nil, false
	}
	return b, true
}

func statusFor(o app.Outcome) int {
	switch o {
	case app.OutcomeSuccess:
		return http.StatusOK
	case app.OutcomeInvalidInput:
		return http.StatusBadRequest
	case app.OutcomeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeResult: les erreurs internes ne sortent jamais telles quelles.
// Les CodedError ont déjà été journalisées là où elles sont nées.
// Une erreur interne survenue après expiration du délai est laissée à
// requestTimeout, qui répond 504.
func writeResult(w http.ResponseWriter, r *http.Request, v any, err error) {
	outcome := app.Classify(err)
	if outcome == app.OutcomeInternal && errors.Is(r.Context().Err(), context.DeadlineExceeded) {
		return
	}
	status := statusFor(outcome)
	switch outcome {
	case app.OutcomeSuccess:
		httpjson.Write(w, status, v)
	case app.OutcomeInvalidInput, app.OutcomeNotFound:
		httpjson.WriteError(w, status, err.Error())
	default:
		var coded *app.CodedError
		if !errors.As(err, &coded) {
			hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("unexpected error")
		}
		httpjson.WriteError(w, status, "internal server error")
	}
}
