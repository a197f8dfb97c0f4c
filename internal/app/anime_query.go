package app

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/autumnleaf-ra/Anime-API/internal/domain"
)

const (
	DefaultListOffset = 0
	DefaultListLimit  = 10
)

// Toutes les opérations font un seul parcours linéaire de la collection et ne
// la modifient jamais.

type ListQuery struct {
	Offset int
	Limit  int
}

// ParseListQuery lit offset/limit depuis la query string.
// Valeurs absentes ou non numériques: valeurs par défaut. Les valeurs
// négatives sont ramenées à 0, celles qui dépassent un int à math.MaxInt.
func ParseListQuery(offset, limit string) ListQuery {
	q := ListQuery{Offset: DefaultListOffset, Limit: DefaultListLimit}
	if v, ok := parseCount(offset); ok {
		q.Offset = v
	}
	if v, ok := parseCount(limit); ok {
		q.Limit = v
	}
	return q
}

func parseCount(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	v, err := strconv.Atoi(raw)
	if err != nil {
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || !errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, false
		}
		if strings.HasPrefix(raw, "-") {
			return 0, true
		}
		return math.MaxInt, true
	}
	return max(v, 0), true
}

type ListResult struct {
	Count int                `json:"count"`
	List  []domain.AnimeView `json:"list"`
}

type SearchResult struct {
	Count  int                `json:"count"`
	List   []string           `json:"list"`
	Detail []domain.AnimeView `json:"detail"`
}

type DetailResult struct {
	List domain.AnimeView `json:"list"`
}

type EpisodeResult struct {
	Count int                  `json:"count"`
	List  []domain.EpisodeView `json:"list"`
}

func ListAnime(records []domain.Anime, q ListQuery) ListResult {
	start := min(max(q.Offset, 0), len(records))
	end := start + min(max(q.Limit, 0), len(records)-start)
	out := make([]domain.AnimeView, 0, end-start)
	for _, a := range records[start:end] {
		out = append(out, a.View())
	}
	return ListResult{Count: len(out), List: out}
}

func SearchByName(records []domain.Anime, name string) (SearchResult, error) {
	matches := matchTitle(records, name)
	if len(matches) == 0 {
		return SearchResult{}, notFound("Anime not found")
	}
	titles := make([]string, 0, len(matches))
	detail := make([]domain.AnimeView, 0, len(matches))
	for _, a := range matches {
		titles = append(titles, a.Title)
		detail = append(detail, a.View())
	}
	return SearchResult{Count: len(matches), List: titles, Detail: detail}, nil
}

// FindByID résout un identifiant brut (segment de chemin).
// Un identifiant non numérique ne correspond à aucun enregistrement.
func FindByID(records []domain.Anime, rawID string) (DetailResult, error) {
	id, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err == nil {
		for _, a := range records {
			if a.ID == id {
				return DetailResult{List: a.View()}, nil
			}
		}
	}
	return DetailResult{}, notFound(fmt.Sprintf("Anime with id %s not found", rawID))
}

// FilterByGenre compare les genres demandés (mis en minuscules) aux tags tels
// qu'ils sont stockés. Le NotFound est décidé avant le filtre de statut: un
// filtre de statut qui vide le résultat renvoie count 0, pas NotFound.
func FilterByGenre(records []domain.Anime, q GenreQuery) (ListResult, error) {
	wanted := make(map[string]struct{}, len(q.Genre))
	for _, g := range q.Genre {
		wanted[strings.ToLower(g)] = struct{}{}
	}

	var matched []domain.Anime
	for _, a := range records {
		for _, tag := range a.Tags {
			if _, ok := wanted[tag]; ok {
				matched = append(matched, a)
				break
			}
		}
	}
	if len(matched) == 0 {
		return ListResult{}, notFound("Anime not found")
	}

	out := make([]domain.AnimeView, 0, len(matched))
	for _, a := range matched {
		if q.Status != nil && a.Status != *q.Status {
			continue
		}
		out = append(out, a.View())
	}
	return ListResult{Count: len(out), List: out}, nil
}

func EpisodesByName(records []domain.Anime, name string) (EpisodeResult, error) {
	matches := matchTitle(records, name)
	if len(matches) == 0 {
		return EpisodeResult{}, notFound("Anime not found")
	}
	out := make([]domain.EpisodeView, 0, len(matches))
	for _, a := range matches {
		out = append(out, a.EpisodeView())
	}
	return EpisodeResult{Count: len(out), List: out}, nil
}

// ByYear: égalité stricte sur l'année de diffusion. Une année inconnue (0)
// ne correspond jamais.
func ByYear(records []domain.Anime, q YearQuery) (ListResult, error) {
	var out []domain.AnimeView
	if q.Year != nil {
		year := *q.Year
		for _, a := range records {
			if a.Year != 0 && float64(a.Year) == year {
				out = append(out, a.View())
			}
		}
	}
	if len(out) == 0 {
		return ListResult{}, notFound("Anime not found")
	}
	return ListResult{Count: len(out), List: out}, nil
}

func matchTitle(records []domain.Anime, name string) []domain.Anime {
	needle := strings.ToLower(name)
	var out []domain.Anime
	for _, a := range records {
		if strings.Contains(strings.ToLower(a.Title), needle) {
			out = append(out, a)
		}
	}
	return out
}
