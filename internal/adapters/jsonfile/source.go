package jsonfile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/autumnleaf-ra/Anime-API/internal/domain"
)

// Source lit un document JSON et en extrait le tableau d'enregistrements
// désigné par un sélecteur pointé ("data", "data.*", "catalog.items").
// Un sélecteur vide désigne la racine.
//
// Chaque Load relit le fichier et renvoie une collection neuve.
type Source struct {
	path     string
	selector []string
}

func New(path, selector string) *Source {
	return &Source{path: path, selector: parseSelector(selector)}
}

type animeRecord struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Episodes    int      `json:"episodes"`
	Status      string   `json:"status"`
	Picture     string   `json:"picture"`
	Thumbnail   string   `json:"thumbnail"`
	Tags        []string `json:"tags"`
	AnimeSeason struct {
		Season string `json:"season"`
		Year   int    `json:"year"`
	} `json:"animeSeason"`
}

func (s *Source) Load(ctx context.Context) ([]domain.Anime, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	raw, err := selectRaw(b, s.selector)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []animeRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	out := make([]domain.Anime, 0, len(records))
	seen := make(map[int]struct{}, len(records))
	for i, r := range records {
		if strings.TrimSpace(r.Title) == "" {
			return nil, fmt.Errorf("record %d: empty title", i)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("record %d: duplicate id %d", i, r.ID)
		}
		seen[r.ID] = struct{}{}
		status := domain.Status(r.Status)
		if !status.Valid() {
			status = domain.StatusUnknown
		}
		out = append(out, domain.Anime{
			ID:        r.ID,
			Title:     r.Title,
			Type:      r.Type,
			Episodes:  r.Episodes,
			Status:    status,
			Picture:   r.Picture,
			Thumbnail: r.Thumbnail,
			Tags:      r.Tags,
			Season:    r.AnimeSeason.Season,
			Year:      r.AnimeSeason.Year,
		})
	}
	return out, nil
}

func parseSelector(sel string) []string {
	sel = strings.TrimSpace(sel)
	sel = strings.TrimSuffix(sel, "*")
	sel = strings.Trim(sel, ".")
	if sel == "" {
		return nil
	}
	return strings.Split(sel, ".")
}

func selectRaw(b []byte, path []string) (json.RawMessage, error) {
	cur := json.RawMessage(b)
	for i, key := range path {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(cur, &obj); err != nil {
			return nil, fmt.Errorf("decode dataset at %q: %w", strings.Join(path[:i], "."), err)
		}
		next, ok := obj[key]
		if !ok {
			return nil, fmt.Errorf("selector %q: key %q missing", strings.Join(path, "."), key)
		}
		cur = next
	}
	return cur, nil
}
