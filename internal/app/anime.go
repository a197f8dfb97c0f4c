package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/autumnleaf-ra/Anime-API/internal/domain"
	"github.com/autumnleaf-ra/Anime-API/internal/metrics"
	"github.com/autumnleaf-ra/Anime-API/internal/ports"
)

// AnimeService enchaîne validation -> chargement du dataset -> requête.
// Le dataset est relu à chaque appel; rien n'est partagé entre requêtes.
type AnimeService struct {
	catalog ports.AnimeCatalog
	loads   *LoadLimiter
}

func NewAnimeService(catalog ports.AnimeCatalog) *AnimeService {
	return &AnimeService{catalog: catalog, loads: NewLoadLimiter(0)}
}

// SetMaxConcurrentLoads borne les lectures simultanées du dataset (0 = sans limite).
func (s *AnimeService) SetMaxConcurrentLoads(n int) {
	s.loads.SetLimit(n)
}

func (s *AnimeService) List(ctx context.Context, q ListQuery) (ListResult, error) {
	const op = "anime.list"
	records, err := s.load(ctx, op)
	if err != nil {
		return ListResult{}, done(op, err)
	}
	return ListAnime(records, q), done(op, nil)
}

func (s *AnimeService) Search(ctx context.Context, payload []byte) (SearchResult, error) {
	const op = "anime.search"
	q, err := ValidateNameQuery(payload)
	if err != nil {
		return SearchResult{}, done(op, err)
	}
	records, err := s.load(ctx, op)
	if err != nil {
		return SearchResult{}, done(op, err)
	}
	res, err := SearchByName(records, q.Name)
	return res, done(op, err)
}

func (s *AnimeService) Detail(ctx context.Context, rawID string) (DetailResult, error) {
	const op = "anime.detail"
	records, err := s.load(ctx, op)
	if err != nil {
		return DetailResult{}, done(op, err)
	}
	res, err := FindByID(records, rawID)
	return res, done(op, err)
}

func (s *AnimeService) Genre(ctx context.Context, payload []byte) (ListResult, error) {
	const op = "anime.genre"
	q, err := ValidateGenreQuery(payload)
	if err != nil {
		return ListResult{}, done(op, err)
	}
	records, err := s.load(ctx, op)
	if err != nil {
		return ListResult{}, done(op, err)
	}
	res, err := FilterByGenre(records, q)
	return res, done(op, err)
}

func (s *AnimeService) Episodes(ctx context.Context, payload []byte) (EpisodeResult, error) {
	const op = "anime.episode"
	q, err := ValidateNameQuery(payload)
	if err != nil {
		return EpisodeResult{}, done(op, err)
	}
	records, err := s.load(ctx, op)
	if err != nil {
		return EpisodeResult{}, done(op, err)
	}
	res, err := EpisodesByName(records, q.Name)
	return res, done(op, err)
}

func (s *AnimeService) Year(ctx context.Context, payload []byte) (ListResult, error) {
	const op = "anime.year"
	q, err := ValidateYearQuery(payload)
	if err != nil {
		return ListResult{}, done(op, err)
	}
	records, err := s.load(ctx, op)
	if err != nil {
		return ListResult{}, done(op, err)
	}
	res, err := ByYear(records, q)
	return res, done(op, err)
}

// load journalise la cause au point de détection; l'appelant ne voit qu'une
// CodedError générique.
func (s *AnimeService) load(ctx context.Context, op string) ([]domain.Anime, error) {
	if err := s.loads.Acquire(ctx); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("op", op).Int("in_flight", s.loads.InFlight()).Msg("dataset load slot unavailable")
		return nil, &CodedError{Code: "dataset_busy", Message: "wait for dataset load slot", Err: err}
	}
	defer s.loads.Release()

	start := time.Now()
	records, err := s.catalog.Load(ctx)
	metrics.RecordDatasetLoad(time.Since(start), err)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("op", op).Msg("dataset load failed")
		return nil, &CodedError{Code: "dataset_unavailable", Message: "load dataset", Err: err}
	}
	return records, nil
}

func done(op string, err error) error {
	metrics.RecordQueryOutcome(op, Classify(err).String())
	return err
}
