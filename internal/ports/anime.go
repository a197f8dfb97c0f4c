package ports

import (
	"context"

	"github.com/autumnleaf-ra/Anime-API/internal/domain"
)

// AnimeCatalog charge la collection complète des enregistrements.
// Chaque appel renvoie une collection indépendante: aucun état partagé
// entre requêtes concurrentes.
type AnimeCatalog interface {
	Load(ctx context.Context) ([]domain.Anime, error)
}
