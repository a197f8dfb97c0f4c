package httpapi

import (
	"net/http"

	"github.com/autumnleaf-ra/Anime-API/internal/buildinfo"
	"github.com/autumnleaf-ra/Anime-API/internal/domain"
	"github.com/autumnleaf-ra/Anime-API/internal/httpjson"
)

// handleOpenAPI renvoie un document OpenAPI minimal, construit à la main.
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, openAPIDocument())
}

func openAPIDocument() map[string]any {
	jsonOK := func(schemaRef string) map[string]any {
		return map[string]any{
			"description": "OK",
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": schemaRef},
				},
			},
		}
	}

	jsonErr := map[string]any{
		"description": "Error",
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/Error"},
			},
		},
	}

	jsonBody := func(schemaRef string) map[string]any {
		return map[string]any{
			"required": true,
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": schemaRef},
				},
			},
		}
	}

	queryPost := func(summary, body, result string) map[string]any {
		return map[string]any{
			"post": map[string]any{
				"summary":     summary,
				"requestBody": jsonBody(body),
				"responses": map[string]any{
					"200": jsonOK(result),
					"400": jsonErr,
					"404": jsonErr,
					"500": jsonErr,
				},
			},
		}
	}

	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "Anime API",
			"version": buildinfo.Current().Version,
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"Error": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"error":      map[string]any{"type": "string"},
						"statusCode": map[string]any{"type": "integer"},
					},
					"required": []any{"error"},
				},
				"Status": map[string]any{
					"type": "string",
					"enum": domain.Statuses(),
				},
				"Anime": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":        map[string]any{"type": "integer"},
						"title":     map[string]any{"type": "string"},
						"type":      map[string]any{"type": "string"},
						"episodes":  map[string]any{"type": "integer", "minimum": 0},
						"status":    map[string]any{"$ref": "#/components/schemas/Status"},
						"picture":   map[string]any{"type": "string"},
						"thumbnail": map[string]any{"type": "string"},
						"genre":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					},
				},
				"Episode": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":       map[string]any{"type": "integer"},
						"title":    map[string]any{"type": "string"},
						"episodes": map[string]any{"type": "integer"},
					},
				},
				"AnimeList": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"count": map[string]any{"type": "integer"},
						"list":  map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/Anime"}},
					},
				},
				"AnimeDetail": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"list": map[string]any{"$ref": "#/components/schemas/Anime"},
					},
				},
				"SearchResult": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"count":  map[string]any{"type": "integer"},
						"list":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"detail": map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/Anime"}},
					},
				},
				"EpisodeList": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"count": map[string]any{"type": "integer"},
						"list":  map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/Episode"}},
					},
				},
				"NameQuery": map[string]any{
					"type":       "object",
					"properties": map[string]any{"name": map[string]any{"type": "string", "minLength": 1}},
					"required":   []any{"name"},
				},
				"GenreQuery": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"genre": map[string]any{
							"oneOf": []any{
								map[string]any{"type": "string", "minLength": 1},
								map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
							},
						},
						"status": map[string]any{"$ref": "#/components/schemas/Status"},
					},
					"required": []any{"genre"},
				},
				"YearQuery": map[string]any{
					"type":       "object",
					"properties": map[string]any{"year": map[string]any{"type": "number"}},
					"required":   []any{"year"},
				},
			},
		},
		"paths": map[string]any{
			"/api/v1/health": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "OK"}}},
			},
			"/api/v1/version": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "OK"}}},
			},
			"/api/v1/anime/list": map[string]any{
				"get": map[string]any{
					"summary": "List anime (offset/limit)",
					"parameters": []any{
						map[string]any{"name": "offset", "in": "query", "schema": map[string]any{"type": "integer", "default": 0}},
						map[string]any{"name": "limit", "in": "query", "schema": map[string]any{"type": "integer", "default": 10}},
					},
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/AnimeList"),
						"500": jsonErr,
					},
				},
			},
			"/api/v1/anime/detail/{id}": map[string]any{
				"get": map[string]any{
					"summary": "Get one anime by id",
					"parameters": []any{
						map[string]any{"name": "id", "in": "path", "required": true, "schema": map[string]any{"type": "integer"}},
					},
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/AnimeDetail"),
						"404": jsonErr,
						"500": jsonErr,
					},
				},
			},
			"/api/v1/anime/search":  queryPost("Search by title", "#/components/schemas/NameQuery", "#/components/schemas/SearchResult"),
			"/api/v1/anime/genre":   queryPost("Filter by genre and status", "#/components/schemas/GenreQuery", "#/components/schemas/AnimeList"),
			"/api/v1/anime/episode": queryPost("Episode counts by title", "#/components/schemas/NameQuery", "#/components/schemas/EpisodeList"),
			"/api/v1/anime/year":    queryPost("Filter by release year", "#/components/schemas/YearQuery", "#/components/schemas/AnimeList"),
		},
	}
}
