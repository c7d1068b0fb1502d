package badge

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/claritybank/badge-server/internal/badges"
)

type CatalogOutput struct {
	Body struct {
		Badges []Definition `json:"badges" doc:"Every badge, in display order"`
	}
}

type catalogReader interface {
	Catalog() []badges.Definition
}

// CatalogHandler handles GET /v1/badge/catalog.
type CatalogHandler struct {
	BadgeService catalogReader
}

func NewCatalogHandler(svc catalogReader) *CatalogHandler {
	return &CatalogHandler{BadgeService: svc}
}

func (h *CatalogHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "badge-catalog",
		Method:      http.MethodGet,
		Path:        "/v1/badge/catalog",
		Summary:     "List badge definitions",
		Tags:        []string{"Badges"},
	}, h.handle)
}

func (h *CatalogHandler) handle(_ context.Context, _ *struct{}) (*CatalogOutput, error) {
	defs := h.BadgeService.Catalog()

	out := &CatalogOutput{}
	out.Body.Badges = make([]Definition, len(defs))
	for i, d := range defs {
		out.Body.Badges[i] = Definition{
			ID:          string(d.ID),
			DisplayName: d.DisplayName,
			Description: d.Description,
			Legacy:      d.Legacy,
		}
	}
	return out, nil
}
