package museum

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/vuminhle/fossildeck/domain"
)

// catalogService implements app.CatalogService against the museum API.
type catalogService struct {
	client *Client
}

// NewCatalogService creates a CatalogService backed by the museum API.
func NewCatalogService(client *Client) *catalogService {
	return &catalogService{client: client}
}

type searchRequest struct {
	Q         string `json:"q,omitempty"`
	Period    string `json:"period,omitempty"`
	Origin    string `json:"origin,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
	SortBy    string `json:"sort_by,omitempty"`
	SortOrder string `json:"sort_order,omitempty"`
}

type fossilSummaryDTO struct {
	FossilID  string `json:"fossil_id"`
	Name      string `json:"name"`
	Origin    string `json:"origin"`
	ImageURL  string `json:"image_url"`
	CreatedAt string `json:"created_at"`
}

func (d fossilSummaryDTO) toDomain() domain.FossilSummary {
	return domain.FossilSummary{
		FossilID:  d.FossilID,
		Name:      d.Name,
		Origin:    d.Origin,
		ImageURL:  d.ImageURL,
		CreatedAt: parseTime(d.CreatedAt),
	}
}

// searchResponse is returned without the standard envelope.
type searchResponse struct {
	Message   string             `json:"message"`
	Data      []fossilSummaryDTO `json:"data"`
	Total     int                `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
	TotalPage int                `json:"total_page"`
}

type fossilDetailDTO struct {
	FossilID       string `json:"fossil_id"`
	Name           string `json:"name"`
	Origin         string `json:"origin"`
	Period         string `json:"period"`
	Description    string `json:"description"`
	Model3DURL     string `json:"model3d_url"`
	ImageURL       string `json:"image_url"`
	Liked          int    `json:"liked"`
	IsFavorited    *bool  `json:"is_favorited"`
	Size           string `json:"size"`
	Weight         string `json:"weight"`
	SpecialAbility string `json:"special_ability"`
}

func (d fossilDetailDTO) toDomain() domain.FossilDetail {
	liked := d.Liked
	if liked < 0 {
		liked = 0
	}
	return domain.FossilDetail{
		FossilID:       d.FossilID,
		Name:           d.Name,
		Origin:         d.Origin,
		Period:         d.Period,
		Description:    d.Description,
		Model3DURL:     d.Model3DURL,
		ImageURL:       d.ImageURL,
		LikedCount:     liked,
		IsFavorited:    d.IsFavorited != nil && *d.IsFavorited,
		Size:           d.Size,
		Weight:         d.Weight,
		SpecialAbility: d.SpecialAbility,
	}
}

func (s *catalogService) Search(ctx context.Context, q domain.SearchQuery) (domain.SearchPage, error) {
	req := searchRequest{
		Q:         q.Q,
		Period:    q.Period,
		Origin:    q.Origin,
		Limit:     q.Limit,
		Offset:    q.Offset,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	}

	raw, err := s.client.post(ctx, "/fossils/search", req)
	if err != nil {
		return domain.SearchPage{}, fmt.Errorf("searching fossils: %w", err)
	}

	var resp searchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return domain.SearchPage{}, fmt.Errorf("parsing search response: %w", domain.ErrMalformedResponse)
	}

	fossils := make([]domain.FossilSummary, 0, len(resp.Data))
	for _, d := range resp.Data {
		fossils = append(fossils, d.toDomain())
	}
	return domain.SearchPage{
		Fossils:    fossils,
		Total:      resp.Total,
		Limit:      resp.Limit,
		Offset:     resp.Offset,
		TotalPages: resp.TotalPage,
	}, nil
}

func (s *catalogService) Detail(ctx context.Context, fossilID string) (domain.FossilDetail, error) {
	raw, err := s.client.get(ctx, "/fossils/"+url.PathEscape(fossilID))
	if err != nil {
		return domain.FossilDetail{}, fmt.Errorf("fetching fossil %s: %w", fossilID, err)
	}

	var data struct {
		Fossil fossilDetailDTO `json:"fossil"`
	}
	if err := unwrap(raw, &data); err != nil {
		return domain.FossilDetail{}, fmt.Errorf("fetching fossil %s: %w", fossilID, err)
	}
	return data.Fossil.toDomain(), nil
}
