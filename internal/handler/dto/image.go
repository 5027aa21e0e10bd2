package dto

import "github.com/pictor/pictor/internal/model"

// ImageResponse is the wire shape of a single image.
type ImageResponse struct {
	ID       string   `json:"id"`
	URL      string   `json:"url"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Keywords []string `json:"keywords"`
}

// ImageListResponse is the wire shape of a listing page.
// NextCursor serializes as null when the listing is exhausted.
type ImageListResponse struct {
	Items      []ImageResponse `json:"items"`
	NextCursor *string         `json:"next_cursor"`
}

// ToImageResponse converts a domain image to its wire shape.
func ToImageResponse(img *model.Image) ImageResponse {
	keywords := img.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return ImageResponse{
		ID:       img.ID,
		URL:      img.URL,
		Width:    img.Width,
		Height:   img.Height,
		Keywords: keywords,
	}
}

// ToImageListResponse converts a domain page to its wire shape.
func ToImageListResponse(page *model.Page) ImageListResponse {
	items := make([]ImageResponse, 0, len(page.Items))
	for _, img := range page.Items {
		items = append(items, ToImageResponse(img))
	}

	response := ImageListResponse{Items: items}
	if page.NextCursor != "" {
		cursor := page.NextCursor
		response.NextCursor = &cursor
	}
	return response
}
