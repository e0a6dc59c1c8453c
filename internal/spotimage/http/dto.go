package http

import (
	"time"

	"github.com/wildpitch/spot-booking-backend/internal/spotimage"
)

type ImageResponse struct {
	ID        string    `json:"id"`
	SpotID    string    `json:"spot_id"`
	URL       string    `json:"url"`
	ThumbURL  string    `json:"thumb_url"`
	SizeBytes int64     `json:"size_bytes"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

func NewImageResponse(img *spotimage.Image) ImageResponse {
	return ImageResponse{
		ID:        img.ID,
		SpotID:    img.SpotID,
		URL:       "/v1/images/" + img.ID,
		ThumbURL:  "/v1/images/" + img.ID + "/thumbnail",
		SizeBytes: img.SizeBytes,
		Position:  img.Position,
		CreatedAt: img.CreatedAt,
	}
}
