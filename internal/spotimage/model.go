package spotimage

import (
	"net/http"
	"time"

	"github.com/wildpitch/spot-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "image not found")
	ErrNotOwner        = apperror.New(http.StatusForbidden, "only the spot owner may manage its photos")
	ErrUnsupportedType = apperror.New(http.StatusBadRequest, "unsupported image type")
	ErrTooLarge        = apperror.New(http.StatusRequestEntityTooLarge, "image exceeds the upload size limit")
)

// Image is a photo attached to a spot, stored with a pre-generated thumbnail.
type Image struct {
	ID            string
	SpotID        string
	Path          string
	ThumbnailPath string
	ContentType   string
	SizeBytes     int64
	Position      int
	CreatedAt     time.Time
}
