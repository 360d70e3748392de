package dto

// TrackRequest is the body of POST /api/track.
type TrackRequest struct {
	Slug     string `json:"slug"`
	Device   string `json:"device"`
	Referrer string `json:"referrer"`
}
