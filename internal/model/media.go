package model

// MediaKind tags the variant held by a MediaArtifact.
type MediaKind string

const (
	MediaText     MediaKind = "text"
	MediaImageURL MediaKind = "image_url"
)

// MediaArtifact is the shareable joke or image attached to a holiday.
// Exactly one of Body (MediaText) or URL (MediaImageURL) is set.
type MediaArtifact struct {
	Kind MediaKind `json:"kind"`
	Body string    `json:"body,omitempty"`
	URL  string    `json:"url,omitempty"`

	// Source names the cascade tier that produced the artifact.
	Source string `json:"source,omitempty"`
}

// TextArtifact builds a text meme artifact.
func TextArtifact(body string) MediaArtifact {
	return MediaArtifact{Kind: MediaText, Body: body}
}

// ImageArtifact builds an image URL artifact.
func ImageArtifact(url string) MediaArtifact {
	return MediaArtifact{Kind: MediaImageURL, URL: url}
}

// FromTier returns a copy of a tagged with the producing tier.
func (a MediaArtifact) FromTier(tier string) MediaArtifact {
	a.Source = tier
	return a
}

// IsZero reports whether the artifact carries no usable content.
func (a MediaArtifact) IsZero() bool {
	switch a.Kind {
	case MediaText:
		return a.Body == ""
	case MediaImageURL:
		return a.URL == ""
	default:
		return true
	}
}

// String returns the human-facing representation: the meme text or the image URL.
func (a MediaArtifact) String() string {
	if a.Kind == MediaImageURL {
		return a.URL
	}
	return a.Body
}
