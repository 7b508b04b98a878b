package plex

// Section types as reported by the Plex API. A reconciliation run requires
// at least one movie and one show section to exist.
const (
	TypeMovie = "movie"
	TypeShow  = "show"
)

// Section represents a Plex library section bound to one or more root
// filesystem locations. Sections are fetched at the start of a run and are
// immutable for its duration.
type Section struct {
	// ID is the section key, opaque but stable within a run.
	ID string `json:"id"`

	// Title is the display name of the section (e.g., "Movies").
	Title string `json:"title"`

	// Type is the section type (movie, show, artist, photo).
	Type string `json:"type"`

	// Locations are the absolute root directories registered for the section.
	Locations []string `json:"locations"`
}

// Wire types below mirror the JSON shape of the Plex API when requested with
// "Accept: application/json". Only the fields this client reads are declared.

type sectionsResponse struct {
	MediaContainer struct {
		Directory []sectionDirectory `json:"Directory"`
	} `json:"MediaContainer"`
}

type sectionDirectory struct {
	Key      string            `json:"key"`
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Location []sectionLocation `json:"Location"`
}

type sectionLocation struct {
	Path string `json:"path"`
}

type metadataResponse struct {
	MediaContainer struct {
		Metadata []metadataItem `json:"Metadata"`
	} `json:"MediaContainer"`
}

type metadataItem struct {
	RatingKey string      `json:"ratingKey"`
	Media     []mediaItem `json:"Media"`
}

type mediaItem struct {
	Part []mediaPart `json:"Part"`
}

type mediaPart struct {
	File string `json:"file"`
}
