package entity

// TripParams is the user input for itinerary generation.
type TripParams struct {
	Destination string `json:"destination"`
	Days        int    `json:"days"`
	Budget      string `json:"budget"`
	Interests   string `json:"interests"`
}

// DraftDay is one day of the quick draft shown for review.
type DraftDay struct {
	Day             int      `json:"day"`
	MainDestination string   `json:"main_destination"`
	Places          []string `json:"places"`
}

// ItineraryDraft is the reviewable outline.
type ItineraryDraft struct {
	SessionID string     `json:"session_id"`
	Params    TripParams `json:"params"`
	Days      []DraftDay `json:"days"`
}

// FinalizeRequest carries the approved (possibly edited) draft and
// extra requirements collected during review.
type FinalizeRequest struct {
	Params            TripParams `json:"params"`
	Draft             []DraftDay `json:"draft,omitempty"`
	ExtraRequirements string     `json:"extra_requirements,omitempty"`
}

// Location is a geocoded stop of the final itinerary.
type Location struct {
	Name string  `json:"name"`
	Day  int     `json:"day"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Itinerary is the finished plan.
type Itinerary struct {
	SessionID string     `json:"session_id"`
	Params    TripParams `json:"params"`
	Markdown  string     `json:"markdown"`
	Locations []Location `json:"locations"`
}

// GeoPlace is a reverse-geocoding result.
type GeoPlace struct {
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}
