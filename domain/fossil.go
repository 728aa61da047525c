package domain

import "time"

// FossilSummary is the reduced record used in search results and favorites.
type FossilSummary struct {
	FossilID  string
	Name      string
	Origin    string
	ImageURL  string
	CreatedAt time.Time
}

// FossilDetail is the full specimen record shown on the detail screen.
// LikedCount is a public aggregate; it never goes below zero.
type FossilDetail struct {
	FossilID       string
	Name           string
	Origin         string
	Period         string
	Description    string
	Model3DURL     string
	ImageURL       string
	LikedCount     int
	IsFavorited    bool // false while logged out; the server omits the flag then
	Size           string
	Weight         string
	SpecialAbility string
}

// SearchQuery are the catalog search filters. Blank fields are omitted from
// the request; zero Limit lets the server pick its default page size.
type SearchQuery struct {
	Q         string
	Period    string
	Origin    string
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string
}

// SearchPage is one page of catalog search results.
type SearchPage struct {
	Fossils    []FossilSummary
	Total      int
	Limit      int
	Offset     int
	TotalPages int
}
