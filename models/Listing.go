package models

// Variant is one physical release listed under a GroupedGame.
type Variant struct {
	ID          string `json:"id"`
	Serial      string `json:"serial"`
	Region      string `json:"region"`
	Console     string `json:"console"`
	ReleaseYear *int   `json:"releaseYear"`
	Owned       bool   `json:"owned"`
}

// GroupedGame is computed per request and never stored.
type GroupedGame struct {
	Title      string    `json:"title"`
	CoverPath  *string   `json:"coverPath"`
	ReleaseNA  *string   `json:"release_na,omitempty"`
	ReleaseJP  *string   `json:"release_jp,omitempty"`
	ReleasePAL *string   `json:"release_pal,omitempty"`
	Variants   []Variant `json:"variants"`
}

type ListParams struct {
	Page    int    `form:"page"`
	Limit   int    `form:"limit"`
	Search  string `form:"search"`
	Region  string `form:"region"`
	Sort    string `form:"sort"`
	Console string `form:"console"`
}

type ListMetadata struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type ListResult struct {
	Games    []GroupedGame `json:"games"`
	Metadata ListMetadata  `json:"metadata"`
}

type PlatformStats struct {
	Total      int64 `json:"total"`
	Owned      int64 `json:"owned"`
	Percentage int   `json:"percentage"`
}

type CollectionStats struct {
	PS1 PlatformStats `json:"ps1"`
	N64 PlatformStats `json:"n64"`
}
