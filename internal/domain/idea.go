package domain

import (
	"net/url"
	"time"
)

type IdeaCategory string

const (
	IdeaDecoracao     IdeaCategory = "Decoracao"
	IdeaVestuario     IdeaCategory = "Vestuario"
	IdeaConvites      IdeaCategory = "Convites"
	IdeaBuffet        IdeaCategory = "Buffet"
	IdeaFlores        IdeaCategory = "Flores"
	IdeaLocal         IdeaCategory = "Local"
	IdeaFotografia    IdeaCategory = "Fotografia"
	IdeaDJ            IdeaCategory = "DJ"
	IdeaBolo          IdeaCategory = "Bolo"
	IdeaLembrancinhas IdeaCategory = "Lembrancinhas"
	IdeaOutro         IdeaCategory = "Outro"
)

func ParseIdeaCategory(s string) (IdeaCategory, bool) {
	switch IdeaCategory(s) {
	case IdeaDecoracao, IdeaVestuario, IdeaConvites, IdeaBuffet, IdeaFlores,
		IdeaLocal, IdeaFotografia, IdeaDJ, IdeaBolo, IdeaLembrancinhas, IdeaOutro:
		return IdeaCategory(s), true
	}
	return "", false
}

func validHTTPURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

type Idea struct {
	ID          string       `json:"id"`
	EventID     string       `json:"eventId"`
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	Category    IdeaCategory `json:"category"`
	ImageURL    *string      `json:"imageUrl,omitempty"`
	SourceURL   *string      `json:"sourceUrl,omitempty"`
	Tags        []string     `json:"tags"`
	IsFavorite  bool         `json:"isFavorite"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type CreateIdeaRequest struct {
	EventID     string       `json:"eventId"`
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	Category    IdeaCategory `json:"category"`
	ImageURL    *string      `json:"imageUrl,omitempty"`
	SourceURL   *string      `json:"sourceUrl,omitempty"`
	Tags        []string     `json:"tags"`
}

func (r *CreateIdeaRequest) Normalize() {
	if r.Tags == nil {
		r.Tags = []string{}
	}
}

func (r *CreateIdeaRequest) Validate() error {
	var v ValidationError
	if r.EventID == "" {
		v.Add("eventId", "event id is required")
	}
	if r.Title == "" || len(r.Title) > 200 {
		v.Add("title", "title must be between 1 and 200 characters")
	}
	if _, ok := ParseIdeaCategory(string(r.Category)); !ok {
		v.Add("category", "invalid category")
	}
	if r.ImageURL != nil && *r.ImageURL != "" && !validHTTPURL(*r.ImageURL) {
		v.Add("imageUrl", "invalid image URL")
	}
	if r.SourceURL != nil && *r.SourceURL != "" && !validHTTPURL(*r.SourceURL) {
		v.Add("sourceUrl", "invalid source URL")
	}
	return v.OrNil()
}

type IdeaPatch struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Category    *IdeaCategory `json:"category,omitempty"`
	ImageURL    *string       `json:"imageUrl,omitempty"`
	SourceURL   *string       `json:"sourceUrl,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	IsFavorite  *bool         `json:"isFavorite,omitempty"`
}

func (p *IdeaPatch) Validate() error {
	var v ValidationError
	if p.Title != nil && (*p.Title == "" || len(*p.Title) > 200) {
		v.Add("title", "title must be between 1 and 200 characters")
	}
	if p.Category != nil {
		if _, ok := ParseIdeaCategory(string(*p.Category)); !ok {
			v.Add("category", "invalid category")
		}
	}
	if p.ImageURL != nil && *p.ImageURL != "" && !validHTTPURL(*p.ImageURL) {
		v.Add("imageUrl", "invalid image URL")
	}
	if p.SourceURL != nil && *p.SourceURL != "" && !validHTTPURL(*p.SourceURL) {
		v.Add("sourceUrl", "invalid source URL")
	}
	return v.OrNil()
}

type IdeaFilters struct {
	Category   *IdeaCategory
	IsFavorite *bool
	Search     string
	Tags       []string
}

type IdeaStats struct {
	Total      int                  `json:"total"`
	Favorites  int                  `json:"favorites"`
	TotalTags  int                  `json:"totalTags"`
	ByCategory map[IdeaCategory]int `json:"byCategory"`
}
