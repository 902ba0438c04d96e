package domain

import (
	"net/http"
	"strings"
)

// Platform identifies the marketplace the listing is written for. Each
// platform carries its own title, bullet and tag conventions.
type Platform string

const (
	PlatformTrendyol    Platform = "trendyol"
	PlatformHepsiburada Platform = "hepsiburada"
	PlatformEtsy        Platform = "etsy"
	PlatformGeneric     Platform = "generic"
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformTrendyol, PlatformHepsiburada, PlatformEtsy, PlatformGeneric:
		return true
	}
	return false
}

// Language selects the output language of the generated copy.
type Language string

const (
	LanguageTurkish Language = "tr"
	LanguageEnglish Language = "en"
)

func (l Language) Valid() bool {
	return l == LanguageTurkish || l == LanguageEnglish
}

// ImageOp is a per-image operation delegated to the transform provider.
type ImageOp string

const (
	OpCaption  ImageOp = "caption"
	OpUpscale  ImageOp = "upscale"
	OpBgRemove ImageOp = "bg_remove"
)

func (op ImageOp) Valid() bool {
	switch op {
	case OpCaption, OpUpscale, OpBgRemove:
		return true
	}
	return false
}

// ListingRequest is the validated inbound payload for one listing run.
type ListingRequest struct {
	Images   []string  `json:"images" validate:"required,min=1,max=5,dive,http_url"`
	Notes    string    `json:"notes" validate:"required,min=1,max=5000"`
	Platform Platform  `json:"platform" validate:"required,oneof=trendyol hepsiburada etsy generic"`
	Lang     Language  `json:"lang" validate:"required,oneof=tr en"`
	ImageOps []ImageOp `json:"image_ops,omitempty" validate:"omitempty,dive,oneof=caption upscale bg_remove"`
}

// NormalizedOps returns the de-duplicated operation set for the request.
// An empty or absent set defaults to caption only. First-seen order is kept
// so iteration stays stable across runs.
func (r ListingRequest) NormalizedOps() []ImageOp {
	if len(r.ImageOps) == 0 {
		return []ImageOp{OpCaption}
	}
	seen := make(map[ImageOp]struct{}, len(r.ImageOps))
	ops := make([]ImageOp, 0, len(r.ImageOps))
	for _, op := range r.ImageOps {
		if _, ok := seen[op]; ok {
			continue
		}
		seen[op] = struct{}{}
		ops = append(ops, op)
	}
	return ops
}

// Listing is the structured marketplace listing produced by the generator.
type Listing struct {
	Title          string   `json:"title"`
	Bullets        []string `json:"bullets"`
	Description    string   `json:"description"`
	SEOKeywords    []string `json:"seo_keywords"`
	HashtagsOrTags []string `json:"hashtags_or_tags"`
	ClaimsToAvoid  []string `json:"claims_to_avoid"`
	Assumptions    []string `json:"assumptions"`
}

// Meta echoes the request routing fields back to the caller.
type Meta struct {
	Platform Platform `json:"platform"`
	Lang     Language `json:"lang"`
}

// ListingResult is the full response payload: the listing plus the per-image
// captions, the transform output URLs and the echoed meta block.
type ListingResult struct {
	Listing         Listing  `json:"listing"`
	Captions        []string `json:"captions"`
	ProcessedImages []string `json:"processed_images"`
	Meta            Meta     `json:"meta"`
}

// Validate enforces the strict output contract. Every list must be present
// (non-nil, empty is fine), the title and description must be non-empty and
// the meta enums must be in range. A result that fails here is never handed
// to a caller.
func (r *ListingResult) Validate() error {
	violation := func(field string) error {
		return NewAppError("generated listing failed response validation: "+field, http.StatusBadGateway)
	}
	if strings.TrimSpace(r.Listing.Title) == "" {
		return violation("listing.title")
	}
	if r.Listing.Bullets == nil {
		return violation("listing.bullets")
	}
	if strings.TrimSpace(r.Listing.Description) == "" {
		return violation("listing.description")
	}
	if r.Listing.SEOKeywords == nil {
		return violation("listing.seo_keywords")
	}
	if r.Listing.HashtagsOrTags == nil {
		return violation("listing.hashtags_or_tags")
	}
	if r.Listing.ClaimsToAvoid == nil {
		return violation("listing.claims_to_avoid")
	}
	if r.Listing.Assumptions == nil {
		return violation("listing.assumptions")
	}
	if r.Captions == nil {
		return violation("captions")
	}
	if r.ProcessedImages == nil {
		return violation("processed_images")
	}
	if !r.Meta.Platform.Valid() {
		return violation("meta.platform")
	}
	if !r.Meta.Lang.Valid() {
		return violation("meta.lang")
	}
	return nil
}

// GenerationInput bundles everything the text generator needs for one run.
type GenerationInput struct {
	Platform        Platform
	Lang            Language
	Notes           string
	Captions        []string
	ProcessedImages []string
}
