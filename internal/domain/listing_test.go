package domain

import (
	"reflect"
	"testing"
)

func TestNormalizedOps(t *testing.T) {
	tests := []struct {
		name string
		ops  []ImageOp
		want []ImageOp
	}{
		{name: "absent defaults to caption", ops: nil, want: []ImageOp{OpCaption}},
		{name: "empty defaults to caption", ops: []ImageOp{}, want: []ImageOp{OpCaption}},
		{
			name: "duplicates removed with stable order",
			ops:  []ImageOp{OpCaption, OpCaption, OpUpscale, OpCaption, OpBgRemove, OpUpscale},
			want: []ImageOp{OpCaption, OpUpscale, OpBgRemove},
		},
		{name: "single passthrough", ops: []ImageOp{OpUpscale}, want: []ImageOp{OpUpscale}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := ListingRequest{ImageOps: tc.ops}
			if got := req.NormalizedOps(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("NormalizedOps() = %v, want %v", got, tc.want)
			}
		})
	}
}

func validResult() *ListingResult {
	return &ListingResult{
		Listing: Listing{
			Title:          "Handmade Ceramic Vase",
			Bullets:        []string{"b1"},
			Description:    "A vase.",
			SEOKeywords:    []string{"vase"},
			HashtagsOrTags: []string{"#vase"},
			ClaimsToAvoid:  []string{},
			Assumptions:    []string{},
		},
		Captions:        []string{},
		ProcessedImages: []string{},
		Meta:            Meta{Platform: PlatformEtsy, Lang: LanguageEnglish},
	}
}

func TestListingResultValidate(t *testing.T) {
	if err := validResult().Validate(); err != nil {
		t.Fatalf("valid result failed validation: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*ListingResult)
	}{
		{name: "empty title", mutate: func(r *ListingResult) { r.Listing.Title = " " }},
		{name: "nil bullets", mutate: func(r *ListingResult) { r.Listing.Bullets = nil }},
		{name: "empty description", mutate: func(r *ListingResult) { r.Listing.Description = "" }},
		{name: "nil seo keywords", mutate: func(r *ListingResult) { r.Listing.SEOKeywords = nil }},
		{name: "nil tags", mutate: func(r *ListingResult) { r.Listing.HashtagsOrTags = nil }},
		{name: "nil claims", mutate: func(r *ListingResult) { r.Listing.ClaimsToAvoid = nil }},
		{name: "nil assumptions", mutate: func(r *ListingResult) { r.Listing.Assumptions = nil }},
		{name: "nil captions", mutate: func(r *ListingResult) { r.Captions = nil }},
		{name: "nil processed images", mutate: func(r *ListingResult) { r.ProcessedImages = nil }},
		{name: "bad platform", mutate: func(r *ListingResult) { r.Meta.Platform = "ebay" }},
		{name: "bad lang", mutate: func(r *ListingResult) { r.Meta.Lang = "de" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := validResult()
			tc.mutate(result)
			err := result.Validate()
			appErr, ok := AsAppError(err)
			if !ok {
				t.Fatalf("expected classified error, got %v", err)
			}
			if appErr.Status != 502 {
				t.Fatalf("Status = %d, want 502", appErr.Status)
			}
		})
	}
}

func TestEnumValidity(t *testing.T) {
	if !PlatformTrendyol.Valid() || !PlatformHepsiburada.Valid() || !PlatformEtsy.Valid() || !PlatformGeneric.Valid() {
		t.Fatal("expected all known platforms to be valid")
	}
	if Platform("amazon").Valid() {
		t.Fatal("unknown platform reported valid")
	}
	if !LanguageTurkish.Valid() || !LanguageEnglish.Valid() {
		t.Fatal("expected known languages to be valid")
	}
	if Language("de").Valid() {
		t.Fatal("unknown language reported valid")
	}
	if ImageOp("rotate").Valid() {
		t.Fatal("unknown op reported valid")
	}
}
