package listing

import (
	"reflect"
	"strings"
	"testing"

	"tezgah/internal/domain"
)

func mockRequest() domain.ListingRequest {
	return domain.ListingRequest{
		Images:   []string{"https://img.example/1.jpg", "https://img.example/2.jpg"},
		Notes:    "handmade ceramic vase with matte finish",
		Platform: domain.PlatformEtsy,
		Lang:     domain.LanguageEnglish,
	}
}

func TestMockIsDeterministic(t *testing.T) {
	first := Mock(mockRequest())
	second := Mock(mockRequest())
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical requests produced different mock output")
	}
}

func TestMockSatisfiesOutputContract(t *testing.T) {
	platforms := []domain.Platform{
		domain.PlatformTrendyol, domain.PlatformHepsiburada, domain.PlatformEtsy, domain.PlatformGeneric,
	}
	for _, platform := range platforms {
		req := mockRequest()
		req.Platform = platform
		if err := Mock(req).Validate(); err != nil {
			t.Fatalf("mock output for %s violates contract: %v", platform, err)
		}
	}
}

func TestMockPlatformShapes(t *testing.T) {
	etsy := Mock(mockRequest())
	if len(etsy.Listing.HashtagsOrTags) != 13 {
		t.Fatalf("etsy tags = %d, want 13", len(etsy.Listing.HashtagsOrTags))
	}
	if len(etsy.Listing.Bullets) != 5 {
		t.Fatalf("etsy bullets = %d, want 5", len(etsy.Listing.Bullets))
	}

	req := mockRequest()
	req.Platform = domain.PlatformHepsiburada
	hepsi := Mock(req)
	if len(hepsi.Listing.Bullets) != 6 {
		t.Fatalf("hepsiburada bullets = %d, want 6", len(hepsi.Listing.Bullets))
	}
	if len(hepsi.Listing.HashtagsOrTags) != 3 {
		t.Fatalf("hepsiburada tags = %d, want 3", len(hepsi.Listing.HashtagsOrTags))
	}
}

func TestMockLanguage(t *testing.T) {
	req := mockRequest()
	req.Lang = domain.LanguageTurkish
	result := Mock(req)
	if !strings.HasPrefix(result.Listing.Title, "Mock Urun Basligi") {
		t.Fatalf("Title = %q, want Turkish title", result.Listing.Title)
	}
	if !strings.HasPrefix(result.Listing.Description, "Notlara gore hazirlandi: ") {
		t.Fatalf("Description = %q", result.Listing.Description)
	}
}

func TestMockCaptionsPerImage(t *testing.T) {
	result := Mock(mockRequest())
	if len(result.Captions) != 2 {
		t.Fatalf("Captions = %d, want one per image", len(result.Captions))
	}
	if !strings.HasPrefix(result.Captions[0], "Mock caption 1") {
		t.Fatalf("Captions[0] = %q", result.Captions[0])
	}
}

func TestMockProcessedImages(t *testing.T) {
	req := mockRequest()
	req.ImageOps = []domain.ImageOp{domain.OpUpscale}
	result := Mock(req)
	want := []string{
		"https://img.example/1.jpg?mock_processed=true",
		"https://img.example/2.jpg?mock_processed=true",
	}
	if !reflect.DeepEqual(result.ProcessedImages, want) {
		t.Fatalf("ProcessedImages = %v, want %v", result.ProcessedImages, want)
	}

	captionOnly := Mock(mockRequest())
	if len(captionOnly.ProcessedImages) != 0 {
		t.Fatalf("ProcessedImages = %v, want empty without transform ops", captionOnly.ProcessedImages)
	}
}

func TestMockNotesTruncation(t *testing.T) {
	req := mockRequest()
	req.Notes = strings.Repeat("a", 500)
	result := Mock(req)
	want := "Generated from seller notes: " + strings.Repeat("a", 220)
	if result.Listing.Description != want {
		t.Fatalf("Description length = %d, want truncated prefix", len(result.Listing.Description))
	}
}
