package listing

import (
	"strconv"

	"tezgah/internal/domain"
)

// Mock derives a structurally valid result from the request without any
// network access. It is deterministic: identical requests produce identical
// output, which makes it double as a test fixture for the output contract.
func Mock(req domain.ListingRequest) *domain.ListingResult {
	opSet := make(map[domain.ImageOp]struct{})
	for _, op := range req.NormalizedOps() {
		opSet[op] = struct{}{}
	}

	captions := make([]string, len(req.Images))
	for i := range req.Images {
		captions[i] = "Mock caption " + strconv.Itoa(i+1) + ": clean product shot with neutral background."
	}

	processedImages := []string{}
	_, upscale := opSet[domain.OpUpscale]
	_, bgRemove := opSet[domain.OpBgRemove]
	if upscale || bgRemove {
		for _, u := range req.Images {
			processedImages = append(processedImages, u+"?mock_processed=true")
		}
	}

	title := "Mock Product Title - Premium Quality and Modern Design"
	description := "Generated from seller notes: " + truncate(req.Notes, 220)
	if req.Lang == domain.LanguageTurkish {
		title = "Mock Urun Basligi - Premium Kalite ve Modern Tasarim"
		description = "Notlara gore hazirlandi: " + truncate(req.Notes, 220)
	}

	bullets := []string{
		"Benefit-focused bullet 1",
		"Benefit-focused bullet 2",
		"Benefit-focused bullet 3",
		"Benefit-focused bullet 4",
		"Benefit-focused bullet 5",
	}
	if req.Platform == domain.PlatformHepsiburada {
		bullets = []string{
			"Technical specification 1",
			"Technical specification 2",
			"Material durability detail",
			"Compatibility note",
			"Usage efficiency point",
			"Warranty-friendly information",
		}
	}

	tags := []string{"#mock", "#listing", "#" + string(req.Platform)}
	if req.Platform == domain.PlatformEtsy {
		tags = []string{
			"handmade", "giftidea", "homedecor", "minimal", "artisan",
			"custom", "smallbusiness", "vintage", "etsyfinds", "craft",
			"eco", "design", "unique",
		}
	}

	return &domain.ListingResult{
		Listing: domain.Listing{
			Title:          title,
			Bullets:        bullets,
			Description:    description,
			SEOKeywords:    []string{"mock", "listing", string(req.Platform), string(req.Lang)},
			HashtagsOrTags: tags,
			ClaimsToAvoid:  []string{"Medical claims", "Guaranteed outcomes"},
			Assumptions:    []string{"Image quality is representative", "Notes reflect accurate product details"},
		},
		Captions:        captions,
		ProcessedImages: processedImages,
		Meta: domain.Meta{
			Platform: req.Platform,
			Lang:     req.Lang,
		},
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
