package bot

import (
	"reflect"
	"strings"
	"testing"

	"tezgah/internal/domain"
	"tezgah/internal/listing"
)

func TestFormatListing(t *testing.T) {
	result := listing.Mock(domain.ListingRequest{
		Images:   []string{"https://img.example/1.jpg"},
		Notes:    "el yapimi seramik vazo",
		Platform: domain.PlatformEtsy,
		Lang:     domain.LanguageTurkish,
		ImageOps: []domain.ImageOp{domain.OpCaption, domain.OpUpscale},
	})

	msg := formatListing(result)

	if !strings.HasPrefix(msg, "<b>"+result.Listing.Title+"</b>") {
		t.Fatalf("message does not open with the bold title:\n%s", msg)
	}
	for _, b := range result.Listing.Bullets {
		if !strings.Contains(msg, "• "+b) {
			t.Fatalf("missing bullet %q", b)
		}
	}
	if !strings.Contains(msg, "<b>Etiketler:</b> ") {
		t.Fatal("missing tags line")
	}
	if !strings.Contains(msg, "<b>Goersel Aciklamalari:</b>") {
		t.Fatal("missing captions section")
	}
	if !strings.Contains(msg, "1. "+result.Captions[0]) {
		t.Fatal("captions are not numbered")
	}
	if !strings.Contains(msg, "<b>Islenmis Gorseller:</b>") {
		t.Fatal("missing processed images section")
	}
	if !strings.Contains(msg, result.ProcessedImages[0]) {
		t.Fatal("missing processed image URL")
	}
}

func TestFormatListingEscapesHTML(t *testing.T) {
	result := listing.Mock(domain.ListingRequest{
		Images:   []string{"https://img.example/1.jpg"},
		Notes:    `<script>alert("x")</script>`,
		Platform: domain.PlatformGeneric,
		Lang:     domain.LanguageEnglish,
	})

	msg := formatListing(result)
	if strings.Contains(msg, "<script>") {
		t.Fatal("user-derived text was not escaped")
	}
	if !strings.Contains(msg, "&lt;script&gt;") {
		t.Fatalf("expected escaped markup in:\n%s", msg)
	}
}

func TestFormatListingOmitsEmptySections(t *testing.T) {
	result := listing.Mock(domain.ListingRequest{
		Images:   []string{"https://img.example/1.jpg"},
		Notes:    "plain",
		Platform: domain.PlatformGeneric,
		Lang:     domain.LanguageEnglish,
		ImageOps: []domain.ImageOp{domain.OpCaption},
	})

	msg := formatListing(result)
	if strings.Contains(msg, "Islenmis Gorseller") {
		t.Fatal("processed images section rendered without processed images")
	}
}

func TestExtractImageURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "newline separated",
			text: "https://a.example/1.jpg\nhttps://b.example/2.jpg",
			want: []string{"https://a.example/1.jpg", "https://b.example/2.jpg"},
		},
		{
			name: "comma and space separated",
			text: "https://a.example/1.jpg, https://b.example/2.jpg http://c.example/3.png",
			want: []string{"https://a.example/1.jpg", "https://b.example/2.jpg", "http://c.example/3.png"},
		},
		{
			name: "drops non http schemes",
			text: "ftp://a.example/1 data:image/png;base64,xyz https://ok.example/1.jpg",
			want: []string{"https://ok.example/1.jpg"},
		},
		{
			name: "drops schemeless and hostless",
			text: "a.example/1.jpg https:///path https://ok.example/x",
			want: []string{"https://ok.example/x"},
		},
		{
			name: "plain prose",
			text: "bu gorseller cok guzel",
			want: []string{},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := extractImageURLs(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("extractImageURLs(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}
