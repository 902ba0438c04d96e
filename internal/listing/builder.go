// Package listing is the top-level use case: it fans a validated request out
// to the image and text providers and assembles the final payload.
package listing

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"tezgah/internal/domain"
	"tezgah/internal/infra"
)

// ImageService is the transform provider boundary consumed by the builder.
type ImageService interface {
	HasCredentials() bool
	CaptionImage(ctx context.Context, imageURL string) (string, error)
	ProcessImage(ctx context.Context, imageURL string, op domain.ImageOp) ([]string, error)
}

// Generator is the text-generation provider boundary.
type Generator interface {
	Generate(ctx context.Context, input domain.GenerationInput) (*domain.Listing, error)
}

// Builder orchestrates one listing run. It owns the request's intermediate
// state (captions, transform outputs) and nothing survives across requests.
type Builder struct {
	images    ImageService
	generator Generator
	mockMode  bool
	logger    *infra.Logger
}

// Options wires the builder's collaborators.
type Options struct {
	Images    ImageService
	Generator Generator
	MockMode  bool
	Logger    *infra.Logger
}

func NewBuilder(opts Options) *Builder {
	logger := opts.Logger
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Builder{
		images:    opts.Images,
		generator: opts.Generator,
		mockMode:  opts.MockMode,
		logger:    logger,
	}
}

// Build turns a validated request into a listing result. Per-image
// operations run in strict input order so that captions[i] always lines up
// with images[i]; captions run before transforms, transforms before text
// generation. The assembled result is validated against the output contract
// before it is ever returned.
func (b *Builder) Build(ctx context.Context, req domain.ListingRequest) (*domain.ListingResult, error) {
	if b.mockMode {
		return Mock(req), nil
	}

	ops := req.NormalizedOps()
	captions := []string{}
	processedImages := []string{}

	hasToken := b.images.HasCredentials()

	if containsOp(ops, domain.OpCaption) && hasToken {
		for _, image := range req.Images {
			caption, err := b.images.CaptionImage(ctx, image)
			if err != nil {
				return nil, err
			}
			captions = append(captions, caption)
		}
	}

	for _, op := range ops {
		if op == domain.OpCaption {
			continue
		}
		if !hasToken {
			continue
		}
		for _, image := range req.Images {
			outputs, err := b.images.ProcessImage(ctx, image, op)
			if err != nil {
				return nil, err
			}
			processedImages = append(processedImages, outputs...)
		}
	}

	generated, err := b.generator.Generate(ctx, domain.GenerationInput{
		Platform:        req.Platform,
		Lang:            req.Lang,
		Notes:           req.Notes,
		Captions:        captions,
		ProcessedImages: processedImages,
	})
	if err != nil {
		return nil, err
	}

	result := &domain.ListingResult{
		Listing:         *generated,
		Captions:        captions,
		ProcessedImages: processedImages,
		Meta: domain.Meta{
			Platform: req.Platform,
			Lang:     req.Lang,
		},
	}

	if err := result.Validate(); err != nil {
		b.logger.Error().Err(err).Msg("assembled listing violates output contract")
		return nil, err
	}
	return result, nil
}

func containsOp(ops []domain.ImageOp, want domain.ImageOp) bool {
	for _, op := range ops {
		if op == want {
			return true
		}
	}
	return false
}
