package googlevision

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"

	vision "cloud.google.com/go/vision/apiv1"

	"github.com/classtrack/gradescan/pkg/providers"
	"github.com/classtrack/gradescan/pkg/sheet"
)

// maxAnnotations caps how many text fragments one request returns. A full
// sheet is a few hundred fragments at most.
const maxAnnotations = 200

// Provider implements the Google Cloud Vision OCR provider. It is the only
// provider that returns bounding geometry, so it backs the structured
// (row-clustering) path of the pipeline.
type Provider struct{}

// New creates a new Google Vision provider.
func New() *Provider {
	return &Provider{}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "vision"
}

// ValidateConfig validates the Google Vision configuration.
func (p *Provider) ValidateConfig(config providers.Config) error {
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS environment variable not set")
	}
	return nil
}

// DetectText runs text detection on an image and returns one TextObject per
// recognized fragment. The API's first annotation is the whole-page text
// blob and is skipped; the remaining annotations are individual fragments
// with bounding polygons. Fragments without a reported confidence get 1.0.
func (p *Provider) DetectText(ctx context.Context, config providers.Config, imagePath, imageBase64 string) ([]sheet.TextObject, error) {
	imageData, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 image: %w", err)
	}

	client, err := vision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	defer client.Close()

	img, err := vision.NewImageFromReader(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare image: %w", err)
	}

	annotations, err := client.DetectTexts(ctx, img, nil, maxAnnotations)
	if err != nil {
		return nil, fmt.Errorf("vision API error: %w", err)
	}

	var objects []sheet.TextObject
	for i, annotation := range annotations {
		if i == 0 {
			continue
		}
		poly := annotation.GetBoundingPoly()
		if poly == nil {
			continue
		}

		var xs, ys []float64
		for _, v := range poly.GetVertices() {
			xs = append(xs, float64(v.GetX()))
			ys = append(ys, float64(v.GetY()))
		}

		confidence := float64(annotation.GetConfidence())
		if confidence == 0 {
			confidence = 1.0
		}

		objects = append(objects, sheet.NewTextObjectFromVertices(annotation.GetDescription(), confidence, xs, ys))
	}

	return objects, nil
}
