package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/garment-palette-mcp/internal/raster"
)

// ErrUnknownAlgorithm is returned for an algorithm name that is not supported.
var ErrUnknownAlgorithm = errors.New("unknown colour algorithm")

// Extractor produces a colour analysis from a raster image. Implementations
// assume the image has already been validated.
type Extractor interface {
	Extract(img *raster.Image) *Result
}

// Algorithm selects an Extractor.
type Algorithm string

const (
	// AlgorithmEnhanced is the default weighted, suppression-aware sampler.
	AlgorithmEnhanced Algorithm = "enhanced"

	// AlgorithmLegacy is the plain histogram sampler.
	AlgorithmLegacy Algorithm = "legacy"
)

// ValidAlgorithms returns the supported algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmEnhanced, AlgorithmLegacy}
}

// ParseAlgorithm maps a name to an Algorithm. The empty string selects the
// enhanced algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(name))) {
	case "", AlgorithmEnhanced:
		return AlgorithmEnhanced, nil
	case AlgorithmLegacy:
		return AlgorithmLegacy, nil
	default:
		return "", fmt.Errorf("%w: %q (valid algorithms: %v)", ErrUnknownAlgorithm, name, ValidAlgorithms())
	}
}

// NewExtractor returns the Extractor for alg.
func NewExtractor(alg Algorithm) (Extractor, error) {
	switch alg {
	case AlgorithmEnhanced:
		return NewEnhancedExtractor(), nil
	case AlgorithmLegacy:
		return NewLegacyExtractor(), nil
	default:
		return nil, fmt.Errorf("%w: %q (valid algorithms: %v)", ErrUnknownAlgorithm, alg, ValidAlgorithms())
	}
}

// AnalyzeColors ranks the dominant colours of img with the given algorithm.
//
// The only failures are an empty or malformed image and an unknown
// algorithm. An image with no usable colours returns a Result whose
// DominantColors is empty.
func AnalyzeColors(img *raster.Image, alg Algorithm) (*Result, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("analyze colours: %w", err)
	}
	ex, err := NewExtractor(alg)
	if err != nil {
		return nil, err
	}
	return ex.Extract(img), nil
}
