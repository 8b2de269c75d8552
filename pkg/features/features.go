package features

import (
	"fmt"
	"math"
	"strings"
)

type Modality string

const (
	ModalitySkin        Modality = "skin"
	ModalityRespiratory Modality = "respiratory"
	ModalityLab         Modality = "lab"
	ModalityChat        Modality = "chat"
)

var Modalities = []Modality{ModalitySkin, ModalityRespiratory, ModalityLab, ModalityChat}

// ParseModality accepts the canonical names and the input-kind aliases used by clients.
func ParseModality(v string) (Modality, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "skin", "image", "dermatology":
		return ModalitySkin, nil
	case "respiratory", "audio", "sound", "breathing":
		return ModalityRespiratory, nil
	case "lab", "lab_report", "ocr":
		return ModalityLab, nil
	case "chat", "text", "symptoms", "message":
		return ModalityChat, nil
	}
	return "", ValidationError{reason: fmt.Errorf("modality '%s': %w", v, ErrUnknownModality)}
}

// ImageFeatures are the colour, texture and contour scalars of a skin photograph.
type ImageFeatures struct {
	AvgHue            float64 `json:"avg_hue"`
	AvgSaturation     float64 `json:"avg_saturation"`
	AvgValue          float64 `json:"avg_value"`
	StdHue            float64 `json:"std_hue"`
	StdSaturation     float64 `json:"std_saturation"`
	StdValue          float64 `json:"std_value"`
	TextureVariance   float64 `json:"texture_variance"`
	TextureComplexity float64 `json:"texture_complexity"`
	AvgGradient       float64 `json:"avg_gradient"`
	EdgeDensity       float64 `json:"edge_density"`
	EdgeStrength      float64 `json:"edge_strength"`
	ContourArea       float64 `json:"contour_area"`
	ContourPerimeter  float64 `json:"contour_perimeter"`
	Circularity       float64 `json:"circularity"`
}

func (f ImageFeatures) Uniform() bool       { return f.StdSaturation < 40 }
func (f ImageFeatures) Smooth() bool        { return f.TextureVariance < 800 }
func (f ImageFeatures) RegularBorder() bool { return f.EdgeDensity < 0.08 }
func (f ImageFeatures) Symmetric() bool     { return f.Circularity > 0.7 }
func (f ImageFeatures) Small() bool         { return f.ContourArea < 5000 }

// Details renders the categorical descriptors shown alongside a skin report.
func (f ImageFeatures) Details() map[string]string {
	pick := func(cond bool, yes, no string) string {
		if cond {
			return yes
		}
		return no
	}
	return map[string]string{
		"color_uniformity":  pick(f.Uniform(), "uniform", "varied"),
		"texture_quality":   pick(f.Smooth(), "smooth", "rough"),
		"border_regularity": pick(f.RegularBorder(), "regular", "irregular"),
		"symmetry":          pick(f.Symmetric(), "symmetric", "asymmetric"),
		"size_assessment":   pick(f.Small(), "small", "large"),
	}
}

// ImageQuality is brightness on a 0-100 scale.
func (f ImageFeatures) ImageQuality() float64 {
	return math.Min(100, f.AvgValue/2.55)
}

func (f ImageFeatures) ConfidenceFactors() map[string]float64 {
	return map[string]float64{
		"image_quality":     f.ImageQuality(),
		"feature_clarity":   math.Min(100, f.EdgeStrength*2),
		"color_consistency": math.Max(0, 100-f.StdSaturation),
	}
}

type AudioFeatures struct {
	SpectralCentroid float64   `json:"spectral_centroid"`
	SpectralRolloff  float64   `json:"spectral_rolloff,omitempty"`
	ZeroCrossingRate float64   `json:"zero_crossing_rate"`
	RMSEnergy        float64   `json:"rms_energy"`
	MFCCMean         []float64 `json:"mfcc_mean,omitempty"`
}

// LabFeatures carries OCR text; Values, when set, bypasses parsing.
type LabFeatures struct {
	Text   string             `json:"text,omitempty"`
	Values map[string]float64 `json:"values,omitempty"`
}

type TextFeatures struct {
	Message string `json:"message"`
}

// Record is one extracted input. Exactly the payload matching Modality is set.
type Record struct {
	Modality Modality       `json:"modality"`
	Image    *ImageFeatures `json:"image,omitempty"`
	Audio    *AudioFeatures `json:"audio,omitempty"`
	Lab      *LabFeatures   `json:"lab,omitempty"`
	Text     *TextFeatures  `json:"text,omitempty"`
}

func (r Record) Validate() error {
	switch r.Modality {
	case ModalitySkin:
		if r.Image == nil {
			return ValidationError{reason: fmt.Errorf("skin record: %w", errMissingPayload)}
		}
		return finite("skin", r.Image.AvgHue, r.Image.AvgSaturation, r.Image.AvgValue, r.Image.StdHue,
			r.Image.StdSaturation, r.Image.StdValue, r.Image.TextureVariance, r.Image.TextureComplexity,
			r.Image.AvgGradient, r.Image.EdgeDensity, r.Image.EdgeStrength, r.Image.ContourArea,
			r.Image.ContourPerimeter, r.Image.Circularity)
	case ModalityRespiratory:
		if r.Audio == nil {
			return ValidationError{reason: fmt.Errorf("respiratory record: %w", errMissingPayload)}
		}
		return finite("respiratory", r.Audio.SpectralCentroid, r.Audio.SpectralRolloff, r.Audio.ZeroCrossingRate, r.Audio.RMSEnergy)
	case ModalityLab:
		if r.Lab == nil {
			return ValidationError{reason: fmt.Errorf("lab record: %w", errMissingPayload)}
		}
		for k, v := range r.Lab.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return ValidationError{reason: fmt.Errorf("lab value %s: %w", k, errNonFinite)}
			}
		}
		return nil
	case ModalityChat:
		if r.Text == nil {
			return ValidationError{reason: fmt.Errorf("chat record: %w", errMissingPayload)}
		}
		return nil
	}
	return ValidationError{reason: fmt.Errorf("modality '%s': %w", r.Modality, ErrUnknownModality)}
}

func finite(kind string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ValidationError{reason: fmt.Errorf("%s features: %w", kind, errNonFinite)}
		}
	}
	return nil
}
