package posture

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	StrategyEyeline    = "eyeline"
	StrategyTorsoAngle = "torso_angle"
)

const (
	scoredConfidence = 0.85

	slouchThresholdDeg  = 10.0
	eyelineThresholdDeg = 5.0
	headRatioThreshold  = 0.25
	neckRatioThreshold  = 0.3

	torsoAngleFlagDeg     = 70.0
	torsoAnglePenaltyDeg  = 75.0
	torsoAnglePenaltyRate = 0.6

	maxSlouchPenalty = 30.0
	maxHeadPenalty   = 20.0
	maxNeckPenalty   = 15.0

	lowConfidenceScore = 30

	timestampLayout = "2006-01-02 15:04:05"
)

var requiredLandmarks = []string{
	LandmarkNose,
	LandmarkLeftShoulder,
	LandmarkRightShoulder,
	LandmarkLeftHip,
	LandmarkRightHip,
}

type Config struct {
	ForwardHeadStrategy string
}

type analyzer struct {
	strategy string
}

func New(cfg Config) (IAnalyzer, error) {
	strategy := cfg.ForwardHeadStrategy
	if strategy == "" {
		strategy = StrategyEyeline
	}

	switch strategy {
	case StrategyEyeline, StrategyTorsoAngle:
		return &analyzer{strategy: strategy}, nil
	default:
		return nil, fmt.Errorf("unknown forward head strategy %q", strategy)
	}
}

func (a *analyzer) Strategy() string {
	return a.strategy
}

func (a *analyzer) Evaluate(in Input) *Verdict {
	if missing := MissingRequired(in.Landmarks); len(missing) > 0 {
		return a.MissingLandmarks(in.Language, missing)
	}

	feats, ok := a.extractFeatures(in.Landmarks)
	if !ok {
		return a.CalculationError(in.Language)
	}

	flags := a.classify(feats)
	category := categoryFor(flags)
	body := lookupContent(category, in.Language)

	verdict := &Verdict{
		Category:            category,
		Score:               a.score(feats, flags),
		Summary:             body.Summary,
		Recommendations:     body.Recommendations,
		Notes:               body.Notes,
		SlouchDetected:      flags.Slouch,
		ForwardHeadDetected: flags.ForwardHead,
		NeckTensionDetected: flags.NeckTension,
		Confidence:          scoredConfidence,
		AnalysisTimestamp:   time.Now().Format(timestampLayout),
		LandmarkCount:       in.LandmarkCount,
		Debug:               debugMetrics(feats, in.Landmarks),
	}
	if in.ImageWidth > 0 || in.ImageHeight > 0 {
		verdict.ImageDimensions = &ImageDimensions{Width: in.ImageWidth, Height: in.ImageHeight}
	}

	return verdict
}

// MissingRequired lists the structurally required landmarks absent from the
// set, in canonical order.
func MissingRequired(set LandmarkSet) []string {
	var missing []string
	for _, name := range requiredLandmarks {
		if !set.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

func (a *analyzer) extractFeatures(set LandmarkSet) (Features, bool) {
	nose := pointOf(set[LandmarkNose])
	leftShoulder := pointOf(set[LandmarkLeftShoulder])
	rightShoulder := pointOf(set[LandmarkRightShoulder])
	leftHip := pointOf(set[LandmarkLeftHip])
	rightHip := pointOf(set[LandmarkRightHip])

	shoulderWidth := Distance(leftShoulder, rightShoulder)
	hipWidth := Distance(leftHip, rightHip)
	if shoulderWidth == 0 || hipWidth == 0 {
		return Features{}, false
	}

	feats := Features{
		ShoulderMid:   Midpoint(leftShoulder, rightShoulder),
		HipMid:        Midpoint(leftHip, rightHip),
		ShoulderSlope: SlopeAngle(leftShoulder, rightShoulder),
		HipSlope:      SlopeAngle(leftHip, rightHip),
	}
	feats.SlouchDiff = AngularDiff(feats.ShoulderSlope, feats.HipSlope)

	noseToShoulder := Distance(nose, feats.ShoulderMid)
	feats.NeckRatio = noseToShoulder / shoulderWidth

	if angle, ok := AngleAt(nose, feats.ShoulderMid, feats.HipMid); ok {
		feats.ForwardHeadAngle = &angle
	}

	leftEye, leftOK := set.Get(LandmarkLeftEye)
	rightEye, rightOK := set.Get(LandmarkRightEye)
	feats.EyesPresent = leftOK && rightOK
	if feats.EyesPresent {
		feats.HeadAngle = SlopeAngle(pointOf(leftEye), pointOf(rightEye))
	} else {
		feats.HeadForwardRatio = noseToShoulder / shoulderWidth
	}

	return feats, true
}

func (a *analyzer) classify(feats Features) Flags {
	flags := Flags{Slouch: feats.SlouchDiff > slouchThresholdDeg}

	switch a.strategy {
	case StrategyTorsoAngle:
		flags.ForwardHead = feats.ForwardHeadAngle != nil && *feats.ForwardHeadAngle < torsoAngleFlagDeg
	default:
		if feats.EyesPresent {
			flags.ForwardHead = math.Abs(feats.HeadAngle) > eyelineThresholdDeg
		} else {
			flags.ForwardHead = feats.HeadForwardRatio > headRatioThreshold
		}
	}

	flags.NeckTension = feats.NeckRatio > neckRatioThreshold
	return flags
}

func (a *analyzer) score(feats Features, flags Flags) int {
	slouchPenalty := math.Min(maxSlouchPenalty, feats.SlouchDiff*2)

	var headPenalty float64
	switch a.strategy {
	case StrategyTorsoAngle:
		if feats.ForwardHeadAngle != nil && *feats.ForwardHeadAngle < torsoAnglePenaltyDeg {
			headPenalty = math.Min(maxHeadPenalty, (torsoAnglePenaltyDeg-*feats.ForwardHeadAngle)*torsoAnglePenaltyRate)
		}
	default:
		// HeadAngle is 0 on the ratio fallback, so the head term never
		// penalizes there even when the flag is raised.
		if flags.ForwardHead {
			headPenalty = math.Min(maxHeadPenalty, math.Abs(feats.HeadAngle)*2)
		}
	}

	var neckPenalty float64
	if flags.NeckTension {
		neckPenalty = math.Min(maxNeckPenalty, feats.NeckRatio*30)
	}

	score := 100 - slouchPenalty - headPenalty - neckPenalty
	if score < 0 {
		score = 0
	}
	return int(score)
}

func categoryFor(flags Flags) Category {
	switch {
	case flags.Slouch && flags.ForwardHead && flags.NeckTension:
		return CategoryNeedsImprovement
	case flags.Slouch:
		return CategoryMildSlouch
	case flags.ForwardHead:
		return CategoryForwardHead
	case flags.NeckTension:
		return CategoryNeckTension
	default:
		return CategoryExcellent
	}
}

func debugMetrics(feats Features, set LandmarkSet) *DebugMetrics {
	var forwardHeadAngle *float64
	if feats.ForwardHeadAngle != nil {
		v := round1(*feats.ForwardHeadAngle)
		forwardHeadAngle = &v
	}

	return &DebugMetrics{
		ForwardHeadAngle: forwardHeadAngle,
		ShoulderSlopeDeg: round1(feats.ShoulderSlope),
		Keypoints: map[string]Keypoint{
			"nose":           keypointOf(set[LandmarkNose]),
			"left_shoulder":  keypointOf(set[LandmarkLeftShoulder]),
			"right_shoulder": keypointOf(set[LandmarkRightShoulder]),
			"hip_mid": {
				X: int(math.Round(feats.HipMid.X)),
				Y: int(math.Round(feats.HipMid.Y)),
			},
		},
	}
}

func (a *analyzer) NoPose(lang Language) *Verdict {
	return degraded(CategoryNoPose, 0, lang, nil)
}

func (a *analyzer) LowConfidence(lang Language) *Verdict {
	return degraded(CategoryLowConfidence, lowConfidenceScore, lang, nil)
}

func (a *analyzer) MissingLandmarks(lang Language, names []string) *Verdict {
	return degraded(CategoryMissingLandmarks, 0, lang, names)
}

func (a *analyzer) DecodeError(lang Language) *Verdict {
	return degraded(CategoryDecodeError, 0, lang, nil)
}

func (a *analyzer) CalculationError(lang Language) *Verdict {
	return degraded(CategoryCalculationError, 0, lang, nil)
}

func degraded(cat Category, score int, lang Language, missing []string) *Verdict {
	body := lookupContent(cat, lang)

	notes := body.Notes
	if cat == CategoryMissingLandmarks {
		notes = fmt.Sprintf(body.Notes, strings.Join(missing, ", "))
	}

	return &Verdict{
		Category:          cat,
		Score:             score,
		Summary:           body.Summary,
		Recommendations:   body.Recommendations,
		Notes:             notes,
		Confidence:        0.0,
		AnalysisTimestamp: time.Now().Format(timestampLayout),
		MissingLandmarks:  missing,
	}
}

func pointOf(lm Landmark) Point {
	return Point{X: lm.X, Y: lm.Y}
}

func keypointOf(lm Landmark) Keypoint {
	vis := math.Round(lm.Visibility*100) / 100
	return Keypoint{
		X:   int(math.Round(lm.X)),
		Y:   int(math.Round(lm.Y)),
		Vis: &vis,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
