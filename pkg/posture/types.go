package posture

type Language string

const (
	LangEnglish Language = "en"
	LangHindi   Language = "hi"
)

// NormalizeLanguage maps any unsupported language code to English.
func NormalizeLanguage(code string) Language {
	switch Language(code) {
	case LangEnglish, LangHindi:
		return Language(code)
	default:
		return LangEnglish
	}
}

const (
	LandmarkNose          = "nose"
	LandmarkLeftEye       = "left_eye"
	LandmarkRightEye      = "right_eye"
	LandmarkLeftShoulder  = "left_shoulder"
	LandmarkRightShoulder = "right_shoulder"
	LandmarkLeftHip       = "left_hip"
	LandmarkRightHip      = "right_hip"
)

// Landmark is an anatomical point in pixel space. Z carries the model's
// depth estimate scaled by image width and is not used by the heuristics.
type Landmark struct {
	Name       string
	X          float64
	Y          float64
	Z          float64
	Visibility float64
}

type LandmarkSet map[string]Landmark

func (s LandmarkSet) Get(name string) (Landmark, bool) {
	lm, ok := s[name]
	return lm, ok
}

func (s LandmarkSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

type Category string

const (
	CategoryExcellent        Category = "excellent"
	CategoryMildSlouch       Category = "mild_slouch"
	CategoryForwardHead      Category = "forward_head"
	CategoryNeckTension      Category = "neck_tension"
	CategoryNeedsImprovement Category = "needs_improvement"
	CategoryNoPose           Category = "no_pose"
	CategoryLowConfidence    Category = "low_confidence"
	CategoryMissingLandmarks Category = "missing_landmarks"
	CategoryDecodeError      Category = "decode_error"
	CategoryCalculationError Category = "calculation_error"
)

type Recommendation struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

type Keypoint struct {
	X   int      `json:"x"`
	Y   int      `json:"y"`
	Vis *float64 `json:"vis,omitempty"`
}

type DebugMetrics struct {
	ForwardHeadAngle *float64            `json:"forwardHeadAngle"`
	ShoulderSlopeDeg float64             `json:"shoulderSlopeDeg"`
	Keypoints        map[string]Keypoint `json:"keypoints"`
}

type ImageDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Flags struct {
	Slouch      bool
	ForwardHead bool
	NeckTension bool
}

// Features holds the geometric measurements extracted from one landmark set.
// ForwardHeadAngle is the torso angle at the shoulder midpoint and is nil
// when the triangle is degenerate. HeadAngle stays 0 when the eyes are
// absent and the ratio fallback decides the forward head flag instead.
type Features struct {
	ShoulderMid      Point
	HipMid           Point
	ShoulderSlope    float64
	HipSlope         float64
	SlouchDiff       float64
	HeadAngle        float64
	HeadForwardRatio float64
	NeckRatio        float64
	ForwardHeadAngle *float64
	EyesPresent      bool
}

type Verdict struct {
	Category            Category         `json:"posture_type"`
	Score               int              `json:"score"`
	Summary             string           `json:"summary"`
	Recommendations     []Recommendation `json:"recommendations"`
	Notes               string           `json:"notes"`
	SlouchDetected      bool             `json:"slouch_detected"`
	ForwardHeadDetected bool             `json:"forward_head_detected"`
	NeckTensionDetected bool             `json:"neck_tension_detected"`
	Confidence          float64          `json:"confidence"`
	AnalysisTimestamp   string           `json:"analysis_timestamp"`
	MissingLandmarks    []string         `json:"missing_landmarks,omitempty"`
	LandmarkCount       int              `json:"landmark_count,omitempty"`
	ImageDimensions     *ImageDimensions `json:"image_dimensions,omitempty"`
	Debug               *DebugMetrics    `json:"debug,omitempty"`
}

type Input struct {
	Landmarks     LandmarkSet
	Language      Language
	LandmarkCount int
	ImageWidth    int
	ImageHeight   int
}

type IAnalyzer interface {
	Evaluate(in Input) *Verdict
	NoPose(lang Language) *Verdict
	LowConfidence(lang Language) *Verdict
	MissingLandmarks(lang Language, names []string) *Verdict
	DecodeError(lang Language) *Verdict
	CalculationError(lang Language) *Verdict
	Strategy() string
}
