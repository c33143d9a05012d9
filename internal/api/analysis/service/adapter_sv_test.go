package analysisService

import (
	"testing"

	"UWellGolang/pkg/mediapipe"
	"UWellGolang/pkg/posture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDenormalizeLandmarks_ScalesToPixelSpace(t *testing.T) {
	raw := []mediapipe.Landmark{
		{Name: "nose", X: 0.5, Y: 0.25, Z: -0.1, Visibility: 0.95},
		{Name: "left_shoulder", X: 0.25, Y: 0.5, Visibility: 0.9},
	}

	set := denormalizeLandmarks(raw, 640, 480)

	nose, ok := set.Get(posture.LandmarkNose)
	require.True(t, ok)
	assert.InDelta(t, 320, nose.X, 1e-9)
	assert.InDelta(t, 120, nose.Y, 1e-9)
	assert.InDelta(t, -64, nose.Z, 1e-9)
	assert.InDelta(t, 0.95, nose.Visibility, 1e-9)

	shoulder, ok := set.Get(posture.LandmarkLeftShoulder)
	require.True(t, ok)
	assert.InDelta(t, 160, shoulder.X, 1e-9)
	assert.InDelta(t, 240, shoulder.Y, 1e-9)
}

func TestDenormalizeLandmarks_PrefersInnerEye(t *testing.T) {
	raw := []mediapipe.Landmark{
		{Name: "left_eye_inner", X: 0.4, Y: 0.3, Visibility: 0.9},
		{Name: "left_eye", X: 0.38, Y: 0.31, Visibility: 0.9},
	}

	set := denormalizeLandmarks(raw, 100, 100)

	eye, ok := set.Get(posture.LandmarkLeftEye)
	require.True(t, ok)
	assert.InDelta(t, 40, eye.X, 1e-9)
	assert.InDelta(t, 30, eye.Y, 1e-9)
}

func TestDenormalizeLandmarks_FallsBackToPupilEye(t *testing.T) {
	raw := []mediapipe.Landmark{
		{Name: "right_eye", X: 0.6, Y: 0.3, Visibility: 0.9},
	}

	set := denormalizeLandmarks(raw, 100, 100)

	eye, ok := set.Get(posture.LandmarkRightEye)
	require.True(t, ok)
	assert.InDelta(t, 60, eye.X, 1e-9)
}

func TestDenormalizeLandmarks_IgnoresUnmappedNames(t *testing.T) {
	raw := []mediapipe.Landmark{
		{Name: "left_elbow", X: 0.1, Y: 0.1, Visibility: 0.9},
		{Name: "right_knee", X: 0.2, Y: 0.2, Visibility: 0.9},
	}

	set := denormalizeLandmarks(raw, 100, 100)

	assert.Empty(t, set)
}

func TestLowVisibility(t *testing.T) {
	build := func(noseVis, leftVis, rightVis float64) posture.LandmarkSet {
		return posture.LandmarkSet{
			posture.LandmarkNose:          {Name: posture.LandmarkNose, Visibility: noseVis},
			posture.LandmarkLeftShoulder:  {Name: posture.LandmarkLeftShoulder, Visibility: leftVis},
			posture.LandmarkRightShoulder: {Name: posture.LandmarkRightShoulder, Visibility: rightVis},
		}
	}

	tests := []struct {
		name string
		set  posture.LandmarkSet
		want bool
	}{
		{name: "all visible", set: build(0.9, 0.9, 0.9), want: false},
		{name: "nose hidden", set: build(0.1, 0.9, 0.9), want: true},
		{name: "one shoulder hidden", set: build(0.9, 0.1, 0.9), want: false},
		{name: "both shoulders hidden", set: build(0.9, 0.1, 0.15), want: true},
		{name: "at threshold", set: build(0.2, 0.2, 0.2), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lowVisibility(tt.set))
		})
	}
}
