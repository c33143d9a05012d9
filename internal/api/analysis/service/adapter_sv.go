package analysisService

import (
	"UWellGolang/pkg/mediapipe"
	"UWellGolang/pkg/posture"
)

const minLandmarkVisibility = 0.2

// denormalizeLandmarks scales the detector's normalized coordinates to pixel
// space and maps the detector names onto the canonical set. Depth stays
// proportional to image width, matching how the detector normalizes it. The
// eye entries prefer the inner points and fall back to the pupil ones.
func denormalizeLandmarks(raw []mediapipe.Landmark, width, height int) posture.LandmarkSet {
	byName := make(map[string]mediapipe.Landmark, len(raw))
	for _, lm := range raw {
		byName[lm.Name] = lm
	}

	set := make(posture.LandmarkSet)
	add := func(canonical string, names ...string) {
		for _, name := range names {
			lm, ok := byName[name]
			if !ok {
				continue
			}
			set[canonical] = posture.Landmark{
				Name:       canonical,
				X:          lm.X * float64(width),
				Y:          lm.Y * float64(height),
				Z:          lm.Z * float64(width),
				Visibility: lm.Visibility,
			}
			return
		}
	}

	add(posture.LandmarkNose, "nose")
	add(posture.LandmarkLeftEye, "left_eye_inner", "left_eye")
	add(posture.LandmarkRightEye, "right_eye_inner", "right_eye")
	add(posture.LandmarkLeftShoulder, "left_shoulder")
	add(posture.LandmarkRightShoulder, "right_shoulder")
	add(posture.LandmarkLeftHip, "left_hip")
	add(posture.LandmarkRightHip, "right_hip")

	return set
}

// lowVisibility reports a detection too uncertain to score: the nose is
// barely visible, or both shoulders are. Runs after the presence check, so
// the landmarks are known to exist.
func lowVisibility(set posture.LandmarkSet) bool {
	nose, _ := set.Get(posture.LandmarkNose)
	left, _ := set.Get(posture.LandmarkLeftShoulder)
	right, _ := set.Get(posture.LandmarkRightShoulder)

	if nose.Visibility < minLandmarkVisibility {
		return true
	}
	return left.Visibility < minLandmarkVisibility && right.Visibility < minLandmarkVisibility
}
