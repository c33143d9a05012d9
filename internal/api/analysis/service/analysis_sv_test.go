package analysisService

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/textproto"
	"testing"

	"UWellGolang/internal/api/analysis"
	"UWellGolang/pkg/mediapipe"
	"UWellGolang/pkg/posture"
	"UWellGolang/pkg/response"
	"UWellGolang/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePoseClient struct {
	result       *mediapipe.DetectionResult
	err          error
	calls        int
	lastFilename string
}

func (f *fakePoseClient) DetectPose(ctx context.Context, image []byte, filename string) (*mediapipe.DetectionResult, error) {
	f.calls++
	f.lastFilename = filename
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakePoseClient) HealthCheck(ctx context.Context) error { return f.err }

func (f *fakePoseClient) BaseURL() string { return "http://detector.local" }

type fakeLiveClient struct {
	connected bool
	result    *mediapipe.DetectionResult
	err       error
	frames    int
}

func (f *fakeLiveClient) ProcessPoseFrame(frame []byte) (*mediapipe.DetectionResult, error) {
	f.frames++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeLiveClient) IsConnected() bool { return f.connected }

func (f *fakeLiveClient) Reconnect() error { return nil }

func (f *fakeLiveClient) Close() {}

func newService(t *testing.T, pose mediapipe.IClient, live mediapipe.ILiveClient) IAnalysisService {
	t.Helper()
	analyzer, err := posture.New(posture.Config{})
	require.NoError(t, err)
	return NewAnalysisService(pose, live, analyzer, utils.New())
}

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func fileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["image"][0]
}

// uprightDetection mirrors what the detector reports for a straight sitter
// in a 100x100 frame: level shoulders, level hips, nose close to the
// shoulder midpoint.
func uprightDetection() *mediapipe.DetectionResult {
	return &mediapipe.DetectionResult{
		Found: true,
		Landmarks: []mediapipe.Landmark{
			{Name: "nose", X: 0.5, Y: 0.4, Visibility: 0.99},
			{Name: "left_eye_inner", X: 0.4, Y: 0.35, Visibility: 0.98},
			{Name: "right_eye_inner", X: 0.6, Y: 0.35, Visibility: 0.98},
			{Name: "left_shoulder", X: 0.2, Y: 0.5, Visibility: 0.97},
			{Name: "right_shoulder", X: 0.8, Y: 0.5, Visibility: 0.97},
			{Name: "left_hip", X: 0.2, Y: 0.9, Visibility: 0.9},
			{Name: "right_hip", X: 0.8, Y: 0.9, Visibility: 0.9},
		},
		LandmarkCount: 33,
	}
}

func TestAnalyzeUpload_ScoresUprightPose(t *testing.T) {
	pose := &fakePoseClient{result: uprightDetection()}
	svc := newService(t, pose, nil)
	data := encodePNG(t, 100, 100)
	file := fileHeader(t, "desk.png", "image/png", data)

	result, err := svc.AnalyzeUpload(context.Background(), file, posture.LangEnglish, "sess-1")

	require.NoError(t, err)
	assert.Equal(t, analysis.TypeAnalysis, result.Type)
	assert.Equal(t, posture.CategoryExcellent, result.Category)
	assert.Equal(t, 100, result.Score)
	assert.Equal(t, "sess-1", result.SessionID)
	assert.Equal(t, analysis.APIVersion, result.APIVersion)
	assert.Equal(t, 33, result.LandmarkCount)
	assert.GreaterOrEqual(t, result.ProcessingTime, 0.0)

	require.NotNil(t, result.ImageDimensions)
	assert.Equal(t, 100, result.ImageDimensions.Width)
	assert.Equal(t, 100, result.ImageDimensions.Height)

	require.NotNil(t, result.ImageInfo)
	assert.Equal(t, "desk.png", result.ImageInfo.Filename)
	assert.Equal(t, "image/png", result.ImageInfo.ContentType)
	assert.Equal(t, int64(len(data)), result.ImageInfo.SizeBytes)

	assert.Equal(t, 1, pose.calls)
	assert.Equal(t, "desk.png", pose.lastFilename)
}

func TestAnalyzeUpload_NilFile(t *testing.T) {
	svc := newService(t, &fakePoseClient{}, nil)

	result, err := svc.AnalyzeUpload(context.Background(), nil, posture.LangEnglish, "")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, analysis.ErrNoImage)
}

func TestAnalyzeUpload_RejectsWrongContentType(t *testing.T) {
	pose := &fakePoseClient{}
	svc := newService(t, pose, nil)
	file := fileHeader(t, "notes.txt", "text/plain", []byte("hello"))

	result, err := svc.AnalyzeUpload(context.Background(), file, posture.LangEnglish, "")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, analysis.ErrInvalidFileType)
	assert.Equal(t, 0, pose.calls)

	var respErr *response.Error
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, "text/plain", respErr.Data["received_type"])
}

func TestAnalyzeUpload_EmptyFile(t *testing.T) {
	svc := newService(t, &fakePoseClient{}, nil)
	file := fileHeader(t, "empty.png", "image/png", nil)

	_, err := svc.AnalyzeUpload(context.Background(), file, posture.LangEnglish, "")

	assert.ErrorIs(t, err, analysis.ErrEmptyFile)
}

func TestAnalyzeUpload_FileTooLarge(t *testing.T) {
	svc := newService(t, &fakePoseClient{}, nil)
	data := bytes.Repeat([]byte{0xab}, maxUploadBytes+1)
	file := fileHeader(t, "huge.jpg", "image/jpeg", data)

	_, err := svc.AnalyzeUpload(context.Background(), file, posture.LangEnglish, "")

	assert.ErrorIs(t, err, analysis.ErrFileTooLarge)

	var respErr *response.Error
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, maxUploadBytes+1, respErr.Data["file_size"])
}

func TestAnalyzeUpload_UndecodableImageIsDecodeErrorVerdict(t *testing.T) {
	pose := &fakePoseClient{result: uprightDetection()}
	svc := newService(t, pose, nil)
	file := fileHeader(t, "broken.jpg", "image/jpeg", []byte("not a real image"))

	result, err := svc.AnalyzeUpload(context.Background(), file, posture.LangEnglish, "")

	require.NoError(t, err)
	assert.Equal(t, posture.CategoryDecodeError, result.Category)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Equal(t, 0, pose.calls)
}

func TestAnalyzeUpload_DetectorDownIsAnalyzerUnavailable(t *testing.T) {
	pose := &fakePoseClient{err: errors.New("dial tcp: connection refused")}
	svc := newService(t, pose, nil)
	file := fileHeader(t, "desk.png", "image/png", encodePNG(t, 100, 100))

	_, err := svc.AnalyzeUpload(context.Background(), file, posture.LangEnglish, "")

	assert.ErrorIs(t, err, analysis.ErrAnalyzerUnavailable)
}

func TestAnalyzeUpload_MalformedDetectorBodyIsInvalidAnalysis(t *testing.T) {
	pose := &fakePoseClient{err: fmt.Errorf("%w: unexpected EOF", mediapipe.ErrBadResponse)}
	svc := newService(t, pose, nil)
	file := fileHeader(t, "desk.png", "image/png", encodePNG(t, 100, 100))

	_, err := svc.AnalyzeUpload(context.Background(), file, posture.LangEnglish, "")

	assert.ErrorIs(t, err, analysis.ErrInvalidAnalysis)
}

func TestAnalyzeUpload_NoPoseFound(t *testing.T) {
	pose := &fakePoseClient{result: &mediapipe.DetectionResult{Found: false}}
	svc := newService(t, pose, nil)
	file := fileHeader(t, "wall.png", "image/png", encodePNG(t, 100, 100))

	result, err := svc.AnalyzeUpload(context.Background(), file, posture.LangEnglish, "")

	require.NoError(t, err)
	assert.Equal(t, posture.CategoryNoPose, result.Category)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0.0, result.Confidence)
	require.NotNil(t, result.ImageInfo)
	assert.Equal(t, "wall.png", result.ImageInfo.Filename)
}

func TestAnalyzeUpload_MissingLandmarksVerdict(t *testing.T) {
	detection := &mediapipe.DetectionResult{
		Found: true,
		Landmarks: []mediapipe.Landmark{
			{Name: "nose", X: 0.5, Y: 0.4, Visibility: 0.99},
			{Name: "left_shoulder", X: 0.2, Y: 0.5, Visibility: 0.97},
			{Name: "right_shoulder", X: 0.8, Y: 0.5, Visibility: 0.97},
		},
		LandmarkCount: 3,
	}
	svc := newService(t, &fakePoseClient{result: detection}, nil)
	file := fileHeader(t, "torso.png", "image/png", encodePNG(t, 100, 100))

	result, err := svc.AnalyzeUpload(context.Background(), file, posture.LangEnglish, "")

	require.NoError(t, err)
	assert.Equal(t, posture.CategoryMissingLandmarks, result.Category)
	assert.Equal(t, []string{posture.LandmarkLeftHip, posture.LandmarkRightHip}, result.MissingLandmarks)
	assert.Equal(t, "Missing points: left_hip, right_hip", result.Notes)
}

func TestAnalyzeUpload_LowVisibilityShouldersIsLowConfidence(t *testing.T) {
	detection := uprightDetection()
	detection.Landmarks[3].Visibility = 0.1
	detection.Landmarks[4].Visibility = 0.12

	svc := newService(t, &fakePoseClient{result: detection}, nil)
	file := fileHeader(t, "dark.png", "image/png", encodePNG(t, 100, 100))

	result, err := svc.AnalyzeUpload(context.Background(), file, posture.LangEnglish, "")

	require.NoError(t, err)
	assert.Equal(t, posture.CategoryLowConfidence, result.Category)
	assert.Equal(t, 30, result.Score)
}

// A landmark that is absent outranks one that is merely hard to see.
func TestAnalyzeUpload_MissingLandmarkWinsOverLowVisibility(t *testing.T) {
	detection := &mediapipe.DetectionResult{
		Found: true,
		Landmarks: []mediapipe.Landmark{
			{Name: "nose", X: 0.5, Y: 0.4, Visibility: 0.05},
			{Name: "left_shoulder", X: 0.2, Y: 0.5, Visibility: 0.97},
			{Name: "right_shoulder", X: 0.8, Y: 0.5, Visibility: 0.97},
			{Name: "left_hip", X: 0.2, Y: 0.9, Visibility: 0.9},
		},
		LandmarkCount: 4,
	}
	svc := newService(t, &fakePoseClient{result: detection}, nil)
	file := fileHeader(t, "dim.png", "image/png", encodePNG(t, 100, 100))

	result, err := svc.AnalyzeUpload(context.Background(), file, posture.LangEnglish, "")

	require.NoError(t, err)
	assert.Equal(t, posture.CategoryMissingLandmarks, result.Category)
	assert.Equal(t, []string{posture.LandmarkRightHip}, result.MissingLandmarks)
}

func TestAnalyzeUpload_HindiVerdictContent(t *testing.T) {
	svc := newService(t, &fakePoseClient{result: uprightDetection()}, nil)
	file := fileHeader(t, "desk.png", "image/png", encodePNG(t, 100, 100))

	result, err := svc.AnalyzeUpload(context.Background(), file, posture.LangHindi, "")

	require.NoError(t, err)
	assert.Equal(t, "उत्तम मुद्रा! 👏", result.Summary)
}

func TestAnalyzeFrame_PrefersLiveSocket(t *testing.T) {
	pose := &fakePoseClient{}
	live := &fakeLiveClient{connected: true, result: uprightDetection()}
	svc := newService(t, pose, live)

	result, err := svc.AnalyzeFrame(encodePNG(t, 100, 100), posture.LangEnglish, "live-1")

	require.NoError(t, err)
	assert.Equal(t, posture.CategoryExcellent, result.Category)
	assert.Equal(t, "live-1", result.SessionID)
	assert.Equal(t, 1, live.frames)
	assert.Equal(t, 0, pose.calls)

	require.NotNil(t, result.ImageInfo)
	assert.Equal(t, "frame.jpg", result.ImageInfo.Filename)
}

func TestAnalyzeFrame_FallsBackToHTTPWhenSocketDown(t *testing.T) {
	pose := &fakePoseClient{result: uprightDetection()}
	live := &fakeLiveClient{connected: false}
	svc := newService(t, pose, live)

	result, err := svc.AnalyzeFrame(encodePNG(t, 100, 100), posture.LangEnglish, "")

	require.NoError(t, err)
	assert.Equal(t, posture.CategoryExcellent, result.Category)
	assert.Equal(t, 0, live.frames)
	assert.Equal(t, 1, pose.calls)
	assert.Equal(t, "frame.jpg", pose.lastFilename)
}

func TestAnalyzeFrame_SocketErrorFallsBackToHTTP(t *testing.T) {
	pose := &fakePoseClient{result: uprightDetection()}
	live := &fakeLiveClient{connected: true, err: errors.New("broken pipe")}
	svc := newService(t, pose, live)

	result, err := svc.AnalyzeFrame(encodePNG(t, 100, 100), posture.LangEnglish, "")

	require.NoError(t, err)
	assert.Equal(t, posture.CategoryExcellent, result.Category)
	assert.Equal(t, 1, live.frames)
	assert.Equal(t, 1, pose.calls)
}

func TestAnalyzeFrame_EmptyFrame(t *testing.T) {
	svc := newService(t, &fakePoseClient{}, nil)

	_, err := svc.AnalyzeFrame(nil, posture.LangEnglish, "")

	assert.ErrorIs(t, err, analysis.ErrNoImage)
}

func TestAnalyzeFrame_OversizedFrame(t *testing.T) {
	svc := newService(t, &fakePoseClient{}, nil)
	frame := bytes.Repeat([]byte{0xff}, maxUploadBytes+1)

	_, err := svc.AnalyzeFrame(frame, posture.LangEnglish, "")

	require.ErrorIs(t, err, analysis.ErrFileTooLarge)

	var respErr *response.Error
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, maxUploadBytes+1, respErr.Data["file_size"])
}

func TestAnalyzeFrame_GarbageFrameIsDecodeErrorVerdict(t *testing.T) {
	pose := &fakePoseClient{}
	live := &fakeLiveClient{connected: true}
	svc := newService(t, pose, live)

	result, err := svc.AnalyzeFrame([]byte("junk"), posture.LangEnglish, "")

	require.NoError(t, err)
	assert.Equal(t, posture.CategoryDecodeError, result.Category)
	assert.Equal(t, 0, live.frames)
	assert.Equal(t, 0, pose.calls)
}

func TestAnalyzeEncodedFrame_DataURL(t *testing.T) {
	live := &fakeLiveClient{connected: true, result: uprightDetection()}
	svc := newService(t, &fakePoseClient{}, live)
	encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString(encodePNG(t, 100, 100))

	result, err := svc.AnalyzeEncodedFrame(encoded, posture.LangEnglish, "cam-7")

	require.NoError(t, err)
	assert.Equal(t, posture.CategoryExcellent, result.Category)
	assert.Equal(t, "cam-7", result.SessionID)
	assert.Equal(t, 1, live.frames)
}

func TestAnalyzeEncodedFrame_EmptyPayload(t *testing.T) {
	svc := newService(t, &fakePoseClient{}, nil)

	_, err := svc.AnalyzeEncodedFrame("", posture.LangEnglish, "")

	assert.ErrorIs(t, err, analysis.ErrNoImage)
}

func TestAnalyzeEncodedFrame_BadBase64IsDecodeErrorVerdict(t *testing.T) {
	pose := &fakePoseClient{}
	live := &fakeLiveClient{connected: true}
	svc := newService(t, pose, live)

	result, err := svc.AnalyzeEncodedFrame("%%% not base64 %%%", posture.LangEnglish, "")

	require.NoError(t, err)
	assert.Equal(t, posture.CategoryDecodeError, result.Category)
	assert.Equal(t, "frame.jpg", result.ImageInfo.Filename)
	assert.Equal(t, 0, live.frames)
	assert.Equal(t, 0, pose.calls)
}
