package analysisService

import (
	"errors"
	"math"
	"mime/multipart"
	"net/http"
	"time"

	"UWellGolang/internal/api/analysis"
	"UWellGolang/internal/entity"
	"UWellGolang/pkg/mediapipe"
	"UWellGolang/pkg/posture"
	"UWellGolang/pkg/response"
	"golang.org/x/net/context"
)

const maxUploadBytes = 5 * 1024 * 1024

const liveFrameFilename = "frame.jpg"

func (s *analysisService) AnalyzeUpload(ctx context.Context, file *multipart.FileHeader, lang posture.Language, sessionID string) (*analysis.AnalysisResponse, error) {
	started := time.Now()

	image, err := s.validateUpload(file)
	if err != nil {
		return nil, err
	}

	verdict, err := s.uploadVerdict(ctx, image, lang)
	if err != nil {
		return nil, err
	}

	return envelope(verdict, image, sessionID, started), nil
}

func (s *analysisService) AnalyzeFrame(frame []byte, lang posture.Language, sessionID string) (*analysis.AnalysisResponse, error) {
	return s.frameResponse(frame, lang, sessionID, time.Now())
}

// AnalyzeEncodedFrame unwraps a base64 text frame from the live socket. A
// payload that does not decode as base64 is answered with the decode_error
// verdict rather than an error, matching an image body that will not decode.
func (s *analysisService) AnalyzeEncodedFrame(encoded string, lang posture.Language, sessionID string) (*analysis.AnalysisResponse, error) {
	started := time.Now()

	if encoded == "" {
		return nil, analysis.ErrNoImage
	}

	frame, err := s.utils.DecodeBase64Image(encoded)
	if err != nil {
		image := &entity.UploadedImage{
			Filename:    liveFrameFilename,
			ContentType: "image/jpeg",
		}
		return envelope(s.analyzer.DecodeError(lang), image, sessionID, started), nil
	}

	return s.frameResponse(frame, lang, sessionID, started)
}

func (s *analysisService) frameResponse(frame []byte, lang posture.Language, sessionID string, started time.Time) (*analysis.AnalysisResponse, error) {
	if len(frame) == 0 {
		return nil, analysis.ErrNoImage
	}

	if len(frame) > maxUploadBytes {
		return nil, response.NewErrorWithData(http.StatusBadRequest, "image file too large", map[string]interface{}{
			"file_size": len(frame),
		})
	}

	image := &entity.UploadedImage{
		Filename:    liveFrameFilename,
		SizeBytes:   int64(len(frame)),
		ContentType: "image/jpeg",
		Data:        frame,
	}

	if width, height, err := s.utils.DecodeImageBounds(frame); err == nil {
		image.Width = width
		image.Height = height
	} else {
		return envelope(s.analyzer.DecodeError(lang), image, sessionID, started), nil
	}

	detection, err := s.detectFrame(frame)
	if err != nil {
		return nil, detectorError(err)
	}

	return envelope(s.verdictFromDetection(detection, image, lang), image, sessionID, started), nil
}

// validateUpload applies the upload gate in a fixed order: presence, declared
// content type, emptiness, then the 5MB cap on the actual bytes read.
func (s *analysisService) validateUpload(file *multipart.FileHeader) (*entity.UploadedImage, error) {
	if file == nil {
		return nil, analysis.ErrNoImage
	}

	contentType := file.Header.Get("Content-Type")
	if !s.utils.IsAllowedImageType(contentType) {
		return nil, response.NewErrorWithData(http.StatusBadRequest, "invalid file type", map[string]interface{}{
			"received_type": contentType,
		})
	}

	data, err := s.utils.ReadMultipartFile(file)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, analysis.ErrEmptyFile
	}

	if len(data) > maxUploadBytes {
		return nil, response.NewErrorWithData(http.StatusBadRequest, "image file too large", map[string]interface{}{
			"file_size": len(data),
		})
	}

	return &entity.UploadedImage{
		Filename:    file.Filename,
		SizeBytes:   int64(len(data)),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func (s *analysisService) uploadVerdict(ctx context.Context, image *entity.UploadedImage, lang posture.Language) (*posture.Verdict, error) {
	width, height, err := s.utils.DecodeImageBounds(image.Data)
	if err != nil {
		return s.analyzer.DecodeError(lang), nil
	}
	image.Width = width
	image.Height = height

	detection, err := s.pose.DetectPose(ctx, image.Data, image.Filename)
	if err != nil {
		return nil, detectorError(err)
	}

	return s.verdictFromDetection(detection, image, lang), nil
}

func (s *analysisService) verdictFromDetection(detection *mediapipe.DetectionResult, image *entity.UploadedImage, lang posture.Language) *posture.Verdict {
	if !detection.Found {
		return s.analyzer.NoPose(lang)
	}

	set := denormalizeLandmarks(detection.Landmarks, image.Width, image.Height)

	if missing := posture.MissingRequired(set); len(missing) > 0 {
		return s.analyzer.MissingLandmarks(lang, missing)
	}
	if lowVisibility(set) {
		return s.analyzer.LowConfidence(lang)
	}

	return s.analyzer.Evaluate(posture.Input{
		Landmarks:     set,
		Language:      lang,
		LandmarkCount: detection.LandmarkCount,
		ImageWidth:    image.Width,
		ImageHeight:   image.Height,
	})
}

// detectFrame prefers the persistent socket to the detector and falls back
// to a plain HTTP detection when the socket is down or mid-reconnect.
func (s *analysisService) detectFrame(frame []byte) (*mediapipe.DetectionResult, error) {
	if s.live != nil && s.live.IsConnected() {
		if result, err := s.live.ProcessPoseFrame(frame); err == nil {
			return result, nil
		}
	}
	return s.pose.DetectPose(context.Background(), frame, liveFrameFilename)
}

func detectorError(err error) error {
	if errors.Is(err, mediapipe.ErrBadResponse) {
		return analysis.ErrInvalidAnalysis
	}
	return analysis.ErrAnalyzerUnavailable
}

func envelope(verdict *posture.Verdict, image *entity.UploadedImage, sessionID string, started time.Time) *analysis.AnalysisResponse {
	resp := &analysis.AnalysisResponse{
		Type:           analysis.TypeAnalysis,
		Verdict:        *verdict,
		Timestamp:      time.Now().Format(analysis.TimestampLayout),
		SessionID:      sessionID,
		ProcessingTime: math.Round(time.Since(started).Seconds()*100) / 100,
		APIVersion:     analysis.APIVersion,
	}

	if image != nil {
		resp.ImageInfo = &analysis.ImageInfo{
			Filename:    image.Filename,
			SizeBytes:   image.SizeBytes,
			ContentType: image.ContentType,
		}
	}

	return resp
}
