package analysisService

import (
	"mime/multipart"

	"UWellGolang/internal/api/analysis"
	"UWellGolang/pkg/mediapipe"
	"UWellGolang/pkg/posture"
	"UWellGolang/pkg/utils"
	"golang.org/x/net/context"
)

type IAnalysisService interface {
	AnalyzeUpload(ctx context.Context, file *multipart.FileHeader, lang posture.Language, sessionID string) (*analysis.AnalysisResponse, error)
	AnalyzeFrame(frame []byte, lang posture.Language, sessionID string) (*analysis.AnalysisResponse, error)
	AnalyzeEncodedFrame(encoded string, lang posture.Language, sessionID string) (*analysis.AnalysisResponse, error)
}

type analysisService struct {
	pose     mediapipe.IClient
	live     mediapipe.ILiveClient
	analyzer posture.IAnalyzer
	utils    utils.IUtils
}

func NewAnalysisService(
	pose mediapipe.IClient,
	live mediapipe.ILiveClient,
	analyzer posture.IAnalyzer,
	utils utils.IUtils,
) IAnalysisService {
	return &analysisService{
		pose:     pose,
		live:     live,
		analyzer: analyzer,
		utils:    utils,
	}
}
