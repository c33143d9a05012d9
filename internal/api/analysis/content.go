package analysis

import (
	"fmt"
	"time"

	"UWellGolang/pkg/posture"
)

const TimestampLayout = "2006-01-02 15:04:05"

const (
	CodeNoImage             = "NO_IMAGE"
	CodeInvalidFileType     = "INVALID_FILE_TYPE"
	CodeEmptyFile           = "EMPTY_FILE"
	CodeFileTooLarge        = "FILE_TOO_LARGE"
	CodeAnalyzerUnavailable = "ANALYZER_UNAVAILABLE"
	CodeInvalidAnalysis     = "INVALID_ANALYSIS"
	CodeAnalysisFailed      = "ANALYSIS_FAILED"
	CodeRequestTimeout      = "REQUEST_TIMEOUT"
	CodeValidationError     = "VALIDATION_ERROR"
)

type errorBody struct {
	Summary         string
	Recommendations []posture.Recommendation
	Notes           string
}

// errorCatalog holds the pre-authored user-facing strings per error code and
// language. INVALID_FILE_TYPE and FILE_TOO_LARGE keep a notes template that
// NewErrorResponse fills from the debug values.
var errorCatalog = map[string]map[posture.Language]errorBody{
	CodeNoImage: {
		posture.LangEnglish: {
			Summary: "No image file provided",
			Recommendations: []posture.Recommendation{
				{Title: "Upload Image", Detail: "Please upload a JPG/PNG image"},
			},
			Notes: "Image file is required",
		},
		posture.LangHindi: {
			Summary: "कोई इमेज फाइल नहीं मिली",
			Recommendations: []posture.Recommendation{
				{Title: "इमेज अपलोड करें", Detail: "कृपया JPG/PNG इमेज अपलोड करें"},
			},
			Notes: "इमेज फाइल आवश्यक है",
		},
	},
	CodeInvalidFileType: {
		posture.LangEnglish: {
			Summary: "Invalid file type",
			Recommendations: []posture.Recommendation{
				{Title: "File Format", Detail: "Only JPG/PNG files are accepted"},
			},
			Notes: "Received file: %v",
		},
		posture.LangHindi: {
			Summary: "गलत फाइल टाइप",
			Recommendations: []posture.Recommendation{
				{Title: "फाइल फॉर्मेट", Detail: "केवल JPG/PNG फाइलें स्वीकार्य हैं"},
			},
			Notes: "प्राप्त फाइल: %v",
		},
	},
	CodeEmptyFile: {
		posture.LangEnglish: {
			Summary: "Empty image file",
			Recommendations: []posture.Recommendation{
				{Title: "Select File", Detail: "Select a valid image file"},
			},
			Notes: "File is empty",
		},
		posture.LangHindi: {
			Summary: "खाली इमेज फाइल",
			Recommendations: []posture.Recommendation{
				{Title: "फाइल चुनें", Detail: "सही इमेज फाइल चुनें"},
			},
			Notes: "फाइल खाली है",
		},
	},
	CodeFileTooLarge: {
		posture.LangEnglish: {
			Summary: "Image file too large",
			Recommendations: []posture.Recommendation{
				{Title: "File Size", Detail: "Use image smaller than 5MB"},
			},
			Notes: "File size: %v bytes (max 5MB)",
		},
		posture.LangHindi: {
			Summary: "इमेज बहुत बड़ी है",
			Recommendations: []posture.Recommendation{
				{Title: "फाइल साइज़", Detail: "5MB से छोटी इमेज का उपयोग करें"},
			},
			Notes: "फाइल साइज़: %v bytes (अधिकतम 5MB)",
		},
	},
	CodeAnalyzerUnavailable: {
		posture.LangEnglish: {
			Summary: "Analysis module unavailable",
			Recommendations: []posture.Recommendation{
				{Title: "Server", Detail: "Restart the server"},
			},
			Notes: "Pose detection service unreachable",
		},
		posture.LangHindi: {
			Summary: "विश्लेषण मॉड्यूल अनुपलब्ध",
			Recommendations: []posture.Recommendation{
				{Title: "सर्वर", Detail: "सर्वर को रीस्टार्ट करें"},
			},
			Notes: "Pose detection service unreachable",
		},
	},
	CodeInvalidAnalysis: {
		posture.LangEnglish: {
			Summary: "Invalid analysis result",
			Recommendations: []posture.Recommendation{
				{Title: "Try Again", Detail: "Please try again"},
			},
			Notes: "Analysis function returned invalid data",
		},
		posture.LangHindi: {
			Summary: "विश्लेषण परिणाम अमान्य",
			Recommendations: []posture.Recommendation{
				{Title: "फिर से कोशिश करें", Detail: "फिर से कोशिश करें"},
			},
			Notes: "Analysis function returned invalid data",
		},
	},
	CodeAnalysisFailed: {
		posture.LangEnglish: {
			Summary: "Analysis failed - technical issue",
			Recommendations: []posture.Recommendation{
				{Title: "Retake Photo", Detail: "Try a clearer photo"},
				{Title: "Lighting", Detail: "Use good lighting"},
				{Title: "Try Again", Detail: "Please try again"},
			},
			Notes: "Unexpected error while analyzing the image",
		},
		posture.LangHindi: {
			Summary: "विश्लेषण विफल - तकनीकी समस्या",
			Recommendations: []posture.Recommendation{
				{Title: "फोटो दोबारा लें", Detail: "साफ़ तस्वीर लें"},
				{Title: "लाइटिंग", Detail: "अच्छी लाइटिंग का उपयोग करें"},
				{Title: "फिर से कोशिश करें", Detail: "फिर से कोशिश करें"},
			},
			Notes: "इमेज विश्लेषण में अनपेक्षित त्रुटि",
		},
	},
	CodeRequestTimeout: {
		posture.LangEnglish: {
			Summary: "Request timed out",
			Recommendations: []posture.Recommendation{
				{Title: "Try Again", Detail: "Please try again in a moment"},
			},
			Notes: "The analysis took too long",
		},
		posture.LangHindi: {
			Summary: "अनुरोध का समय समाप्त",
			Recommendations: []posture.Recommendation{
				{Title: "फिर से कोशिश करें", Detail: "कृपया थोड़ी देर बाद फिर से कोशिश करें"},
			},
			Notes: "विश्लेषण में बहुत समय लगा",
		},
	},
	CodeValidationError: {
		posture.LangEnglish: {
			Summary: "Invalid request parameters",
			Recommendations: []posture.Recommendation{
				{Title: "Check Input", Detail: "Review the form fields and try again"},
			},
			Notes: "One or more fields failed validation",
		},
		posture.LangHindi: {
			Summary: "अमान्य अनुरोध पैरामीटर",
			Recommendations: []posture.Recommendation{
				{Title: "इनपुट जांचें", Detail: "फॉर्म फील्ड जांचें और फिर से कोशिश करें"},
			},
			Notes: "एक या अधिक फील्ड मान्य नहीं हैं",
		},
	},
}

// NewErrorResponse assembles the error envelope for a code in the requested
// language, falling back to English for unknown codes or languages. The
// debug map is passed through as debug_info and also feeds the notes
// templates of the file validation errors.
func NewErrorResponse(code string, lang posture.Language, debug map[string]interface{}) ErrorResponse {
	perLang, ok := errorCatalog[code]
	if !ok {
		perLang = errorCatalog[CodeAnalysisFailed]
		code = CodeAnalysisFailed
	}

	body, ok := perLang[lang]
	if !ok {
		body = perLang[posture.LangEnglish]
	}

	notes := body.Notes
	switch code {
	case CodeInvalidFileType:
		notes = fmt.Sprintf(body.Notes, debug["received_type"])
	case CodeFileTooLarge:
		notes = fmt.Sprintf(body.Notes, debug["file_size"])
	}

	return ErrorResponse{
		Type:            TypeError,
		ErrorCode:       code,
		Timestamp:       time.Now().Format(TimestampLayout),
		Summary:         body.Summary,
		Recommendations: body.Recommendations,
		Notes:           notes,
		DebugInfo:       debug,
	}
}
