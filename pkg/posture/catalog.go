package posture

type content struct {
	Summary         string
	Recommendations []Recommendation
	Notes           string
}

func lookupContent(cat Category, lang Language) content {
	table, ok := catalogs[lang]
	if !ok {
		table = catalogs[LangEnglish]
	}
	return table[cat]
}

var catalogs = map[Language]map[Category]content{
	LangEnglish: {
		CategoryExcellent: {
			Summary: "Excellent posture! 👏",
			Recommendations: []Recommendation{
				{Title: "Keep It Up", Detail: "Keep it up! 👍"},
				{Title: "Regular Breaks", Detail: "Take a break every 30 minutes."},
				{Title: "Hydration", Detail: "Stay hydrated."},
				{Title: "Deep Breathing", Detail: "Keep breathing deeply."},
			},
			Notes: "Your posture is fantastic. Keep maintaining it!",
		},
		CategoryMildSlouch: {
			Summary: "Mild slouch detected.",
			Recommendations: []Recommendation{
				{Title: "Back Straight", Detail: "Keep your back straight."},
				{Title: "Relax Shoulders", Detail: "Relax shoulders down."},
				{Title: "Feet Flat", Detail: "Feet flat on the floor."},
				{Title: "Screen Height", Detail: "Screen at eye level."},
			},
			Notes: "Maintain good posture.",
		},
		CategoryForwardHead: {
			Summary: "Slight forward head position.",
			Recommendations: []Recommendation{
				{Title: "Chin Tuck", Detail: "Tuck chin slightly."},
				{Title: "Head Back", Detail: "Pull head back."},
				{Title: "Screen Height", Detail: "Screen at eye level."},
				{Title: "Hourly Chin Tucks", Detail: "Do chin tucks every hour."},
			},
			Notes: "Pay attention to screen distance.",
		},
		CategoryNeckTension: {
			Summary: "Mild neck tension detected.",
			Recommendations: []Recommendation{
				{Title: "Relax Shoulders", Detail: "Relax shoulders down."},
				{Title: "Neck Stretch", Detail: "Gently stretch neck."},
				{Title: "Head Alignment", Detail: "Keep head aligned."},
				{Title: "Deep Breathing", Detail: "Take deep breaths."},
			},
			Notes: "Give your neck a break.",
		},
		CategoryNeedsImprovement: {
			Summary: "Slouch, forward head, and neck tension detected.",
			Recommendations: []Recommendation{
				{Title: "Sit Up Straight", Detail: "Sit up straight and roll shoulders back."},
				{Title: "Head Alignment", Detail: "Keep head aligned with spine, screen at eye level."},
				{Title: "Neck Stretch", Detail: "Gently stretch your neck."},
				{Title: "Regular Breaks", Detail: "Take breaks every 30 minutes."},
			},
			Notes: "Full body image and better lighting would improve analysis.",
		},
		CategoryNoPose: {
			Summary: "No pose detected.",
			Recommendations: []Recommendation{
				{Title: "Full Body Photo", Detail: "Try a clear, full-body photo showing a person."},
				{Title: "Lighting", Detail: "Use good lighting."},
				{Title: "Visibility", Detail: "Make sure face and body are both visible."},
			},
			Notes: "No person or pose found. Please try a better photo.",
		},
		CategoryLowConfidence: {
			Summary: "Low confidence in detection (face or shoulders not clear).",
			Recommendations: []Recommendation{
				{Title: "Clear View", Detail: "Make sure face and shoulders are clearly visible."},
				{Title: "Lighting", Detail: "Use good lighting."},
			},
			Notes: "Please retake the photo in better lighting.",
		},
		CategoryMissingLandmarks: {
			Summary: "Some key body points not found.",
			Recommendations: []Recommendation{
				{Title: "Full Body Photo", Detail: "Try a full-body photo with clear visibility."},
				{Title: "Camera Angle", Detail: "Use a different angle for better landmark detection."},
			},
			Notes: "Missing points: %s",
		},
		CategoryDecodeError: {
			Summary: "Could not decode image.",
			Recommendations: []Recommendation{
				{Title: "Image Format", Detail: "Use JPG/PNG format with clear image."},
				{Title: "File Size", Detail: "Keep file size under 5MB."},
			},
			Notes: "Image file damaged or wrong format.",
		},
		CategoryCalculationError: {
			Summary: "Pose calculation error.",
			Recommendations: []Recommendation{
				{Title: "Retake Photo", Detail: "Try a clearer photo."},
			},
			Notes: "Landmark data issue.",
		},
	},
	LangHindi: {
		CategoryExcellent: {
			Summary: "उत्तम मुद्रा! 👏",
			Recommendations: []Recommendation{
				{Title: "जारी रखें", Detail: "जारी रखें! 👍"},
				{Title: "नियमित ब्रेक", Detail: "हर 30 मिनट में ब्रेक लें।"},
				{Title: "हाइड्रेशन", Detail: "पानी पीते रहें।"},
				{Title: "गहरी सांस", Detail: "गहरी सांस लेते रहें।"},
			},
			Notes: "आपकी मुद्रा शानदार है। इसे बनाए रखें।",
		},
		CategoryMildSlouch: {
			Summary: "हल्का झुकाव दिख रहा है।",
			Recommendations: []Recommendation{
				{Title: "पीठ सीधी", Detail: "पीठ सीधी रखें।"},
				{Title: "कंधे रिलैक्स", Detail: "कंधे आराम से नीचे।"},
				{Title: "पैर समतल", Detail: "पैर फर्श पर समतल।"},
				{Title: "स्क्रीन स्तर", Detail: "स्क्रीन को आंखों के स्तर पर रखें।"},
			},
			Notes: "सीधी मुद्रा बनाए रखें।",
		},
		CategoryForwardHead: {
			Summary: "सिर थोड़ा आगे की ओर।",
			Recommendations: []Recommendation{
				{Title: "चिन टक", Detail: "चिन को हल्का सा अंदर करें।"},
				{Title: "सिर पीछे", Detail: "सिर को पीछे लाएं।"},
				{Title: "स्क्रीन स्तर", Detail: "स्क्रीन को आंखों के स्तर पर रखें।"},
				{Title: "हर घंटे चिन टक", Detail: "हर घंटे चिन टक एक्सरसाइज करें।"},
			},
			Notes: "स्क्रीन दूरी पर ध्यान दें।",
		},
		CategoryNeckTension: {
			Summary: "गर्दन में हल्का तनाव।",
			Recommendations: []Recommendation{
				{Title: "कंधे रिलैक्स", Detail: "कंधे आराम से नीचे रखें।"},
				{Title: "गर्दन स्ट्रेच", Detail: "गर्दन को धीरे-धीरे स्ट्रेच करें।"},
				{Title: "सिर सीधा", Detail: "सिर को सीधा रखें।"},
				{Title: "गहरी सांस", Detail: "गहरी सांस लें।"},
			},
			Notes: "गर्दन को आराम दें।",
		},
		CategoryNeedsImprovement: {
			Summary: "झुकाव, सिर आगे, और गर्दन में तनाव।",
			Recommendations: []Recommendation{
				{Title: "सीधे बैठें", Detail: "सीधे बैठें और कंधे पीछे करें।"},
				{Title: "सिर की स्थिति", Detail: "सिर को सीधा रखें, स्क्रीन आंखों के स्तर पर।"},
				{Title: "गर्दन स्ट्रेच", Detail: "गर्दन को धीरे-धीरे स्ट्रेच करें।"},
				{Title: "नियमित ब्रेक", Detail: "हर 30 मिनट में ब्रेक लें।"},
			},
			Notes: "पूर्ण बॉडी तस्वीर और बेहतर लाइटिंग से सटीक विश्लेषण।",
		},
		CategoryNoPose: {
			Summary: "पोज़ डिटेक्ट नहीं हुई।",
			Recommendations: []Recommendation{
				{Title: "पूरी बॉडी फोटो", Detail: "साफ़, पूरी बॉडी वाली तस्वीर लें जिसमें व्यक्ति दिखे।"},
				{Title: "लाइटिंग", Detail: "अच्छी लाइटिंग में फोटो लें।"},
				{Title: "विज़िबिलिटी", Detail: "फेस और बॉडी दोनों स्पष्ट दिखें।"},
			},
			Notes: "कोई व्यक्ति या पोज़ नहीं मिली। बेहतर तस्वीर आज़माएं।",
		},
		CategoryLowConfidence: {
			Summary: "डिटेक्शन का भरोसा कम है (चेहरा या कंधे स्पष्ट नहीं)।",
			Recommendations: []Recommendation{
				{Title: "स्पष्ट व्यू", Detail: "फेस और कंधे दोनों स्पष्ट दिखें।"},
				{Title: "लाइटिंग", Detail: "अच्छी लाइटिंग में फोटो लें।"},
			},
			Notes: "कृपया साफ़ तस्वीर भेजें।",
		},
		CategoryMissingLandmarks: {
			Summary: "कुछ मुख्य बॉडी पॉइंट्स नहीं मिले।",
			Recommendations: []Recommendation{
				{Title: "पूरी बॉडी फोटो", Detail: "पूरी बॉडी स्पष्ट दिखाने वाली तस्वीर लें।"},
				{Title: "कैमरा एंगल", Detail: "अधिक landmarks के लिए बेहतर कोण आज़माएं।"},
			},
			Notes: "मुख्य पॉइंट्स गायब: %s",
		},
		CategoryDecodeError: {
			Summary: "इमेज डिकोड नहीं हो सकी।",
			Recommendations: []Recommendation{
				{Title: "इमेज फॉर्मेट", Detail: "JPG/PNG फॉर्मेट में साफ़ तस्वीर लें।"},
				{Title: "फ़ाइल साइज़", Detail: "फ़ाइल साइज़ 5MB से कम रखें।"},
			},
			Notes: "इमेज फाइल डैमेज्ड या गलत फॉर्मेट।",
		},
		CategoryCalculationError: {
			Summary: "पोज़ कैलकुलेशन में त्रुटि।",
			Recommendations: []Recommendation{
				{Title: "फिर से फोटो लें", Detail: "साफ़ तस्वीर लें।"},
			},
			Notes: "लैंडमार्क डेटा में समस्या।",
		},
	},
}
