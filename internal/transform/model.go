package transform

// Scores are the five analysis categories, nominally 1..10.
type Scores struct {
	Clarity          int `json:"clarity"`
	Impact           int `json:"impact"`
	Formatting       int `json:"formatting"`
	Relevance        int `json:"relevance"`
	ATSCompatibility int `json:"atsCompatibility"`
}

// Analysis is the structured result of Analyze.
type Analysis struct {
	Scores   Scores `json:"scores"`
	Feedback string `json:"feedback"`
}

// RewriteOptions tune Rewrite. OriginalFormat is advisory and only logged.
type RewriteOptions struct {
	PreserveFormat bool
	OriginalFormat string
}

const defaultScore = 5

const (
	fallbackRoast            = "Could not generate a roast. Please try again."
	fallbackAnalysis         = "Could not analyze the resume. Please try again."
	fallbackAnalysisFeedback = "Could not generate analysis feedback. Please try again."
	fallbackExtractFeedback  = "Could not extract feedback. Please try again."
	fallbackRewrite          = "Could not rewrite the resume. Please try again."
)

func defaultAnalysis(feedback string) Analysis {
	return Analysis{
		Scores: Scores{
			Clarity:          defaultScore,
			Impact:           defaultScore,
			Formatting:       defaultScore,
			Relevance:        defaultScore,
			ATSCompatibility: defaultScore,
		},
		Feedback: feedback,
	}
}
