package finance

import "strings"

// Classification is the result of categorizing an expense from its raw text.
type Classification struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"` // 0-1
}

// classifyRule maps name keywords (glob patterns against lowercased text) to
// a category with a confidence. First match wins, so more specific rules
// come first.
type classifyRule struct {
	patterns   []string
	category   Category
	confidence float64
}

var classifyRules = []classifyRule{
	{[]string{"*대출*", "*loan*", "*mortgage*", "*카드값*", "*할부*"}, CategoryLoan, 0.92},
	{[]string{"*보험*", "*insurance*"}, CategoryInsurance, 0.9},
	{[]string{"*통신*", "*kt*", "*sk*", "*lg*", "*phone*", "*요금*"}, CategoryUtility, 0.88},
	{[]string{"*넷플릭스*", "*유튜브*", "*spotify*", "*구독*", "*subscription*"}, CategorySubscription, 0.9},
	{[]string{"*렌탈*", "*rental*", "*월세*", "*전세*", "*집*"}, CategoryHousing, 0.88},
	{[]string{"*병원*", "*약*", "*건강*", "*health*", "*치과*"}, CategoryInsurance, 0.85},
	{[]string{"*식비*", "*외식*", "*카페*", "*맛집*", "*food*", "*밥*", "*점심*", "*저녁*"}, CategoryOther, 0.85},
	{[]string{"*교통*", "*주유*", "*지하철*", "*버스*", "*택시*", "*transport*", "*car*"}, CategoryOther, 0.85},
	{[]string{"*학원*", "*교육*", "*education*", "*수업*"}, CategoryOther, 0.85},
	{[]string{"*영화*", "*게임*", "*entertainment*", "*취미*"}, CategoryOther, 0.82},
	{[]string{"*펫*", "*육아*", "*가족*", "*family*"}, CategoryOther, 0.8},
	{[]string{"*투자*", "*적금*", "*예금*", "*investment*"}, CategoryOther, 0.85},
}

// Classify categorizes an expense from raw text with a local keyword
// matcher. It stands in for the external classification boundary: the
// contract is identical (category plus confidence, tolerant of anything),
// so a networked classifier can replace it without touching callers.
func Classify(rawText string) Classification {
	text := strings.ToLower(strings.TrimSpace(rawText))
	if text == "" {
		return Classification{Category: CategoryOther, Confidence: 0.3}
	}

	for _, rule := range classifyRules {
		if matchesAny(rule.patterns, text) {
			return Classification{Category: rule.category, Confidence: rule.confidence}
		}
	}

	return Classification{Category: CategoryOther, Confidence: 0.5}
}
