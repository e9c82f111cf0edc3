package finance

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Canned recommendation ids. Item-based recommendations use the
// "expense-item-<id>" form, see ItemActionID.
const (
	ActionExpenseAudit = "expense-audit"
	ActionBufferBuild  = "buffer-build"
	ActionVariableTrim = "variable-trim"
)

const itemActionPrefix = "expense-item-"

// ItemActionID builds the recommendation id for an expense item.
func ItemActionID(itemID string) string {
	return itemActionPrefix + itemID
}

// Recommendation is one concrete, user-facing action.
type Recommendation struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Reason     string   `json:"reason"`
	ImpactText string   `json:"impactText"`
	Checklist  []string `json:"checklist"`
}

var cannedRecommendations = map[string]Recommendation{
	ActionExpenseAudit: {
		Title:      "고정비 점검",
		Reason:     "고정비가 수입 대비 60% 이상입니다.",
		ImpactText: "고정비를 10% 줄이면 유지 가능 기간이 약 1~2개월 늘어날 수 있습니다.",
		Checklist: []string{
			"구독·멤버십 중 미사용 항목 정리",
			"보험·대출 납부 조건 재검토",
			"통신비·공과금 요금제 점검",
			"월 단위로 지출 내역 확인",
		},
	},
	ActionBufferBuild: {
		Title:      "비상금 확보",
		Reason:     "비상금이 고정비 3개월분 미만입니다.",
		ImpactText: "비상금 50만원 추가 시 유지 가능 기간이 약 1.5개월 늘어납니다.",
		Checklist: []string{
			"월 저축 가능액 설정",
			"자동 이체로 비상금 계좌 분리",
			"3개월 목표액 도달 시 다음 목표 설정",
			"비상금은 예·적금 위주로 보관",
		},
	},
	ActionVariableTrim: {
		Title:      "변동비 다듬기",
		Reason:     "기초가 갖춰진 상태입니다. 변동비를 조정해 보세요.",
		ImpactText: "변동비 10% 절감 시 월 약 10~30만원 여유가 생길 수 있습니다.",
		Checklist: []string{
			"외식·카페 지출 주간 한도 설정",
			"필요 구매 전 24시간 대기",
			"할인·쿠폰 활용 습관화",
			"변동비 항목 월별 기록",
		},
	},
}

var checklistsByCategory = map[Category][]string{
	CategoryHousing: {
		"월세/관리비 협의 가능성 검토",
		"전세 전환 또는 보증금 조정 검토",
		"복비·단열 등 에너지 절감",
		"계약 갱신 시 조건 재협상",
	},
	CategoryInsurance: {
		"중복 보험 정리",
		"필요 보장 vs 현재 가입 비교",
		"연간 납입 방식 검토",
		"갱신 시 보험료 조정 가능성",
	},
	CategoryLoan: {
		"대출 통합·상환 구조 검토",
		"금리 인하 상품 비교",
		"불필요 대출 조기 상환",
		"원리금 상환 vs 거치형 비교",
	},
	CategorySubscription: {
		"미사용 구독 해지",
		"연간 결제 할인 검토",
		"가족 공유 플랜 검토",
		"필요한 것만 남기기",
	},
	CategoryUtility: {
		"통신 요금제 변경 검토",
		"공과금 자동이체 할인",
		"에너지 사용 패턴 점검",
		"요금제 비교",
	},
	CategoryOther: {
		"월 지출 내역 확인",
		"필수 vs 선택 구분",
		"대체 가능한 항목 검색",
		"협상·할인 가능성 검토",
	},
}

// cannedRecommendation returns the canned recommendation with its id set.
func cannedRecommendation(id string) Recommendation {
	r := cannedRecommendations[id]
	r.ID = id
	return r
}

type scoredItem struct {
	item   ExpenseItem
	impact ImpactResult
}

// rankItems filters out zero-amount items and sorts the rest by impact
// score, descending. The sort is stable: ties keep original list order,
// which is observable in recommendation selection.
func rankItems(structure Structure, fixedItems, variableItems []ExpenseItem) []scoredItem {
	scored := make([]scoredItem, 0, len(fixedItems)+len(variableItems))
	for _, item := range append(slices.Clone(fixedItems), variableItems...) {
		if item.AmountKRW <= 0 {
			continue
		}
		scored = append(scored, scoredItem{item: item, impact: CalculateImpact(item, structure)})
	}

	slices.SortStableFunc(scored, func(a, b scoredItem) int {
		switch {
		case a.impact.ImpactScore > b.impact.ImpactScore:
			return -1
		case a.impact.ImpactScore < b.impact.ImpactScore:
			return 1
		}
		return 0
	})

	return scored
}

// buildItemRecommendation renders the user-facing recommendation for one
// ranked item.
func buildItemRecommendation(item ExpenseItem, impact ImpactResult) Recommendation {
	rangeStr := formatManwonRange(impact.EstimatedMonthlyReductionRange.Min, impact.EstimatedMonthlyReductionRange.Max)

	checklist, ok := checklistsByCategory[item.Category]
	if !ok {
		checklist = checklistsByCategory[CategoryOther]
	}

	displayName := strings.TrimSpace(item.Name)
	if displayName == "" {
		displayName = "해당 항목"
	}

	return Recommendation{
		ID:         ItemActionID(item.ID),
		Title:      fmt.Sprintf("%s 조정", displayName),
		Reason:     fmt.Sprintf("%s 항목을 검토하면 월 약 %s 절감 여지가 있습니다.", displayName, rangeStr),
		ImpactText: fmt.Sprintf("예상 절감: %s", rangeStr),
		Checklist:  checklist,
	}
}

// fallbackRecommendation picks one of the three canned recommendations from
// the structure alone: expense ratio >= 60% asks for a fixed-cost audit, a
// runway under three months asks for buffer building, everything else trims
// variable spending.
func fallbackRecommendation(structure Structure) Recommendation {
	s := Normalize(structure)

	income := s.LowestIncome
	if income <= 0 {
		income = 1
	}
	expenseRatio := s.FixedExpenses / income

	runwayMonths := 999.0
	if s.FixedExpenses > 0 {
		runwayMonths = s.EmergencyFund / s.FixedExpenses
	}

	switch {
	case expenseRatio >= 0.6:
		return cannedRecommendation(ActionExpenseAudit)
	case runwayMonths < minSafeRunwayMonths:
		return cannedRecommendation(ActionBufferBuild)
	}
	return cannedRecommendation(ActionVariableTrim)
}

// MonthlyRecommendation returns the single highest-impact recommendation for
// a cycle. Expense items are ranked by impact when any carry an amount;
// otherwise, or when even the top item has no impact, the structural
// fallback rules apply.
func MonthlyRecommendation(structure Structure, fixedItems, variableItems []ExpenseItem) Recommendation {
	scored := rankItems(structure, fixedItems, variableItems)
	if len(scored) == 0 {
		return fallbackRecommendation(structure)
	}

	top := scored[0]
	if top.impact.ImpactScore <= 0 {
		return fallbackRecommendation(structure)
	}

	return buildItemRecommendation(top.item, top.impact)
}

// RecommendationContext carries everything needed to resolve item-based
// recommendation ids.
type RecommendationContext struct {
	Structure     Structure
	FixedItems    []ExpenseItem
	VariableItems []ExpenseItem
}

// RecommendationByID resolves a recommendation id. Unknown or unresolvable
// ids fall back to the variable-trim recommendation rather than failing.
func RecommendationByID(id string, context *RecommendationContext) Recommendation {
	if _, ok := cannedRecommendations[id]; ok {
		return cannedRecommendation(id)
	}

	if itemID, ok := strings.CutPrefix(id, itemActionPrefix); ok && context != nil {
		items := append(slices.Clone(context.FixedItems), context.VariableItems...)
		for _, item := range items {
			if item.ID == itemID {
				return buildItemRecommendation(item, CalculateImpact(item, context.Structure))
			}
		}
	}

	return cannedRecommendation(ActionVariableTrim)
}

// AlternativeActionID returns the next-best distinct recommendation id for
// the "switch strategy" flow. Canned ids cycle expense-audit → buffer-build
// → variable-trim → expense-audit; item ids advance to the next item in the
// impact ranking, wrapping to the top, with variable-trim as the final
// fallback. One active recommendation per cycle, never stacked.
func AlternativeActionID(currentID string, context *RecommendationContext) string {
	if context == nil {
		switch currentID {
		case ActionExpenseAudit:
			return ActionBufferBuild
		case ActionBufferBuild:
			return ActionVariableTrim
		case ActionVariableTrim:
			return ActionExpenseAudit
		}
		return ActionVariableTrim
	}

	scored := rankItems(context.Structure, context.FixedItems, context.VariableItems)
	if len(scored) == 0 {
		return ActionVariableTrim
	}

	if itemID, ok := strings.CutPrefix(currentID, itemActionPrefix); ok {
		idx := slices.IndexFunc(scored, func(s scoredItem) bool { return s.item.ID == itemID })
		if idx >= 0 && idx+1 < len(scored) {
			return ItemActionID(scored[idx+1].item.ID)
		}
		if idx > 0 {
			return ItemActionID(scored[0].item.ID)
		}
		return ActionVariableTrim
	}

	if top := scored[0]; top.impact.ImpactScore > 0 {
		return ItemActionID(top.item.ID)
	}

	return ActionVariableTrim
}
