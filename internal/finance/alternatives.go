package finance

import (
	"context"
	"math"
	"strings"

	"github.com/ryanuber/go-glob"
)

// Alternative is one concrete substitute spending option.
type Alternative struct {
	Title         string  `json:"title"`
	ExpectedCost  float64 `json:"expectedCost"`
	SavingAmount  float64 `json:"savingAmount"`
	SavingPercent int     `json:"savingPercent"`
	Reason        string  `json:"reason"`
}

// Coffee rule constants.
const (
	coffeeThresholdKRW   = 5_000
	homeCoffeeCostKRW    = 1_500
	cheaperBrandCostKRW  = 3_000
	secondhandCostFactor = 0.5
)

// Keyword rules are glob patterns matched against the lowercased item name.
var (
	coffeePatterns   = []string{"*카페*", "*커피*", "*coffee*", "*cafe*", "*스타벅스*", "*이디야*", "*메가커피*"}
	shoppingPatterns = []string{"*쇼핑*", "*구매*", "*shopping*", "*아마존*", "*쿠팡*", "*다이소*"}
)

func matchesAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if glob.Glob(pattern, name) {
			return true
		}
	}
	return false
}

// RuleBasedGenerator produces alternatives from local keyword and category
// rules. It is the default AlternativeGenerator; the reserved external
// classification call sits behind the same interface and is explicitly not
// implemented.
type RuleBasedGenerator struct{}

// GenerateAlternatives applies the local rules in priority order. An empty
// result means "no alternatives available", not an error.
func (RuleBasedGenerator) GenerateAlternatives(_ context.Context, expense ExpenseItem) []Alternative {
	if alternatives := ruleBasedAlternatives(expense); len(alternatives) > 0 {
		return alternatives
	}

	// Reserved for an external generation call. Until that exists the
	// fallback is an empty list, which callers treat as "no alternatives".
	return nil
}

func savingPercent(saving, amount float64) int {
	if amount <= 0 {
		return 0
	}
	return int(math.Round(saving / amount * 100))
}

func ruleBasedAlternatives(expense ExpenseItem) []Alternative {
	amount := expense.amount()
	name := strings.ToLower(strings.TrimSpace(expense.Name))

	var results []Alternative

	// Coffee: only above the threshold, and only options that actually save
	// something. The two options collapse into one if their savings match.
	if amount >= coffeeThresholdKRW && matchesAny(coffeePatterns, name) {
		homeSaving := amount - homeCoffeeCostKRW
		brandSaving := amount - cheaperBrandCostKRW
		if homeSaving > 0 {
			results = append(results, Alternative{
				Title:         "집에서 커피 만들기",
				ExpectedCost:  homeCoffeeCostKRW,
				SavingAmount:  homeSaving,
				SavingPercent: savingPercent(homeSaving, amount),
				Reason:        "원두나 캡슐로 집에서 마시면 월 수만 원 절감 가능",
			})
		}
		if brandSaving > 0 && brandSaving != homeSaving {
			results = append(results, Alternative{
				Title:         "저렴한 브랜드로 변경",
				ExpectedCost:  cheaperBrandCostKRW,
				SavingAmount:  brandSaving,
				SavingPercent: savingPercent(brandSaving, amount),
				Reason:        "메가커피, 컴포즈 등 저렴한 브랜드 활용",
			})
		}
	}

	// Subscriptions can always be cancelled outright.
	if expense.Category == CategorySubscription && amount > 0 {
		results = append(results, Alternative{
			Title:         "미사용 구독 해지",
			ExpectedCost:  0,
			SavingAmount:  amount,
			SavingPercent: 100,
			Reason:        "실제 사용 여부를 점검하고 미사용 항목은 해지",
		})
	}

	// Shopping by keyword, or anything uncategorized.
	if amount > 0 && (matchesAny(shoppingPatterns, name) || expense.Category == CategoryOther) {
		results = append(results, Alternative{
			Title:         "구매 24시간 유예",
			ExpectedCost:  0,
			SavingAmount:  amount,
			SavingPercent: 100,
			Reason:        "충동 구매 방지. 24시간 후에도 필요하면 구매",
		})

		secondhandCost := math.Round(amount * secondhandCostFactor)
		if saving := amount - secondhandCost; saving > 0 {
			results = append(results, Alternative{
				Title:         "중고·리퍼 탐색",
				ExpectedCost:  secondhandCost,
				SavingAmount:  saving,
				SavingPercent: 50,
				Reason:        "중고 거래나 리퍼 상품으로 비용 절감",
			})
		}
	}

	return results
}
