// Package difficulty rates an encounter from its monsters' challenge ratings
// and its players' levels under either the SRD 5.1 or the SRD 5.2 rules.
// Every function here is pure.
package difficulty

import (
	"fmt"
	"math"
)

// RulesVersion selects the rule set used by Calculate.
type RulesVersion string

const (
	SRD51 RulesVersion = "srd51"
	SRD52 RulesVersion = "srd52"
)

// ParseRulesVersion validates s as a RulesVersion.
func ParseRulesVersion(s string) (RulesVersion, error) {
	switch RulesVersion(s) {
	case SRD51, SRD52:
		return RulesVersion(s), nil
	default:
		return "", fmt.Errorf("unknown rules version %q", s)
	}
}

// Rating is the difficulty label of an encounter. SRD 5.1 uses trivial, easy,
// medium, hard and deadly; SRD 5.2 uses trivial, low, moderate and high.
type Rating string

const (
	Trivial  Rating = "trivial"
	Easy     Rating = "easy"
	Medium   Rating = "medium"
	Hard     Rating = "hard"
	Deadly   Rating = "deadly"
	Low      Rating = "low"
	Moderate Rating = "moderate"
	High     Rating = "high"
)

// xpPerCR holds XP awards indexed by CR encoding.
var xpPerCR = [...]int{
	10, 25, 50, 100, 200, 450, 700, 1100, 1800, 2300, 2900, 3900, 5000, 5900, 7200, 8400, 10000,
	11500, 13000, 15000, 18000, 20000, 22000, 25000, 33000, 41000, 50000, 62000, 75000, 90000,
	105000, 120000, 135000, 155000,
}

// Thresholds51 are SRD 5.1 XP thresholds.
type Thresholds51 struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
	Deadly int `json:"deadly"`
}

// Thresholds52 are SRD 5.2 XP budgets.
type Thresholds52 struct {
	Low      int `json:"low"`
	Moderate int `json:"moderate"`
	High     int `json:"high"`
}

// srd51Thresholds is indexed by character level; index 0 is unused.
var srd51Thresholds = [...]Thresholds51{
	{},
	{25, 50, 75, 100},
	{50, 100, 150, 200},
	{75, 150, 225, 400},
	{125, 250, 375, 500},
	{250, 500, 750, 1100},
	{300, 600, 900, 1400},
	{350, 750, 1100, 1700},
	{450, 900, 1400, 2100},
	{550, 1100, 1600, 2400},
	{600, 1200, 1900, 2800},
	{800, 1600, 2400, 3600},
	{1000, 2000, 3000, 4500},
	{1100, 2200, 3400, 5100},
	{1250, 2500, 3800, 5700},
	{1400, 2800, 4300, 6400},
	{1600, 3200, 4800, 7200},
	{2000, 3900, 5900, 8800},
	{2100, 4200, 6300, 9500},
	{2400, 4900, 7300, 10900},
	{2800, 5700, 8500, 12700},
}

// srd52Budgets is the per-character budget indexed by level; index 0 is unused.
var srd52Budgets = [...]Thresholds52{
	{},
	{50, 75, 100},
	{100, 150, 200},
	{150, 225, 400},
	{250, 375, 500},
	{500, 750, 1100},
	{600, 1000, 1400},
	{750, 1300, 1700},
	{1000, 1700, 2100},
	{1300, 2000, 2600},
	{1600, 2300, 3100},
	{1900, 2900, 4100},
	{2200, 3700, 4700},
	{2600, 4200, 5400},
	{2900, 4900, 6200},
	{3300, 5400, 7800},
	{3800, 6100, 9800},
	{4500, 7200, 11700},
	{5000, 8700, 14200},
	{5500, 10700, 17200},
	{6400, 13200, 22000},
}

// XPForCR returns the XP award for a CR encoding. Encodings past the end of the
// table use its last entry; negative encodings use the first.
//
// Postcondition: XPForCR is non-decreasing in cr.
func XPForCR(cr int) int {
	return xpPerCR[clamp(cr, 0, len(xpPerCR)-1)]
}

// Multiplier returns the SRD 5.1 encounter multiplier for monsterCount monsters.
func Multiplier(monsterCount int) float64 {
	switch {
	case monsterCount <= 1:
		return 1.0
	case monsterCount == 2:
		return 1.5
	case monsterCount <= 6:
		return 2.0
	case monsterCount <= 10:
		return 2.5
	case monsterCount <= 14:
		return 3.0
	default:
		return 4.0
	}
}

// PartyThresholds51 sums each player's SRD 5.1 thresholds. Levels are clamped
// to [1, 20].
func PartyThresholds51(levels []int) Thresholds51 {
	var out Thresholds51
	for _, l := range levels {
		t := srd51Thresholds[clamp(l, 1, 20)]
		out.Easy += t.Easy
		out.Medium += t.Medium
		out.Hard += t.Hard
		out.Deadly += t.Deadly
	}
	return out
}

// PartyThresholds52 scales the SRD 5.2 per-character budget for the party's
// rounded average level by party size. An empty party has a zero budget.
func PartyThresholds52(levels []int) Thresholds52 {
	if len(levels) == 0 {
		return Thresholds52{}
	}
	sum := 0
	for _, l := range levels {
		sum += l
	}
	avg := int(math.Round(float64(sum) / float64(len(levels))))
	b := srd52Budgets[clamp(avg, 1, 20)]
	n := len(levels)
	return Thresholds52{Low: b.Low * n, Moderate: b.Moderate * n, High: b.High * n}
}

// Rate51 returns the hardest SRD 5.1 label whose threshold adjustedXP meets.
// Equality counts as meeting the threshold.
func Rate51(adjustedXP int, t Thresholds51) Rating {
	switch {
	case adjustedXP >= t.Deadly:
		return Deadly
	case adjustedXP >= t.Hard:
		return Hard
	case adjustedXP >= t.Medium:
		return Medium
	case adjustedXP >= t.Easy:
		return Easy
	default:
		return Trivial
	}
}

// Rate52 returns the hardest SRD 5.2 label whose budget totalXP meets.
func Rate52(totalXP int, t Thresholds52) Rating {
	switch {
	case totalXP >= t.High:
		return High
	case totalXP >= t.Moderate:
		return Moderate
	case totalXP >= t.Low:
		return Low
	default:
		return Trivial
	}
}

// Encounter is the derived difficulty of an encounter. Exactly one of
// Thresholds51 and Thresholds52 is set, matching RulesVersion.
type Encounter struct {
	RulesVersion RulesVersion  `json:"rulesVersion"`
	TotalXP      int           `json:"totalXp"`
	AdjustedXP   int           `json:"adjustedXp"`
	Thresholds51 *Thresholds51 `json:"thresholds51,omitempty"`
	Thresholds52 *Thresholds52 `json:"thresholds52,omitempty"`
	Rating       Rating        `json:"rating"`
	PlayerCount  int           `json:"playerCount"`
	MonsterCount int           `json:"monsterCount"`
	XPPerPlayer  int           `json:"xpPerPlayer"`
	AverageCR    float64       `json:"averageCr"`
}

// Calculate rates an encounter. Any rules version other than SRD52 is treated
// as SRD51. An encounter worth zero XP always rates trivial.
//
// Postcondition: Identical inputs produce identical outputs.
func Calculate(monsterCRs, playerLevels []int, rules RulesVersion) Encounter {
	total := 0
	crSum := 0
	for _, cr := range monsterCRs {
		total += XPForCR(cr)
		crSum += cr
	}

	out := Encounter{
		TotalXP:      total,
		PlayerCount:  len(playerLevels),
		MonsterCount: len(monsterCRs),
	}
	if out.PlayerCount > 0 {
		out.XPPerPlayer = total / out.PlayerCount
	}
	if out.MonsterCount > 0 {
		out.AverageCR = float64(crSum) / float64(out.MonsterCount)
	}

	if rules == SRD52 {
		t := PartyThresholds52(playerLevels)
		out.RulesVersion = SRD52
		out.AdjustedXP = total
		out.Thresholds52 = &t
		out.Rating = rate52(total, t)
		return out
	}

	t := PartyThresholds51(playerLevels)
	out.RulesVersion = SRD51
	out.AdjustedXP = int(math.Ceil(float64(total) * Multiplier(out.MonsterCount)))
	out.Thresholds51 = &t
	out.Rating = rate51(out.AdjustedXP, total, t)
	return out
}

// rate51 rates zero XP as trivial even against an empty party's zero thresholds.
func rate51(adjusted, total int, t Thresholds51) Rating {
	if total == 0 {
		return Trivial
	}
	return Rate51(adjusted, t)
}

func rate52(total int, t Thresholds52) Rating {
	if total == 0 {
		return Trivial
	}
	return Rate52(total, t)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
