package encounter

import "fmt"

// Stats is a block of the six ability scores.
type Stats struct {
	Str int `json:"str" yaml:"str"`
	Dex int `json:"dex" yaml:"dex"`
	Con int `json:"con" yaml:"con"`
	Int int `json:"int" yaml:"int"`
	Wis int `json:"wis" yaml:"wis"`
	Cha int `json:"cha" yaml:"cha"`
}

// Modifier returns the ability modifier for score: floor((score - 10) / 2).
func Modifier(score int) int {
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

// ModifierString renders Modifier(score) with an explicit sign, e.g. "+2" or "-1".
func ModifierString(score int) string {
	return fmt.Sprintf("%+d", Modifier(score))
}

// Class is one class a player has levels in.
type Class struct {
	Name  string `json:"class" yaml:"class"`
	Level int    `json:"level" yaml:"level"`
}

// CRValue returns the challenge rating an encoding stands for:
// 0 → 0, 1 → 1/8, 2 → 1/4, 3 → 1/2, n ≥ 4 → n-3.
func CRValue(encoding int) float64 {
	switch encoding {
	case 0:
		return 0
	case 1:
		return 0.125
	case 2:
		return 0.25
	case 3:
		return 0.5
	default:
		return float64(encoding - 3)
	}
}

// CRString renders a CR encoding for display, using vulgar fractions below 1.
func CRString(encoding int) string {
	switch encoding {
	case 0:
		return "0"
	case 1:
		return "⅛"
	case 2:
		return "¼"
	case 3:
		return "½"
	default:
		return fmt.Sprintf("%d", encoding-3)
	}
}
