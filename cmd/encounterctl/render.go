package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/cory-johannsen/initiative/internal/game/condition"
	"github.com/cory-johannsen/initiative/internal/game/difficulty"
	"github.com/cory-johannsen/initiative/internal/game/encounter"
	"github.com/cory-johannsen/initiative/internal/game/gametime"
	"github.com/cory-johannsen/initiative/internal/gameserver/enginev1"
	"github.com/cory-johannsen/initiative/internal/preferences"
	"github.com/cory-johannsen/initiative/internal/view"
)

func renderGame(w io.Writer, gv *view.GameView, prefs preferences.Preferences) error {
	active, err := gv.ActiveParticipantID()
	if err != nil {
		return err
	}
	d := gv.Difficulty(prefs.RulesVersion)
	fmt.Fprintf(w, "Round %d  %s elapsed  %s (%s)\n", gv.Round(), gametime.FormatClock(gv.Round()), d.Rating, d.RulesVersion)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tNAME\tCR\tINIT\tHP\tAC\tACTIONS\tCONDITIONS")
	for _, pv := range gv.Participants() {
		marker := ""
		if pv.ID() == active {
			marker = ">"
		}
		cr := "-"
		if mv, ok := pv.(*view.MonsterView); ok {
			cr = encounter.CRString(mv.CR())
		}
		hp, ac, actions := participantColumns(pv)
		names := make([]string, 0, len(pv.Conditions()))
		for _, c := range pv.Conditions() {
			names = append(names, c.Name)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			marker, pv.ID(), pv.Name(), cr, pv.Initiative(), hp, ac, actions, strings.Join(names, ", "))
	}
	return tw.Flush()
}

// renderParticipant prints one participant in detail. Conditions are listed
// soonest-expiring first with the time each has left at round.
func renderParticipant(w io.Writer, pv view.ParticipantView, round int) {
	fmt.Fprintf(w, "%d  %s (%s)  init %d\n", pv.ID(), pv.Name(), pv.Kind(), pv.Initiative())
	switch v := pv.(type) {
	case *view.MonsterView:
		fmt.Fprintf(w, "CR %s (%g, %d XP)  AC %d  HP %d/%d\n",
			encounter.CRString(v.CR()), encounter.CRValue(v.CR()), difficulty.XPForCR(v.CR()), v.AC(), v.HP(), v.MaxHP())
		fmt.Fprintln(w, abilities(v.Stats()))
		if v.Notes() != "" {
			fmt.Fprintln(w, v.Notes())
		}
	case *view.PlayerView:
		fmt.Fprintf(w, "level %d  AC %d\n", v.TotalLevel(), v.AC())
		fmt.Fprintln(w, abilities(v.Stats()))
		if v.Notes() != "" {
			fmt.Fprintln(w, v.Notes())
		}
	case *view.LairView:
		if v.Notes() != "" {
			fmt.Fprintln(w, v.Notes())
		}
	}

	conds := slices.Clone(pv.Conditions())
	slices.SortStableFunc(conds, func(a, b condition.Condition) int {
		return condition.CompareExpiry(a.Expiry, b.Expiry)
	})
	for _, c := range conds {
		fmt.Fprintf(w, "  %s  %s\n", c.Name, expiresIn(c, round))
	}
}

func abilities(s encounter.Stats) string {
	scores := []struct {
		name  string
		score int
	}{{"STR", s.Str}, {"DEX", s.Dex}, {"CON", s.Con}, {"INT", s.Int}, {"WIS", s.Wis}, {"CHA", s.Cha}}
	parts := make([]string, len(scores))
	for i, sc := range scores {
		parts[i] = fmt.Sprintf("%s %d (%s)", sc.name, sc.score, encounter.ModifierString(sc.score))
	}
	return strings.Join(parts, "  ")
}

func expiresIn(c condition.Condition, round int) string {
	switch c.Expiry.Type {
	case condition.ExpiryNextTurnEnd:
		return "until end of next turn"
	case condition.ExpiryNextTurnStart:
		return "until start of next turn"
	case condition.ExpiryDuration:
		left := max(0, c.Expiry.Rounds-(round-c.StartTime.Round))
		return gametime.FormatDuration(left) + " left"
	default:
		return "until removed"
	}
}

func participantColumns(pv view.ParticipantView) (hp, ac, actions string) {
	switch v := pv.(type) {
	case *view.MonsterView:
		hp = fmt.Sprintf("%d/%d", v.HP(), v.MaxHP())
		if v.TempHP() > 0 {
			hp += fmt.Sprintf(" (+%d)", v.TempHP())
		}
		actions = economy(v.Action(), v.Reaction(), v.BonusAction())
		if legendary := v.LegendaryActions(); len(legendary) > 0 {
			remaining := 0
			for _, ok := range legendary {
				if ok {
					remaining++
				}
			}
			actions += fmt.Sprintf(" L%d/%d", remaining, len(legendary))
		}
		return hp, fmt.Sprint(v.AC()), actions
	case *view.PlayerView:
		return "-", fmt.Sprint(v.AC()), economy(v.Action(), v.Reaction(), v.BonusAction())
	case *view.LairView:
		return "-", "-", string(slot(v.Action(), 'A'))
	}
	return "-", "-", ""
}

// economy renders available slots as letters and spent ones as dots.
func economy(action, reaction, bonus bool) string {
	return string([]byte{slot(action, 'A'), slot(reaction, 'R'), slot(bonus, 'B')})
}

func slot(available bool, letter byte) byte {
	if available {
		return letter
	}
	return '.'
}

// formatRoll renders "4d6kh3 → [6 (2) 5 4] = 15" with dropped dice in parentheses.
func formatRoll(expr string, r *enginev1.RollResponse) string {
	dice := make([]string, len(r.Dice))
	for i, d := range r.Dice {
		if d.Keep {
			dice[i] = fmt.Sprint(d.Result)
		} else {
			dice[i] = fmt.Sprintf("(%d)", d.Result)
		}
	}
	return fmt.Sprintf("%s → [%s] = %d", expr, strings.Join(dice, " "), r.Value)
}

func renderHistory(w io.Writer, items []view.HistoryItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no rolls")
		return
	}
	for i, item := range items {
		if item.Roll != nil {
			fmt.Fprintf(w, "%3d  %s\n", i+1, formatRoll(item.Expression, item.Roll))
		} else {
			fmt.Fprintf(w, "%3d  %s → error: %s\n", i+1, item.Expression, item.Error)
		}
	}
}

func renderDifficulty(w io.Writer, d difficulty.Encounter) {
	fmt.Fprintf(w, "rules:     %s\n", d.RulesVersion)
	fmt.Fprintf(w, "monsters:  %d (average CR %.2f)\n", d.MonsterCount, d.AverageCR)
	fmt.Fprintf(w, "players:   %d\n", d.PlayerCount)
	fmt.Fprintf(w, "total XP:  %d\n", d.TotalXP)
	if d.RulesVersion == difficulty.SRD51 {
		fmt.Fprintf(w, "adjusted:  %d\n", d.AdjustedXP)
	}
	fmt.Fprintf(w, "per player: %d\n", d.XPPerPlayer)
	fmt.Fprintf(w, "rating:    %s\n", d.Rating)
	if t := d.Thresholds51; t != nil {
		fmt.Fprintf(w, "thresholds: easy %d  medium %d  hard %d  deadly %d\n", t.Easy, t.Medium, t.Hard, t.Deadly)
	}
	if t := d.Thresholds52; t != nil {
		fmt.Fprintf(w, "thresholds: low %d  moderate %d  high %d\n", t.Low, t.Moderate, t.High)
	}
}

func renderPrefs(w io.Writer, p preferences.Preferences) {
	fmt.Fprintf(w, "theme=%s\nmode=%s\nfont_size=%s\nfont_style=%s\nmonster_hp=%s\nrules_version=%s\n",
		p.Theme, p.Mode, p.FontSize, p.FontStyle, p.MonsterHP, p.RulesVersion)
	fmt.Fprintf(w, "classes: %s\n", strings.Join(p.BodyClasses(), " "))
}
