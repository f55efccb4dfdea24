package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/initiative/internal/game/condition"
	"github.com/cory-johannsen/initiative/internal/game/difficulty"
	"github.com/cory-johannsen/initiative/internal/game/encounter"
	"github.com/cory-johannsen/initiative/internal/game/gametime"
	"github.com/cory-johannsen/initiative/internal/gameserver/enginev1"
	"github.com/cory-johannsen/initiative/internal/preferences"
	"github.com/cory-johannsen/initiative/internal/view"
)

var stdout io.Writer = os.Stdout

func runNew(ctx context.Context, a *app, _ []string) error {
	if err := a.client.NewGame(ctx, hitPoints(a.prefs.Get().MonsterHP)); err != nil {
		return err
	}
	return runShow(ctx, a, nil)
}

// hitPoints maps the monster HP preference onto the engine's new-game choice.
func hitPoints(p preferences.MonsterHP) enginev1.HitPoints {
	switch p {
	case preferences.MonsterHPFixed:
		return enginev1.HitPointsFixed
	case preferences.MonsterHPRolled:
		return enginev1.HitPointsRolled
	default:
		return enginev1.HitPointsDefault
	}
}

func runNext(ctx context.Context, a *app, _ []string) error {
	if err := a.client.NextTurn(ctx); err != nil {
		return err
	}
	return runShow(ctx, a, nil)
}

func runUndo(ctx context.Context, a *app, _ []string) error {
	if err := a.client.Undo(ctx); err != nil {
		return err
	}
	return runShow(ctx, a, nil)
}

func runRedo(ctx context.Context, a *app, _ []string) error {
	if err := a.client.Redo(ctx); err != nil {
		return err
	}
	return runShow(ctx, a, nil)
}

func runShow(ctx context.Context, a *app, args []string) error {
	gv, err := gameView(ctx, a)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		pv, err := participant(gv, args[0])
		if err != nil {
			return err
		}
		renderParticipant(stdout, pv, gv.Round())
		return nil
	}
	return renderGame(stdout, gv, a.prefs.Get())
}

func gameView(ctx context.Context, a *app) (*view.GameView, error) {
	g, err := a.client.GetGame(ctx)
	if err != nil {
		return nil, err
	}
	return view.NewGameView(g, a.client)
}

func participant(gv *view.GameView, arg string) (view.ParticipantView, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("participant id %q: %w", arg, err)
	}
	pv, ok := gv.Participant(id)
	if !ok {
		return nil, fmt.Errorf("no participant %d", id)
	}
	return pv, nil
}

func monster(gv *view.GameView, arg string) (*view.MonsterView, error) {
	pv, err := participant(gv, arg)
	if err != nil {
		return nil, err
	}
	mv, ok := pv.(*view.MonsterView)
	if !ok {
		return nil, fmt.Errorf("%s is a %s, not a monster", pv.Name(), pv.Kind())
	}
	return mv, nil
}

func runDamage(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("damage", flag.ContinueOnError)
	kind := fs.String("type", string(encounter.DamageNormal), "damage|halfDamage|doubleDamage|kill")
	if err := fs.Parse(args); err != nil {
		return err
	}
	d := encounter.Damage{Type: encounter.DamageType(*kind)}
	switch {
	case fs.NArg() == 1 && d.Type == encounter.DamageKill:
	case fs.NArg() == 2:
		amount, err := strconv.Atoi(fs.Arg(1))
		if err != nil {
			return fmt.Errorf("damage amount %q: %w", fs.Arg(1), err)
		}
		d.Amount = amount
	default:
		return errors.New("damage requires <id> and an amount unless -type kill")
	}

	gv, err := gameView(ctx, a)
	if err != nil {
		return err
	}
	mv, err := monster(gv, fs.Arg(0))
	if err != nil {
		return err
	}
	if err := mv.Damage(ctx, d); err != nil {
		return err
	}
	return runShow(ctx, a, nil)
}

func runHeal(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("heal", flag.ContinueOnError)
	kind := fs.String("type", string(encounter.HealingHeal), "heal|setHp|setTempHp")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.New("heal requires <id> <amount>")
	}
	amount, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("heal amount %q: %w", fs.Arg(1), err)
	}

	gv, err := gameView(ctx, a)
	if err != nil {
		return err
	}
	mv, err := monster(gv, fs.Arg(0))
	if err != nil {
		return err
	}
	if err := mv.Heal(ctx, encounter.Healing{Type: encounter.HealingType(*kind), Amount: amount}); err != nil {
		return err
	}
	return runShow(ctx, a, nil)
}

// parseAction accepts standard, reaction, bonus or legendary:N.
func parseAction(s string) (encounter.Action, error) {
	switch s {
	case "standard", "action":
		return encounter.StandardAction(), nil
	case "reaction":
		return encounter.ReactionAction(), nil
	case "bonus":
		return encounter.BonusAction(), nil
	}
	if rest, ok := strings.CutPrefix(s, "legendary:"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			return encounter.Action{}, fmt.Errorf("legendary action index %q must be a non-negative integer", rest)
		}
		return encounter.LegendaryAction(n), nil
	}
	return encounter.Action{}, fmt.Errorf("unknown action %q", s)
}

func parseToggle(s string) (bool, error) {
	switch s {
	case "on", "true", "available":
		return true, nil
	case "off", "false", "spent":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

func runAction(ctx context.Context, a *app, args []string) error {
	if len(args) != 3 {
		return errors.New("action requires <id> <action> <on|off>")
	}
	act, err := parseAction(args[1])
	if err != nil {
		return err
	}
	available, err := parseToggle(args[2])
	if err != nil {
		return err
	}

	gv, err := gameView(ctx, a)
	if err != nil {
		return err
	}
	pv, err := participant(gv, args[0])
	if err != nil {
		return err
	}
	if err := setAction(ctx, pv, act, available); err != nil {
		return err
	}
	return runShow(ctx, a, nil)
}

func setAction(ctx context.Context, pv view.ParticipantView, act encounter.Action, available bool) error {
	switch v := pv.(type) {
	case *view.MonsterView:
		switch act.Type {
		case encounter.ActionStandard:
			return v.SetAction(ctx, available)
		case encounter.ActionReaction:
			return v.SetReaction(ctx, available)
		case encounter.ActionBonus:
			return v.SetBonusAction(ctx, available)
		case encounter.ActionLegendary:
			return v.SetLegendaryAction(ctx, act.Index, available)
		}
	case *view.PlayerView:
		switch act.Type {
		case encounter.ActionStandard:
			return v.SetAction(ctx, available)
		case encounter.ActionReaction:
			return v.SetReaction(ctx, available)
		case encounter.ActionBonus:
			return v.SetBonusAction(ctx, available)
		}
	case *view.LairView:
		if act.Type == encounter.ActionStandard {
			return v.SetAction(ctx, available)
		}
	}
	return fmt.Errorf("%s has no %s", pv.Name(), act)
}

func runCondition(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("condition", flag.ContinueOnError)
	duration := fs.String("duration", string(condition.UntilRemoved), "untilRemoved|startTurn|endTurn|elapsed")
	amount := fs.Int("amount", 1, "elapsed duration amount")
	unit := fs.String("unit", string(condition.Minutes), "elapsed duration unit: seconds|minutes|hours")
	span := fs.Duration("for", 0, "elapsed duration such as 1h30m; overrides -duration, -amount and -unit")
	instigator := fs.Int("instigator", 0, "instigating participant id; 0 uses the active participant")
	custom := fs.String("custom", "", "custom condition name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("condition requires <id> and at least one name")
	}

	gv, err := gameView(ctx, a)
	if err != nil {
		return err
	}
	pv, err := participant(gv, fs.Arg(0))
	if err != nil {
		return err
	}
	dialog, err := gv.ConditionDialog(pv.ID())
	if err != nil {
		return err
	}

	opts := condition.BuildOptions{
		Selected:      fs.Args()[1:],
		CustomName:    *custom,
		DurationType:  condition.DurationType(*duration),
		ElapsedAmount: *amount,
		ElapsedUnit:   condition.ElapsedUnit(*unit),
	}
	if *span > 0 {
		opts.DurationType = condition.Elapsed
		opts.ElapsedAmount = elapsedSeconds(*span)
		opts.ElapsedUnit = condition.Seconds
	}
	if *custom != "" {
		opts.Selected = append(opts.Selected, condition.OtherSelector)
	}
	if *instigator != 0 {
		opts.Instigator = instigator
	} else if opts.Instigator, err = dialog.DefaultInstigator(); err != nil {
		return err
	}

	conds, err := dialog.Apply(ctx, opts)
	if err != nil {
		return err
	}
	turnOwner := dialog.ParticipantName(dialog.TurnParticipant(opts.Instigator))
	for _, c := range conds {
		fmt.Fprintf(stdout, "%s: %s (%s, governed by %s's turn)\n", pv.Name(), c.Name, c.Expiry, turnOwner)
	}
	return runShow(ctx, a, nil)
}

func runRoll(ctx context.Context, a *app, args []string) error {
	if err := a.dice.Load(ctx); err != nil {
		a.logger.Warn("loading roll history", zap.Error(err))
	}
	expr := strings.Join(args, "")
	r, err := a.dice.Roll(ctx, expr)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, formatRoll(expr, r))
	return nil
}

func runHistory(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	clearAll := fs.Bool("clear", false, "forget all recorded rolls")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *clearAll {
		return a.dice.ClearHistory(ctx)
	}
	if err := a.dice.Load(ctx); err != nil {
		return err
	}
	renderHistory(stdout, a.dice.History())
	return nil
}

func runDifficulty(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("difficulty", flag.ContinueOnError)
	rules := fs.String("rules", string(a.prefs.Get().RulesVersion), "srd51|srd52")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rv, err := difficulty.ParseRulesVersion(*rules)
	if err != nil {
		return err
	}
	gv, err := gameView(ctx, a)
	if err != nil {
		return err
	}
	renderDifficulty(stdout, gv.Difficulty(rv))
	return nil
}

var prefKeys = []string{"theme", "mode", "font_size", "font_style", "monster_hp", "rules_version"}

// runPrefs prints the preferences, applying and saving key=value updates first.
func runPrefs(_ context.Context, a *app, args []string) error {
	for _, kv := range args {
		key, _, ok := strings.Cut(kv, "=")
		if !ok || !slices.Contains(prefKeys, key) {
			return fmt.Errorf("expected key=value with key one of %s, got %q", strings.Join(prefKeys, ", "), kv)
		}
	}
	if len(args) > 0 {
		var saveErr error
		unsubscribe := a.prefs.Subscribe(func(p preferences.Preferences) {
			saveErr = preferences.Save(a.prefsPath, p)
		})
		defer unsubscribe()

		err := a.prefs.Update(func(p *preferences.Preferences) {
			for _, kv := range args {
				key, value, _ := strings.Cut(kv, "=")
				switch key {
				case "theme":
					p.Theme = preferences.Theme(value)
				case "mode":
					p.Mode = preferences.Mode(value)
				case "font_size":
					p.FontSize = preferences.FontSize(value)
				case "font_style":
					p.FontStyle = preferences.FontStyle(value)
				case "monster_hp":
					p.MonsterHP = preferences.MonsterHP(value)
				case "rules_version":
					p.RulesVersion = difficulty.RulesVersion(value)
				}
			}
		})
		if err != nil {
			return err
		}
		if saveErr != nil {
			return fmt.Errorf("saving preferences: %w", saveErr)
		}
	}
	renderPrefs(stdout, a.prefs.Get())
	return nil
}

// elapsedSeconds rounds span up to whole rounds and returns the result in seconds.
func elapsedSeconds(span time.Duration) int {
	hours := int(span / time.Hour)
	minutes := int(span % time.Hour / time.Minute)
	seconds := int((span%time.Minute + time.Second - 1) / time.Second)
	return gametime.TotalRounds(hours, minutes, seconds) * gametime.SecondsPerRound
}
