package command

import (
	"strings"

	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
)

type categoryRule struct {
	category domain.Category
	prefixes []string
	keywords []string
}

// categoryRules is evaluated in order; the first match wins.
// Matching is case-insensitive against the whole token.
var categoryRules = []categoryRule{
	{
		category: domain.CategoryTray,
		keywords: []string{"trayexecbytray", "trayexec"},
	},
	{
		category: domain.CategoryCommunication,
		prefixes: []string{"say ", "team ", "zone ", "tell ", "local ", "fleet ", "emote ", "em ", "channel_", "gensendmessage", "yell "},
	},
	{
		category: domain.CategoryPower,
		prefixes: []string{"+power_exec", "power_exec", "+stopowerexec", "distributeshields", "distribute_shields", "+powerexec"},
		keywords: []string{"power"},
	},
	{
		category: domain.CategoryMovement,
		prefixes: []string{"+forward", "+backward", "+left", "+right", "+turnleft", "+turnright", "+up", "+down", "+strafe", "throttle", "fullimpulse", "autorun", "+autoforward", "follow", "+jump", "+crouch", "roll"},
	},
	{
		category: domain.CategoryCamera,
		prefixes: []string{"cam", "+cam", "zoom", "+zoom", "mouselook", "+mouselook", "look", "+look"},
	},
	{
		category: domain.CategoryCombat,
		prefixes: []string{"fire", "+fire", "attack", "+attack", "aim", "+aim"},
		keywords: []string{"firemode", "torpedo", "phaser"},
	},
	{
		category: domain.CategoryTargeting,
		prefixes: []string{"target", "+target"},
		keywords: []string{"target"},
	},
	{
		category: domain.CategorySystem,
		prefixes: []string{"bind_", "bind ", "unbind", "screenshot", "hud", "ui_", "ui ", "combatlog", "quit", "logout", "toggle", "gensend", "/"},
	},
}

// Classify returns the display category of a token.
// The classification is cosmetic and never changes the token.
func Classify(token string) domain.Category {
	lower := strings.ToLower(strings.TrimSpace(token))
	if lower == "" {
		return domain.CategoryCustom
	}
	for _, rule := range categoryRules {
		for _, p := range rule.prefixes {
			if strings.HasPrefix(lower, p) {
				return rule.category
			}
		}
		for _, k := range rule.keywords {
			if strings.Contains(lower, k) {
				return rule.category
			}
		}
	}
	return domain.CategoryCustom
}

// ClassifyAll pairs each token with its category, preserving order.
func ClassifyAll(tokens []string) []domain.Command {
	out := make([]domain.Command, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, domain.Command{Token: t, Category: Classify(t)})
	}
	return out
}
