package client

import "strings"

// iconRules maps keywords found in a product's name or category to a
// decorative icon. Order matters: the first matching keyword wins.
var iconRules = []struct {
	keyword string
	icon    string
}{
	{"laptop", "laptop"},
	{"phone", "phone"},
	{"hp", "phone"},
	{"watch", "watch"},
	{"jam", "watch"},
	{"camera", "camera"},
	{"kamera", "camera"},
	{"headphone", "headset"},
	{"headset", "headset"},
	{"shoe", "footsteps"},
	{"sepatu", "footsteps"},
	{"kopi", "cafe"},
	{"coffee", "cafe"},
	{"baju", "shirt"},
	{"shirt", "shirt"},
}

const defaultIcon = "cube"

// ProductIcon picks an icon by case-insensitive substring match over the
// product name and category. Purely cosmetic, but deterministic.
func ProductIcon(name, category string) string {
	text := strings.ToLower(name + " " + category)
	for _, rule := range iconRules {
		if strings.Contains(text, rule.keyword) {
			return rule.icon
		}
	}
	return defaultIcon
}
