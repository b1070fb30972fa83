package config

// CategoryWeights orders command categories in help output, lowest first.
var CategoryWeights = map[string]int{
	"🧹 Cleanup":      0,
	"⚙️ Settings":    10,
	"🕯️ Information": 20,
	"🛡️ Moderation":  30,
}

// CategoryWeight returns the sort weight of a category; unknown ones sort last.
func CategoryWeight(category string) int {
	if w, ok := CategoryWeights[category]; ok {
		return w
	}
	return 1 << 10
}
