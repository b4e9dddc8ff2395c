package dictionary

const (
	DefaultIcon  = "📚"
	NotFoundIcon = "❓"
)

var icons = map[string]string{
	"hypothesis":    "🔬",
	"experiment":    "🧪",
	"analysis":      "📊",
	"statistics":    "📈",
	"research":      "🔍",
	"theory":        "💡",
	"evidence":      "🧾",
	"argument":      "⚖️",
	"philosophy":    "🤔",
	"psychology":    "🧠",
	"cognition":     "🧠",
	"economics":     "💰",
	"history":       "📜",
	"literature":    "📖",
	"language":      "🗣️",
	"mathematics":   "➗",
	"geometry":      "📐",
	"algorithm":     "🤖",
	"technology":    "💻",
	"biology":       "🧬",
	"evolution":     "🦕",
	"chemistry":     "⚗️",
	"physics":       "⚛️",
	"astronomy":     "🔭",
	"environment":   "🌍",
	"ecosystem":     "🌿",
	"climate":       "🌦️",
	"democracy":     "🗳️",
	"government":    "🏛️",
	"society":       "👥",
	"culture":       "🎭",
	"architecture":  "🏗️",
	"medicine":      "💊",
	"methodology":   "🧭",
	"paradigm":      "🧩",
	"synthesis":     "🔗",
	"education":     "🎓",
	"communication": "📡",
}

// Icon returns the decorative icon for word.
func Icon(word string) string {
	if icon, ok := icons[word]; ok {
		return icon
	}
	return DefaultIcon
}
