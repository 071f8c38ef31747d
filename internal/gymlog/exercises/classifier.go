package exercises

import (
	"sort"
	"strings"
)

// Classifier guesses an exercise category from its name.
type Classifier interface {
	Classify(name string) (category, asset string, ok bool)
	AssetsByCategory(category string) []string
}

type keywordAsset struct {
	keyword  string
	category string
	asset    string
}

var defaultKeywords = []keywordAsset{
	{"barbell reverse wrist curl", CategoryArm, "/assets/arm/barbell-reverse-wrist-curl.gif"},
	{"bicep curl", CategoryArm, "/assets/arm/bicep-curl-cable.gif"},
	{"dumbbell curl", CategoryArm, "/assets/arm/dumbell-curl.gif"},
	{"tricep extension", CategoryArm, "/assets/arm/seated-dumbbell-triceps-extension.gif"},

	{"chin up", CategoryBack, "/assets/back/chin-up.gif"},
	{"pull up", CategoryBack, "/assets/back/pull-up.gif"},
	{"row", CategoryBack, "/assets/back/machine-rowing.gif"},
	{"lat pulldown", CategoryBack, "/assets/back/rope-pullover.gif"},

	{"bench press", CategoryChest, "/assets/chest/barbell-bench-press.gif"},
	{"incline press", CategoryChest, "/assets/chest/incline-dumbell-press.gif"},
	{"dips", CategoryChest, "/assets/chest/dips-bodyweight.gif"},
	{"chest press", CategoryChest, "/assets/chest/machine-chest-press.gif"},

	{"squat", CategoryLeg, "/assets/leg/hack-squat.gif"},
	{"deadlift", CategoryLeg, "/assets/leg/barbell-deadlift.gif"},
	{"leg press", CategoryLeg, "/assets/leg/leg-press.gif"},
	{"leg extension", CategoryLeg, "/assets/leg/leg-extension.gif"},
	{"hamstring curl", CategoryLeg, "/assets/leg/seated-hamstring-curl.gif"},

	{"shoulder press", CategoryShoulder, "/assets/shoulder/dumbbell-shoulder-press.gif"},
	{"lateral raise", CategoryShoulder, "/assets/shoulder/dumbbell-side-lateral-raise.gif"},
	{"front raise", CategoryShoulder, "/assets/shoulder/dumbell-front-raise.gif"},
	{"face pull", CategoryShoulder, "/assets/shoulder/cable-face-pull.gif"},
}

var _ Classifier = (*KeywordClassifier)(nil)

type KeywordClassifier struct {
	byKeyword map[string]keywordAsset
	// longest keyword first
	ordered []keywordAsset
}

func NewKeywordClassifier() *KeywordClassifier {
	c := &KeywordClassifier{
		byKeyword: make(map[string]keywordAsset, len(defaultKeywords)),
		ordered:   make([]keywordAsset, len(defaultKeywords)),
	}
	copy(c.ordered, defaultKeywords)
	for _, k := range defaultKeywords {
		c.byKeyword[k.keyword] = k
	}
	sort.SliceStable(c.ordered, func(i, j int) bool {
		return len(c.ordered[i].keyword) > len(c.ordered[j].keyword)
	})
	return c
}

// Classify tries an exact keyword match first, then the longest keyword contained in the name.
func (c *KeywordClassifier) Classify(name string) (string, string, bool) {
	normalized := strings.Join(strings.Fields(strings.ToLower(name)), " ")
	if normalized == "" {
		return "", "", false
	}

	if k, ok := c.byKeyword[normalized]; ok {
		return k.category, k.asset, true
	}
	for _, k := range c.ordered {
		if strings.Contains(normalized, k.keyword) {
			return k.category, k.asset, true
		}
	}
	return "", "", false
}

func (c *KeywordClassifier) AssetsByCategory(category string) []string {
	category, ok := NormalizeCategory(category)
	if !ok {
		return nil
	}
	var assets []string
	for _, k := range defaultKeywords {
		if k.category == category {
			assets = append(assets, k.asset)
		}
	}
	return assets
}
