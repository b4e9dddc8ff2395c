// Package sample provides academic passages for users who want to try the
// service without pasting their own text.
package sample

import "math/rand"

var passages = []string{
	"The hypothesis requires rigorous analysis of longitudinal data before any causal inference can be considered legitimate by the research community.",
	"Contemporary epistemology interrogates the justification of belief, distinguishing propositional knowledge from the tacit competencies that underpin expertise.",
	"Photosynthetic organisms convert electromagnetic radiation into chemical energy, sustaining trophic hierarchies throughout terrestrial and aquatic ecosystems.",
	"Macroeconomic stabilization policies attempt to mitigate cyclical fluctuations, although their efficacy depends on institutional credibility and fiscal discipline.",
	"Postcolonial literature frequently problematizes canonical narratives, foregrounding marginalized perspectives and the ambivalence of cultural hybridity.",
	"Neuroplasticity describes the capacity of synaptic connections to reorganize in response to experience, challenging deterministic models of cognitive development.",
	"Algorithmic accountability demands transparency regarding training data, optimization objectives, and the distributional consequences of automated decisions.",
	"Anthropogenic emissions have accelerated atmospheric warming, intensifying precipitation variability and threatening the resilience of vulnerable communities.",
}

// Passages returns every available passage.
func Passages() []string {
	out := make([]string, len(passages))
	copy(out, passages)
	return out
}

// Random returns one passage chosen with r, or with the global source when
// r is nil.
func Random(r *rand.Rand) string {
	if r == nil {
		return passages[rand.Intn(len(passages))]
	}
	return passages[r.Intn(len(passages))]
}
