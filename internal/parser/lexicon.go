package parser

// Fixed sentiment cue-word lists. These are process-wide constants: initialized
// once, never modified at runtime. Matching is substring containment, so a cue
// inside a longer word still counts.

var positiveWords = []string{
	"best", "excellent", "amazing", "fantastic", "great", "wonderful",
	"outstanding", "superb", "delicious", "authentic", "favorite",
	"highly recommended", "must-visit", "top-notch", "incredible",
	"perfect", "love", "loved", "standout", "gem", "exceptional",
	"award-winning", "renowned", "famous", "popular", "beloved",
}

var negativeWords = []string{
	"worst", "terrible", "awful", "bad", "poor", "disappointing",
	"avoid", "overpriced", "mediocre", "underwhelming", "slow",
	"rude", "dirty", "cold", "bland", "stale", "not recommended",
	"skip", "pass", "overrated", "inconsistent",
}

var neutralWords = []string{
	"okay", "decent", "average", "fair", "alright", "fine",
	"reasonable", "typical", "standard", "basic",
}
