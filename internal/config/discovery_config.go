package config

const (
	// Default preference set for a fresh session
	DefaultAgeMin      = 18
	DefaultAgeMax      = 65
	DefaultMaxDistance = 20
	MinAgeGap          = 2

	// Match probabilities per decision kind
	LikeMatchProbability      = 0.5
	SuperLikeMatchProbability = 0.8
)

// DistanceOptions are the max-distance values offered to the preferences form.
var DistanceOptions = []int{5, 10, 15, 20, 30, 40, 50, 60, 70, 80, 90, 100}

// ConversationStarters are suggested to the user when a thread is empty.
var ConversationStarters = []string{
	"Hey! How's your day going?",
	"What do you like to do for fun?",
	"Seen any good movies lately?",
	"What's your favorite type of cuisine?",
}
