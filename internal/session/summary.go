package session

import "math"

// Rating buckets the final percentage for the summary headline.
type Rating string

const (
	RatingExcellent Rating = "excellent" // 90% and above
	RatingGood      Rating = "good"      // 70% and above
	RatingFair      Rating = "fair"      // 50% and above
	RatingKeepGoing Rating = "keepGoing"
)

// RatingFor returns the rating for a percentage.
func RatingFor(percentage int) Rating {
	switch {
	case percentage >= 90:
		return RatingExcellent
	case percentage >= 70:
		return RatingGood
	case percentage >= 50:
		return RatingFair
	}
	return RatingKeepGoing
}

// Summary holds the data displayed on the summary screen.
type Summary struct {
	Score          int
	Total          int
	Percentage     int
	MaxStreak      int
	TotalSeconds   int
	AverageSeconds float64
	WrongAnswers   []WrongAnswer
	Rating         Rating

	// Review is true when the session practised notebook words.
	Review bool
}

// buildSummary computes the summary from raw counters.
func buildSummary(score, total, maxStreak, totalSeconds int, wrong []WrongAnswer, review bool) Summary {
	var pct int
	var avg float64
	if total > 0 {
		pct = int(math.Round(100 * float64(score) / float64(total)))
		avg = math.Round(float64(totalSeconds)/float64(total)*10) / 10
	}
	return Summary{
		Score:          score,
		Total:          total,
		Percentage:     pct,
		MaxStreak:      maxStreak,
		TotalSeconds:   totalSeconds,
		AverageSeconds: avg,
		WrongAnswers:   append([]WrongAnswer(nil), wrong...),
		Rating:         RatingFor(pct),
		Review:         review,
	}
}
