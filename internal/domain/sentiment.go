package domain

// SentimentSnapshot holds a score in [-1, 1] and the texts it was derived
// from. Posts is never nil - the normalizer guarantees an empty slice when
// upstream sends nothing.
type SentimentSnapshot struct {
	Score float64
	Posts []string
}

// SentimentBucket is the positive/neutral/negative classification derived
// from a continuous score.
type SentimentBucket string

const (
	SentimentBucket_Positive SentimentBucket = "positive"
	SentimentBucket_Neutral  SentimentBucket = "neutral"
	SentimentBucket_Negative SentimentBucket = "negative"
)

type Trend struct {
	Term      string
	Frequency int64
}

// SocialSnapshot - trends may be empty but never nil.
type SocialSnapshot struct {
	Trends    []Trend
	Sentiment SentimentSnapshot
}
