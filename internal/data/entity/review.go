package entity

type Review struct {
	Base
	MovieID   int64   `db:"movie_id"` // not checked against movies
	UserName  string  `db:"user_name"`
	Content   string  `db:"content"`
	Sentiment string  `db:"sentiment"` // label or failure sentinel
	Score     float64 `db:"score"`     // 0-100, 0 for sentinels

	AnalysisFailed bool `db:"analysis_failed"`
}

// ReviewSummary aggregates the annotated reviews of one movie.
type ReviewSummary struct {
	MovieID      int64
	Total        int
	Positive     int
	Negative     int
	Failed       int
	AverageScore float64 // over reviews that got a real classification
}
