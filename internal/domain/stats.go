package domain

// StatusCount holds a mastery status and the number of items at it.
type StatusCount struct {
	Status int
	Count  int
}

// Dashboard holds aggregated learning statistics for a user.
type Dashboard struct {
	DailyProgress  int
	DailyGoal      int
	Streak         int
	TotalItems     int
	LearnableCount int
	ArchivedCount  int
	StatusCounts   map[int]int
}
