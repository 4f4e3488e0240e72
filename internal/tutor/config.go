package tutor

// Config holds content generation settings.
type Config struct {
	LessonMaxTokens int
	GradeMaxTokens  int
	Temperature     float64
}

// DefaultConfig returns sensible defaults for tutoring turns.
func DefaultConfig() Config {
	return Config{
		LessonMaxTokens: 512,
		GradeMaxTokens:  256,
		Temperature:     0.5,
	}
}
