package quiz

// Level is the quiz difficulty.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Levels lists the difficulties in menu order.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// timerDurations maps each level to its per-question countdown in
// seconds. Zero means the question is untimed.
var timerDurations = map[Level]int{
	LevelBeginner:     0,
	LevelIntermediate: 90,
	LevelAdvanced:     60,
}

// TimerDuration returns the per-question countdown for the level in
// seconds, 0 for untimed.
func (l Level) TimerDuration() int {
	return timerDurations[l]
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	_, ok := timerDurations[l]
	return ok
}

// Title returns the level name with an initial capital.
func (l Level) Title() string {
	switch l {
	case LevelBeginner:
		return "Beginner"
	case LevelIntermediate:
		return "Intermediate"
	case LevelAdvanced:
		return "Advanced"
	default:
		return string(l)
	}
}
