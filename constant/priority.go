package constant

// System Execution Priorities (lower runs first)
const (
	PriorityTurn       = 10
	PriorityTransition = 900 // After game logic, final
)
