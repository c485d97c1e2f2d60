package model

// Tick — единица симуляционного времени (кулдауны, длительности).
type Tick int64

// Moment describes one simulation time-step.
type Moment struct {
	Index int64 // sequential step number
	Delta Tick  // elapsed time since the previous step
}
