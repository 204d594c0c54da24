package event

// TapPayload carries a pointer press in world coordinates
type TapPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TapCellPayload carries a press on a known cell index
type TapCellPayload struct {
	Index int `json:"index"`
}
