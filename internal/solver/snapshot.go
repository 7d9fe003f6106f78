package solver

// Snapshot is the exported form of State. It round-trips through JSON and
// Engine.Restore without changing the resulting candidates.
type Snapshot struct {
	ConfirmedLetters string   `json:"confirmedLetters"`
	MisplacedRounds  []string `json:"misplacedRounds"`
	AbsentLetters    string   `json:"absentLetters"`
}

// Snapshot exports s. Unknown slots are written as Marker.
func (s State) Snapshot() Snapshot {
	return Snapshot{
		ConfirmedLetters: s.confirmed.String(),
		MisplacedRounds:  s.misplaced.Strings(),
		AbsentLetters:    s.absent.String(),
	}
}
