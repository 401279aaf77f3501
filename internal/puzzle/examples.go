package puzzle

// Default is the puzzle the board offers when asked for an example.
var Default = Puzzle{"LEI", "XYS", "CUV", "KOT"}

// Examples are previously published puzzles.
var Examples = []Puzzle{
	{"WNT", "LVE", "KYO", "ARH"},
	{"INH", "GLC", "MKE", "ATO"},
	{"PRO", "CTI", "SAH", "DGN"},
	{"TLQ", "SRU", "BFI", "EMO"},
	{"LEI", "XYS", "CUV", "KOT"},
}

// Example returns the i-th example, wrapping around the list.
func Example(i int) Puzzle {
	n := len(Examples)
	return Examples[((i%n)+n)%n]
}
