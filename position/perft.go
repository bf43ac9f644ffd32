package position

// Perft counts the leaf nodes of the legal move tree to the given depth.
func (b *Board) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		b.Apply(m)
		nodes += b.Perft(depth - 1)
		b.Undo()
	}
	return nodes
}

// PerftDivide returns the perft count below each root move.
func (b *Board) PerftDivide(depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range b.LegalMoves() {
		b.Apply(m)
		result[m] = b.Perft(depth - 1)
		b.Undo()
	}
	return result
}
