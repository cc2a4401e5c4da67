package level

// DetermineSector returns the sector containing (x, y). prev is the sector the
// caller last saw the point in; it and its portal neighbours are tried before
// falling back to a scan of every sector. EmptySector means the point is
// outside the map.
func (m *LevelMap) DetermineSector(prev int, x, y float64) int {
	if !m.validSector(prev) {
		return m.SearchForSectorIndex(x, y)
	}

	sec := &m.sectors[prev]
	if sec.Contains(x, y) {
		return prev
	}
	for _, n := range sec.neighbors {
		if m.sectors[n].Contains(x, y) {
			return n
		}
	}
	return m.SearchForSectorIndex(x, y)
}

// SearchForSectorIndex scans every sector in index order.
func (m *LevelMap) SearchForSectorIndex(x, y float64) int {
	for i := range m.sectors {
		if m.sectors[i].Contains(x, y) {
			return i
		}
	}
	return EmptySector
}
