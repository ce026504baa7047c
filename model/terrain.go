package model

// TerrainGrid maps each battle tile to a terrain key ("plains", "forest",
// "burning_forest", ...). Keys are resolved against the terrain registry by
// consumers; the grid itself carries no behavior beyond bounds-safe access.
type TerrainGrid struct {
	Cols int      `json:"cols"`
	Rows int      `json:"rows"`
	Keys []string `json:"keys"` // row-major: Keys[y*Cols + x]
}

// NewTerrainGrid builds a grid with every tile set to key.
func NewTerrainGrid(cols, rows int, key string) *TerrainGrid {
	keys := make([]string, cols*rows)
	for i := range keys {
		keys[i] = key
	}
	return &TerrainGrid{Cols: cols, Rows: rows, Keys: keys}
}

// InBounds reports whether (x, y) lies inside the map extents.
func (g *TerrainGrid) InBounds(x, y int) bool {
	return g != nil && x >= 0 && x < g.Cols && y >= 0 && y < g.Rows
}

// At returns the terrain key at (x, y). The second return is false for
// out-of-bounds coordinates.
func (g *TerrainGrid) At(x, y int) (string, bool) {
	if !g.InBounds(x, y) {
		return "", false
	}
	return g.Keys[y*g.Cols+x], true
}

// WithKey returns a copy of the grid with the key at (x, y) replaced.
// Out-of-bounds coordinates return the receiver unchanged.
func (g *TerrainGrid) WithKey(x, y int, key string) *TerrainGrid {
	if !g.InBounds(x, y) {
		return g
	}
	keys := make([]string, len(g.Keys))
	copy(keys, g.Keys)
	keys[y*g.Cols+x] = key
	return &TerrainGrid{Cols: g.Cols, Rows: g.Rows, Keys: keys}
}
