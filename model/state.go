package model

// Point is a tile coordinate on the battle map.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Entity is one combatant in a battle snapshot.
type Entity struct {
	ID          string `json:"id"`
	Team        string `json:"team"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	HP          int    `json:"hp"`
	MaxHP       int    `json:"maxHp"`
	AP          int    `json:"ap"`
	AttackRange int    `json:"attackRange"`
}

func (e Entity) Alive() bool { return e.HP > 0 }

func (e Entity) Pos() Point { return Point{X: e.X, Y: e.Y} }

// BattleState is a point-in-time snapshot of a battle. Consumers treat it as
// read-only; terrain transforms produce a new snapshot via WithTerrain rather
// than mutating in place.
type BattleState struct {
	Entities []Entity     `json:"entities"`
	Acting   string       `json:"acting"` // id of the currently-acting entity, "" if none
	Terrain  *TerrainGrid `json:"terrain,omitempty"`
}

// EntityByID looks up an entity by id. The second return is false when the id
// is absent from the snapshot.
func (s *BattleState) EntityByID(id string) (Entity, bool) {
	if s == nil || id == "" {
		return Entity{}, false
	}
	for _, e := range s.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}

// LiveEntities returns all entities with HP above zero, in snapshot order.
func (s *BattleState) LiveEntities() []Entity {
	if s == nil {
		return nil
	}
	var out []Entity
	for _, e := range s.Entities {
		if e.Alive() {
			out = append(out, e)
		}
	}
	return out
}

// ActingEntity resolves the currently-acting entity, if any.
func (s *BattleState) ActingEntity() (Entity, bool) {
	if s == nil {
		return Entity{}, false
	}
	return s.EntityByID(s.Acting)
}

// WithTerrain returns a snapshot with the terrain key at (x, y) replaced.
// Returns the receiver unchanged when the coordinate is out of bounds or the
// key already matches, so callers can detect "no change" by identity.
func (s *BattleState) WithTerrain(x, y int, key string) *BattleState {
	if s == nil || s.Terrain == nil || !s.Terrain.InBounds(x, y) {
		return s
	}
	if cur, _ := s.Terrain.At(x, y); cur == key {
		return s
	}
	next := *s
	next.Terrain = s.Terrain.WithKey(x, y, key)
	return &next
}

// Manhattan returns the Manhattan distance between two points.
func Manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
