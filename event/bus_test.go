package event

import "testing"

func TestPublishDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var order []int
	bus.Subscribe(KindTerrainChanged, func(e any) { order = append(order, 1) })
	bus.Subscribe(KindTerrainChanged, func(e any) { order = append(order, 2) })

	bus.Publish(KindTerrainChanged, TerrainChanged{X: 1, Y: 2, From: "forest", To: "burning_forest"})

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("delivery order = %v, want [1 2]", order)
	}
}

func TestPublishIgnoresOtherKinds(t *testing.T) {
	bus := NewBus()
	called := false
	bus.Subscribe(KindDamageResolved, func(e any) { called = true })

	bus.Publish(KindTerrainChanged, TerrainChanged{})
	if called {
		t.Error("handler for another kind should not run")
	}
}

func TestPublishCarriesPayload(t *testing.T) {
	bus := NewBus()
	var got DamageResolved
	bus.Subscribe(KindDamageResolved, func(e any) { got = e.(DamageResolved) })

	want := DamageResolved{DefenderID: "u1", Amount: 7, Critical: true, AffinityMult: 1.5}
	bus.Publish(KindDamageResolved, want)
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestPublishNoSubscribers(t *testing.T) {
	// Publishing into the void must not panic.
	NewBus().Publish(KindUnitEnteredTile, UnitEnteredTile{UnitID: "u1"})
}
