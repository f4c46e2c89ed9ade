package ecs

import "slices"

// World is the entity registry and per-type component store.
//
// Entities can be removed two ways. DestroyEntity strips an entity at once and
// is meant for code running outside a pipeline pass. Delete only marks the
// entity dead: it disappears from Alive and Query immediately, and its
// components are dropped by the next Maintain call, so systems iterating a
// Query result never see a half-removed entity.
type World struct {
	nextID     EntityID
	alive      map[EntityID]bool // live ids, plus Delete'd ids until Maintain
	pending    []EntityID
	components map[ComponentType]map[EntityID]Component
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		nextID:     1,
		alive:      make(map[EntityID]bool),
		components: make(map[ComponentType]map[EntityID]Component),
	}
}

// CreateEntity mints a new entity ID and marks it alive.
func (w *World) CreateEntity() EntityID {
	id := w.nextID
	w.nextID++
	w.alive[id] = true
	return id
}

// Spawn creates an entity carrying the given initial components.
func (w *World) Spawn(components ...Component) EntityID {
	id := w.CreateEntity()
	for _, c := range components {
		w.Add(id, c)
	}
	return id
}

// DestroyEntity marks the entity dead and removes all its components now.
func (w *World) DestroyEntity(id EntityID) {
	if !w.alive[id] {
		return
	}
	delete(w.alive, id)
	w.strip(id)
}

// Delete marks the entity dead; its components are removed by Maintain.
func (w *World) Delete(id EntityID) {
	if !w.alive[id] {
		return
	}
	w.alive[id] = false
	w.pending = append(w.pending, id)
}

// Maintain applies every deferred Delete and reports how many entities it
// stripped.
func (w *World) Maintain() int {
	n := len(w.pending)
	for _, id := range w.pending {
		delete(w.alive, id)
		w.strip(id)
	}
	w.pending = w.pending[:0]
	return n
}

func (w *World) strip(id EntityID) {
	for _, store := range w.components {
		delete(store, id)
	}
}

// Alive reports whether the entity is alive.
func (w *World) Alive(id EntityID) bool {
	return w.alive[id]
}

// Add attaches a component to an entity, replacing any of the same type.
func (w *World) Add(id EntityID, c Component) {
	t := c.Type()
	if w.components[t] == nil {
		w.components[t] = make(map[EntityID]Component)
	}
	w.components[t][id] = c
}

// Get returns the component of the given type for entity id, or nil.
func (w *World) Get(id EntityID, t ComponentType) Component {
	store := w.components[t]
	if store == nil {
		return nil
	}
	return store[id]
}

// Remove detaches a component from an entity.
func (w *World) Remove(id EntityID, t ComponentType) {
	if store := w.components[t]; store != nil {
		delete(store, id)
	}
}

// Has reports whether entity id has a component of the given type.
func (w *World) Has(id EntityID, t ComponentType) bool {
	return w.Get(id, t) != nil
}

// Count returns the number of live entities.
func (w *World) Count() int {
	return len(w.alive) - len(w.pending)
}

// Query returns all alive entities that have every listed component type,
// in ascending ID order so every pass visits entities in creation order.
func (w *World) Query(types ...ComponentType) []EntityID {
	if len(types) == 0 {
		return nil
	}
	// Use the smallest store as the candidate set.
	smallest := types[0]
	for _, t := range types[1:] {
		if len(w.components[t]) < len(w.components[smallest]) {
			smallest = t
		}
	}
	store := w.components[smallest]
	if store == nil {
		return nil
	}
	var result []EntityID
	for id := range store {
		if !w.alive[id] {
			continue
		}
		match := true
		for _, t := range types {
			if t == smallest {
				continue
			}
			if !w.Has(id, t) {
				match = false
				break
			}
		}
		if match {
			result = append(result, id)
		}
	}
	slices.Sort(result)
	return result
}
