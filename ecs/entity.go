package ecs

import "strconv"

// Entity is a handle into a World. The low half is the slot id (1-based),
// the high half the slot's generation at creation; a handle whose
// generation no longer matches its slot is stale.
type Entity uint64

type entityID uint32
type generation uint32

const (
	idBits = 32
	idMask = 1<<idBits - 1
)

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<idBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint64(e) & idMask)
}

func (e Entity) generation() generation {
	return generation(uint64(e) >> idBits)
}

// String renders the handle as "id.generation" for logs.
func (e Entity) String() string {
	b := strconv.AppendUint(nil, uint64(e.id()), 10)
	b = append(b, '.')
	return string(strconv.AppendUint(b, uint64(e.generation()), 10))
}

// Valid reports whether e names a slot at all. The zero Entity is the
// "no entity" value used by uint64 references in components; Valid says
// nothing about liveness, use IsAlive for that.
func (e Entity) Valid() bool {
	return e.id() != 0
}
