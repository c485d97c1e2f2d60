package model

// EntityID — невладеющий хэндл сущности.
// Разрешается в *Entity через Space в момент использования.
type EntityID uint32

// InvalidEntityID is never assigned to a live entity.
const InvalidEntityID EntityID = 0

// Space resolves entity handles against the running world.
// Absence is a normal outcome, not an error.
type Space interface {
	EntityByID(id EntityID) (*Entity, bool)
}
