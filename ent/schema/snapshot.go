package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Snapshot captures saved preferences at a point in time.
type Snapshot struct {
	ent.Schema
}

func (Snapshot) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Comment("Event sequence number at the time of snapshot"),
		field.Int64("created_at"),
		field.Text("data").
			Comment("Preferences as JSON"),
	}
}
