package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
)

// KVEntry is one key of the local key-value table that holds the quiz
// history index, quiz details and their source texts.
type KVEntry struct {
	ent.Schema
}

func (KVEntry) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "kv"},
	}
}

func (KVEntry) Fields() []ent.Field {
	return []ent.Field{
		field.String("key").
			Unique().
			NotEmpty().
			Immutable().
			Comment("Storage key, e.g. quizzes_index or quiz_detail_<id>"),
		field.Text("value").
			Comment("JSON-encoded value"),
		field.Int64("updated_at").
			Comment("Unix milliseconds of the last write"),
	}
}
