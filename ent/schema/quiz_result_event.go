package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// QuizResultEvent records one finished quiz.
type QuizResultEvent struct {
	ent.Schema
}

func (QuizResultEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (QuizResultEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID of the quiz session"),
		field.String("topic").
			NotEmpty(),
		field.Enum("difficulty").
			Values("easy", "medium", "hard"),
		field.Int("num_questions").
			Default(0).
			Comment("Number of questions requested"),
		field.Int("score"),
		field.Int("total").
			Comment("Number of questions generated"),
		field.Int("percentage"),
		field.Text("details").
			Default("[]").
			Comment("Per-question answers as JSON"),
	}
}

func (QuizResultEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("topic"),
	}
}
