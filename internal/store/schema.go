package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	entsql "entgo.io/ent/dialect/sql"
	sqlschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/abhisek/quizzy/ent/schema"
)

// Table names.
const (
	tableLLMRequests = "llm_request_events"
	tableQuizResults = "quiz_result_events"
	tableSnapshots   = "snapshots"
)

var tables = []struct {
	name   string
	schema ent.Interface
}{
	{tableLLMRequests, schema.LLMRequestEvent{}},
	{tableQuizResults, schema.QuizResultEvent{}},
	{tableSnapshots, schema.Snapshot{}},
}

// migrate creates missing tables, columns and indexes. The migrator works
// append-only, so running it against an up-to-date database is a no-op.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	ts := make([]*sqlschema.Table, 0, len(tables))
	for _, t := range tables {
		tbl, err := buildTable(t.name, t.schema)
		if err != nil {
			return err
		}
		ts = append(ts, tbl)
	}
	m, err := sqlschema.NewMigrate(drv, sqlschema.WithForeignKeys(false))
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, ts...)
}

// buildTable converts one ent schema, mixins included, into a migration
// table. Every table gets an autoincrement integer id.
func buildTable(name string, s ent.Interface) (*sqlschema.Table, error) {
	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	tbl := sqlschema.NewTable(name).
		AddPrimary(&sqlschema.Column{Name: "id", Type: field.TypeInt, Increment: true})
	for _, f := range fields {
		col, err := column(f.Descriptor())
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", name, err)
		}
		tbl.AddColumn(col)
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		idxName := d.StorageKey
		if idxName == "" {
			idxName = fmt.Sprintf("idx_%s_%s", name, strings.Join(d.Fields, "_"))
		}
		for _, f := range d.Fields {
			if !tbl.HasColumn(f) {
				return nil, fmt.Errorf("table %s: index %s: unknown column %s", name, idxName, f)
			}
		}
		tbl.AddIndex(idxName, d.Unique, d.Fields)
	}
	return tbl, nil
}

func column(d *field.Descriptor) (*sqlschema.Column, error) {
	if d.Err != nil {
		return nil, fmt.Errorf("field %s: %w", d.Name, d.Err)
	}
	name := d.StorageKey
	if name == "" {
		name = d.Name
	}

	switch d.Info.Type {
	case field.TypeBool, field.TypeString, field.TypeEnum, field.TypeJSON, field.TypeBytes,
		field.TypeFloat32, field.TypeFloat64,
		field.TypeInt, field.TypeInt8, field.TypeInt16, field.TypeInt32, field.TypeInt64,
		field.TypeUint, field.TypeUint8, field.TypeUint16, field.TypeUint32, field.TypeUint64:
	default:
		return nil, fmt.Errorf("field %s: unsupported type %s", d.Name, d.Info.Type)
	}

	col := &sqlschema.Column{
		Name:     name,
		Type:     d.Info.Type,
		Size:     int64(d.Size),
		Unique:   d.Unique,
		Nullable: d.Optional || d.Nillable,
	}
	for _, e := range d.Enums {
		col.Enums = append(col.Enums, e.V)
	}
	switch v := d.Default.(type) {
	case nil:
	case string, bool, int, int64, float64:
		col.Default = v
	default:
		return nil, fmt.Errorf("field %s: unsupported default %T", d.Name, v)
	}
	return col, nil
}
