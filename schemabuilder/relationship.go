package schemabuilder

import (
	"go.appointy.com/tablegql/graphql"
	"go.appointy.com/tablegql/sqlmeta"
)

// wireRelationships runs the second pass for one manager. It requires the
// column pass to have completed for every table in the batch: the target
// entity's object node must already exist, including for self-references
// and cycles. Relationship targets are shared node references, never
// copies, so fields wired onto a target later stay visible here.
func (m *TableManager) wireRelationships(managers map[string]*TableManager) error {
	for _, rel := range m.Table.Relationships {
		target, ok := managers[rel.Target]
		if !ok || target == nil {
			// The target table is unmapped or unknown; the edge cannot
			// be represented and is dropped with the target's warning.
			continue
		}

		fieldName := FieldName(rel.Name)

		pkScalar, err := relationshipKeyScalar(target.Table)
		if err != nil {
			return err
		}

		// Relationship reads may legitimately resolve to nothing when the
		// target was deleted, so the object field is never NonNull.
		var objectType graphql.Type = target.Types.Object
		var inputType graphql.Type = pkScalar
		var requiredType graphql.Type = pkScalar

		if rel.Cardinality == sqlmeta.ToMany {
			objectType = &graphql.List{Type: objectType}
			inputType = &graphql.List{Type: inputType}
			requiredType = &graphql.List{Type: requiredType}
		} else if rel.Required() {
			requiredType = &graphql.NonNull{Type: requiredType}
		}

		// AddField leaves existing fields untouched, which makes wiring
		// idempotent and keeps column fields from being overwritten.
		m.Types.InputRequired.AddField(fieldName, requiredType)
		m.Types.Input.AddField(fieldName, inputType)
		m.Types.Object.AddField(fieldName, &graphql.Field{Type: objectType})
		m.Types.Filter.AddField(fieldName, RelFilter)
	}
	return nil
}

// generatePayloads builds the two result envelopes every mutation and
// many query of this entity returns. Idempotent across repeated wiring.
func (m *TableManager) generatePayloads(reg *graphql.Registry) error {
	if m.wired {
		return nil
	}
	m.wired = true

	payload := &graphql.Object{Name: m.Name + "Payload"}
	payload.AddField("errors", &graphql.Field{Type: &graphql.List{Type: graphql.String}})
	payload.AddField("result", &graphql.Field{Type: m.Types.Object, Resolve: ResultResolver()})

	listPayload := &graphql.Object{Name: m.Name + "ListPayload"}
	listPayload.AddField("errors", &graphql.Field{Type: &graphql.List{Type: graphql.String}})
	listPayload.AddField("result", &graphql.Field{Type: &graphql.List{Type: m.Types.Object}, Resolve: ResultResolver()})
	listPayload.AddField("count", &graphql.Field{Type: graphql.Int, Resolve: CountResolver()})

	m.Types.Payload = payload
	m.Types.ListPayload = listPayload

	if err := reg.Register(payload.Name, payload); err != nil {
		return buildErr("wire", err)
	}
	if err := reg.Register(listPayload.Name, listPayload); err != nil {
		return buildErr("wire", err)
	}
	if err := registerFilter(reg, RelFilter); err != nil {
		return buildErr("wire", err)
	}
	return nil
}

// relationshipKeyScalar maps the target table's primary key to the scalar
// used for relationship input fields. Keys outside {String, Int, Boolean,
// Float} cannot carry a relationship and fail the build.
func relationshipKeyScalar(target sqlmeta.Table) (*graphql.Scalar, error) {
	pk, ok := target.PrimaryKey()
	if !ok {
		return nil, buildErrf("wire", "table %q has no primary key to relate on", target.Name)
	}
	switch pk.Kind {
	case sqlmeta.KindString, sqlmeta.KindText:
		return graphql.String, nil
	case sqlmeta.KindInt:
		return graphql.Int, nil
	case sqlmeta.KindBoolean:
		return graphql.Boolean, nil
	case sqlmeta.KindFloat:
		return graphql.Float, nil
	default:
		return nil, buildErrf("wire", "table %q: primary key kind %s is not a valid relationship key", target.Name, pk.Kind)
	}
}
