package entities

import (
	"strings"

	"migration-service/internal/migration"
	"migration-service/internal/models"
	"migration-service/internal/transform"
)

var tagKindDict = transform.EnumDict{
	Values: map[string]string{
		"product":  string(models.TagKindProduct),
		"item":     string(models.TagKindProduct),
		"customer": string(models.TagKindCustomer),
		"client":   string(models.TagKindCustomer),
	},
	Default: string(models.TagKindGeneral),
}

func transformTag(row transform.SourceRow, tc *migration.TransformContext) (*transform.TransformedRow, error) {
	name := strings.TrimSpace(row.String("name"))
	if name == "" {
		// A tag with no name carries no information worth migrating.
		return nil, nil
	}

	t := &transform.TransformedRow{SourceID: row.String("id")}

	kind, known := tagKindDict.Map(row.String("type"))
	if !known && row.String("type") != "" {
		t.Warnf("tag %s: unknown kind %q, defaulted to %s", t.SourceID, row.String("type"), kind)
	}

	tag := &models.Tag{
		StoreID: tc.TargetScope,
		Slug:    transform.Slugify(name),
		Name:    name,
		Kind:    models.TagKind(kind),
	}
	if created, ok := row.Time("created_at"); ok {
		tag.CreatedAt = created
	}

	t.Model = tag
	t.NaturalKey = map[string]any{
		"store_id": tag.StoreID,
		"slug":     tag.Slug,
	}
	t.Tracked = map[string]any{
		"name": tag.Name,
		"kind": tag.Kind,
	}
	return t, nil
}

func init() {
	register(migration.Definition{
		EntityType:  EntityTags,
		LegacyTable: "tags",
		PrimaryKey:  "id",
		ScopeColumn: "store_id",
		Transform:   transformTag,
	})
}
