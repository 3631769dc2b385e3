package services

import (
	"context"
	"encoding/json"

	"github.com/unimedia/agencysite/internal/domain/entities"
	"github.com/unimedia/agencysite/internal/infrastructure/logger"
	"github.com/unimedia/agencysite/internal/ports"
)

// DefaultContent is the starter content written by the seed command
var DefaultContent = map[entities.EntityType][]entities.Record{
	entities.EntityTypeSkills: {
		{"id": json.Number("1"), "name": "Video Editing", "category": "Production"},
		{"id": json.Number("2"), "name": "Social Media Marketing", "category": "Marketing"},
		{"id": json.Number("3"), "name": "Graphic Design", "category": "Design"},
	},
	entities.EntityTypeWork: {
		{
			"id":          json.Number("1"),
			"title":       "Campus Event 2024",
			"description": "Annual university celebration",
			"image":       "https://images.unsplash.com/photo-1523580494863-6f3031224c94?w=400",
		},
		{
			"id":          json.Number("2"),
			"title":       "Sports Highlights",
			"description": "Basketball championship coverage",
			"image":       "https://images.unsplash.com/photo-1546519638-68e109498ffc?w=400",
		},
	},
}

// Seed writes DefaultContent into every collection that is still empty and
// returns how many records it wrote per type.
func Seed(ctx context.Context, recordRepo ports.RecordRepository, log *logger.Logger) (map[entities.EntityType]int, error) {
	written := make(map[entities.EntityType]int)

	for _, entityType := range entities.EntityTypes {
		defaults, ok := DefaultContent[entityType]
		if !ok {
			continue
		}

		existing, err := recordRepo.List(ctx, entityType)
		if err != nil {
			return written, err
		}
		if len(existing) > 0 {
			log.Infow("Collection already has content, skipping", "type", entityType, "count", len(existing))
			continue
		}

		records := make([]entities.Record, 0, len(defaults))
		for _, r := range defaults {
			records = append(records, r.Clone())
		}
		if err := recordRepo.Replace(ctx, entityType, records); err != nil {
			return written, err
		}

		written[entityType] = len(records)
		log.Infow("Seeded collection", "type", entityType, "count", len(records))
	}

	return written, nil
}
