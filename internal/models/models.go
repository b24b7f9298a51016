package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RelatedVideo is one entry of the video enrichment, kept in the order the
// provider returned it.
type RelatedVideo struct {
	Title       string `bson:"title" json:"title"`
	URL         string `bson:"url" json:"url"`
	Description string `bson:"description" json:"description"`
}

// SearchRecord is the enriched result of one weather lookup. Temperature and
// Weather are the only fields a later update may change.
type SearchRecord struct {
	City          string         `bson:"city" json:"city"`
	Temperature   float64        `bson:"temperature" json:"temperature"`
	Weather       string         `bson:"weather" json:"weather"`
	Humidity      int            `bson:"humidity" json:"humidity"`
	WindSpeed     float64        `bson:"windSpeed" json:"wind_speed"`
	Latitude      float64        `bson:"latitude" json:"latitude"`
	Longitude     float64        `bson:"longitude" json:"longitude"`
	RelatedVideos []RelatedVideo `bson:"relatedVideos" json:"related_videos"`
	OwnerID       string         `bson:"ownerId" json:"-"`
	CreatedAt     time.Time      `bson:"createdAt" json:"created_at"`
}

// StoredSearch is a SearchRecord together with its store-assigned id.
type StoredSearch struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SearchRecord `bson:",inline"`
}
