package domain

type Category struct {
	ID                  string               `bson:"id" json:"id"`
	Name                string               `bson:"name" json:"name"`
	ParentID            string               `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	Level               int                  `bson:"level" json:"level"`
	SortOrder           int                  `bson:"sort_order" json:"sort_order"`
	Subcategories       []*Category          `bson:"subcategories,omitempty" json:"subcategories,omitempty"`
	AvailabilityPeriods []AvailabilityPeriod `bson:"availability_periods,omitempty" json:"availability_periods,omitempty"`
	Active              bool                 `bson:"active" json:"active"`
}

// AvailabilityPeriod is a recurring weekly window during which a category is
// orderable. Times are local "HH:MM:SS"; EndTime earlier than StartTime means
// the window crosses midnight. An empty DayOfWeek applies to every day.
type AvailabilityPeriod struct {
	StartTime string `bson:"start_time" json:"start_time"`
	EndTime   string `bson:"end_time" json:"end_time"`
	DayOfWeek string `bson:"day_of_week,omitempty" json:"day_of_week,omitempty"`
}
