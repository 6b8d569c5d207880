package domain

type Location struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Address  string `bson:"address,omitempty" json:"address,omitempty"`
	Timezone string `bson:"timezone,omitempty" json:"timezone,omitempty"`
	Currency string `bson:"currency,omitempty" json:"currency,omitempty"`
	Status   string `bson:"status,omitempty" json:"status,omitempty"`
}
