package models

// EventVehicle is a vehicle attached to a meeting (car pooling, shuttles).
// MeetingID has a many-to-one relation to Meeting.
type EventVehicle struct {
	ID        string `db:"id" json:"id"`
	MeetingID string `db:"meeting_id" json:"meeting_id"`
	Label     string `db:"label" json:"label"`
	Plate     string `db:"plate" json:"plate"`
	Seats     int    `db:"seats" json:"seats"`
	Driver    string `db:"driver" json:"driver"`
}
