package domain

import "time"

// TimeLayout is the wire format for flight times. Anything else is rejected.
const TimeLayout = "2006-01-02 15:04:05"

type Flight struct {
	ID          string    `json:"id"`
	Departure   string    `json:"departure"`
	Destination string    `json:"destination"`
	DepartTime  time.Time `json:"departTime"`
	ArriveTime  time.Time `json:"arriveTime"`
	Price       float64   `json:"price"`
	TotalSeats  int       `json:"totalSeats"`
	RemainSeats int       `json:"remainSeats"`
}
