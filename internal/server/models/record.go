package models

import "time"

// Record is a daily case count for one country. Only the calendar date of
// Date is meaningful.
type Record struct {
	ID         int64
	Date       time.Time
	Country    string
	Cases      int64
	Deaths     int64
	Recoveries int64
}
