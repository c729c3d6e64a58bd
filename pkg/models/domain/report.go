package domain

import "time"

// Report is the presentation-neutral rendering of a dashboard view
type Report struct {
	Title     string
	Period    TimePeriod
	Selection []string
	Sections  []ReportSection
	// Total is the already formatted total of the filtered sales
	Total    string
	Currency string
}

// TimePeriod represents a time range for the report
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days
}

type ReportSection struct {
	Title   string
	Summary map[string]string
	Details []ReportDetail
}

type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
