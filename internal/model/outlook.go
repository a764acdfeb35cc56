package model

type Milestone struct {
	Week  int    `json:"week"`
	Title string `json:"title"`
	HTML  string `json:"html"`
}

type Outlook struct {
	CurrentWeek int          `json:"current_week"`
	Streak      int          `json:"streak"`
	Current     *Milestone   `json:"current"`
	Upcoming    []*Milestone `json:"upcoming"`
}
