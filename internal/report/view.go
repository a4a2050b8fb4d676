package report

import (
	"github.com/rocjay1/wire-dashboard/internal/models"
	"github.com/rocjay1/wire-dashboard/internal/pipeline"
)

// Message levels, mirrored by the dashboard's alert styles.
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

const (
	MsgSelectForComparison   = "Please select a specific customer from the dropdown to view the comparison chart."
	MsgSelectForDistribution = "Please select a specific customer from the dropdown to view the distribution chart."
	MsgSelectForAppearances  = "Select a customer from the dropdown to see their appearance count."
	MsgNoCustomerData        = "No data available for the selected customer."
	MsgNoExceedances         = "No transactions exceeded their customer's wire transfer limit."
	MsgAbout                 = "This dashboard displays unusual wire payment transactions where " +
		"outgoing transfer amounts exceed customer wire transfer limits."
)

// Message is guidance shown in place of a view that cannot be rendered.
type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// View is everything the dashboard shows for one customer selection.
type View struct {
	Selected     string                 `json:"selected"`
	Customers    []string               `json:"customers"`
	Notice       *Message               `json:"notice,omitempty"`
	Rows         []models.FlaggedRecord `json:"rows"`
	FlaggedCount int                    `json:"flagged_count"`

	Comparison        *Comparison `json:"comparison,omitempty"`
	ComparisonMessage *Message    `json:"comparison_message,omitempty"`

	Distribution        *Distribution `json:"distribution,omitempty"`
	DistributionMessage *Message      `json:"distribution_message,omitempty"`

	Appearances        *int     `json:"appearances,omitempty"`
	AppearancesMessage *Message `json:"appearances_message,omitempty"`

	Stats   []ColumnStats    `json:"stats"`
	Dataset *pipeline.Result `json:"dataset"`
}

// ChartsAvailable reports whether a specific customer with data is selected.
func (v *View) ChartsAvailable() bool {
	return v.Comparison != nil
}

// BuildView derives the view of res for the selected customer. It does not modify res.
func BuildView(res *pipeline.Result, selected string) *View {
	if IsAll(selected) {
		selected = AllCustomers
	}
	all := res.Flagged
	rows := Select(all, selected)

	v := &View{
		Selected:     selected,
		Customers:    Options(all),
		Rows:         rows,
		FlaggedCount: len(all),
		Stats:        Describe(all),
		Dataset:      res,
	}

	if len(all) == 0 {
		v.Notice = &Message{Level: LevelInfo, Text: MsgNoExceedances}
	}

	switch {
	case selected == AllCustomers:
		v.ComparisonMessage = &Message{Level: LevelError, Text: MsgSelectForComparison}
		v.DistributionMessage = &Message{Level: LevelError, Text: MsgSelectForDistribution}
		v.AppearancesMessage = &Message{Level: LevelInfo, Text: MsgSelectForAppearances}
	case len(rows) == 0:
		v.ComparisonMessage = &Message{Level: LevelWarning, Text: MsgNoCustomerData}
		v.DistributionMessage = &Message{Level: LevelWarning, Text: MsgNoCustomerData}
		n := 0
		v.Appearances = &n
	default:
		c := Compare(rows)
		d := Distribute(all, rows)
		n := Appearances(all, selected)
		v.Comparison = &c
		v.Distribution = &d
		v.Appearances = &n
	}

	return v
}
