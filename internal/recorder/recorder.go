package recorder

// CycleEvent records one 15-minute evaluation.
type CycleEvent struct {
	Source       string // data source that served the cycle
	Bars         int
	Close        float64
	RSI          float64
	FastEMA      float64
	SlowEMA      float64
	EMABullCross bool
	EMABearCross bool
	BullishDiv   bool
	BearishDiv   bool
}

// AlertEvent records one delivered alert message.
type AlertEvent struct {
	Kind    string // "SIGNAL", "STATUS" or "DAILY_SUMMARY"
	Message string
}

// SummaryEvent records a daily trend-bias summary.
type SummaryEvent struct {
	Close   float64
	FastEMA float64
	SlowEMA float64
	Diff    float64
	Bias    string
}

// Recorder persists evaluation history for later analysis.
type Recorder interface {
	RecordCycle(evt *CycleEvent) error
	RecordAlert(evt *AlertEvent) error
	RecordSummary(evt *SummaryEvent) error
	Close() error
}
