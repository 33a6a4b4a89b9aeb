package models

import (
	"encoding/json"
	"math"
	"time"
)

// CurrentMetrics holds the freshly measured operational state supplied per
// ROI calculation. It is never persisted on its own, only through the
// snapshot it produces.
type CurrentMetrics struct {
	MonthsInOperation           float64 `json:"months_in_operation"`
	CurrentSaaSSpend            float64 `json:"current_saas_spend"`
	MaintenanceCosts            float64 `json:"maintenance_costs"`
	CurrentProcessingHours      float64 `json:"current_processing_hours"`
	TasksAutomated              int     `json:"tasks_automated"`
	EmployeeAdoptionRate        float64 `json:"employee_adoption_rate"` // fraction 0-1
	CurrentAccuracy             float64 `json:"current_accuracy"`
	CurrentErrorRate            float64 `json:"current_error_rate"`
	CurrentComplianceScore      float64 `json:"current_compliance_score"`
	CurrentCustomerSatisfaction float64 `json:"current_customer_satisfaction"`
}

// Months represents a duration in months that may be unbounded. The
// unbounded value (break-even never reached) is math.Inf(1) in memory and
// JSON null on the wire.
type Months float64

// Never is the unbounded Months value.
func Never() Months { return Months(math.Inf(1)) }

// IsNever reports whether the value is unbounded.
func (m Months) IsNever() bool { return math.IsInf(float64(m), 1) }

func (m Months) MarshalJSON() ([]byte, error) {
	if m.IsNever() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(m))
}

func (m *Months) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Never()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Months(v)
	return nil
}

// FinancialMetrics holds the money-denominated results of an ROI
// calculation. Savings figures are cumulative over the months in
// operation; CurrentROI is a percentage of development cost.
type FinancialMetrics struct {
	SaaSReplacementSavings   float64 `json:"saas_replacement_savings"`
	OperationalCostReduction float64 `json:"operational_cost_reduction"`
	CumulativeSavings        float64 `json:"cumulative_savings"`
	NetBenefit               float64 `json:"net_benefit"`
	CurrentROI               float64 `json:"current_roi"`
	BreakEvenMonths          Months  `json:"break_even_months"`
}

// ProductivityMetrics holds time- and adoption-related results. All rate
// fields are percentages.
type ProductivityMetrics struct {
	TimeSavedHours          float64 `json:"time_saved_hours"`
	ErrorReductionRate      float64 `json:"error_reduction_rate"`
	ProcessingTimeReduction float64 `json:"processing_time_reduction"`
	ThroughputIncrease      float64 `json:"throughput_increase"`
	EmployeeAdoptionRate    float64 `json:"employee_adoption_rate"`
}

// QualityMetrics holds percentage deltas relative to the baseline, plus a
// raw customer satisfaction delta (points on the 1-10 scale, not a
// percentage).
type QualityMetrics struct {
	AccuracyImprovement        float64 `json:"accuracy_improvement"`
	DefectReduction            float64 `json:"defect_reduction"`
	ComplianceImprovement      float64 `json:"compliance_improvement"`
	CustomerSatisfactionDelta  float64 `json:"customer_satisfaction_delta"`
	ReviewCycleReduction       float64 `json:"review_cycle_reduction"`
}

// ConfidenceInterval brackets the true ROI given measurement uncertainty.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	ConfidenceLevel float64 `json:"confidence_level"`
}

// HalfWidth returns half the interval width.
func (ci ConfidenceInterval) HalfWidth() float64 {
	return (ci.Upper - ci.Lower) / 2
}

// ROIMetrics is the composed output of one ROI calculation. It has no
// identity and no lifecycle beyond the calculation call; persistence
// happens only through a snapshot.
type ROIMetrics struct {
	Financial          FinancialMetrics    `json:"financial"`
	Productivity       ProductivityMetrics `json:"productivity"`
	Quality            QualityMetrics      `json:"quality"`
	CalculatedAt       time.Time           `json:"calculated_at"`
	ConfidenceInterval ConfidenceInterval  `json:"confidence_interval"`
}
