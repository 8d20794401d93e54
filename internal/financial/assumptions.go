package financial

import (
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"marketstudy/pkg/contracts/domain"
)

// Assumptions is the fixed input set of the financial model. Values are
// treated as immutable: use With to derive a variant.
type Assumptions struct {
	DevelopmentCosts      map[string]float64         `json:"development_costs" yaml:"development_costs" validate:"dive,gte=0"`
	MonthlyOperatingCosts map[string]float64         `json:"monthly_operating_costs" yaml:"monthly_operating_costs" validate:"dive,gte=0"`
	PricingModel          map[string]float64         `json:"pricing_model" yaml:"pricing_model" validate:"dive,gte=0"`
	UnitEconomics         domain.UnitEconomicsInputs `json:"unit_economics" yaml:"unit_economics"`
	Growth                domain.GrowthInputs        `json:"growth_assumptions" yaml:"growth_assumptions"`
}

// DefaultAssumptions returns the launch plan for a three-machine
// confectionery rental business.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		DevelopmentCosts: map[string]float64{
			"equipment_initial_purchase": 15000,
			"software_development":       5000,
			"initial_marketing_setup":    3000,
			"legal_licensing":            2000,
			"working_capital":            5000,
			"misc_setup_costs":           2000,
		},
		MonthlyOperatingCosts: map[string]float64{
			"equipment_maintenance": 200,
			"insurance":             150,
			"software_subscription": 100,
			"marketing_ads":         500,
			"staff_salaries":        0,
			"utilities":             100,
			"transportation":        300,
			"misc_operational":      150,
		},
		PricingModel: map[string]float64{
			"popcorn_machine_daily":       50,
			"cotton_candy_machine_daily":  45,
			"hot_chestnuts_machine_daily": 60,
			"three_day_package":           130,
		},
		UnitEconomics: domain.UnitEconomicsInputs{
			AvgTransactionValue:     50,
			GrossMarginPct:          70,
			CustomerAcquisitionCost: 25,
			MonthlyChurnPct:         5,
		},
		Growth: domain.GrowthInputs{
			InitialMonthlyCustomers: 15,
			MonthlyGrowthPctYear1:   10,
			AnnualGrowthPctYear2:    25,
			AnnualGrowthPctYear3:    20,
		},
	}
}

// LoadAssumptions overlays a YAML file on the defaults. Map sections in
// the file add or replace individual cost lines.
func LoadAssumptions(path string) (Assumptions, error) {
	a := DefaultAssumptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return Assumptions{}, fmt.Errorf("read assumptions file: %w", err)
	}
	if err := yaml.Unmarshal(data, &a); err != nil {
		return Assumptions{}, fmt.Errorf("parse assumptions file: %w", err)
	}
	if err := a.Validate(); err != nil {
		return Assumptions{}, err
	}
	return a, nil
}

// Overrides names the assumption fields a what-if run may replace.
// Nil pointers and absent map keys keep the base value.
type Overrides struct {
	AvgTransactionValue     *float64           `json:"avg_transaction_value,omitempty" validate:"omitempty,gte=0"`
	GrossMarginPct          *float64           `json:"gross_margin,omitempty" validate:"omitempty,gte=0,lte=100"`
	CustomerAcquisitionCost *float64           `json:"customer_acquisition_cost,omitempty" validate:"omitempty,gte=0"`
	MonthlyChurnPct         *float64           `json:"monthly_churn_rate,omitempty" validate:"omitempty,gte=0,lte=100"`
	InitialMonthlyCustomers *float64           `json:"initial_monthly_customers,omitempty" validate:"omitempty,gte=0"`
	MonthlyGrowthPctYear1   *float64           `json:"monthly_growth_rate_year1,omitempty" validate:"omitempty,gte=-100"`
	AnnualGrowthPctYear2    *float64           `json:"annual_growth_rate_year2,omitempty" validate:"omitempty,gte=-100"`
	AnnualGrowthPctYear3    *float64           `json:"annual_growth_rate_year3,omitempty" validate:"omitempty,gte=-100"`
	DevelopmentCosts        map[string]float64 `json:"development_costs,omitempty" validate:"omitempty,dive,gte=0"`
	MonthlyOperatingCosts   map[string]float64 `json:"monthly_operating_costs,omitempty" validate:"omitempty,dive,gte=0"`
}

// With returns a deep copy of a with the overrides applied. The receiver
// is left untouched.
func (a Assumptions) With(o Overrides) Assumptions {
	out := a.clone()

	setIf(&out.UnitEconomics.AvgTransactionValue, o.AvgTransactionValue)
	setIf(&out.UnitEconomics.GrossMarginPct, o.GrossMarginPct)
	setIf(&out.UnitEconomics.CustomerAcquisitionCost, o.CustomerAcquisitionCost)
	setIf(&out.UnitEconomics.MonthlyChurnPct, o.MonthlyChurnPct)
	setIf(&out.Growth.InitialMonthlyCustomers, o.InitialMonthlyCustomers)
	setIf(&out.Growth.MonthlyGrowthPctYear1, o.MonthlyGrowthPctYear1)
	setIf(&out.Growth.AnnualGrowthPctYear2, o.AnnualGrowthPctYear2)
	setIf(&out.Growth.AnnualGrowthPctYear3, o.AnnualGrowthPctYear3)

	for k, v := range o.DevelopmentCosts {
		out.DevelopmentCosts[k] = v
	}
	for k, v := range o.MonthlyOperatingCosts {
		out.MonthlyOperatingCosts[k] = v
	}
	return out
}

// Validate checks the assumptions with struct tag rules.
func (a Assumptions) Validate() error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("invalid assumptions: %w", err)
	}
	return nil
}

// Validate checks override values with struct tag rules.
func (o Overrides) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid overrides: %w", err)
	}
	return nil
}

func (a Assumptions) clone() Assumptions {
	out := a
	out.DevelopmentCosts = cloneMap(a.DevelopmentCosts)
	out.MonthlyOperatingCosts = cloneMap(a.MonthlyOperatingCosts)
	out.PricingModel = cloneMap(a.PricingModel)
	return out
}

func cloneMap(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func setIf(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// SortedKeys returns the keys of a cost map in lexical order.
func SortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sum adds values in key order.
func sum(m map[string]float64) float64 {
	var total float64
	for _, k := range SortedKeys(m) {
		total += m[k]
	}
	return total
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
